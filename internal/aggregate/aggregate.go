// ABOUTME: Multi-source refresh: fetch, parse, normalize, dedupe, rank, truncate
// ABOUTME: Tolerates partial source failure and reports per-source errors as data

package aggregate

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/harper/newsticker/internal/dedup"
	"github.com/harper/newsticker/internal/fetch"
	"github.com/harper/newsticker/internal/models"
	"github.com/harper/newsticker/internal/normalize"
	"github.com/harper/newsticker/internal/parse"
)

// DefaultMaxArticles caps the ranked output of one refresh cycle.
const DefaultMaxArticles = 30

// FetchError records the failure of a single source during a refresh. It is
// diagnostic data, not a refresh abort.
type FetchError struct {
	Source string
	Err    error
}

func (e FetchError) Error() string {
	return fmt.Sprintf("fetching %s: %v", e.Source, e.Err)
}

func (e FetchError) Unwrap() error {
	return e.Err
}

// RefreshResult is the outcome of one refresh cycle over all enabled sources.
type RefreshResult struct {
	Articles     []models.Article
	SourceErrors []FetchError

	attempted int
}

// OK reports whether at least one source contributed. A refresh over zero
// enabled sources is vacuously OK.
func (r RefreshResult) OK() bool {
	return len(r.SourceErrors) < r.attempted || r.attempted == 0
}

// Config tunes an Aggregator.
type Config struct {
	// FetchTimeout bounds each source fetch. Zero means fetch.DefaultTimeout.
	FetchTimeout time.Duration

	// MaxArticles truncates the ranked output. Zero means DefaultMaxArticles.
	MaxArticles int

	// Normalize controls summary cleaning.
	Normalize normalize.Options
}

// Aggregator runs refresh cycles. Safe for use from a single refresh loop; the
// seen-link bookkeeping lives downstream in the rotation engine.
type Aggregator struct {
	client      *fetch.Client
	maxArticles int
	normOpts    normalize.Options
}

// New creates an Aggregator from cfg.
func New(cfg Config) *Aggregator {
	maxArticles := cfg.MaxArticles
	if maxArticles <= 0 {
		maxArticles = DefaultMaxArticles
	}
	return &Aggregator{
		client:      fetch.NewClient(cfg.FetchTimeout),
		maxArticles: maxArticles,
		normOpts:    cfg.Normalize,
	}
}

// Refresh fetches every enabled source concurrently, merges the results,
// removes near-duplicates, ranks by recency, and truncates. A failing source
// is recorded in SourceErrors without blocking the others; output ordering is
// deterministic regardless of fetch completion order because per-source
// results are collected by source index before merging.
func (a *Aggregator) Refresh(ctx context.Context, sources []models.Source) RefreshResult {
	enabled := lo.Filter(sources, func(s models.Source, _ int) bool {
		return s.Enabled
	})

	fetched := make([][]models.Article, len(enabled))
	failures := make([]*FetchError, len(enabled))

	var wg sync.WaitGroup
	for i, src := range enabled {
		wg.Add(1)
		go func(i int, src models.Source) {
			defer wg.Done()
			articles, err := a.fetchSource(ctx, src)
			if err != nil {
				log.WithField("source", src.DisplayName()).WithError(err).Warn("feed fetch failed")
				failures[i] = &FetchError{Source: src.DisplayName(), Err: err}
				return
			}
			fetched[i] = articles
		}(i, src)
	}
	wg.Wait()

	result := RefreshResult{attempted: len(enabled)}
	for i := range enabled {
		if failures[i] != nil {
			result.SourceErrors = append(result.SourceErrors, *failures[i])
			continue
		}
		result.Articles = append(result.Articles, fetched[i]...)
	}

	result.Articles = dedup.Dedupe(result.Articles)

	// Newest first; the stable sort keeps merge order for equal timestamps.
	sort.SliceStable(result.Articles, func(i, j int) bool {
		return result.Articles[i].PublishedAt.After(result.Articles[j].PublishedAt)
	})

	if len(result.Articles) > a.maxArticles {
		result.Articles = result.Articles[:a.maxArticles]
	}

	return result
}

// fetchSource retrieves and parses one source into normalized articles.
func (a *Aggregator) fetchSource(ctx context.Context, src models.Source) ([]models.Article, error) {
	body, err := a.client.Fetch(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	parsed, err := parse.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	articles := make([]models.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		article := models.NewArticle(normalize.Title(item.Title), item.Link)
		article.Summary = normalize.Summary(item.Summary, a.normOpts)
		article.ThumbnailURL = item.ThumbnailURL
		article.SourceName = src.Name
		article.SourceURL = src.URL
		article.PublishedAt = item.PublishedAt
		article.Tags = item.Tags
		article.AuthorName = item.Author
		article.SourceKind = parsed.Kind
		article.Content = item.Content
		articles = append(articles, *article)
	}

	return articles, nil
}
