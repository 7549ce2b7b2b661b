// ABOUTME: Library facade tying the aggregator to the rotation ticker
// ABOUTME: Runs the periodic refresh loop with backoff when every source is down

package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"

	"github.com/harper/newsticker/internal/aggregate"
	"github.com/harper/newsticker/internal/models"
	"github.com/harper/newsticker/internal/normalize"
	"github.com/harper/newsticker/internal/rotate"
)

// DefaultRefreshInterval is the cadence of full refresh cycles.
const DefaultRefreshInterval = 10 * time.Minute

// ErrAllSourcesFailed marks a refresh cycle in which no source was reachable.
// Rotation state is untouched in that case; stale content keeps displaying.
var ErrAllSourcesFailed = errors.New("all sources failed")

// Config assembles an Engine. Zero values select defaults throughout; the
// zero Clock is the real one.
type Config struct {
	Sources         []models.Source
	FetchTimeout    time.Duration
	RotateInterval  time.Duration
	RefreshInterval time.Duration
	MaxArticles     int
	HistoryCap      int
	SeenCap         int
	Normalize       normalize.Options
	Clock           rotate.Clock
}

// Engine is the feed aggregation and rotation engine. It owns no UI: the
// presentation layer reads Current, drives navigation, and listens on Updates.
type Engine struct {
	agg          *aggregate.Aggregator
	ticker       *rotate.Ticker
	sources      []models.Source
	refreshEvery time.Duration

	mu         sync.Mutex
	lastErrors []aggregate.FetchError
}

// New creates an Engine from cfg. Call Run to start rotation and refresh.
func New(cfg Config) *Engine {
	refreshEvery := cfg.RefreshInterval
	if refreshEvery <= 0 {
		refreshEvery = DefaultRefreshInterval
	}
	return &Engine{
		agg: aggregate.New(aggregate.Config{
			FetchTimeout: cfg.FetchTimeout,
			MaxArticles:  cfg.MaxArticles,
			Normalize:    cfg.Normalize,
		}),
		ticker: rotate.New(rotate.Options{
			Interval:   cfg.RotateInterval,
			HistoryCap: cfg.HistoryCap,
			SeenCap:    cfg.SeenCap,
			Clock:      cfg.Clock,
		}),
		sources:      cfg.Sources,
		refreshEvery: refreshEvery,
	}
}

// Current snapshots the article on display; ok is false before the first
// advance.
func (e *Engine) Current() (models.Article, bool) { return e.ticker.Current() }

// Advance moves to the next article; no-op on an empty queue.
func (e *Engine) Advance() { e.ticker.Advance() }

// Retreat moves one step back through history; no-op without a prior entry.
func (e *Engine) Retreat() { e.ticker.Retreat() }

// Pause suspends auto-advance.
func (e *Engine) Pause() { e.ticker.Pause() }

// Resume re-enables auto-advance with a fresh full interval.
func (e *Engine) Resume() { e.ticker.Resume() }

// Paused reports whether auto-advance is suspended.
func (e *Engine) Paused() bool { return e.ticker.Paused() }

// Updates returns the change-notification channel; re-read Current on receive.
func (e *Engine) Updates() <-chan struct{} { return e.ticker.Updates() }

// QueueLen reports how many articles wait to rotate in.
func (e *Engine) QueueLen() int { return e.ticker.QueueLen() }

// Sources returns the configured source list.
func (e *Engine) Sources() []models.Source {
	out := make([]models.Source, len(e.sources))
	copy(out, e.sources)
	return out
}

// LastRefreshErrors returns the per-source failures of the most recent
// refresh cycle, for diagnostics.
func (e *Engine) LastRefreshErrors() []aggregate.FetchError {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]aggregate.FetchError, len(e.lastErrors))
	copy(out, e.lastErrors)
	return out
}

// Refresh runs one aggregation cycle and merges the results into the
// rotation. Partial failures are recorded and reported via
// LastRefreshErrors; the returned error is non-nil only when every enabled
// source failed. Returns the number of newly queued articles.
func (e *Engine) Refresh(ctx context.Context) (int, error) {
	result := e.agg.Refresh(ctx, e.sources)

	e.mu.Lock()
	e.lastErrors = result.SourceErrors
	e.mu.Unlock()

	if !result.OK() {
		return 0, ErrAllSourcesFailed
	}

	queued := e.ticker.Merge(result.Articles)
	log.WithFields(log.Fields{
		"queued": queued,
		"errors": len(result.SourceErrors),
	}).Debug("refresh cycle complete")
	return queued, nil
}

// Run starts rotation and the periodic refresh loop, blocking until ctx is
// cancelled. After a cycle in which every source failed, retries back off
// exponentially until one succeeds, then the regular cadence resumes.
func (e *Engine) Run(ctx context.Context) {
	go e.ticker.Run(ctx)

	bo := backoff.NewExponentialBackOff()
	bo.MaxInterval = e.refreshEvery
	bo.MaxElapsedTime = 0

	wait := time.Duration(0) // first refresh is immediate
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}

		if _, err := e.Refresh(ctx); err != nil {
			wait = bo.NextBackOff()
			log.WithError(err).WithField("retry_in", wait).Warn("refresh failed")
			continue
		}
		bo.Reset()
		wait = e.refreshEvery
	}
}
