// ABOUTME: Article model, the engine's canonical normalized content item
// ABOUTME: Carries display fields plus the identities used for duplicate suppression

package models

import (
	"time"

	"github.com/google/uuid"
)

// Article is one normalized feed item, ready for display. Link is the exact
// identity used for cross-refresh suppression; Title (after normalization) is
// the identity used for near-duplicate suppression within one refresh.
type Article struct {
	ID           string
	Title        string
	Summary      string
	Link         string
	ThumbnailURL string
	SourceName   string
	SourceURL    string
	// PublishedAt is the zero time when the feed's date string was absent or
	// unparsable; such articles rank last.
	PublishedAt time.Time
	Tags        []string
	AuthorName  string
	SourceKind  string // "rss", "atom", or "json" as reported by the parser

	// Content is the item's full body as delivered by the feed, possibly
	// HTML. The rotation surface only shows Summary; Content feeds the
	// reading view.
	Content string
}

// NewArticle creates an Article with a generated ID and the required display
// identity fields set.
func NewArticle(title, link string) *Article {
	return &Article{
		ID:    uuid.New().String(),
		Title: title,
		Link:  link,
	}
}

// HasThumbnail reports whether a thumbnail URL was resolved for this article.
func (a *Article) HasThumbnail() bool {
	return a.ThumbnailURL != ""
}

// DisplayText composes the text shown for the article: the title alone, or
// title and summary separated by a blank line when a summary is present.
func (a *Article) DisplayText() string {
	if a.Summary == "" {
		return a.Title
	}
	return a.Title + "\n\n" + a.Summary
}
