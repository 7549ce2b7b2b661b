// ABOUTME: RSS/Atom feed parsing using gofeed library
// ABOUTME: Converts gofeed documents to raw items with best-effort thumbnail resolution

package parse

import (
	"bytes"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// ParsedFeed is one parsed feed document.
type ParsedFeed struct {
	Title string
	Kind  string // "rss", "atom", or "json" as detected by gofeed
	Items []ParsedItem
}

// ParsedItem is one raw feed item before normalization. Summary and Content
// may still contain markup; PublishedAt is the zero time when the item's date
// string was absent or unparsable.
type ParsedItem struct {
	Title        string
	Link         string
	Summary      string
	Content      string
	Author       string
	Tags         []string
	PublishedAt  time.Time
	ThumbnailURL string
}

// Parse parses an RSS or Atom document. Items are extracted from both `item`
// and `entry` elements; an item lacking both a title and a link is dropped
// since it can neither be displayed nor keyed for deduplication. All other
// fields are optional.
func Parse(data []byte) (*ParsedFeed, error) {
	parser := gofeed.NewParser()
	feed, err := parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	parsed := &ParsedFeed{
		Title: feed.Title,
		Kind:  feed.FeedType,
		Items: make([]ParsedItem, 0, len(feed.Items)),
	}

	for _, item := range feed.Items {
		if item.Title == "" && item.Link == "" {
			continue
		}

		entry := ParsedItem{
			Title:        item.Title,
			Link:         item.Link,
			Content:      item.Content,
			Tags:         item.Categories,
			ThumbnailURL: resolveThumbnail(item),
		}

		// First present of description/summary/content. gofeed maps RSS
		// description and Atom summary onto Description.
		if item.Description != "" {
			entry.Summary = item.Description
		} else {
			entry.Summary = item.Content
		}

		if item.Author != nil {
			entry.Author = item.Author.Name
		}

		// pubDate, then published, then updated; unparsable dates stay zero.
		if item.PublishedParsed != nil {
			entry.PublishedAt = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			entry.PublishedAt = *item.UpdatedParsed
		}

		parsed.Items = append(parsed.Items, entry)
	}

	return parsed, nil
}

// resolveThumbnail picks a thumbnail URL for an item. Priority order:
//
//  1. an enclosure with an image MIME type and a non-empty URL
//  2. a Media RSS (http://search.yahoo.com/mrss/) thumbnail URL
//  3. a Media RSS content element with an image MIME type
//
// Returns "" when nothing matches; thumbnail resolution never fails.
func resolveThumbnail(item *gofeed.Item) string {
	for _, enc := range item.Enclosures {
		if enc == nil {
			continue
		}
		if strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}

	media, ok := item.Extensions["media"]
	if !ok {
		return ""
	}

	for _, thumb := range media["thumbnail"] {
		if url := thumb.Attrs["url"]; url != "" {
			return url
		}
	}

	for _, content := range media["content"] {
		if strings.HasPrefix(content.Attrs["type"], "image/") && content.Attrs["url"] != "" {
			return content.Attrs["url"]
		}
	}

	return ""
}
