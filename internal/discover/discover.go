// ABOUTME: Feed autodiscovery for turning a site URL into a feed URL
// ABOUTME: Tries direct parse, HTML alternate links, then common feed paths

package discover

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/harper/newsticker/internal/fetch"
	"github.com/harper/newsticker/internal/parse"
)

// Common feed paths probed when other strategies fail.
var commonFeedPaths = []string{
	"/feed.xml",
	"/feed",
	"/rss.xml",
	"/rss",
	"/atom.xml",
	"/atom",
	"/index.xml",
	"/feeds/posts/default",
}

var (
	ErrNoFeedFound = errors.New("no RSS/Atom feed found at URL")
	ErrInvalidURL  = errors.New("invalid URL")
)

// Feed is a feed located during discovery.
type Feed struct {
	URL   string // absolute feed URL
	Title string // from feed metadata or the HTML link element
}

// Discover finds an RSS/Atom feed starting from inputURL. Strategies, in
// order: parse the URL as a feed directly, follow HTML
// <link rel="alternate"> elements, probe common feed paths on the host.
func Discover(ctx context.Context, client *fetch.Client, inputURL string) (*Feed, error) {
	parsedURL, err := url.Parse(inputURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("%w: missing scheme or host", ErrInvalidURL)
	}

	feed, body, err := tryDirectFeed(ctx, client, inputURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	if feed != nil {
		return feed, nil
	}

	for _, candidate := range extractFeedLinks(body, parsedURL) {
		verified, _, verifyErr := tryDirectFeed(ctx, client, candidate.URL)
		if verifyErr != nil || verified == nil {
			continue
		}
		if verified.Title == "" {
			verified.Title = candidate.Title
		}
		return verified, nil
	}

	probeBase := &url.URL{Scheme: parsedURL.Scheme, Host: parsedURL.Host}
	for _, path := range commonFeedPaths {
		probed, _, probeErr := tryDirectFeed(ctx, client, probeBase.String()+path)
		if probeErr == nil && probed != nil {
			return probed, nil
		}
	}

	return nil, ErrNoFeedFound
}

// tryDirectFeed fetches a URL and attempts to parse it as a feed. A parse
// failure is not an error: the raw body is returned so the caller can try it
// as HTML.
func tryDirectFeed(ctx context.Context, client *fetch.Client, feedURL string) (*Feed, []byte, error) {
	body, err := client.Fetch(ctx, feedURL)
	if err != nil {
		return nil, nil, err
	}

	parsed, parseErr := parse.Parse(body)
	if parseErr != nil {
		return nil, body, nil
	}

	return &Feed{URL: feedURL, Title: parsed.Title}, body, nil
}

// extractFeedLinks walks an HTML document collecting feed URLs from
// <link rel="alternate"> elements, resolved against baseURL.
func extractFeedLinks(htmlBody []byte, baseURL *url.URL) []Feed {
	doc, err := html.Parse(bytes.NewReader(htmlBody))
	if err != nil {
		return nil
	}

	var feeds []Feed
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "link" {
			var rel, linkType, href, title string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "rel":
					rel = attr.Val
				case "type":
					linkType = attr.Val
				case "href":
					href = attr.Val
				case "title":
					title = attr.Val
				}
			}
			if rel == "alternate" && isFeedContentType(linkType) && href != "" {
				if ref, err := url.Parse(href); err == nil {
					feeds = append(feeds, Feed{
						URL:   baseURL.ResolveReference(ref).String(),
						Title: title,
					})
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return feeds
}

func isFeedContentType(contentType string) bool {
	contentType = strings.ToLower(contentType)
	return strings.Contains(contentType, "rss") ||
		strings.Contains(contentType, "atom") ||
		strings.Contains(contentType, "xml")
}
