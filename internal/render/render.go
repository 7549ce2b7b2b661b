// ABOUTME: Terminal rendering of articles via markdown conversion and glamour
// ABOUTME: Detects HTML content and converts it before styling for display

package render

import (
	"fmt"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/charmbracelet/glamour"

	"github.com/harper/newsticker/internal/models"
)

// htmlTagPattern matches common HTML tags, used as an HTML heuristic.
var htmlTagPattern = regexp.MustCompile(`<\s*(p|div|span|a|br|img|h[1-6]|ul|ol|li|table|tr|td|th|strong|em|b|i|code|pre|blockquote)[^>]*>`)

// isHTML checks whether content appears to be HTML rather than plain text.
func isHTML(content string) bool {
	if strings.Contains(content, "<!DOCTYPE") || strings.Contains(content, "<html") {
		return true
	}
	return htmlTagPattern.MatchString(content)
}

// ToMarkdown converts HTML content to markdown. Plain text passes through
// unchanged, as does anything the converter chokes on.
func ToMarkdown(content string) string {
	if content == "" || !isHTML(content) {
		return content
	}

	markdown, err := htmltomarkdown.ConvertString(content)
	if err != nil {
		return content
	}

	return strings.TrimSpace(markdown)
}

// ArticleMarkdown builds a markdown document for one article: title heading,
// source/author/date metadata, body, and link.
func ArticleMarkdown(a models.Article) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", a.Title)

	if a.SourceName != "" {
		fmt.Fprintf(&b, "*%s*", a.SourceName)
		if a.AuthorName != "" {
			fmt.Fprintf(&b, " — %s", a.AuthorName)
		}
		b.WriteString("\n\n")
	}

	if !a.PublishedAt.IsZero() {
		fmt.Fprintf(&b, "Published: %s\n\n", a.PublishedAt.Format("Mon, 02 Jan 2006 15:04 MST"))
	}

	if a.Content != "" {
		b.WriteString(ToMarkdown(a.Content))
		b.WriteString("\n\n")
	} else if a.Summary != "" {
		b.WriteString(a.Summary)
		b.WriteString("\n\n")
	}

	if a.Link != "" {
		fmt.Fprintf(&b, "[%s](%s)\n", a.Link, a.Link)
	}

	return b.String()
}

// Terminal styles markdown for terminal display. Callers fall back to the
// plain markdown when rendering fails.
func Terminal(markdown string) (string, error) {
	return glamour.Render(markdown, "dark")
}
