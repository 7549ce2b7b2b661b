// ABOUTME: Cleans raw feed item text into display-ready titles and summaries
// ABOUTME: Strips markup, decodes entities, and drops image-credit boilerplate sentences

package normalize

import (
	"regexp"
	"strings"
)

// DefaultMaxSummaryRunes is the default summary length limit in runes.
const DefaultMaxSummaryRunes = 120

// Options controls summary cleaning.
type Options struct {
	// StripImageBoilerplate drops sentences that look like photo/image
	// credits rather than article text.
	StripImageBoilerplate bool

	// MaxSummaryRunes truncates the cleaned summary, appending an ellipsis.
	// Zero or negative disables truncation.
	MaxSummaryRunes int
}

var (
	tagPattern        = regexp.MustCompile(`<[^>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)

	// A sentence containing a photo/image credit word, including its
	// terminator. Word boundaries only apply to the Latin words; the Japanese
	// terms match anywhere.
	boilerplatePattern = regexp.MustCompile(`[^.!?。]*(?:(?i:\bphoto\b|\bimage\b)|画像|写真)[^.!?。]*[.!?。]?`)

	entityReplacer = strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", `"`,
		"&#39;", "'",
	)
)

// Title trims surrounding whitespace. Case is preserved since titles are used
// for display; the deduplicator does its own case folding.
func Title(s string) string {
	return strings.TrimSpace(s)
}

// Summary cleans a raw description/summary/content string: markup tags are
// removed, the five standard HTML entities are decoded, boilerplate sentences
// are optionally dropped, and runs of whitespace collapse to a single space.
func Summary(s string, opts Options) string {
	if s == "" {
		return ""
	}

	cleaned := tagPattern.ReplaceAllString(s, "")
	cleaned = entityReplacer.Replace(cleaned)

	if opts.StripImageBoilerplate {
		cleaned = boilerplatePattern.ReplaceAllString(cleaned, "")
	}

	cleaned = whitespacePattern.ReplaceAllString(cleaned, " ")
	cleaned = strings.TrimSpace(cleaned)

	if opts.MaxSummaryRunes > 0 {
		cleaned = truncate(cleaned, opts.MaxSummaryRunes)
	}

	return cleaned
}

// truncate shortens s to at most n runes, appending an ellipsis when cut.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "…"
}
