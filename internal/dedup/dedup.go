// ABOUTME: Near-duplicate article removal using normalized title similarity
// ABOUTME: Greedy first-seen-wins pass with Levenshtein edit distance scoring

package dedup

import (
	"strings"
	"unicode"

	"github.com/harper/newsticker/internal/models"
)

// Threshold is the similarity score above which two titles are considered the
// same story. Strictly greater-than: a score of exactly 0.8 is kept.
const Threshold = 0.8

// Dedupe removes near-duplicate articles, preserving input order. The pass is
// greedy and first-seen-wins: each article is compared against the titles
// already accepted, and once accepted its normalized title joins the
// comparison set before the next candidate is tested.
//
// Cost is O(k²·L²) for k articles of title length L. That is acceptable for
// per-refresh batches of at most a few hundred items; revisit before feeding
// larger batches through here.
func Dedupe(articles []models.Article) []models.Article {
	accepted := make([]string, 0, len(articles))
	kept := make([]models.Article, 0, len(articles))

	for _, article := range articles {
		title := NormalizeTitle(article.Title)
		if isDuplicate(title, accepted) {
			continue
		}
		accepted = append(accepted, title)
		kept = append(kept, article)
	}

	return kept
}

func isDuplicate(title string, accepted []string) bool {
	for _, seen := range accepted {
		if Similarity(title, seen) > Threshold {
			return true
		}
	}
	return false
}

// NormalizeTitle lowercases a title and strips every character that is not a
// letter, digit, or whitespace, then trims. The result is the title's identity
// for near-duplicate comparison.
func NormalizeTitle(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Similarity scores two strings as 1 - distance/maxLen over their full rune
// lengths. Two empty strings score 1.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	maxLen := len(ra)
	if len(rb) > maxLen {
		maxLen = len(rb)
	}
	if maxLen == 0 {
		return 1
	}
	return 1 - float64(levenshtein(ra, rb))/float64(maxLen)
}

// levenshtein computes the classic single-character insert/delete/substitute
// edit distance with a two-row dynamic program.
func levenshtein(a, b []rune) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}
