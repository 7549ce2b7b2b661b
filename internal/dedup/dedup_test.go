// ABOUTME: Tests for near-duplicate removal and title similarity scoring
// ABOUTME: Exercises the threshold boundary, ordering, and normalization rules

package dedup

import (
	"strings"
	"testing"

	"github.com/harper/newsticker/internal/models"
)

func titled(titles ...string) []models.Article {
	articles := make([]models.Article, len(titles))
	for i, title := range titles {
		articles[i] = models.Article{Title: title, Link: "https://example.com/" + title}
	}
	return articles
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Breaking: Big News Today", "breaking big news today"},
		{"Breaking Big News Today!", "breaking big news today"},
		{"  Spaced  Out  ", "spaced  out"},
		{"UPPER lower 123", "upper lower 123"},
		{"日本語のタイトル", "日本語のタイトル"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTitle(tt.input); got != tt.want {
			t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		a, b string
		want float64
	}{
		{"abc", "abc", 1},
		{"", "", 1},
		{"abc", "", 0},
		{"abcd", "abcx", 0.75},
		{"kitten", "sitting", 1 - 3.0/7.0},
	}
	for _, tt := range tests {
		if got := Similarity(tt.a, tt.b); got != tt.want {
			t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSimilarity_Symmetric(t *testing.T) {
	a, b := "breaking big news today", "breaking news today"
	if Similarity(a, b) != Similarity(b, a) {
		t.Errorf("similarity is not symmetric for %q / %q", a, b)
	}
}

// The threshold is strictly greater-than: exactly 0.8 similar survives.
func TestDedupe_ThresholdBoundary(t *testing.T) {
	base := strings.Repeat("a", 100)
	edit := func(n int) string {
		return strings.Repeat("b", n) + strings.Repeat("a", 100-n)
	}

	tests := []struct {
		name     string
		other    string
		wantKept int
	}{
		{"similarity 0.79 kept", edit(21), 2},
		{"similarity 0.80 kept", edit(20), 2},
		{"similarity 0.81 dropped", edit(19), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kept := Dedupe(titled(base, tt.other))
			if len(kept) != tt.wantKept {
				t.Errorf("expected %d article(s) kept, got %d", tt.wantKept, len(kept))
			}
		})
	}
}

func TestDedupe_FirstSeenWins(t *testing.T) {
	articles := titled(
		"Breaking: Big News Today",
		"Unrelated Story About Cats",
		"Breaking Big News Today!",
	)

	kept := Dedupe(articles)
	if len(kept) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(kept))
	}
	if kept[0].Title != "Breaking: Big News Today" {
		t.Errorf("expected the earlier duplicate to win, got %q", kept[0].Title)
	}
	if kept[1].Title != "Unrelated Story About Cats" {
		t.Errorf("expected input order preserved, got %q", kept[1].Title)
	}
}

func TestDedupe_Idempotent(t *testing.T) {
	articles := titled(
		"Breaking: Big News Today",
		"Breaking Big News Today!",
		"Completely Different Headline",
		"Another One Entirely",
	)

	once := Dedupe(articles)
	twice := Dedupe(once)
	if len(once) != len(twice) {
		t.Fatalf("second pass changed the result: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if once[i].Title != twice[i].Title {
			t.Errorf("article %d changed between passes: %q vs %q", i, once[i].Title, twice[i].Title)
		}
	}
}

func TestDedupe_Empty(t *testing.T) {
	if kept := Dedupe(nil); len(kept) != 0 {
		t.Errorf("expected empty result for nil input, got %d", len(kept))
	}
}

func TestDedupe_IdenticalTitles(t *testing.T) {
	kept := Dedupe(titled("Same Story", "Same Story", "Same Story"))
	if len(kept) != 1 {
		t.Errorf("expected 1 article, got %d", len(kept))
	}
}
