// ABOUTME: Tests for the multi-source refresh cycle
// ABOUTME: Serves feeds from httptest and checks partial failure, ranking, and caps

package aggregate

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/harper/newsticker/internal/models"
)

type feedItem struct {
	title   string
	link    string
	pubDate time.Time
}

func rssFeed(feedTitle string, items []feedItem) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><rss version="2.0"><channel>`)
	fmt.Fprintf(&b, "<title>%s</title>", feedTitle)
	for _, item := range items {
		b.WriteString("<item>")
		fmt.Fprintf(&b, "<title>%s</title>", item.title)
		fmt.Fprintf(&b, "<link>%s</link>", item.link)
		if !item.pubDate.IsZero() {
			fmt.Fprintf(&b, "<pubDate>%s</pubDate>", item.pubDate.Format(time.RFC1123Z))
		}
		b.WriteString("</item>")
	}
	b.WriteString("</channel></rss>")
	return b.String()
}

func feedServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestRefresh_PartialFailure(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	good1 := feedServer(t, rssFeed("Good One", []feedItem{
		{"Alpha Story", "https://one.example/a", now.Add(-time.Hour)},
		{"Beta Story", "https://one.example/b", now.Add(-2 * time.Hour)},
	}))
	bad := failingServer(t)
	good2 := feedServer(t, rssFeed("Good Two", []feedItem{
		{"Gamma Story", "https://two.example/g", now.Add(-30 * time.Minute)},
	}))

	agg := New(Config{})
	result := agg.Refresh(context.Background(), []models.Source{
		{Name: "One", URL: good1.URL, Enabled: true},
		{Name: "Broken", URL: bad.URL, Enabled: true},
		{Name: "Two", URL: good2.URL, Enabled: true},
	})

	if !result.OK() {
		t.Error("expected OK with two of three sources succeeding")
	}
	if len(result.SourceErrors) != 1 {
		t.Fatalf("expected exactly 1 source error, got %d", len(result.SourceErrors))
	}
	if result.SourceErrors[0].Source != "Broken" {
		t.Errorf("expected error attributed to 'Broken', got %q", result.SourceErrors[0].Source)
	}
	if len(result.Articles) != 3 {
		t.Fatalf("expected 3 articles from the surviving sources, got %d", len(result.Articles))
	}
}

func TestRefresh_RankedNewestFirst(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	server := feedServer(t, rssFeed("Feed", []feedItem{
		{"Oldest", "https://x/old", now.Add(-3 * time.Hour)},
		{"Newest", "https://x/new", now.Add(-time.Minute)},
		{"Middle", "https://x/mid", now.Add(-time.Hour)},
	}))

	agg := New(Config{})
	result := agg.Refresh(context.Background(), []models.Source{
		{Name: "Feed", URL: server.URL, Enabled: true},
	})

	want := []string{"Newest", "Middle", "Oldest"}
	if len(result.Articles) != len(want) {
		t.Fatalf("expected %d articles, got %d", len(want), len(result.Articles))
	}
	for i, title := range want {
		if result.Articles[i].Title != title {
			t.Errorf("position %d: expected %q, got %q", i, title, result.Articles[i].Title)
		}
	}
}

func TestRefresh_TiesKeepSourceOrder(t *testing.T) {
	shared := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	first := feedServer(t, rssFeed("First", []feedItem{
		{"From First Source", "https://one.example/tie", shared},
	}))
	second := feedServer(t, rssFeed("Second", []feedItem{
		{"From Second Source", "https://two.example/tie", shared},
	}))

	agg := New(Config{})
	result := agg.Refresh(context.Background(), []models.Source{
		{Name: "First", URL: first.URL, Enabled: true},
		{Name: "Second", URL: second.URL, Enabled: true},
	})

	if len(result.Articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(result.Articles))
	}
	if result.Articles[0].Title != "From First Source" {
		t.Errorf("expected source order preserved on timestamp ties, got %q first", result.Articles[0].Title)
	}
}

func TestRefresh_CrossSourceDedup(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	first := feedServer(t, rssFeed("First", []feedItem{
		{"Breaking: Big News Today", "https://one.example/big", now.Add(-time.Hour)},
	}))
	second := feedServer(t, rssFeed("Second", []feedItem{
		{"Breaking Big News Today!", "https://two.example/big", now},
	}))

	agg := New(Config{})
	result := agg.Refresh(context.Background(), []models.Source{
		{Name: "First", URL: first.URL, Enabled: true},
		{Name: "Second", URL: second.URL, Enabled: true},
	})

	if len(result.Articles) != 1 {
		t.Fatalf("expected near-duplicates collapsed to 1 article, got %d", len(result.Articles))
	}
	if result.Articles[0].SourceName != "First" {
		t.Errorf("expected the earlier source's copy to win, got %q", result.Articles[0].SourceName)
	}
}

func TestRefresh_Truncates(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	items := make([]feedItem, 10)
	for i := range items {
		items[i] = feedItem{
			title:   fmt.Sprintf("Distinct Headline Number %d", i),
			link:    fmt.Sprintf("https://x/%d", i),
			pubDate: now.Add(-time.Duration(i) * time.Minute),
		}
	}
	server := feedServer(t, rssFeed("Feed", items))

	agg := New(Config{MaxArticles: 4})
	result := agg.Refresh(context.Background(), []models.Source{
		{Name: "Feed", URL: server.URL, Enabled: true},
	})

	if len(result.Articles) != 4 {
		t.Fatalf("expected output capped at 4, got %d", len(result.Articles))
	}
	if result.Articles[0].Title != "Distinct Headline Number 0" {
		t.Errorf("expected the newest article to survive truncation, got %q", result.Articles[0].Title)
	}
}

func TestRefresh_AllSourcesFailed(t *testing.T) {
	bad1 := failingServer(t)
	bad2 := failingServer(t)

	agg := New(Config{})
	result := agg.Refresh(context.Background(), []models.Source{
		{Name: "A", URL: bad1.URL, Enabled: true},
		{Name: "B", URL: bad2.URL, Enabled: true},
	})

	if result.OK() {
		t.Error("expected not OK when every source failed")
	}
	if len(result.SourceErrors) != 2 {
		t.Errorf("expected 2 source errors, got %d", len(result.SourceErrors))
	}
	if len(result.Articles) != 0 {
		t.Errorf("expected no articles, got %d", len(result.Articles))
	}
}

func TestRefresh_ZeroSourcesIsOK(t *testing.T) {
	agg := New(Config{})
	result := agg.Refresh(context.Background(), nil)
	if !result.OK() {
		t.Error("expected a refresh over zero sources to be OK")
	}
	if len(result.Articles) != 0 {
		t.Errorf("expected no articles, got %d", len(result.Articles))
	}
}

func TestRefresh_SkipsDisabledSources(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	enabled := feedServer(t, rssFeed("Enabled", []feedItem{
		{"Visible Story", "https://on.example/a", now},
	}))
	disabled := failingServer(t)

	agg := New(Config{})
	result := agg.Refresh(context.Background(), []models.Source{
		{Name: "On", URL: enabled.URL, Enabled: true},
		{Name: "Off", URL: disabled.URL, Enabled: false},
	})

	if len(result.SourceErrors) != 0 {
		t.Errorf("disabled source was fetched: %v", result.SourceErrors)
	}
	if len(result.Articles) != 1 {
		t.Errorf("expected 1 article, got %d", len(result.Articles))
	}
}

func TestFetchError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("boom")
	fe := FetchError{Source: "S", Err: inner}
	if fe.Unwrap() != inner {
		t.Error("expected Unwrap to return the inner error")
	}
	if !strings.Contains(fe.Error(), "S") || !strings.Contains(fe.Error(), "boom") {
		t.Errorf("unexpected error string %q", fe.Error())
	}
}
