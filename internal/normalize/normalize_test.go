// ABOUTME: Tests for title and summary cleaning
// ABOUTME: Covers tag stripping, entity decoding, boilerplate removal, and truncation

package normalize

import "testing"

func TestTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Breaking News  ", "Breaking News"},
		{"\tTabbed\n", "Tabbed"},
		{"MiXeD Case Stays", "MiXeD Case Stays"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Title(tt.input); got != tt.want {
			t.Errorf("Title(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestSummary_StripsTags(t *testing.T) {
	got := Summary("<p>Hello <b>world</b></p>", Options{})
	if got != "Hello world" {
		t.Errorf("expected 'Hello world', got %q", got)
	}
}

func TestSummary_DecodesEntities(t *testing.T) {
	got := Summary("a &lt;tag&gt; &amp; a &quot;quote&quot; it&#39;s", Options{})
	want := `a <tag> & a "quote" it's`
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSummary_CollapsesWhitespace(t *testing.T) {
	got := Summary("  too   many\n\n spaces\t here ", Options{})
	if got != "too many spaces here" {
		t.Errorf("expected 'too many spaces here', got %q", got)
	}
}

func TestSummary_StripsImageBoilerplate(t *testing.T) {
	opts := Options{StripImageBoilerplate: true}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "english photo credit sentence dropped",
			input: "Big story happened today. Photo by Jane Doe. More details followed.",
			want:  "Big story happened today. More details followed.",
		},
		{
			name:  "case insensitive image",
			input: "Something occurred. IMAGE courtesy of the agency. The end.",
			want:  "Something occurred. The end.",
		},
		{
			name:  "japanese image credit dropped",
			input: "新製品が発表された。画像はメーカー提供。発売は来月。",
			want:  "新製品が発表された。発売は来月。",
		},
		{
			name:  "word boundary respected",
			input: "The photographer won an award.",
			want:  "The photographer won an award.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summary(tt.input, opts); got != tt.want {
				t.Errorf("Summary(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSummary_BoilerplateKeptWhenDisabled(t *testing.T) {
	input := "Big story. Photo by Jane."
	got := Summary(input, Options{})
	if got != "Big story. Photo by Jane." {
		t.Errorf("expected boilerplate kept, got %q", got)
	}
}

func TestSummary_Truncates(t *testing.T) {
	got := Summary("abcdefghij", Options{MaxSummaryRunes: 5})
	if got != "abcde…" {
		t.Errorf("expected 'abcde…', got %q", got)
	}

	// Runes, not bytes
	got = Summary("こんにちは世界", Options{MaxSummaryRunes: 5})
	if got != "こんにちは…" {
		t.Errorf("expected 'こんにちは…', got %q", got)
	}

	// No cut when it fits
	got = Summary("short", Options{MaxSummaryRunes: 10})
	if got != "short" {
		t.Errorf("expected 'short', got %q", got)
	}
}

func TestSummary_Empty(t *testing.T) {
	if got := Summary("", Options{StripImageBoilerplate: true, MaxSummaryRunes: 120}); got != "" {
		t.Errorf("expected empty summary, got %q", got)
	}
}
