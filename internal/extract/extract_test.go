package extract_test

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"funmatch/internal/config"
	"funmatch/internal/extract"
	"funmatch/internal/studio"
)

func newExtractor(t *testing.T) (*extract.Extractor, config.Config) {
	t.Helper()
	cfg := config.Default()
	ex, err := extract.NewFromConfig(&cfg, studio.Default())
	if err != nil {
		t.Fatalf("NewFromConfig: %v", err)
	}
	return ex, cfg
}

func TestExtractScenario(t *testing.T) {
	ex, _ := newExtractor(t)

	result := ex.Extract("CzechVR_741_Alice_2024-03-10_8K_180x180.mp4", "")

	if result.Studio != "CzechVR" {
		t.Fatalf("expected studio CzechVR, got %q", result.Studio)
	}
	if result.DateCompact != "240310" {
		t.Fatalf("expected date 240310, got %q", result.DateCompact)
	}
	if result.Date == nil || result.Date.Year != 2024 || result.Date.Month != 3 || result.Date.Day != 10 {
		t.Fatalf("unexpected raw date %+v", result.Date)
	}
	for _, want := range []string{"741", "Alice"} {
		if !slices.Contains(result.Keywords, want) {
			t.Fatalf("expected keyword %q in %v", want, result.Keywords)
		}
	}
	for _, banned := range []string{"2024", "8K", "180x180", "180", "mp4", "CzechVR"} {
		for _, kw := range result.Keywords {
			if strings.EqualFold(kw, banned) {
				t.Fatalf("unexpected keyword %q in %v", kw, result.Keywords)
			}
		}
	}
}

func TestExtractStudioAdjacentNumber(t *testing.T) {
	ex, _ := newExtractor(t)

	tests := []struct {
		name     string
		text     string
		keywords []string
		date     string
	}{
		{"date right after studio", "CzechVR_2024-03-10_Alice", []string{"Alice"}, "240310"},
		{"compact date right after studio", "CzechVR 20240310 Alice", []string{"Alice"}, "240310"},
		{"single digit dropped", "CzechVR 5 Alice", []string{"Alice"}, ""},
		{"ignored number dropped", "CzechVR 1080 Alice", []string{"Alice"}, ""},
		{"scene id kept", "CzechVR 741 Alice", []string{"741", "Alice"}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ex.Extract(tt.text, "")
			if result.Studio != "CzechVR" {
				t.Fatalf("expected studio CzechVR, got %q", result.Studio)
			}
			if !reflect.DeepEqual(result.Keywords, tt.keywords) {
				t.Fatalf("Extract(%q) keywords = %v, want %v", tt.text, result.Keywords, tt.keywords)
			}
			if result.DateCompact != tt.date {
				t.Fatalf("Extract(%q) date = %q, want %q", tt.text, result.DateCompact, tt.date)
			}
		})
	}
}

func TestExtractUsesParentFolder(t *testing.T) {
	ex, _ := newExtractor(t)

	result := ex.Extract("Alice_Morning", "/videos/CzechVR/Alice_Morning.mp4")
	if result.Studio != "CzechVR" {
		t.Fatalf("expected studio from parent folder, got %q", result.Studio)
	}
	if !reflect.DeepEqual(result.Keywords, []string{"Alice", "Morning"}) {
		t.Fatalf("unexpected keywords %v", result.Keywords)
	}
}

func TestExtractFilterProperties(t *testing.T) {
	ex, cfg := newExtractor(t)
	inputs := []string{
		"The_Girl_and_Her_Friend_at_the_Beach_2_ab_1080p",
		"xx 7 42 360 1920 ok Alice",
		"Featuring Bob with Carol vol 3",
		"a b c de fgh",
	}
	stop := map[string]bool{}
	for _, w := range cfg.Matching.StopWords {
		stop[w] = true
	}
	ignored := map[string]bool{}
	for _, n := range cfg.Matching.IgnoredNumbers {
		ignored[n] = true
	}

	for _, input := range inputs {
		result := ex.ExtractQuery(input)
		seen := map[string]bool{}
		for _, kw := range result.Keywords {
			lower := strings.ToLower(kw)
			if stop[lower] {
				t.Fatalf("%q: stop word %q kept", input, kw)
			}
			numeric := strings.Trim(kw, "0123456789") == ""
			if numeric && (ignored[kw] || len(kw) == 1) {
				t.Fatalf("%q: ignored number %q kept", input, kw)
			}
			if !numeric && len(kw) <= 2 {
				t.Fatalf("%q: short token %q kept", input, kw)
			}
			if seen[lower] {
				t.Fatalf("%q: duplicate keyword %q", input, kw)
			}
			seen[lower] = true
		}
	}

	got := ex.ExtractQuery("xx 7 42 360 1920 ok Alice alice").Keywords
	if !reflect.DeepEqual(got, []string{"42", "Alice"}) {
		t.Fatalf("unexpected keywords %v", got)
	}
}

func TestExtractEmptyResult(t *testing.T) {
	ex, _ := newExtractor(t)

	result := ex.ExtractQuery("VR_8K_180x180")
	if !result.Empty() {
		t.Fatalf("expected empty result, got %+v", result)
	}
	if !ex.ExtractQuery("").Empty() {
		t.Fatal("expected empty result for empty input")
	}
	if ex.ExtractQuery("2023.01.05").Empty() {
		t.Fatal("a date alone is a usable result")
	}
}

func TestWithKeywordsUnionsWithoutMutating(t *testing.T) {
	ex, _ := newExtractor(t)
	base := ex.ExtractQuery("Alice Beach")

	refined := base.WithKeywords("sunset", "alice", "", "Bob")
	if !reflect.DeepEqual(refined.Keywords, []string{"Alice", "Beach", "sunset", "Bob"}) {
		t.Fatalf("unexpected refined keywords %v", refined.Keywords)
	}
	if !reflect.DeepEqual(base.Keywords, []string{"Alice", "Beach"}) {
		t.Fatalf("base result mutated: %v", base.Keywords)
	}
}

func TestParseDatePriority(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		compact string
		ok      bool
	}{
		{"long form", "Alice 2024-03-10", "240310", true},
		{"dotted long form", "Alice.2024.03.10", "240310", true},
		{"long form beats earlier short form", "21-05-06 Alice 2024-03-10", "240310", true},
		{"short form", "Alice 23.11.02 Bob", "231102", true},
		{"compact", "Alice_20220704_Bob", "220704", true},
		{"short form beats compact", "20220704 and 19-01-02", "190102", true},
		{"invalid month skipped", "2024-13-10 2023-02-28", "230228", true},
		{"long digit run is not a date", "1202407041", "", false},
		{"no date", "Alice Beach", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, ok := extract.ParseDate(tt.text)
			if ok != tt.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && date.Compact() != tt.compact {
				t.Fatalf("ParseDate(%q) = %s, want %s", tt.text, date.Compact(), tt.compact)
			}
		})
	}
}
