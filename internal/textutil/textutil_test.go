package textutil

import (
	"reflect"
	"testing"
)

func TestNormalizerApply(t *testing.T) {
	n, err := NewNormalizer([]string{`\b\d{3,4}x\d{3,4}\b`, `\b\d{1,2}k\b`, `\bvr\b`})
	if err != nil {
		t.Fatalf("NewNormalizer: %v", err)
	}

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"separators", "Alice_and.Bob-Scene", "Alice and Bob Scene"},
		{"drive prefix", `C:\Videos\Alice`, `Videos\Alice`},
		{"root prefix", "/srv/alice", "srv/alice"},
		{"cleanup rules", "CzechVR_741_Alice_8K_180x180", "CzechVR 741 Alice"},
		{"case insensitive", "Alice VR 6k", "Alice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.Apply(tt.in); got != tt.want {
				t.Fatalf("Apply(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizerRuleOrderMatters(t *testing.T) {
	// The first rule removes "x" joins, so the second rule no longer sees "180x180".
	first, err := NewNormalizer([]string{`x`, `\b180x180\b`})
	if err != nil {
		t.Fatalf("NewNormalizer: %v", err)
	}
	second, err := NewNormalizer([]string{`\b180x180\b`, `x`})
	if err != nil {
		t.Fatalf("NewNormalizer: %v", err)
	}
	if got := first.Apply("a 180x180"); got != "a 180 180" {
		t.Fatalf("unexpected result %q", got)
	}
	if got := second.Apply("a 180x180"); got != "a" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestNewNormalizerRejectsInvalidPattern(t *testing.T) {
	if _, err := NewNormalizer([]string{`(`}); err == nil {
		t.Fatal("expected error for invalid pattern")
	}
}

func TestNewNormalizerSkipsBlankPatterns(t *testing.T) {
	n, err := NewNormalizer([]string{"", "  ", `\bvr\b`})
	if err != nil {
		t.Fatalf("NewNormalizer: %v", err)
	}
	if len(n.Rules()) != 1 {
		t.Fatalf("expected 1 rule, got %d", len(n.Rules()))
	}
}

func TestContainsToken(t *testing.T) {
	tests := []struct {
		haystack string
		needle   string
		want     bool
	}{
		{"CzechVR - Alice - 2024.03.10", "alice", true},
		{"Alicea", "alice", false},
		{"xAlice", "alice", false},
		{"Alice", "ALICE", true},
		{"", "alice", false},
		{"alice", "", false},
	}
	for _, tt := range tests {
		if got := ContainsToken(tt.haystack, tt.needle); got != tt.want {
			t.Errorf("ContainsToken(%q, %q) = %v, want %v", tt.haystack, tt.needle, got, tt.want)
		}
	}
}

func TestProjections(t *testing.T) {
	if got := AlphaNumeric("CzechVR - Alice - 2024.03.10"); got != "CzechVRAlice20240310" {
		t.Fatalf("AlphaNumeric = %q", got)
	}
	if got := Digits("CzechVR - Alice - 2024.03.10"); got != "20240310" {
		t.Fatalf("Digits = %q", got)
	}
	if !IsNumeric("741") || IsNumeric("8k") || IsNumeric("") {
		t.Fatal("IsNumeric returned unexpected result")
	}
	if !ContainsFold("CzechVR", "czechvr") || ContainsFold("CzechVR", "") {
		t.Fatal("ContainsFold returned unexpected result")
	}
	if got := Tokenize("  a  b "); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("Tokenize = %v", got)
	}
}
