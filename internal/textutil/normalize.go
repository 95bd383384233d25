package textutil

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	separatorReplacer = strings.NewReplacer(".", " ", "_", " ", "-", " ")
	// Drive letters ("C:\", "d:/") and leading root separators.
	rootPrefixPattern = regexp.MustCompile(`^\s*(?:[a-zA-Z]:[\\/]+|[\\/]+)`)
	spaceRunPattern   = regexp.MustCompile(`\s+`)
)

// Rule is one clean-up step. Matches of Pattern are replaced with a space.
type Rule struct {
	Source  string
	Pattern *regexp.Regexp
}

// Normalizer turns raw file names into text ready for tokenization.
type Normalizer struct {
	rules []Rule
}

// NewNormalizer compiles the clean-up patterns case-insensitively, keeping
// their order.
func NewNormalizer(patterns []string) (*Normalizer, error) {
	rules := make([]Rule, 0, len(patterns))
	for i, source := range patterns {
		if strings.TrimSpace(source) == "" {
			continue
		}
		compiled, err := regexp.Compile("(?i)" + source)
		if err != nil {
			return nil, fmt.Errorf("cleanup pattern %d %q: %w", i, source, err)
		}
		rules = append(rules, Rule{Source: source, Pattern: compiled})
	}
	return &Normalizer{rules: rules}, nil
}

// Rules returns the compiled rules in application order.
func (n *Normalizer) Rules() []Rule {
	if n == nil {
		return nil
	}
	return append([]Rule(nil), n.rules...)
}

// Apply replaces separators with spaces, strips a drive or root prefix, then
// runs every rule in order. Each rule sees the output of the previous one.
func (n *Normalizer) Apply(text string) string {
	if text == "" {
		return ""
	}
	out := separatorReplacer.Replace(text)
	out = rootPrefixPattern.ReplaceAllString(out, "")
	if n != nil {
		for _, rule := range n.rules {
			out = rule.Pattern.ReplaceAllString(out, " ")
		}
	}
	return strings.TrimSpace(spaceRunPattern.ReplaceAllString(out, " "))
}
