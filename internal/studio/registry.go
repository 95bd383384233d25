package studio

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"funmatch/internal/textutil"
)

// Studio is one named producer and its detection patterns. Patterns are
// case-insensitive regular expressions.
type Studio struct {
	Name     string   `json:"name"`
	Patterns []string `json:"patterns"`
}

// Detection is the outcome of a successful Registry.Detect.
type Detection struct {
	Studio  string
	Pattern string
	// Number is a numeric token directly adjacent to the match, such as a
	// studio scene id. NumberStart is its byte offset in the searched text.
	Number      string
	NumberStart int
}

type compiledPattern struct {
	source string
	any    *regexp.Regexp
	prefix *regexp.Regexp
	token  *regexp.Regexp
}

type entry struct {
	name     string
	patterns []compiledPattern
}

var (
	numberAfter  = regexp.MustCompile(`^[\s._-]*(\d+)(?:\D|$)`)
	numberBefore = regexp.MustCompile(`(?:^|\D)(\d+)[\s._-]*$`)
	leadingLabel = regexp.MustCompile(`^([A-Za-z0-9]+)[\s._-]`)
)

// Registry is an ordered list of studios. Detection is first-match-wins in
// list order, so the order is kept exactly as loaded or learned.
type Registry struct {
	entries []entry
}

// NewRegistry compiles studios in order. Patterns that fail to compile are
// skipped and reported in the returned error; the registry is still usable.
func NewRegistry(studios []Studio) (*Registry, error) {
	r := &Registry{}
	var errs []error
	for _, s := range studios {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		for _, pattern := range s.Patterns {
			if _, err := r.add(name, pattern); err != nil {
				errs = append(errs, err)
			}
		}
		if r.index(name) < 0 {
			r.entries = append(r.entries, entry{name: name})
		}
	}
	return r, errors.Join(errs...)
}

// Empty returns a registry with no studios.
func Empty() *Registry {
	return &Registry{}
}

// Len returns the number of studios.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.entries)
}

// Studios returns a copy of the registry contents in order.
func (r *Registry) Studios() []Studio {
	if r == nil {
		return nil
	}
	out := make([]Studio, 0, len(r.entries))
	for _, e := range r.entries {
		patterns := make([]string, 0, len(e.patterns))
		for _, p := range e.patterns {
			patterns = append(patterns, p.source)
		}
		out = append(out, Studio{Name: e.name, Patterns: patterns})
	}
	return out
}

// Detect scans text against every studio in order and returns the first
// studio with any matching pattern.
func (r *Registry) Detect(text string) (Detection, bool) {
	if r == nil || text == "" {
		return Detection{}, false
	}
	for _, e := range r.entries {
		for _, p := range e.patterns {
			loc := p.any.FindStringIndex(text)
			if loc == nil {
				continue
			}
			detection := Detection{Studio: e.name, Pattern: p.source}
			if m := numberAfter.FindStringSubmatchIndex(text[loc[1]:]); m != nil {
				detection.NumberStart = loc[1] + m[2]
				detection.Number = text[detection.NumberStart : loc[1]+m[3]]
			} else if m := numberBefore.FindStringSubmatchIndex(text[:loc[0]]); m != nil {
				detection.NumberStart = m[2]
				detection.Number = text[m[2]:m[3]]
			}
			return detection, true
		}
	}
	return Detection{}, false
}

// Infer guesses the studio label of a candidate name. Known patterns are tried
// as a name prefix or as a token delimited by space, hyphen, or underscore.
// Without a known match the leading alphanumeric run before a separator is
// returned. An empty string means no guess.
func (r *Registry) Infer(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if r != nil {
		for _, e := range r.entries {
			for _, p := range e.patterns {
				if p.prefix.MatchString(name) || p.token.MatchString(name) {
					return e.name
				}
			}
		}
	}
	if m := leadingLabel.FindStringSubmatch(name); m != nil && !textutil.IsNumeric(m[1]) {
		return m[1]
	}
	return ""
}

// Learn appends pattern under name, creating the studio at the end of the
// list when it is new. It reports false when the pattern was already present.
func (r *Registry) Learn(name, pattern string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, errors.New("studio name cannot be empty")
	}
	if strings.TrimSpace(pattern) == "" {
		return false, errors.New("studio pattern cannot be empty")
	}
	return r.add(name, pattern)
}

func (r *Registry) add(name, pattern string) (bool, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return false, nil
	}
	idx := r.index(name)
	if idx >= 0 {
		for _, existing := range r.entries[idx].patterns {
			if existing.source == pattern {
				return false, nil
			}
		}
	}
	compiled, err := compilePattern(pattern)
	if err != nil {
		return false, fmt.Errorf("studio %q pattern %q: %w", name, pattern, err)
	}
	if idx < 0 {
		r.entries = append(r.entries, entry{name: name})
		idx = len(r.entries) - 1
	}
	r.entries[idx].patterns = append(r.entries[idx].patterns, compiled)
	return true, nil
}

func (r *Registry) index(name string) int {
	folded := textutil.Fold(name)
	for i, e := range r.entries {
		if textutil.Fold(e.name) == folded {
			return i
		}
	}
	return -1
}

func compilePattern(source string) (compiledPattern, error) {
	anyMatch, err := regexp.Compile("(?i)" + source)
	if err != nil {
		return compiledPattern{}, err
	}
	return compiledPattern{
		source: source,
		any:    anyMatch,
		prefix: regexp.MustCompile(`(?i)^(?:` + source + `)`),
		token:  regexp.MustCompile(`(?i)(?:^|[\s_-])(?:` + source + `)(?:[\s_-]|$)`),
	}, nil
}
