package extract

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"funmatch/internal/config"
	"funmatch/internal/studio"
	"funmatch/internal/textutil"
)

// Result is the metadata pulled from one name. Treat it as immutable; use
// WithKeywords to derive a refined copy.
type Result struct {
	Keywords    []string
	Studio      string
	DateCompact string
	Date        *Date
}

// Empty reports whether nothing usable was extracted.
func (r Result) Empty() bool {
	return len(r.Keywords) == 0 && r.DateCompact == ""
}

// WithKeywords returns a copy of r with tokens unioned onto the keyword set.
// Existing keywords keep their position; case-insensitive duplicates are dropped.
func (r Result) WithKeywords(tokens ...string) Result {
	out := r
	out.Keywords = appendUnique(append([]string(nil), r.Keywords...), tokens...)
	return out
}

// Options carries the token filters.
type Options struct {
	StopWords        []string
	IgnoredNumbers   []string
	MinKeywordLength int
}

// Extractor turns raw names into keywords, a studio hint, and a date.
type Extractor struct {
	normalizer *textutil.Normalizer
	registry   *studio.Registry
	stopWords  map[string]struct{}
	ignored    map[string]struct{}
	minLength  int
}

// New builds an Extractor. The registry is read on every call, so patterns
// learned later are picked up without rebuilding.
func New(normalizer *textutil.Normalizer, registry *studio.Registry, opts Options) *Extractor {
	minLength := opts.MinKeywordLength
	if minLength <= 0 {
		minLength = 3
	}
	return &Extractor{
		normalizer: normalizer,
		registry:   registry,
		stopWords:  foldSet(opts.StopWords),
		ignored:    foldSet(opts.IgnoredNumbers),
		minLength:  minLength,
	}
}

// NewFromConfig compiles the configured clean-up rules and builds an Extractor.
func NewFromConfig(cfg *config.Config, registry *studio.Registry) (*Extractor, error) {
	normalizer, err := textutil.NewNormalizer(cfg.Matching.CleanupPatterns)
	if err != nil {
		return nil, err
	}
	return New(normalizer, registry, Options{
		StopWords:        cfg.Matching.StopWords,
		IgnoredNumbers:   cfg.Matching.IgnoredNumbers,
		MinKeywordLength: cfg.Matching.MinKeywordLength,
	}), nil
}

// ExtractQuery treats free text as a video name with no path.
func (e *Extractor) ExtractQuery(text string) Result {
	return e.Extract(text, "")
}

// Extract analyzes a display name and, when fullPath is set, its parent folder.
func (e *Extractor) Extract(displayName, fullPath string) Result {
	text := combine(parentFolder(fullPath), displayName)
	var result Result
	var keywords []string

	date, hasDate := ParseDate(text)

	if e.registry != nil {
		if detection, ok := e.registry.Detect(text); ok {
			result.Studio = detection.Studio
			if e.keepNumber(detection, date, hasDate) {
				keywords = append(keywords, detection.Number)
			}
		}
	}

	if hasDate {
		result.Date = &date
		result.DateCompact = date.Compact()
		// Date digits must not leak into keywords.
		text = text[:date.Start] + " " + text[date.End:]
	}

	for _, token := range textutil.Tokenize(e.normalizer.Apply(text)) {
		if e.keep(token, result.Studio) {
			keywords = append(keywords, token)
		}
	}
	result.Keywords = appendUnique(nil, keywords...)
	return result
}

func (e *Extractor) keep(token, studioName string) bool {
	if token == "" {
		return false
	}
	folded := textutil.Fold(token)
	if studioName != "" {
		name := textutil.Fold(studioName)
		if strings.Contains(name, folded) || strings.Contains(folded, name) {
			return false
		}
	}
	if _, stop := e.stopWords[folded]; stop {
		return false
	}
	if textutil.IsNumeric(token) {
		return len(token) > 1 && !e.isIgnored(token)
	}
	return utf8.RuneCountInString(token) >= e.minLength
}

// keepNumber applies the numeric keyword rules to a studio's adjacent number
// and drops it when it is part of the detected date.
func (e *Extractor) keepNumber(d studio.Detection, date Date, hasDate bool) bool {
	if len(d.Number) <= 1 || e.isIgnored(d.Number) {
		return false
	}
	if hasDate && d.NumberStart >= date.Start && d.NumberStart < date.End {
		return false
	}
	return true
}

func (e *Extractor) isIgnored(number string) bool {
	_, ok := e.ignored[number]
	return ok
}

func parentFolder(fullPath string) string {
	if strings.TrimSpace(fullPath) == "" {
		return ""
	}
	dir := filepath.Dir(fullPath)
	base := filepath.Base(dir)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}
	return base
}

func combine(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, " ")
}

func foldSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			set[textutil.Fold(trimmed)] = struct{}{}
		}
	}
	return set
}

func appendUnique(dst []string, tokens ...string) []string {
	seen := make(map[string]struct{}, len(dst)+len(tokens))
	for _, existing := range dst {
		seen[textutil.Fold(existing)] = struct{}{}
	}
	for _, token := range tokens {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		key := textutil.Fold(token)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		dst = append(dst, token)
	}
	return dst
}
