package scoring

import (
	"sort"
	"strings"
	"unicode/utf8"

	"funmatch/internal/config"
	"funmatch/internal/extract"
	"funmatch/internal/library"
	"funmatch/internal/studio"
	"funmatch/internal/textutil"
)

// Weights are the points each component contributes.
type Weights struct {
	Date        int
	Studio      int
	Exact       int
	Partial     int
	CleanStrong int
	CleanWeak   int
}

// Options configures an Engine.
type Options struct {
	Weights             Weights
	MinScore            int
	StrongKeywordLength int
	CheckLimit          int
}

// Candidate is one library entry that reached the score threshold.
type Candidate struct {
	TargetPath     string
	DisplayName    string
	ParentFolder   string
	Score          int
	MatchedTerms   []string
	InferredStudio string
}

// Engine scores library entries against extracted metadata.
type Engine struct {
	opts Options
}

// NewEngine builds an Engine; non-positive thresholds fall back to defaults.
func NewEngine(opts Options) *Engine {
	if opts.MinScore <= 0 {
		opts.MinScore = 2
	}
	if opts.StrongKeywordLength <= 0 {
		opts.StrongKeywordLength = 5
	}
	if opts.CheckLimit <= 0 {
		opts.CheckLimit = 10
	}
	return &Engine{opts: opts}
}

// NewEngineFromConfig maps the matching section onto engine options.
func NewEngineFromConfig(cfg *config.Config) *Engine {
	w := cfg.Matching.Weights
	return NewEngine(Options{
		Weights: Weights{
			Date:        w.Date,
			Studio:      w.Studio,
			Exact:       w.Exact,
			Partial:     w.Partial,
			CleanStrong: w.CleanStrong,
			CleanWeak:   w.CleanWeak,
		},
		MinScore:            cfg.Matching.MinScore,
		StrongKeywordLength: cfg.Matching.StrongKeywordLength,
		CheckLimit:          cfg.Matching.CheckLimit,
	})
}

// Score sums the independent components for one entry and names each
// component that contributed.
func (e *Engine) Score(result extract.Result, entry library.Entry) (int, []string) {
	name := entry.DisplayName
	w := e.opts.Weights
	score := 0
	var terms []string

	if result.DateCompact != "" && strings.Contains(textutil.Digits(name), result.DateCompact) {
		score += w.Date
		terms = append(terms, "date:"+result.DateCompact)
	}
	if result.Studio != "" && textutil.ContainsFold(name, result.Studio) {
		score += w.Studio
		terms = append(terms, "studio:"+result.Studio)
	}

	var clean string
	for _, keyword := range result.Keywords {
		switch {
		case textutil.ContainsToken(name, keyword):
			score += w.Exact
			terms = append(terms, keyword)
		case textutil.ContainsFold(name, keyword):
			score += w.Partial
			terms = append(terms, "~"+keyword)
		default:
			if clean == "" {
				clean = textutil.Fold(textutil.AlphaNumeric(name))
			}
			stripped := textutil.Fold(strings.Join(strings.Fields(keyword), ""))
			if stripped == "" || !strings.Contains(clean, stripped) {
				continue
			}
			if utf8.RuneCountInString(stripped) >= e.opts.StrongKeywordLength {
				score += w.CleanStrong
			} else {
				score += w.CleanWeak
			}
			terms = append(terms, "clean:"+keyword)
		}
	}
	return score, terms
}

// Rank scores every entry, drops those below the threshold, and orders the
// rest by score descending. Equal scores keep library order.
func (e *Engine) Rank(result extract.Result, entries []library.Entry) []Candidate {
	candidates := make([]Candidate, 0, len(entries)/4)
	for _, entry := range entries {
		score, terms := e.Score(result, entry)
		if score < e.opts.MinScore {
			continue
		}
		candidates = append(candidates, Candidate{
			TargetPath:   entry.FullPath,
			DisplayName:  entry.DisplayName,
			ParentFolder: entry.ParentFolder,
			Score:        score,
			MatchedTerms: terms,
		})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	return candidates
}

// AttachInference sets InferredStudio on every candidate. Scores are untouched.
func AttachInference(candidates []Candidate, registry *studio.Registry) {
	for i := range candidates {
		candidates[i].InferredStudio = registry.Infer(candidates[i].DisplayName)
	}
}

// Check scores a free-text query against scripts and returns the top results.
// Nothing is copied, recorded, or learned.
func (e *Engine) Check(extractor *extract.Extractor, query string, scripts []library.Entry) (extract.Result, []Candidate) {
	result := extractor.ExtractQuery(query)
	ranked := e.Rank(result, scripts)
	if len(ranked) > e.opts.CheckLimit {
		ranked = ranked[:e.opts.CheckLimit]
	}
	return result, ranked
}
