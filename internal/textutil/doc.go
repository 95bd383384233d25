// Package textutil provides the text primitives shared by extraction and scoring.
//
// The primary use cases are:
//   - Normalizing noisy file names through an ordered list of clean-up rules
//   - Case-folded substring and whole-token matching
//   - Alphanumeric and digit projections used for "clean" comparisons
//
// Clean-up rules are data, not code: the Normalizer compiles whatever ordered
// pattern list configuration supplies, so rule order is part of behaviour.
package textutil
