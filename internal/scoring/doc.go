// Package scoring ranks library entries against extracted metadata.
//
// Every score is a sum of independent non-negative components: a date match,
// a studio match, and one of exact, partial, or clean credit per keyword.
// Entries below the minimum score are never materialized as candidates.
// The package also hosts the two reduced variants of the engine: the target
// resolver that picks one video from a query, and the read-only check query.
package scoring
