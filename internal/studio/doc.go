// Package studio detects content producers in file names.
//
// A Registry is an ordered list of studios, each with case-insensitive
// detection patterns. Detection stops at the first studio in list order whose
// pattern matches. The registry also guesses studio labels for matched
// candidates and learns new patterns, which the Catalog persists through a
// JSON Store.
package studio
