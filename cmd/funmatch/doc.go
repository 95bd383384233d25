// Package main hosts the funmatch CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, opens the stored state
// a command needs and hands it to the matcher. `run`
// is the interactive pass over unprocessed videos; `check` scores a free-text
// query without side effects; `scan`, `studios` and `history` maintain the
// stored state.
//
// Keep this package thin: behaviour belongs in the internal packages and is
// only surfaced here through commands and flags.
package main
