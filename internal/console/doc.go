// Package console is the interactive terminal surface: prompts, line input,
// and candidate tables. Color is applied only when output is a terminal.
package console
