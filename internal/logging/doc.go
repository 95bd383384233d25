// Package logging assembles structured slog loggers used across funmatch.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes the standardized field keys (component, event_type,
// error_hint, impact, correlation_id) so warnings carry cause, impact, and
// next step in the same shape everywhere. A no-op logger is provided for tests
// and wiring code that cannot fail.
//
// Log records go to files and stderr only; interactive prompts and candidate
// tables are written through internal/console.
package logging
