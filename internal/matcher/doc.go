// Package matcher drives a whole run: it walks the video list in order,
// filters out stale, processed, and already paired videos, and runs one
// interactive session per remaining video. Target mode resolves a single
// video from a query and bypasses those filters.
package matcher
