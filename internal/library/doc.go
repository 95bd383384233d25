// Package library scans the video and script populations and caches them.
//
// Scan walks the configured roots with extension and exclusion filtering and
// returns entries ordered by path; that order is the scan order every later
// tie-break relies on. Index stores the most recent scan of each kind in
// SQLite so interactive runs start without walking the filesystem.
package library
