// Package runlock holds an exclusive file lock for the duration of a run so
// that two funmatch processes never write history or the studio registry
// concurrently.
package runlock
