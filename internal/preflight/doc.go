// Package preflight checks that the configured library roots and state
// directories exist and grant the access a run needs.
//
// `funmatch config validate` prints every result; `funmatch run` refuses to
// start while any check fails so a copy never dies halfway through a session.
package preflight
