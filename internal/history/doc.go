// Package history records which videos have been resolved across runs.
package history
