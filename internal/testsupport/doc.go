// Package testsupport holds shared fixtures for package tests: temp-dir
// configurations, file helpers, and a scripted console.
package testsupport
