// Package config loads, normalizes, and validates funmatch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes the library
// roots, the matching policy (stop words, ignored numbers, the ordered
// clean-up rule list, weights and limits), and the locations of the studio
// registry, history log, and library index.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, deduplicated word lists, and clear validation errors.
package config
