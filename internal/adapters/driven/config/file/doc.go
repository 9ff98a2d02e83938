// Package file provides a TOML-backed implementation of the config
// store port.
//
// Configuration lives in ~/.clauseline/config.toml by default. Nested
// TOML tables are flattened into dot-notation keys, so the [judge]
// table's model key is read as "judge.model". Writes persist
// immediately with restricted file permissions.
package file
