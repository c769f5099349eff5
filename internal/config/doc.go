// Package config loads leadmerge settings from TOML.
//
// The file is optional. Values missing from it keep the defaults in
// defaults.go, and command-line flags override both.
package config
