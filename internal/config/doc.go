// Package config loads, validates, and normalizes scenelink configuration.
//
// Configuration lives in a TOML file (default ~/.config/scenelink/config.toml,
// falling back to ./scenelink.toml). Load applies repository defaults first so
// a missing file yields a usable configuration for local runs.
package config
