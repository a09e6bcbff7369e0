// Package config loads crablang settings from defaults, an optional YAML
// file, CRABLANG_ environment variables and command-line flags, and
// validates the result.
package config
