// Package assets embeds files shipped inside the imagegen binary.
package assets

import _ "embed"

// DefaultConfigYAML is the commented config.yaml written on first run.
// DefaultConfig in the config loader parses it, so it is the only copy of
// the default values.
//
//go:embed defaults/config.yaml
var DefaultConfigYAML []byte
