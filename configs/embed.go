// Package configs provides embedded configuration templates.
//
// Templates are embedded at build time so `config init` works from any
// distribution. Configuration hierarchy (see internal/config Load()):
//  1. Hardcoded defaults
//  2. User config (~/.config/blueblaze/config.yaml)
//  3. Explicit --config file
//  4. Environment variables (BLUEBLAZE_*, BBA_WP__DEBUG_LOG_FILE)
package configs

import _ "embed"

// UserConfigTemplate is the template written by `config init`.
//
//go:embed user-config.example.yaml
var UserConfigTemplate string
