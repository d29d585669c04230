// Package appfs exposes static assets shipped with the binary.
package appfs

import "embed"

//go:embed templates
var FS embed.FS
