// Package migrations embeds the versioned SQL migration files shipped with
// the binary.
package migrations

import "embed"

//go:embed sqlite/*.sql
var FS embed.FS
