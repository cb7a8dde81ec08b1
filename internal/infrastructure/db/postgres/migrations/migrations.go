// Package migrations embeds the goose SQL migrations so the binary can
// migrate the schema at startup without external files.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
