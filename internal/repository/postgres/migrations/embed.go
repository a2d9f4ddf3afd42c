// Package migrations embeds the goose-formatted PostgreSQL schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
