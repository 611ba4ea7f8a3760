package migrations

import "embed"

// EmbedMigrations holds the goose SQL migrations.
//
//go:embed *.sql
var EmbedMigrations embed.FS
