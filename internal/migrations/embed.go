package migrations

import "embed"

// Postgres embeds all PostgreSQL migration files.
//
//go:embed postgres/*.sql
var Postgres embed.FS
