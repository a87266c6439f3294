package postgres

import "embed"

// MigrationsFS holds the embedded PostgreSQL schema migrations.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
