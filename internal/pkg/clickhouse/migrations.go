package clickhouse

import "embed"

// MigrationsFS holds the ClickHouse schema statements, applied in file order
// by the database migration binary.
//
//go:embed migrations/*.sql
var MigrationsFS embed.FS
