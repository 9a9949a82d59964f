// Package migrations embeds the SQL schema migrations applied with goose at
// startup when database.run_migrations is enabled.
package migrations

import "embed"

// FS holds the embedded migration files.
//
//go:embed *.sql
var FS embed.FS
