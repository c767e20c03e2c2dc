// Package migrations embeds the SQL schema so every binary can migrate without
// shipping the files next to it.
package migrations

import "embed"

//go:embed postgres/*.sql
var Postgres embed.FS

const PostgresDir = "postgres"
