// Package migrations embeds the SQL migrations for the SQLite store.
package migrations

import "embed"

// FS holds the NNN_name.up.sql and NNN_name.down.sql pairs applied in
// version order when a store opens.
//
//go:embed *.sql
var FS embed.FS
