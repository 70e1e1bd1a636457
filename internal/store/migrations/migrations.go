// Package migrations embeds the store's SQL schema migrations.
//
// Files are named NNN_name.up.sql and applied in version order.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
