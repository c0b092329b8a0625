// Package migrations embeds the SQL migrations for the optional contact
// database.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
