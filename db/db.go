// Package db embeds the goose migration scripts so binaries can apply them
// without shipping the SQL files separately.
package db

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS
