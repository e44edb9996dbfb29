// Package migrations embeds the versioned PostgreSQL schema applied at startup.
package migrations

import "embed"

// FS holds the up/down SQL files in golang-migrate naming.
//
//go:embed *.sql
var FS embed.FS
