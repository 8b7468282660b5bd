// Package migrations embeds the schema migrations for the recall store.
package migrations

import "embed"

// FS holds the numbered up/down SQL files, applied in lexical order.
//
//go:embed *.sql
var FS embed.FS
