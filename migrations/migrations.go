// Package migrations embeds the goose SQL migrations applied by the
// connection manager before the pool is handed to any caller. Files are
// versioned by numeric prefix; goose applies them in ascending order and
// records progress in its own bookkeeping table.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
