// Package migrations holds the ordered *.up.sql files applied at startup.
package migrations

import "embed"

//go:embed *.up.sql
var FS embed.FS
