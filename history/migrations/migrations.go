// Package migrations holds the embedded history schema.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
