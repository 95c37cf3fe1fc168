// Package migrations holds the SQL schema applied by `portal-server migrate up`.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
