package dbx

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Execer lets helpers work with *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Placeholders renders rows of cols positional params starting at $1:
// Placeholders(2, 3) -> "($1,$2,$3),($4,$5,$6)".
func Placeholders(rows, cols int) string {
	var b strings.Builder
	n := 1
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('(')
		for j := 0; j < cols; j++ {
			if j > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "$%d", n)
			n++
		}
		b.WriteByte(')')
	}
	return b.String()
}
