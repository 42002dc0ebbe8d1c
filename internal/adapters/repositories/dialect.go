package repositories

import (
	"route-cost-service/internal/ports"
	"strconv"
	"strings"
)

// dialect captures the few SQL differences between SQLite and Postgres that the
// repositories care about.
type dialect struct {
	name        string
	placeholder func(n int) string
	// maxParams is the most bind parameters one statement may carry.
	maxParams int
}

var (
	sqliteDialect = dialect{
		name:        "sqlite",
		placeholder: func(int) string { return "?" },
		maxParams:   32766,
	}
	postgresDialect = dialect{
		name:        "postgres",
		placeholder: func(n int) string { return "$" + strconv.Itoa(n) },
		maxParams:   65535,
	}
)

// rowsPerStatement clamps a requested batch size so a multi-row statement of
// cols columns stays under the parameter limit.
func (d dialect) rowsPerStatement(requested, cols int) int {
	if requested <= 0 {
		requested = ports.DefaultBatchSize
	}
	if cols <= 0 || d.maxParams <= 0 {
		return requested
	}
	if limit := d.maxParams / cols; requested > limit {
		return limit
	}
	return requested
}

// values renders rows groups of cols placeholders, numbered from 1:
// "(?, ?), (?, ?)" or "($1, $2), ($3, $4)".
func (d dialect) values(rows, cols int) string {
	var b strings.Builder
	n := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for c := 0; c < cols; c++ {
			if c > 0 {
				b.WriteString(", ")
			}
			b.WriteString(d.placeholder(n))
			n++
		}
		b.WriteByte(')')
	}
	return b.String()
}
