package dbx

import (
	"strconv"
	"strings"
)

// Dialect names a database/sql driver together with its placeholder style.
type Dialect string

const (
	// DialectSQLite is modernc.org/sqlite; placeholders are '?'.
	DialectSQLite Dialect = "sqlite"
	// DialectPostgres is the pgx stdlib driver; placeholders are $1..$n.
	DialectPostgres Dialect = "pgx"
)

// DialectForDSN picks the dialect from the DSN: postgres:// and postgresql://
// URLs select Postgres, anything else is treated as a SQLite file path.
func DialectForDSN(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// DriverName is the name registered with database/sql.
func (d Dialect) DriverName() string {
	return string(d)
}

// GooseDialect is the dialect name understood by goose.
func (d Dialect) GooseDialect() string {
	if d == DialectPostgres {
		return "postgres"
	}
	return "sqlite3"
}

// Rebind rewrites '?' placeholders into the dialect's native form.
// Queries are written once with '?' and rebound per dialect.
// Question marks inside single-quoted literals are left alone.
func (d Dialect) Rebind(query string) string {
	if d != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	inLiteral := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inLiteral = !inLiteral
			b.WriteByte(c)
		case c == '?' && !inLiteral:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
