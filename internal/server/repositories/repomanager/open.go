package repomanager

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/snakeboard/internal/dbx"
	"github.com/dmitrijs2005/snakeboard/internal/filex"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// sqlitePragmas are appended to SQLite DSNs that carry no query string.
const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// Open connects to dsn, picks the dialect from it, verifies the
// connection and applies migrations. The caller owns the returned DB.
//
// SQLite runs on a single connection: writers never contend for the file
// lock, and an in-memory database survives for the life of the pool.
func Open(ctx context.Context, dsn string) (*sql.DB, *SQLRepositoryManager, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, nil, fmt.Errorf("database dsn is required")
	}

	dialect := dbx.DialectForDSN(dsn)
	if path, ok := sqliteFilePath(dialect, dsn); ok {
		if _, err := filex.EnsureParentDir(path); err != nil {
			return nil, nil, fmt.Errorf("prepare sqlite dir: %w", err)
		}
	}

	db, err := sql.Open(dialect.DriverName(), driverDSN(dialect, dsn))
	if err != nil {
		return nil, nil, fmt.Errorf("open %s db: %w", dialect, err)
	}

	if dialect == dbx.DialectSQLite {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("ping %s db: %w", dialect, err)
	}

	m := NewSQLRepositoryManager(dialect)
	if err := m.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, m, nil
}

func driverDSN(dialect dbx.Dialect, dsn string) string {
	if dialect != dbx.DialectSQLite || strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?" + sqlitePragmas
}

// sqliteFilePath extracts the on-disk file of a SQLite DSN. In-memory
// databases have none.
func sqliteFilePath(dialect dbx.Dialect, dsn string) (string, bool) {
	if dialect != dbx.DialectSQLite {
		return "", false
	}
	path, query, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == "" || path == ":memory:" || strings.Contains(query, "mode=memory") {
		return "", false
	}
	return path, true
}
