package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

const (
	DialectSQLite   = "sqlite"
	DialectPostgres = "postgres"
)

var ErrUnsupportedDialect = errors.New("storage: unsupported dialect")

// Config describes a SQL connection.
type Config struct {
	Dialect string
	DSN     string
	// MaxOpenConns caps the pool. SQLite in-memory databases need 1 so every
	// query sees the same database.
	MaxOpenConns int
}

// OpenBun opens a bun.DB for cfg. The caller owns the returned handle.
func OpenBun(cfg Config) (*bun.DB, error) {
	dialect := strings.ToLower(strings.TrimSpace(cfg.Dialect))
	dsn := strings.TrimSpace(cfg.DSN)

	var (
		sqlDB *sql.DB
		err   error
		db    *bun.DB
	)
	switch dialect {
	case DialectSQLite, "sqlite3":
		if dsn == "" {
			dsn = "file::memory:?cache=shared"
		}
		sqlDB, err = sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		db = bun.NewDB(sqlDB, sqlitedialect.New())
	case DialectPostgres, "postgresql", "pg":
		connector, cerr := pq.NewConnector(dsn)
		if cerr != nil {
			return nil, fmt.Errorf("storage: postgres dsn: %w", cerr)
		}
		sqlDB = sql.OpenDB(connector)
		db = bun.NewDB(sqlDB, pgdialect.New())
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDialect, cfg.Dialect)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	return db, nil
}

// IsUniqueViolation reports whether err is a unique constraint failure from
// SQLite or Postgres.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint") ||
		strings.Contains(message, "duplicate key value")
}
