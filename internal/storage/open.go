package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

var (
	// ErrDSNRequired is returned when no database location was configured.
	ErrDSNRequired = errors.New("storage: dsn is required")
	// ErrDriverUnknown is returned for drivers other than sqlite and postgres.
	ErrDriverUnknown = errors.New("storage: unknown driver")
)

// Config selects the database backend.
type Config struct {
	// Driver is "sqlite" (default) or "postgres".
	Driver string
	// DSN is a file path or file: URI for sqlite, a connection URL for postgres.
	DSN string
}

// Open connects to the configured database and verifies the connection.
// SQLite files get their parent directory created and foreign keys enforced.
func Open(ctx context.Context, cfg Config) (*bun.DB, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, ErrDSNRequired
	}

	var (
		sqldb *sql.DB
		db    *bun.DB
		err   error
	)
	switch NormalizeDriver(cfg.Driver) {
	case DriverSQLite:
		dsn, err = sqliteDSN(dsn)
		if err != nil {
			return nil, err
		}
		if sqldb, err = sql.Open("sqlite3", dsn); err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		// one connection keeps :memory: databases and pragmas consistent
		sqldb.SetMaxOpenConns(1)
		db = bun.NewDB(sqldb, sqlitedialect.New())
	case DriverPostgres:
		if sqldb, err = sql.Open("postgres", dsn); err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	default:
		return nil, fmt.Errorf("%w: %s", ErrDriverUnknown, cfg.Driver)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}
	return db, nil
}

// NormalizeDriver maps driver aliases onto DriverSQLite or DriverPostgres.
// Unknown values are returned lowercased.
func NormalizeDriver(driver string) string {
	switch d := strings.ToLower(strings.TrimSpace(driver)); d {
	case "", "sqlite", "sqlite3":
		return DriverSQLite
	case "postgres", "postgresql", "pg":
		return DriverPostgres
	default:
		return d
	}
}

func sqliteDSN(dsn string) (string, error) {
	if dsn == ":memory:" {
		return "file::memory:?_fk=1", nil
	}
	if !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return "", fmt.Errorf("storage: create database directory: %w", err)
		}
		dsn = "file:" + dsn
	}
	if strings.Contains(dsn, "_fk=") || strings.Contains(dsn, "_foreign_keys=") {
		return dsn, nil
	}
	separator := "?"
	if strings.Contains(dsn, "?") {
		separator = "&"
	}
	return dsn + separator + "_fk=1", nil
}
