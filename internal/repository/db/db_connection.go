package db

import (
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Supported values for Config.Driver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

const (
	sqliteDriverName = "sqlite"
	pgxDriverName    = "pgx"

	defaultSQLitePath = "todo.db"

	pgMaxOpenConns    = 10
	pgMaxIdleConns    = 5
	pgConnMaxIdleTime = 5 * time.Minute
)

// Config selects and locates the datastore.
type Config struct {
	Driver string // sqlite (default) | postgres
	Path   string // SQLite file path
	DSN    string // Postgres connection string
}

// InitDB opens the configured datastore and ensures tables exist.
func InitDB(cfg Config) (*sqlx.DB, error) {
	switch cfg.Driver {
	case "", DriverSQLite:
		return initSQLite(cfg.Path)
	case DriverPostgres:
		return initPostgres(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}

// initSQLite opens/creates a SQLite DB file and ensures tables exist.
func initSQLite(path string) (*sqlx.DB, error) {
	if path == "" {
		path = defaultSQLitePath
	}
	db, err := sqlx.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// Conservative pool settings for SQLite
	db.SetMaxOpenConns(1) // SQLite is not great with many writers
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL;",
		"PRAGMA foreign_keys = ON;",
		"PRAGMA busy_timeout = 5000;",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	return finishInit(db, sqliteSchema)
}

func initPostgres(dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres driver requires db.dsn")
	}
	db, err := sqlx.Open(pgxDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(pgMaxOpenConns)
	db.SetMaxIdleConns(pgMaxIdleConns)
	db.SetConnMaxIdleTime(pgConnMaxIdleTime)

	return finishInit(db, postgresSchema)
}

func finishInit(db *sqlx.DB, schema []string) (*sqlx.DB, error) {
	if err := ensureSchema(db, schema); err != nil {
		_ = db.Close()
		return nil, err
	}

	// Fail fast if the DB cannot be reached
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", db.DriverName(), err)
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB, schema []string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, stmt := range schema {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("apply schema statement %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema transaction: %w", err)
	}
	return nil
}
