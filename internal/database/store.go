package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aidsync/aidsync/internal/config"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Dialect identifies which engine a Store is backed by.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Store wraps the active database engine. Postgres is tried first; if
// it cannot be reached the store falls back to the embedded SQLite
// file so the application stays usable offline.
type Store struct {
	DB      *sql.DB
	Dialect Dialect
	logger  *slog.Logger
}

// Open connects to Postgres, falling back to SQLite on failure.
func Open(cfg *config.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	store, err := openPostgres(cfg, logger)
	if err == nil {
		logger.Info("connected to postgres database")
		return store, nil
	}
	logger.Warn("postgres connection failed, falling back to sqlite",
		slog.Any("error", err))

	store, err = OpenSQLite(cfg.SQLitePath, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to any database: %w", err)
	}
	logger.Info("connected to sqlite database", slog.String("path", cfg.SQLitePath))
	return store, nil
}

func openPostgres(cfg *config.DatabaseConfig, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("pgx", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("unable to open postgres connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxConns)
	db.SetMaxIdleConns(cfg.MinConns)
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping postgres: %w", err)
	}

	return &Store{DB: db, Dialect: DialectPostgres, logger: logger}, nil
}

// OpenSQLite opens the embedded fallback engine directly. Exported so
// tests can run against a real database without a server.
func OpenSQLite(path string, logger *slog.Logger) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}

	// A single connection serializes writers; sqlite allows one anyway.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to ping sqlite: %w", err)
	}

	return &Store{DB: db, Dialect: DialectSQLite, logger: logger}, nil
}

// Rebind converts ? placeholders to the engine's native form ($1, $2,
// ...) for Postgres. Repository SQL is written once with ? markers.
func (s *Store) Rebind(query string) string {
	if s.Dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// WithTx runs fn inside a transaction, rolling back on error or panic.
func (s *Store) WithTx(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(tx)
	return err
}

func (s *Store) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

func (s *Store) Close() {
	if s.logger != nil {
		s.logger.Info("closing database connection", slog.String("dialect", string(s.Dialect)))
	}
	s.DB.Close()
}
