// Package postgres implements the domain repositories on PostgreSQL via
// the pgx database/sql driver, with goose-managed migrations.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/msomdec/truthguard/internal/domain"
	"github.com/msomdec/truthguard/internal/repository/postgres/migrations"
)

// DB wraps a PostgreSQL connection pool and vends the repositories built on it.
type DB struct {
	SQLDB *sql.DB

	// connStr is the key under which the pgx config was registered with
	// the stdlib driver.
	connStr string

	users         *UserRepository
	verifications *VerificationRepository
}

// New connects to the database at dsn. When dbName is non-empty it
// replaces the database named in the DSN.
func New(ctx context.Context, dsn, dbName string) (*DB, error) {
	connCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	if dbName != "" {
		connCfg.Database = dbName
	}

	connStr := stdlib.RegisterConnConfig(connCfg)
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		stdlib.UnregisterConnConfig(connStr)
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		stdlib.UnregisterConnConfig(connStr)
		return nil, fmt.Errorf("ping database: %w", err)
	}

	d := &DB{SQLDB: db, connStr: connStr}
	d.users = &UserRepository{db: db}
	d.verifications = &VerificationRepository{db: db}
	return d, nil
}

// Migrate runs the embedded goose migrations.
func (d *DB) Migrate(ctx context.Context) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, d.SQLDB, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

func (d *DB) Ping(ctx context.Context) error {
	return d.SQLDB.PingContext(ctx)
}

// Close closes the pool and drops the registered connection config.
func (d *DB) Close() error {
	err := d.SQLDB.Close()
	stdlib.UnregisterConnConfig(d.connStr)
	return err
}

// ConnString returns the driver key registered for this database. It is
// only valid until Close.
func (d *DB) ConnString() string {
	return d.connStr
}

func (d *DB) Users() domain.UserRepository {
	return d.users
}

func (d *DB) Verifications() domain.VerificationRepository {
	return d.verifications
}
