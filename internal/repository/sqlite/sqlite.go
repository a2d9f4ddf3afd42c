package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/truthguard/internal/domain"
	"github.com/msomdec/truthguard/internal/repository/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection and vends the repositories built on it.
type DB struct {
	SQLDB *sql.DB

	users         *UserRepository
	verifications *VerificationRepository
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// SQLite allows a single writer; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	d := &DB{SQLDB: db}
	d.users = &UserRepository{db: db}
	d.verifications = &VerificationRepository{db: db}
	return d, nil
}

// Migrate applies all pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SQLDB)
}

func (d *DB) Ping(ctx context.Context) error {
	return d.SQLDB.PingContext(ctx)
}

func (d *DB) Close() error {
	return d.SQLDB.Close()
}

func (d *DB) Users() domain.UserRepository {
	return d.users
}

func (d *DB) Verifications() domain.VerificationRepository {
	return d.verifications
}
