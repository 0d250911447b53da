package db

import (
	"context"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"propshare/migrations"
)

// DB wraps a pgxpool connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new database connection pool.
func New(ctx context.Context, connString string) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// RunMigrations runs all embedded SQL migrations.
func (d *DB) RunMigrations(connString string) error {
	sourceDriver, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", sourceDriver, connString)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	return nil
}

// Close closes the connection pool.
func (d *DB) Close() {
	d.Pool.Close()
}

// SeedDevProperties inserts test properties for development. Skips properties
// that already exist.
func (d *DB) SeedDevProperties(ctx context.Context) error {
	properties := []struct {
		name     string
		location string
		price    int64
	}{
		{"Sunset Villa", "12 Ocean Drive", 45000000},
		{"Downtown Loft", "88 Main Street, Apt 4B", 12500000},
		{"Maple Cottage", "3 Maple Lane", 8900000},
	}

	query := `
		INSERT INTO properties (name, location, price, status)
		SELECT $1, $2, $3, 'available'
		WHERE NOT EXISTS (SELECT 1 FROM properties WHERE name = $1)
	`

	for _, p := range properties {
		if _, err := d.Pool.Exec(ctx, query, p.name, p.location, p.price); err != nil {
			return fmt.Errorf("failed to seed property %s: %w", p.name, err)
		}
	}

	return nil
}
