// Package catalog serves the travel packages a checkout can be started for.
package catalog

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	d "github.com/fjod/go_travel/checkout-service/domain"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var ErrPackageNotFound = errors.New("package not found")

type RepoInterface interface {
	ListPackages(ctx context.Context) ([]d.Package, error)
	GetPackage(ctx context.Context, id int64) (d.Package, error)
	Close() error
}

type Repository struct {
	db *sql.DB
}

func NewRepository(dbPath string) (*Repository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// an in-memory database lives only as long as its one connection
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Repository{db: db}, nil
}

// RunMigrations applies the embedded schema and seed migrations.
func (r *Repository) RunMigrations() error {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("could not open migration source: %w", err)
	}

	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{MigrationsTable: "catalog_schema_migrations"})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *Repository) ListPackages(ctx context.Context) ([]d.Package, error) {
	query := `
		SELECT id, name, destination, price, duration, image_url
		FROM packages
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query packages: %w", err)
	}
	defer rows.Close()

	var packages []d.Package
	for rows.Next() {
		var p d.Package
		if err := rows.Scan(&p.ID, &p.Name, &p.Destination, &p.Price, &p.Duration, &p.Image); err != nil {
			return nil, fmt.Errorf("failed to scan package: %w", err)
		}
		packages = append(packages, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return packages, nil
}

func (r *Repository) GetPackage(ctx context.Context, id int64) (d.Package, error) {
	query := `
		SELECT id, name, destination, price, duration, image_url
		FROM packages
		WHERE id = ?
	`

	var p d.Package
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&p.ID, &p.Name, &p.Destination, &p.Price, &p.Duration, &p.Image)
	if errors.Is(err, sql.ErrNoRows) {
		return d.Package{}, fmt.Errorf("package %d: %w", id, ErrPackageNotFound)
	}
	if err != nil {
		return d.Package{}, fmt.Errorf("failed to query package %d: %w", id, err)
	}

	return p, nil
}

func (r *Repository) Close() error {
	return r.db.Close()
}
