package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"propshare/internal/models"
)

// propertyColumns is the standard column list for property queries.
const propertyColumns = `id, name, location, price, description, cover_image,
	status, created_by, created_at, updated_at`

// scanProperty scans a row into a Property struct.
func scanProperty(row pgx.Row) (*models.Property, error) {
	var p models.Property
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Location,
		&p.Price,
		&p.Description,
		&p.CoverImage,
		&p.Status,
		&p.CreatedBy,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPropertyNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProperty inserts a new property.
func (d *DB) CreateProperty(ctx context.Context, p *models.Property) error {
	status := p.Status
	if status == "" {
		status = models.PropertyAvailable
	}

	query := `
		INSERT INTO properties (name, location, price, description, cover_image, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := d.Pool.QueryRow(ctx, query,
		p.Name,
		p.Location,
		p.Price,
		p.Description,
		p.CoverImage,
		status,
		p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}

	p.Status = status
	return nil
}

// GetPropertyByID retrieves a property by its ID.
func (d *DB) GetPropertyByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1`
	return scanProperty(d.Pool.QueryRow(ctx, query, id))
}

// GetShareableProperty retrieves a property that may be shared: it must exist
// and not be archived.
func (d *DB) GetShareableProperty(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	query := `SELECT ` + propertyColumns + ` FROM properties WHERE id = $1 AND status != $2`
	return scanProperty(d.Pool.QueryRow(ctx, query, id, models.PropertyArchived))
}

// ListProperties retrieves properties newest-first, optionally filtered by status.
func (d *DB) ListProperties(ctx context.Context, status string, limit, offset int) ([]models.Property, error) {
	var rows pgx.Rows
	var err error

	if status != "" {
		query := `
			SELECT ` + propertyColumns + `
			FROM properties
			WHERE status = $1
			ORDER BY created_at DESC
			LIMIT $2 OFFSET $3
		`
		rows, err = d.Pool.Query(ctx, query, status, limit, offset)
	} else {
		query := `
			SELECT ` + propertyColumns + `
			FROM properties
			ORDER BY created_at DESC
			LIMIT $1 OFFSET $2
		`
		rows, err = d.Pool.Query(ctx, query, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var properties []models.Property
	for rows.Next() {
		var p models.Property
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Location, &p.Price, &p.Description,
			&p.CoverImage, &p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}

	return properties, rows.Err()
}

// UpdateProperty updates a property's descriptive fields.
func (d *DB) UpdateProperty(ctx context.Context, p *models.Property) error {
	query := `
		UPDATE properties
		SET name = $1, location = $2, price = $3, description = $4,
			cover_image = $5, status = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`
	err := d.Pool.QueryRow(ctx, query,
		p.Name, p.Location, p.Price, p.Description, p.CoverImage, p.Status, p.ID,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrPropertyNotFound
	}
	return err
}

// DeleteProperty deletes a property by ID. Shares referencing it are removed
// by the foreign key cascade.
func (d *DB) DeleteProperty(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM properties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrPropertyNotFound
	}
	return nil
}
