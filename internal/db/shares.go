package db

import (
	"context"
	"errors"
	"strconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"propshare/internal/models"
)

// shareColumns is the standard column list for share queries.
const shareColumns = `id, token, property_id, created_by, is_active, expires_at,
	allowed_views, view_count, require_client_info, allow_downloads,
	client_name, client_email, custom_message, last_viewed_at, deactivated_at,
	created_at, updated_at`

// scanShare scans a row into a Share struct.
func scanShare(row pgx.Row) (*models.Share, error) {
	var s models.Share
	err := row.Scan(
		&s.ID,
		&s.Token,
		&s.PropertyID,
		&s.CreatedBy,
		&s.IsActive,
		&s.ExpiresAt,
		&s.AllowedViews,
		&s.ViewCount,
		&s.RequireClientInfo,
		&s.AllowDownloads,
		&s.ClientName,
		&s.ClientEmail,
		&s.CustomMessage,
		&s.LastViewedAt,
		&s.DeactivatedAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrShareNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateShare inserts a new share record. Returns ErrDuplicateToken when the
// generated token collides with an existing one; the caller regenerates and
// retries.
func (d *DB) CreateShare(ctx context.Context, share *models.Share) error {
	query := `
		INSERT INTO property_shares (token, property_id, created_by, expires_at,
			allowed_views, require_client_info, allow_downloads,
			client_name, client_email, custom_message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, is_active, view_count, created_at, updated_at
	`

	err := d.Pool.QueryRow(ctx, query,
		share.Token,
		share.PropertyID,
		share.CreatedBy,
		share.ExpiresAt,
		share.AllowedViews,
		share.RequireClientInfo,
		share.AllowDownloads,
		share.ClientName,
		share.ClientEmail,
		share.CustomMessage,
	).Scan(&share.ID, &share.IsActive, &share.ViewCount, &share.CreatedAt, &share.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateToken
		}
		return err
	}

	return nil
}

// GetShareByToken retrieves a share by its public token.
func (d *DB) GetShareByToken(ctx context.Context, token string) (*models.Share, error) {
	query := `SELECT ` + shareColumns + ` FROM property_shares WHERE token = $1`
	return scanShare(d.Pool.QueryRow(ctx, query, token))
}

// GetShareByID retrieves a share by its ID.
func (d *DB) GetShareByID(ctx context.Context, id uuid.UUID) (*models.Share, error) {
	query := `SELECT ` + shareColumns + ` FROM property_shares WHERE id = $1`
	return scanShare(d.Pool.QueryRow(ctx, query, id))
}

// ShareFilters narrows ListShares results.
type ShareFilters struct {
	PropertyID *uuid.UUID
	CreatedBy  *uuid.UUID
	IsActive   *bool
	Limit      int
	Offset     int
}

// ListShares retrieves shares newest-first with their property display fields.
func (d *DB) ListShares(ctx context.Context, filters ShareFilters) ([]models.ShareWithProperty, error) {
	sql := `
		SELECT s.id, s.token, s.property_id, s.created_by, s.is_active, s.expires_at,
			s.allowed_views, s.view_count, s.require_client_info, s.allow_downloads,
			s.client_name, s.client_email, s.custom_message, s.last_viewed_at,
			s.deactivated_at, s.created_at, s.updated_at,
			p.name, p.cover_image
		FROM property_shares s
		JOIN properties p ON p.id = s.property_id
		WHERE TRUE
	`
	var args []any

	if filters.PropertyID != nil {
		sql += ` AND s.property_id = $` + strconv.Itoa(len(args)+1)
		args = append(args, *filters.PropertyID)
	}
	if filters.CreatedBy != nil {
		sql += ` AND s.created_by = $` + strconv.Itoa(len(args)+1)
		args = append(args, *filters.CreatedBy)
	}
	if filters.IsActive != nil {
		sql += ` AND s.is_active = $` + strconv.Itoa(len(args)+1)
		args = append(args, *filters.IsActive)
	}

	limit := filters.Limit
	if limit <= 0 {
		limit = 50
	}
	sql += ` ORDER BY s.created_at DESC LIMIT $` + strconv.Itoa(len(args)+1)
	args = append(args, limit)
	sql += ` OFFSET $` + strconv.Itoa(len(args)+1)
	args = append(args, filters.Offset)

	rows, err := d.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shares []models.ShareWithProperty
	for rows.Next() {
		var s models.ShareWithProperty
		if err := rows.Scan(
			&s.ID, &s.Token, &s.PropertyID, &s.CreatedBy, &s.IsActive, &s.ExpiresAt,
			&s.AllowedViews, &s.ViewCount, &s.RequireClientInfo, &s.AllowDownloads,
			&s.ClientName, &s.ClientEmail, &s.CustomMessage, &s.LastViewedAt,
			&s.DeactivatedAt, &s.CreatedAt, &s.UpdatedAt,
			&s.PropertyName, &s.PropertyCoverImage,
		); err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}

	return shares, rows.Err()
}

// UpdateShare applies an allow-listed patch to a share and returns the updated
// record. Token, property, creator and view count are immutable here.
// Deactivation is one-way: a true is_active patch never revives an inactive
// share (the current value is kept), while a false patch deactivates.
func (d *DB) UpdateShare(ctx context.Context, id uuid.UUID, patch *models.SharePatch) (*models.Share, error) {
	if patch.IsEmpty() {
		return nil, ErrNoShareUpdates
	}

	sql := `UPDATE property_shares SET updated_at = NOW()`
	var args []any

	if patch.IsActive != nil {
		n := strconv.Itoa(len(args) + 1)
		sql += `, is_active = CASE WHEN $` + n + `::boolean THEN is_active ELSE FALSE END,
			deactivated_at = CASE WHEN NOT $` + n + `::boolean AND is_active THEN NOW() ELSE deactivated_at END`
		args = append(args, *patch.IsActive)
	}
	if patch.ExpiresAt != nil {
		sql += `, expires_at = $` + strconv.Itoa(len(args)+1)
		args = append(args, *patch.ExpiresAt)
	}
	if patch.AllowedViews != nil {
		sql += `, allowed_views = $` + strconv.Itoa(len(args)+1)
		args = append(args, *patch.AllowedViews)
	}
	if patch.RequireClientInfo != nil {
		sql += `, require_client_info = $` + strconv.Itoa(len(args)+1)
		args = append(args, *patch.RequireClientInfo)
	}
	if patch.AllowDownloads != nil {
		sql += `, allow_downloads = $` + strconv.Itoa(len(args)+1)
		args = append(args, *patch.AllowDownloads)
	}
	if patch.CustomMessage != nil {
		sql += `, custom_message = $` + strconv.Itoa(len(args)+1)
		args = append(args, *patch.CustomMessage)
	}

	sql += ` WHERE id = $` + strconv.Itoa(len(args)+1) + ` RETURNING ` + shareColumns
	args = append(args, id)

	return scanShare(d.Pool.QueryRow(ctx, sql, args...))
}

// DeactivateShare flips a share inactive. Idempotent: deactivating an already
// inactive share succeeds and leaves deactivated_at unchanged.
func (d *DB) DeactivateShare(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE property_shares
		SET is_active = FALSE,
			deactivated_at = COALESCE(deactivated_at, NOW()),
			updated_at = NOW()
		WHERE id = $1
	`
	result, err := d.Pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrShareNotFound
	}
	return nil
}

// RegisterView increments the view counter for a share in a single conditional
// update. The increment only lands while the share is active, unexpired and
// below its view limit, so two concurrent requests can never push view_count
// past allowed_views. Returns the new view count, or ErrShareInactive when the
// guard rejected the increment (the caller re-reads to classify the reason).
func (d *DB) RegisterView(ctx context.Context, id uuid.UUID) (int, error) {
	query := `
		UPDATE property_shares
		SET view_count = view_count + 1,
			last_viewed_at = NOW(),
			updated_at = NOW()
		WHERE id = $1
			AND is_active
			AND expires_at > NOW()
			AND (allowed_views IS NULL OR view_count < allowed_views)
		RETURNING view_count
	`

	var viewCount int
	err := d.Pool.QueryRow(ctx, query, id).Scan(&viewCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrShareInactive
	}
	if err != nil {
		return 0, err
	}
	return viewCount, nil
}

// SetShareClientInfo stores visitor identification on a share. First write
// wins: fields already on file are kept even when a later visitor supplies
// different values.
func (d *DB) SetShareClientInfo(ctx context.Context, id uuid.UUID, name, email string) error {
	query := `
		UPDATE property_shares
		SET client_name = COALESCE(client_name, $2),
			client_email = COALESCE(client_email, $3),
			updated_at = NOW()
		WHERE id = $1
	`
	result, err := d.Pool.Exec(ctx, query, id, name, email)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrShareNotFound
	}
	return nil
}

// CleanupExpiredShares deactivates every active share whose expiry has passed
// or whose view limit has been reached, and returns the number affected. Safe
// to run repeatedly and concurrently with resolution: re-deactivating is a
// no-op.
func (d *DB) CleanupExpiredShares(ctx context.Context) (int, error) {
	query := `
		UPDATE property_shares
		SET is_active = FALSE,
			deactivated_at = COALESCE(deactivated_at, NOW()),
			updated_at = NOW()
		WHERE is_active
			AND (expires_at < NOW()
				OR (allowed_views IS NOT NULL AND view_count >= allowed_views))
	`
	result, err := d.Pool.Exec(ctx, query)
	if err != nil {
		return 0, err
	}
	return int(result.RowsAffected()), nil
}
