package db

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"

	"propshare/internal/models"
)

// AnalyticsFilters narrows the analytics date range and grouping.
type AnalyticsFilters struct {
	PropertyID *uuid.UUID
	CreatedBy  *uuid.UUID
	StartDate  time.Time
	EndDate    time.Time
}

// analyticsWhere builds the shared WHERE clause for analytics queries.
func analyticsWhere(filters AnalyticsFilters) (string, []any) {
	sql := ` WHERE s.created_at >= $1 AND s.created_at <= $2`
	args := []any{filters.StartDate, filters.EndDate}

	if filters.PropertyID != nil {
		sql += ` AND s.property_id = $` + strconv.Itoa(len(args)+1)
		args = append(args, *filters.PropertyID)
	}
	if filters.CreatedBy != nil {
		sql += ` AND s.created_by = $` + strconv.Itoa(len(args)+1)
		args = append(args, *filters.CreatedBy)
	}

	return sql, args
}

// GetSharingAnalytics aggregates share usage over the filtered range. All
// aggregation happens in SQL; the empty range yields zero counts, never an
// error.
func (d *DB) GetSharingAnalytics(ctx context.Context, filters AnalyticsFilters) (*models.SharingAnalytics, error) {
	analytics := &models.SharingAnalytics{
		ByProperty: []models.PropertyShareStats{},
		ByMonth:    []models.MonthlyShareStats{},
		TopClients: []models.ClientShareStats{},
	}

	where, args := analyticsWhere(filters)

	// A share is expired once it can no longer be served: past its expiry,
	// or deactivated (manually or by the sweeper). Mirrors the resolver,
	// which reports deactivated links as expired.
	summaryQuery := `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE s.is_active AND s.expires_at > NOW()),
			COUNT(*) FILTER (WHERE NOT s.is_active OR s.expires_at <= NOW()),
			COALESCE(SUM(s.view_count), 0),
			COUNT(DISTINCT s.client_email) FILTER (WHERE s.client_email IS NOT NULL)
		FROM property_shares s` + where

	err := d.Pool.QueryRow(ctx, summaryQuery, args...).Scan(
		&analytics.Summary.TotalShares,
		&analytics.Summary.ActiveShares,
		&analytics.Summary.ExpiredShares,
		&analytics.Summary.TotalViews,
		&analytics.Summary.UniqueClients,
	)
	if err != nil {
		return nil, err
	}

	byPropertyQuery := `
		SELECT s.property_id::text, p.name,
			COUNT(*),
			COUNT(*) FILTER (WHERE s.is_active AND s.expires_at > NOW()),
			COALESCE(SUM(s.view_count), 0)
		FROM property_shares s
		JOIN properties p ON p.id = s.property_id` + where + `
		GROUP BY s.property_id, p.name
		ORDER BY COUNT(*) DESC, p.name ASC
	`
	rows, err := d.Pool.Query(ctx, byPropertyQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ps models.PropertyShareStats
		if err := rows.Scan(&ps.PropertyID, &ps.PropertyName, &ps.TotalShares, &ps.ActiveShares, &ps.TotalViews); err != nil {
			return nil, err
		}
		analytics.ByProperty = append(analytics.ByProperty, ps)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	byMonthQuery := `
		SELECT to_char(s.created_at, 'YYYY-MM'),
			COUNT(*),
			COALESCE(SUM(s.view_count), 0)
		FROM property_shares s` + where + `
		GROUP BY to_char(s.created_at, 'YYYY-MM')
		ORDER BY to_char(s.created_at, 'YYYY-MM') ASC
	`
	rows, err = d.Pool.Query(ctx, byMonthQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var ms models.MonthlyShareStats
		if err := rows.Scan(&ms.Month, &ms.Shares, &ms.Views); err != nil {
			return nil, err
		}
		analytics.ByMonth = append(analytics.ByMonth, ms)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	topClientsQuery := `
		SELECT s.client_email,
			COALESCE(MAX(s.client_name), ''),
			COALESCE(SUM(s.view_count), 0),
			COUNT(DISTINCT s.property_id)
		FROM property_shares s` + where + `
		AND s.client_email IS NOT NULL
		GROUP BY s.client_email
		ORDER BY COALESCE(SUM(s.view_count), 0) DESC
		LIMIT 20
	`
	rows, err = d.Pool.Query(ctx, topClientsQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var cs models.ClientShareStats
		if err := rows.Scan(&cs.Email, &cs.Name, &cs.Views, &cs.PropertiesViewed); err != nil {
			return nil, err
		}
		analytics.TopClients = append(analytics.TopClients, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return analytics, nil
}
