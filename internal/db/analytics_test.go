package db

import (
	"context"
	"testing"
	"time"

	"propshare/internal/models"
)

func TestGetSharingAnalytics(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	propertyA := createTestProperty(t, db)
	propertyB := createTestProperty(t, db)

	alice := "Alice"
	aliceEmail := "alice@example.com"
	shareA := createTestShare(t, db, propertyA.ID, func(s *models.Share) {
		s.ClientName = &alice
		s.ClientEmail = &aliceEmail
	})
	createTestShare(t, db, propertyA.ID, nil)
	shareB := createTestShare(t, db, propertyB.ID, func(s *models.Share) {
		s.ExpiresAt = time.Now().Add(-time.Hour)
	})
	_ = shareB

	for i := 0; i < 3; i++ {
		if _, err := db.RegisterView(ctx, shareA.ID); err != nil {
			t.Fatalf("RegisterView() error = %v", err)
		}
	}

	analytics, err := db.GetSharingAnalytics(ctx, AnalyticsFilters{
		StartDate: time.Now().Add(-24 * time.Hour),
		EndDate:   time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("GetSharingAnalytics() error = %v", err)
	}

	if analytics.Summary.TotalShares != 3 {
		t.Errorf("TotalShares = %d, want 3", analytics.Summary.TotalShares)
	}
	if analytics.Summary.ActiveShares != 2 {
		t.Errorf("ActiveShares = %d, want 2", analytics.Summary.ActiveShares)
	}
	if analytics.Summary.ExpiredShares != 1 {
		t.Errorf("ExpiredShares = %d, want 1", analytics.Summary.ExpiredShares)
	}
	if analytics.Summary.TotalViews != 3 {
		t.Errorf("TotalViews = %d, want 3", analytics.Summary.TotalViews)
	}
	if analytics.Summary.UniqueClients != 1 {
		t.Errorf("UniqueClients = %d, want 1", analytics.Summary.UniqueClients)
	}

	if len(analytics.ByProperty) != 2 {
		t.Fatalf("ByProperty has %d entries, want 2", len(analytics.ByProperty))
	}
	// Property A has the most shares, so it sorts first.
	if analytics.ByProperty[0].PropertyID != propertyA.ID.String() {
		t.Errorf("ByProperty[0] = %v, want property A", analytics.ByProperty[0].PropertyID)
	}
	if analytics.ByProperty[0].TotalViews != 3 {
		t.Errorf("ByProperty[0].TotalViews = %d, want 3", analytics.ByProperty[0].TotalViews)
	}

	month := time.Now().Format("2006-01")
	if len(analytics.ByMonth) != 1 || analytics.ByMonth[0].Month != month {
		t.Errorf("ByMonth = %+v, want single entry for %s", analytics.ByMonth, month)
	}

	if len(analytics.TopClients) != 1 {
		t.Fatalf("TopClients has %d entries, want 1", len(analytics.TopClients))
	}
	if analytics.TopClients[0].Email != aliceEmail {
		t.Errorf("TopClients[0].Email = %v, want %s", analytics.TopClients[0].Email, aliceEmail)
	}
	if analytics.TopClients[0].Views != 3 {
		t.Errorf("TopClients[0].Views = %d, want 3", analytics.TopClients[0].Views)
	}
}

func TestGetSharingAnalyticsCountsDeactivatedAsExpired(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	property := createTestProperty(t, db)
	revoked := createTestShare(t, db, property.ID, nil)
	createTestShare(t, db, property.ID, nil)

	if err := db.DeactivateShare(ctx, revoked.ID); err != nil {
		t.Fatalf("DeactivateShare() error = %v", err)
	}

	analytics, err := db.GetSharingAnalytics(ctx, AnalyticsFilters{
		StartDate: time.Now().Add(-24 * time.Hour),
		EndDate:   time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("GetSharingAnalytics() error = %v", err)
	}

	// A revoked share is dead even though its expiry is in the future.
	if analytics.Summary.ActiveShares != 1 {
		t.Errorf("ActiveShares = %d, want 1", analytics.Summary.ActiveShares)
	}
	if analytics.Summary.ExpiredShares != 1 {
		t.Errorf("ExpiredShares = %d, want 1", analytics.Summary.ExpiredShares)
	}
}

func TestGetSharingAnalyticsFilterByProperty(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	propertyA := createTestProperty(t, db)
	propertyB := createTestProperty(t, db)
	createTestShare(t, db, propertyA.ID, nil)
	createTestShare(t, db, propertyB.ID, nil)

	analytics, err := db.GetSharingAnalytics(ctx, AnalyticsFilters{
		PropertyID: &propertyA.ID,
		StartDate:  time.Now().Add(-24 * time.Hour),
		EndDate:    time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("GetSharingAnalytics() error = %v", err)
	}
	if analytics.Summary.TotalShares != 1 {
		t.Errorf("TotalShares = %d, want 1", analytics.Summary.TotalShares)
	}
	if len(analytics.ByProperty) != 1 {
		t.Errorf("ByProperty has %d entries, want 1", len(analytics.ByProperty))
	}
}

func TestGetSharingAnalyticsEmptyRange(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	analytics, err := db.GetSharingAnalytics(context.Background(), AnalyticsFilters{
		StartDate: time.Now().Add(-48 * time.Hour),
		EndDate:   time.Now().Add(-24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("GetSharingAnalytics() error = %v", err)
	}

	if analytics.Summary.TotalShares != 0 || analytics.Summary.TotalViews != 0 {
		t.Errorf("empty range summary = %+v, want zeros", analytics.Summary)
	}
	if analytics.ByProperty == nil || analytics.ByMonth == nil || analytics.TopClients == nil {
		t.Error("empty range groupings should be empty slices, not nil")
	}
	if len(analytics.ByProperty) != 0 || len(analytics.ByMonth) != 0 || len(analytics.TopClients) != 0 {
		t.Errorf("empty range groupings should have no entries")
	}
}
