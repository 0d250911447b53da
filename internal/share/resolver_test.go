package share

import (
	"context"
	"errors"
	"testing"
	"time"

	"propshare/internal/db"
	"propshare/internal/models"
	"propshare/internal/testutil"
)

func setupService(t *testing.T) (*Service, *db.DB, func()) {
	t.Helper()
	database, cleanup := testutil.TestDB(t)
	svc := NewService(database, 168*time.Hour, 720*time.Hour)
	return svc, database, cleanup
}

func TestCreateShareDefaults(t *testing.T) {
	svc, database, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	agent := testutil.CreateTestUser(t, database, "agent-1", models.RoleEditor)
	property := testutil.CreateTestProperty(t, database, "Lakeview Cottage", &agent.ID)

	share, err := svc.CreateShare(ctx, CreateRequest{
		PropertyID:     property.ID,
		CreatedBy:      agent.ID,
		AllowDownloads: true,
	})
	if err != nil {
		t.Fatalf("CreateShare() error = %v", err)
	}

	if share.Token == "" {
		t.Error("CreateShare() returned empty token")
	}
	if !share.IsActive {
		t.Error("new share should be active")
	}

	// Default lifetime is 168 hours.
	wantExpiry := time.Now().Add(168 * time.Hour)
	if diff := share.ExpiresAt.Sub(wantExpiry); diff < -time.Minute || diff > time.Minute {
		t.Errorf("ExpiresAt = %v, want about %v", share.ExpiresAt, wantExpiry)
	}
}

func TestCreateShareClampsExpiry(t *testing.T) {
	svc, database, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	agent := testutil.CreateTestUser(t, database, "agent-2", models.RoleEditor)
	property := testutil.CreateTestProperty(t, database, "Hilltop House", &agent.ID)

	share, err := svc.CreateShare(ctx, CreateRequest{
		PropertyID:  property.ID,
		CreatedBy:   agent.ID,
		ExpiryHours: 10000, // beyond the 720h cap
	})
	if err != nil {
		t.Fatalf("CreateShare() error = %v", err)
	}

	wantExpiry := time.Now().Add(720 * time.Hour)
	if diff := share.ExpiresAt.Sub(wantExpiry); diff < -time.Minute || diff > time.Minute {
		t.Errorf("ExpiresAt = %v, want clamped to about %v", share.ExpiresAt, wantExpiry)
	}
}

func TestCreateShareUnknownProperty(t *testing.T) {
	svc, database, cleanup := setupService(t)
	defer cleanup()

	agent := testutil.CreateTestUser(t, database, "agent-3", models.RoleEditor)
	property := testutil.CreateTestProperty(t, database, "Deleted Duplex", &agent.ID)
	if err := database.DeleteProperty(context.Background(), property.ID); err != nil {
		t.Fatalf("DeleteProperty() error = %v", err)
	}

	_, err := svc.CreateShare(context.Background(), CreateRequest{
		PropertyID: property.ID,
		CreatedBy:  agent.ID,
	})
	if !errors.Is(err, db.ErrPropertyNotFound) {
		t.Errorf("CreateShare() error = %v, want ErrPropertyNotFound", err)
	}
}

func TestResolveAccepted(t *testing.T) {
	svc, database, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	property := testutil.CreateTestProperty(t, database, "Garden Flat", nil)
	share := testutil.CreateTestShare(t, database, property.ID, nil)

	res, err := svc.Resolve(ctx, share.Token, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Outcome != Accepted {
		t.Fatalf("Resolve() outcome = %v, want Accepted", res.Outcome)
	}
	if res.Property == nil || res.Property.ID != property.ID {
		t.Error("Resolve() did not return the shared property")
	}
	if res.Share.ViewCount != 1 {
		t.Errorf("view count after resolve = %d, want 1", res.Share.ViewCount)
	}
}

func TestResolveUnknownToken(t *testing.T) {
	svc, _, cleanup := setupService(t)
	defer cleanup()

	res, err := svc.Resolve(context.Background(), "completely-unknown-token-value", nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Outcome != InvalidToken {
		t.Errorf("Resolve() outcome = %v, want InvalidToken", res.Outcome)
	}
}

func TestResolveExpiredDeactivates(t *testing.T) {
	svc, database, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	property := testutil.CreateTestProperty(t, database, "Old Barn", nil)
	share := testutil.CreateTestShare(t, database, property.ID, func(s *models.Share) {
		s.ExpiresAt = time.Now().Add(-time.Minute)
	})

	res, err := svc.Resolve(ctx, share.Token, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Outcome != Expired {
		t.Errorf("Resolve() outcome = %v, want Expired", res.Outcome)
	}

	// Resolution of an expired share lazily flips it inactive.
	got, err := database.GetShareByID(ctx, share.ID)
	if err != nil {
		t.Fatalf("GetShareByID() error = %v", err)
	}
	if got.IsActive {
		t.Error("expired share still active after resolution")
	}
	if got.ViewCount != 0 {
		t.Errorf("expired share view_count = %d, want 0", got.ViewCount)
	}
}

func TestResolveDeactivatedReportsExpired(t *testing.T) {
	svc, database, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	property := testutil.CreateTestProperty(t, database, "Quiet Cabin", nil)
	share := testutil.CreateTestShare(t, database, property.ID, nil)
	if err := database.DeactivateShare(ctx, share.ID); err != nil {
		t.Fatalf("DeactivateShare() error = %v", err)
	}

	res, err := svc.Resolve(ctx, share.Token, nil)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Outcome != Expired {
		t.Errorf("Resolve() outcome = %v, want Expired", res.Outcome)
	}
}

func TestResolveViewLimit(t *testing.T) {
	svc, database, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	property := testutil.CreateTestProperty(t, database, "Penthouse", nil)

	limit := 1
	share := testutil.CreateTestShare(t, database, property.ID, func(s *models.Share) {
		s.AllowedViews = &limit
	})

	res, err := svc.Resolve(ctx, share.Token, nil)
	if err != nil {
		t.Fatalf("first Resolve() error = %v", err)
	}
	if res.Outcome != Accepted {
		t.Fatalf("first Resolve() outcome = %v, want Accepted", res.Outcome)
	}

	res, err = svc.Resolve(ctx, share.Token, nil)
	if err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}
	if res.Outcome != ViewLimitExceeded {
		t.Errorf("second Resolve() outcome = %v, want ViewLimitExceeded", res.Outcome)
	}
}

func TestResolveNeedsInfoConsumesNoView(t *testing.T) {
	svc, database, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	property := testutil.CreateTestProperty(t, database, "Showroom Loft", nil)
	share := testutil.CreateTestShare(t, database, property.ID, func(s *models.Share) {
		s.RequireClientInfo = true
	})

	// Anonymous lookups can be repeated; none of them consume a view.
	for i := 0; i < 3; i++ {
		res, err := svc.Resolve(ctx, share.Token, nil)
		if err != nil {
			t.Fatalf("Resolve() error = %v", err)
		}
		if res.Outcome != NeedsInfo {
			t.Fatalf("Resolve() outcome = %v, want NeedsInfo", res.Outcome)
		}
	}

	got, err := database.GetShareByID(ctx, share.ID)
	if err != nil {
		t.Fatalf("GetShareByID() error = %v", err)
	}
	if got.ViewCount != 0 {
		t.Errorf("view_count after NeedsInfo lookups = %d, want 0", got.ViewCount)
	}

	// Supplying the info completes the resolution and stores it.
	res, err := svc.Resolve(ctx, share.Token, &ClientInfo{Name: "Carol", Email: "carol@example.com"})
	if err != nil {
		t.Fatalf("Resolve() with info error = %v", err)
	}
	if res.Outcome != Accepted {
		t.Fatalf("Resolve() with info outcome = %v, want Accepted", res.Outcome)
	}

	got, err = database.GetShareByID(ctx, share.ID)
	if err != nil {
		t.Fatalf("GetShareByID() error = %v", err)
	}
	if got.ClientName == nil || *got.ClientName != "Carol" {
		t.Errorf("ClientName = %v, want Carol", got.ClientName)
	}
	if got.ViewCount != 1 {
		t.Errorf("view_count = %d, want 1", got.ViewCount)
	}
}

func TestResolveKeepsFirstClientInfo(t *testing.T) {
	svc, database, cleanup := setupService(t)
	defer cleanup()

	ctx := context.Background()
	property := testutil.CreateTestProperty(t, database, "Corner Office", nil)
	share := testutil.CreateTestShare(t, database, property.ID, nil)

	if _, err := svc.Resolve(ctx, share.Token, &ClientInfo{Name: "Dave", Email: "dave@example.com"}); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if _, err := svc.Resolve(ctx, share.Token, &ClientInfo{Name: "Eve", Email: "eve@example.com"}); err != nil {
		t.Fatalf("second Resolve() error = %v", err)
	}

	got, err := database.GetShareByID(ctx, share.ID)
	if err != nil {
		t.Fatalf("GetShareByID() error = %v", err)
	}
	if got.ClientName == nil || *got.ClientName != "Dave" {
		t.Errorf("ClientName = %v, want first visitor Dave", got.ClientName)
	}
	if got.ClientEmail == nil || *got.ClientEmail != "dave@example.com" {
		t.Errorf("ClientEmail = %v, want dave@example.com", got.ClientEmail)
	}
}
