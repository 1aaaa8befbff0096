package store

import (
	"strings"
	"testing"
	"time"

	"github.com/haneul-lab/cruise-companion/models"
)

func TestBuildUpdateAccountQuery_LockTransition(t *testing.T) {
	lockedSentinel := "8300"
	status := models.StatusLocked
	lockedAt := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
	reason := "trial window elapsed"

	query, args, err := buildUpdateAccountQuery(models.AccountUpdate{
		AccountID:    5,
		Credential:   &lockedSentinel,
		Status:       &status,
		LockedAt:     &lockedAt,
		LockedReason: &reason,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, column := range []string{"credential", "lifecycle_status", "locked_at", "locked_reason"} {
		if !strings.Contains(query, column+" = $") {
			t.Errorf("expected SET clause for %s in %q", column, query)
		}
	}
	if !strings.Contains(query, "WHERE account_id = $5") {
		t.Errorf("expected WHERE on account_id, got %q", query)
	}
	if len(args) != 5 {
		t.Errorf("expected 5 args, got %d", len(args))
	}
}

func TestBuildUpdateAccountQuery_ClearLockAndTrial(t *testing.T) {
	status := models.StatusActive

	query, _, err := buildUpdateAccountQuery(models.AccountUpdate{
		AccountID:   5,
		Status:      &status,
		ClearTrial:  true,
		ClearLocked: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, column := range []string{"trial_started_at", "locked_at", "locked_reason"} {
		if !strings.Contains(query, column) {
			t.Errorf("expected SET clause for %s in %q", column, query)
		}
	}
}

func TestBuildUpdateAccountQuery_IncrementsLoginCountInPlace(t *testing.T) {
	now := time.Now()

	query, args, err := buildUpdateAccountQuery(models.AccountUpdate{
		AccountID:     5,
		LastActiveAt:  &now,
		IncLoginCount: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(query, "login_count = login_count + 1") {
		t.Errorf("expected in-place increment, got %q", query)
	}
	// last_active_at and account_id only; the increment adds no placeholder.
	if len(args) != 2 {
		t.Errorf("expected 2 args, got %d", len(args))
	}
}

func TestBuildUpdateAccountQuery_EmptySetListFails(t *testing.T) {
	_, _, err := buildUpdateAccountQuery(models.AccountUpdate{AccountID: 5})
	if err == nil {
		t.Fatal("expected error for empty SET list")
	}
}

func TestBuildInsertItineraryDaysQuery_OneRowPerDay(t *testing.T) {
	days := []models.ItineraryDay{
		{Day: 1, Type: models.ActivityEmbark, Location: "Barcelona"},
		{Day: 2, Type: models.ActivitySea},
		{Day: 3, Type: models.ActivityPort, Location: "Marseille"},
	}

	query, args, err := buildInsertItineraryDaysQuery(77, days)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(query, "INSERT INTO itinerary_days") {
		t.Errorf("unexpected query: %q", query)
	}
	if got := strings.Count(query, "($"); got != len(days) {
		t.Errorf("expected %d value tuples, got %d", len(days), got)
	}
	// 11 columns per day
	if len(args) != 11*len(days) {
		t.Errorf("expected %d args, got %d", 11*len(days), len(args))
	}
}
