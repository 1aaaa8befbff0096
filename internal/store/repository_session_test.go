package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/haneul-lab/cruise-companion/internal/logger"
	"github.com/haneul-lab/cruise-companion/models"
)

func newTestSessionRepo(t *testing.T) (*sessionRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &sessionRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func TestCreateSession_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	session := models.Session{
		SessionID: "aabbccdd",
		AccountID: 42,
		CSRFToken: "token",
		ExpiresAt: time.Now().Add(30 * 24 * time.Hour),
	}

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(session.SessionID, session.AccountID, session.CSRFToken, session.ExpiresAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestFindSessionByID_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	now := time.Now()
	expires := now.Add(30 * 24 * time.Hour)

	rows := sqlmock.
		NewRows([]string{"session_id", "account_id", "csrf_token", "expires_at", "created_at"}).
		AddRow("aabbccdd", 42, "token", expires, now)

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("aabbccdd").
		WillReturnRows(rows)

	found, err := repo.FindSessionByID(context.Background(), "aabbccdd")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found.AccountID != 42 {
		t.Errorf("expected AccountID=42, got %d", found.AccountID)
	}
	if !found.ExpiresAt.Equal(expires) {
		t.Errorf("expected expiry %v, got %v", expires, found.ExpiresAt)
	}
}

func TestFindSessionByID_NotFound(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM sessions").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindSessionByID(context.Background(), "missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDeleteSession_NotFound(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteSession(context.Background(), "missing")
	if !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestDeleteExpiredSessions_ReportsCount(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	now := time.Now()

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteExpiredSessions(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 3 {
		t.Errorf("expected 3 deleted sessions, got %d", deleted)
	}
}
