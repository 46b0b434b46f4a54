package testfixtures

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/example/interview-scheduler/internal/persistence"
	"github.com/example/interview-scheduler/internal/persistence/sqlite"
)

// SQLiteHarness provides a migrated SQLite store backed by a temporary file
// for integration-style persistence tests.
type SQLiteHarness struct {
	Store *sqlite.Store

	cleanup func()
}

// Close releases resources associated with the harness.
func (h *SQLiteHarness) Close() {
	if h != nil && h.cleanup != nil {
		h.cleanup()
		h.cleanup = nil
	}
}

// NewSQLiteHarness opens a temporary database, runs migrations, and registers
// cleanup with the provided testing.TB.
func NewSQLiteHarness(tb testing.TB) *SQLiteHarness {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), "interviewd.db")
	store, err := sqlite.Open(path)
	if err != nil {
		tb.Fatalf("failed to open store: %v", err)
	}
	if err := store.Migrate(context.Background()); err != nil {
		_ = store.Close()
		tb.Fatalf("failed to migrate store: %v", err)
	}

	harness := &SQLiteHarness{
		Store:   store,
		cleanup: func() { _ = store.Close() },
	}
	tb.Cleanup(harness.Close)
	return harness
}

// SeedSession inserts a session directly, failing the test on error.
func (h *SQLiteHarness) SeedSession(tb testing.TB, session persistence.Session) {
	tb.Helper()
	err := h.Store.InTransaction(context.Background(), func(tx *sqlite.TxStore) error {
		return tx.CreateSession(context.Background(), session)
	})
	if err != nil {
		tb.Fatalf("failed to seed session: %v", err)
	}
}

// SeedParticipant inserts a participant directly, failing the test on error.
func (h *SQLiteHarness) SeedParticipant(tb testing.TB, participant persistence.Participant) {
	tb.Helper()
	err := h.Store.InTransaction(context.Background(), func(tx *sqlite.TxStore) error {
		return tx.CreateParticipants(context.Background(), []persistence.Participant{participant})
	})
	if err != nil {
		tb.Fatalf("failed to seed participant: %v", err)
	}
}

// SeedLink inserts a session-participant link directly, failing the test on
// error.
func (h *SQLiteHarness) SeedLink(tb testing.TB, link persistence.SessionParticipantLink) {
	tb.Helper()
	err := h.Store.InTransaction(context.Background(), func(tx *sqlite.TxStore) error {
		return tx.CreateLink(context.Background(), link)
	})
	if err != nil {
		tb.Fatalf("failed to seed link: %v", err)
	}
}
