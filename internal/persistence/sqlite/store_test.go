package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/interview-scheduler/internal/persistence"
	"github.com/example/interview-scheduler/internal/persistence/sqlite"
	"github.com/example/interview-scheduler/internal/testfixtures"
)

var day = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

func TestSessionRoundTrip(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	end := day.Add(11 * time.Hour)
	session := persistence.Session{
		ID:           "s1",
		RoomLabel:    "A",
		Round:        2,
		ScheduledAt:  day.Add(10 * time.Hour),
		ScheduledEnd: &end,
		OrderNo:      3,
		Interviewers: []string{"김면접", "이면접"},
		Status:       persistence.StatusInProgress,
		CreatedAt:    day,
	}
	h.SeedSession(t, session)

	got, err := h.Store.GetSession(context.Background(), "s1")
	if err != nil {
		t.Fatalf("GetSession returned error: %v", err)
	}
	if got.RoomLabel != "A" || got.Round != 2 || got.OrderNo != 3 {
		t.Fatalf("stored session = %+v", got)
	}
	if !got.ScheduledAt.Equal(session.ScheduledAt) {
		t.Fatalf("scheduled_at = %v, want %v", got.ScheduledAt, session.ScheduledAt)
	}
	if got.ScheduledEnd == nil || !got.ScheduledEnd.Equal(end) {
		t.Fatalf("scheduled_end = %v, want %v", got.ScheduledEnd, end)
	}
	if len(got.Interviewers) != 2 || got.Interviewers[1] != "이면접" {
		t.Fatalf("interviewers = %v", got.Interviewers)
	}
	if got.Status != persistence.StatusInProgress {
		t.Fatalf("status = %v", got.Status)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	_, err := h.Store.GetSession(context.Background(), "missing")
	if !errors.Is(err, persistence.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateSessionRejectsEndBeforeStart(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	end := day.Add(9 * time.Hour)
	err := h.Store.InTransaction(context.Background(), func(tx *sqlite.TxStore) error {
		return tx.CreateSession(context.Background(), persistence.Session{
			ID:           "bad",
			RoomLabel:    "A",
			Round:        1,
			ScheduledAt:  day.Add(10 * time.Hour),
			ScheduledEnd: &end,
			OrderNo:      1,
			Status:       persistence.StatusScheduled,
			CreatedAt:    day,
		})
	})
	if err == nil {
		t.Fatalf("expected constraint violation for end before start")
	}
}

func TestListSessionsFiltersAndOrders(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	h.SeedSession(t, testfixtures.NewSessionFixture(
		testfixtures.WithSessionID("list-a"),
		testfixtures.WithSessionTimes(day.Add(14*time.Hour), day.Add(15*time.Hour)),
	))
	h.SeedSession(t, testfixtures.NewSessionFixture(
		testfixtures.WithSessionID("list-b"),
		testfixtures.WithSessionTimes(day.Add(9*time.Hour), day.Add(10*time.Hour)),
		testfixtures.WithSessionStatus(persistence.StatusCancelled),
	))
	h.SeedSession(t, testfixtures.NewSessionFixture(
		testfixtures.WithSessionID("list-c"),
		testfixtures.WithSessionTimes(day.AddDate(0, 0, 1), day.AddDate(0, 0, 1).Add(time.Hour)),
	))

	byDay, err := h.Store.ListSessions(context.Background(), persistence.SessionFilter{Date: &day})
	if err != nil {
		t.Fatalf("ListSessions returned error: %v", err)
	}
	if len(byDay) != 2 || byDay[0].ID != "list-b" || byDay[1].ID != "list-a" {
		t.Fatalf("date filter = %+v, want list-b then list-a", byDay)
	}

	status := persistence.StatusCancelled
	byStatus, err := h.Store.ListSessions(context.Background(), persistence.SessionFilter{Status: &status})
	if err != nil {
		t.Fatalf("ListSessions returned error: %v", err)
	}
	if len(byStatus) != 1 || byStatus[0].ID != "list-b" {
		t.Fatalf("status filter = %+v, want only list-b", byStatus)
	}
}

func TestDistinctRoomLabels(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	h.SeedSession(t, testfixtures.NewSessionFixture(
		testfixtures.WithSessionRoom("B"),
		testfixtures.WithSessionTimes(day.Add(10*time.Hour), day.Add(11*time.Hour)),
	))
	h.SeedSession(t, testfixtures.NewSessionFixture(
		testfixtures.WithSessionRoom("A"),
		testfixtures.WithSessionTimes(day.Add(11*time.Hour), day.Add(12*time.Hour)),
	))
	h.SeedSession(t, testfixtures.NewSessionFixture(
		testfixtures.WithSessionRoom("C"),
		testfixtures.WithSessionTimes(day.AddDate(0, 0, 1), day.AddDate(0, 0, 1).Add(time.Hour)),
	))

	all, err := h.Store.DistinctRoomLabels(context.Background(), nil)
	if err != nil {
		t.Fatalf("DistinctRoomLabels returned error: %v", err)
	}
	if len(all) != 3 || all[0] != "A" || all[2] != "C" {
		t.Fatalf("all labels = %v, want A B C", all)
	}

	scoped, err := h.Store.DistinctRoomLabels(context.Background(), &day)
	if err != nil {
		t.Fatalf("DistinctRoomLabels returned error: %v", err)
	}
	if len(scoped) != 2 || scoped[0] != "A" || scoped[1] != "B" {
		t.Fatalf("scoped labels = %v, want A B", scoped)
	}
}

func TestCreateParticipantsRejectsDuplicateName(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	h.SeedParticipant(t, testfixtures.NewParticipantFixture(
		testfixtures.WithParticipantName("홍길동"),
	))

	err := h.Store.InTransaction(context.Background(), func(tx *sqlite.TxStore) error {
		return tx.CreateParticipants(context.Background(), []persistence.Participant{
			testfixtures.NewParticipantFixture(testfixtures.WithParticipantName("홍길동")),
		})
	})
	if !errors.Is(err, persistence.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestUpsertParticipantByNameReturnsExistingRow(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	existing := testfixtures.NewParticipantFixture(
		testfixtures.WithParticipantName("홍길동"),
		testfixtures.WithParticipantScore(85),
	)
	h.SeedParticipant(t, existing)

	var got persistence.Participant
	err := h.Store.InTransaction(context.Background(), func(tx *sqlite.TxStore) error {
		var err error
		got, err = tx.UpsertParticipantByName(context.Background(), persistence.Participant{
			ID:        "would-be-new",
			Name:      "홍길동",
			CreatedAt: day,
		})
		return err
	})
	if err != nil {
		t.Fatalf("UpsertParticipantByName returned error: %v", err)
	}
	if got.ID != existing.ID {
		t.Fatalf("upsert returned id %q, want existing %q", got.ID, existing.ID)
	}
	if got.Score != 85 {
		t.Fatalf("upsert must not overwrite existing score, got %d", got.Score)
	}
}

func TestCreateLinkRequiresExistingSession(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	participant := testfixtures.NewParticipantFixture()
	h.SeedParticipant(t, participant)

	err := h.Store.InTransaction(context.Background(), func(tx *sqlite.TxStore) error {
		return tx.CreateLink(context.Background(), persistence.SessionParticipantLink{
			ID:            "l1",
			SessionID:     "no-such-session",
			ParticipantID: participant.ID,
			CreatedAt:     day,
		})
	})
	if !errors.Is(err, persistence.ErrReferenceNotFound) {
		t.Fatalf("expected ErrReferenceNotFound, got %v", err)
	}
}

func TestDuplicateLinkPairsAreAllowed(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	session := testfixtures.NewSessionFixture()
	participant := testfixtures.NewParticipantFixture()
	h.SeedSession(t, session)
	h.SeedParticipant(t, participant)

	for _, id := range []string{"dup-1", "dup-2"} {
		h.SeedLink(t, persistence.SessionParticipantLink{
			ID:            id,
			SessionID:     session.ID,
			ParticipantID: participant.ID,
			CreatedAt:     day,
		})
	}

	links, err := h.Store.ListLinksForSessions(context.Background(), []string{session.ID})
	if err != nil {
		t.Fatalf("ListLinksForSessions returned error: %v", err)
	}
	if len(links) != 2 {
		t.Fatalf("expected both duplicate links stored, got %d", len(links))
	}
}

func TestListLinksWithContextJoins(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	session := testfixtures.NewSessionFixture(
		testfixtures.WithSessionRoom("D"),
		testfixtures.WithSessionTimes(day.Add(10*time.Hour), day.Add(11*time.Hour)),
	)
	participant := testfixtures.NewParticipantFixture(
		testfixtures.WithParticipantName("심청"),
	)
	h.SeedSession(t, session)
	h.SeedParticipant(t, participant)

	score := 95
	h.SeedLink(t, persistence.SessionParticipantLink{
		ID:            "ctx-1",
		SessionID:     session.ID,
		ParticipantID: participant.ID,
		Score:         &score,
		CreatedAt:     day,
	})

	rows, err := h.Store.ListLinksWithContext(context.Background(), persistence.ListingFilter{Date: &day})
	if err != nil {
		t.Fatalf("ListLinksWithContext returned error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Session.RoomLabel != "D" || row.Participant.Name != "심청" {
		t.Fatalf("joined row = %+v", row)
	}
	if row.Link.Score == nil || *row.Link.Score != 95 {
		t.Fatalf("link score = %v, want 95", row.Link.Score)
	}
}
