package views_test

import (
	"context"
	"testing"
	"time"

	"github.com/example/interview-scheduler/internal/persistence"
	"github.com/example/interview-scheduler/internal/testfixtures"
	"github.com/example/interview-scheduler/internal/views"
)

var day = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)

func seedScheduleGraph(t *testing.T, h *testfixtures.SQLiteHarness) {
	t.Helper()

	end := day.Add(11 * time.Hour)
	h.SeedSession(t, persistence.Session{
		ID:           "s1",
		RoomLabel:    "A",
		Round:        1,
		ScheduledAt:  day.Add(10 * time.Hour),
		ScheduledEnd: &end,
		OrderNo:      1,
		Interviewers: []string{"김면접", "이면접"},
		Status:       persistence.StatusScheduled,
		CreatedAt:    day,
	})
	h.SeedSession(t, persistence.Session{
		ID:           "s2",
		RoomLabel:    "B",
		Round:        1,
		ScheduledAt:  day.Add(11 * time.Hour),
		OrderNo:      1,
		Interviewers: []string{"김면접"},
		Status:       persistence.StatusCompleted,
		CreatedAt:    day,
	})

	h.SeedParticipant(t, persistence.Participant{
		ID: "p1", Name: "홍길동", ApplicantCode: "APP-001", Position: "백엔드", Score: 70, CreatedAt: day,
	})
	h.SeedParticipant(t, persistence.Participant{
		ID: "p2", Name: "성춘향", ApplicantCode: "APP-002", Position: "프론트엔드", Score: 80, CreatedAt: day,
	})

	score := 90
	h.SeedLink(t, persistence.SessionParticipantLink{
		ID: "l1", SessionID: "s1", ParticipantID: "p1", CreatedAt: day,
	})
	h.SeedLink(t, persistence.SessionParticipantLink{
		ID: "l2", SessionID: "s1", ParticipantID: "p2", CreatedAt: day.Add(time.Minute),
	})
	h.SeedLink(t, persistence.SessionParticipantLink{
		ID: "l3", SessionID: "s2", ParticipantID: "p1", Score: &score, CreatedAt: day.Add(2 * time.Minute),
	})
}

func TestDetailedScheduleGroupsAndDeduplicates(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	seedScheduleGraph(t, h)
	builder := views.NewBuilder(h.Store)

	view, err := builder.DetailedSchedule(context.Background(), persistence.SessionFilter{Date: &day})
	if err != nil {
		t.Fatalf("DetailedSchedule returned error: %v", err)
	}

	if view.Message != "면접 일정이 성공적으로 조회되었습니다." {
		t.Fatalf("message = %q", view.Message)
	}

	if len(view.TimeSlots) != 2 {
		t.Fatalf("expected 2 time slots, got %d", len(view.TimeSlots))
	}
	first := view.TimeSlots[0]
	if first.ID != "ts_s1" || first.RoomID != "A" {
		t.Fatalf("first slot = %+v", first)
	}
	if first.TimeRangeLabel != "10:00 - 11:00" {
		t.Fatalf("first slot time range = %q", first.TimeRangeLabel)
	}
	if len(first.InterviewerIDs) != 2 || first.InterviewerIDs[0] != "i1" || first.InterviewerIDs[1] != "i2" {
		t.Fatalf("first slot interviewers = %v", first.InterviewerIDs)
	}
	if len(first.ParticipantIDs) != 2 || first.ParticipantIDs[0] != "cp1" || first.ParticipantIDs[1] != "cp2" {
		t.Fatalf("first slot candidates = %v", first.ParticipantIDs)
	}

	second := view.TimeSlots[1]
	if second.TimeRangeLabel != "11:00 - 12:00" {
		t.Fatalf("missing end should fall back to one hour, got %q", second.TimeRangeLabel)
	}
	if len(second.InterviewerIDs) != 1 || second.InterviewerIDs[0] != "i1" {
		t.Fatalf("shared interviewer must keep identifier i1, got %v", second.InterviewerIDs)
	}

	// 홍길동 sits in both sessions but appears once, and the shared
	// interviewer appears once.
	if len(view.People) != 4 {
		t.Fatalf("people = %+v, want 2 candidates and 2 interviewers", view.People)
	}
	byID := make(map[string]views.Person)
	for _, p := range view.People {
		byID[p.ID] = p
	}
	if p := byID["cp1"]; p.Name != "홍길동" || p.Role != views.RoleCandidate {
		t.Fatalf("cp1 = %+v", p)
	}
	if p := byID["i1"]; p.Name != "김면접" || p.Role != views.RoleInterviewer {
		t.Fatalf("i1 = %+v", p)
	}

	if len(view.Rooms) != 2 || view.Rooms[0].ID != "A" || view.Rooms[0].Label != "면접실 A" {
		t.Fatalf("rooms = %+v", view.Rooms)
	}
}

func TestDetailedScheduleFallsBackToAllRooms(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	seedScheduleGraph(t, h)
	builder := views.NewBuilder(h.Store)

	other := day.AddDate(0, 0, 7)
	view, err := builder.DetailedSchedule(context.Background(), persistence.SessionFilter{Date: &other})
	if err != nil {
		t.Fatalf("DetailedSchedule returned error: %v", err)
	}

	if len(view.TimeSlots) != 0 {
		t.Fatalf("expected no slots for empty day, got %d", len(view.TimeSlots))
	}
	if len(view.Rooms) != 2 {
		t.Fatalf("expected fallback to all known rooms, got %+v", view.Rooms)
	}
}

func TestSimpleScheduleProjectsSessionsInOrder(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	seedScheduleGraph(t, h)
	builder := views.NewBuilder(h.Store)

	view, err := builder.SimpleSchedule(context.Background(), persistence.SessionFilter{})
	if err != nil {
		t.Fatalf("SimpleSchedule returned error: %v", err)
	}
	if view.Message != "전체 면접 일정을 성공적으로 조회했습니다." {
		t.Fatalf("message = %q", view.Message)
	}
	if len(view.Schedules) != 2 {
		t.Fatalf("expected 2 items, got %d", len(view.Schedules))
	}

	first := view.Schedules[0]
	if first.Date != "2025-03-10" || first.TimeRangeLabel != "10:00~11:00" {
		t.Fatalf("first item = %+v", first)
	}
	if first.RoomLabel != "면접실 A" {
		t.Fatalf("room label = %q", first.RoomLabel)
	}
	if first.Status != "예정" {
		t.Fatalf("status label = %q", first.Status)
	}
	if len(first.ParticipantNames) != 2 || first.ParticipantNames[0] != "홍길동" {
		t.Fatalf("participant names = %v", first.ParticipantNames)
	}

	second := view.Schedules[1]
	if second.Status != "완료" {
		t.Fatalf("second status label = %q", second.Status)
	}
	if second.TimeRangeLabel != "11:00~12:00" {
		t.Fatalf("second time range = %q", second.TimeRangeLabel)
	}
}

func TestSimpleScheduleDateScopedMessage(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	seedScheduleGraph(t, h)
	builder := views.NewBuilder(h.Store)

	view, err := builder.SimpleSchedule(context.Background(), persistence.SessionFilter{Date: &day})
	if err != nil {
		t.Fatalf("SimpleSchedule returned error: %v", err)
	}
	if view.Message != "면접 일정이 성공적으로 조회되었습니다." {
		t.Fatalf("message = %q", view.Message)
	}
}

func TestParticipantListingFansOutPerLink(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	seedScheduleGraph(t, h)
	builder := views.NewBuilder(h.Store)

	listing, err := builder.ParticipantListing(context.Background(), persistence.ListingFilter{})
	if err != nil {
		t.Fatalf("ParticipantListing returned error: %v", err)
	}
	if listing.TotalCount != 3 || len(listing.Data) != 3 {
		t.Fatalf("expected 3 entries, got %d", listing.TotalCount)
	}

	// 홍길동 appears once per linked session.
	var hong []views.ParticipantEntry
	for _, e := range listing.Data {
		if e.ParticipantID == "p1" {
			hong = append(hong, e)
		}
	}
	if len(hong) != 2 {
		t.Fatalf("expected 홍길동 twice, got %d entries", len(hong))
	}

	// Session-scoped score wins over the participant score when present.
	if hong[0].Score != 70 {
		t.Fatalf("first entry score = %d, want participant fallback 70", hong[0].Score)
	}
	if hong[1].Score != 90 {
		t.Fatalf("second entry score = %d, want link score 90", hong[1].Score)
	}
	if hong[1].SessionContext.Room != "면접실 B" || hong[1].SessionContext.Status != "완료" {
		t.Fatalf("second entry context = %+v", hong[1].SessionContext)
	}
}

func TestParticipantListingFilters(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	seedScheduleGraph(t, h)
	builder := views.NewBuilder(h.Store)

	listing, err := builder.ParticipantListing(context.Background(), persistence.ListingFilter{Position: "프론트엔드"})
	if err != nil {
		t.Fatalf("ParticipantListing returned error: %v", err)
	}
	if listing.TotalCount != 1 || listing.Data[0].Name != "성춘향" {
		t.Fatalf("position filter result = %+v", listing.Data)
	}

	status := persistence.StatusCompleted
	listing, err = builder.ParticipantListing(context.Background(), persistence.ListingFilter{Status: &status})
	if err != nil {
		t.Fatalf("ParticipantListing returned error: %v", err)
	}
	if listing.TotalCount != 1 || listing.Data[0].ParticipantID != "p1" {
		t.Fatalf("status filter result = %+v", listing.Data)
	}
}

func TestParticipantListingEmptyResult(t *testing.T) {
	t.Parallel()

	h := testfixtures.NewSQLiteHarness(t)
	builder := views.NewBuilder(h.Store)

	listing, err := builder.ParticipantListing(context.Background(), persistence.ListingFilter{})
	if err != nil {
		t.Fatalf("ParticipantListing returned error: %v", err)
	}
	if listing.TotalCount != 0 || len(listing.Data) != 0 {
		t.Fatalf("expected empty listing, got %+v", listing)
	}
}
