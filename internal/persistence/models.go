package persistence

import (
	"fmt"
	"strings"
	"time"
)

// SessionStatus enumerates the lifecycle of an interview session.
type SessionStatus string

const (
	StatusScheduled  SessionStatus = "SCHEDULED"
	StatusInProgress SessionStatus = "IN_PROGRESS"
	StatusCompleted  SessionStatus = "COMPLETED"
	StatusCancelled  SessionStatus = "CANCELLED"
	StatusUndecided  SessionStatus = "UNDECIDED"
)

// Label returns the display label used by the scheduling UI.
func (s SessionStatus) Label() string {
	switch s {
	case StatusScheduled:
		return "예정"
	case StatusInProgress:
		return "진행중"
	case StatusCompleted:
		return "완료"
	case StatusCancelled:
		return "취소"
	case StatusUndecided:
		return "미정"
	default:
		return string(s)
	}
}

// ParseSessionStatus accepts an enum name (case-insensitive) or a display
// label. The empty string maps to StatusUndecided.
func ParseSessionStatus(value string) (SessionStatus, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return StatusUndecided, nil
	}
	for _, status := range []SessionStatus{
		StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled, StatusUndecided,
	} {
		if strings.EqualFold(trimmed, string(status)) || trimmed == status.Label() {
			return status, nil
		}
	}
	return "", fmt.Errorf("unknown session status: %s", trimmed)
}

// Session represents one scheduled interview occurrence.
type Session struct {
	ID           string
	RoomLabel    string
	Round        int
	ScheduledAt  time.Time
	ScheduledEnd *time.Time
	OrderNo      int
	Interviewers []string
	Status       SessionStatus
	CreatedAt    time.Time
}

// Participant represents a person being interviewed. Name is the natural key.
type Participant struct {
	ID            string
	Name          string
	ApplicantCode string
	Position      string
	Score         int
	CreatedAt     time.Time
}

// SessionParticipantLink joins one session to one participant and carries
// session-scoped attributes such as the per-session score.
type SessionParticipantLink struct {
	ID            string
	SessionID     string
	ParticipantID string
	Score         *int
	Comment       *string
	FilePath      *string
	CreatedAt     time.Time
}

// LinkWithContext is a link row joined with its session schedule context and
// the participant identity, as consumed by the participant listing.
type LinkWithContext struct {
	Link        SessionParticipantLink
	Session     Session
	Participant Participant
}
