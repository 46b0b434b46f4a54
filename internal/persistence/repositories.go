package persistence

import (
	"context"
	"time"
)

// SessionFilter narrows session queries. A nil field means "no constraint".
type SessionFilter struct {
	// Date restricts results to sessions scheduled on this calendar day.
	Date *time.Time
	// Status restricts results to sessions with this status.
	Status *SessionStatus
}

// ListingFilter narrows the session-participant link listing. All populated
// fields are AND-combined.
type ListingFilter struct {
	Date     *time.Time
	Status   *SessionStatus
	Position string
}

// SessionRepository stores interview sessions.
type SessionRepository interface {
	CreateSession(ctx context.Context, session Session) error
	GetSession(ctx context.Context, id string) (Session, error)
	ListSessions(ctx context.Context, filter SessionFilter) ([]Session, error)
	DistinctRoomLabels(ctx context.Context, date *time.Time) ([]string, error)
}

// ParticipantRepository stores interview participants.
type ParticipantRepository interface {
	GetParticipant(ctx context.Context, id string) (Participant, error)
	GetParticipantByName(ctx context.Context, name string) (Participant, error)
	GetParticipantByApplicantCode(ctx context.Context, code string) (Participant, error)
	ListParticipantsByIDs(ctx context.Context, ids []string) ([]Participant, error)
}

// LinkRepository stores session-participant join rows.
type LinkRepository interface {
	ListLinksForSessions(ctx context.Context, sessionIDs []string) ([]SessionParticipantLink, error)
	ListLinksWithContext(ctx context.Context, filter ListingFilter) ([]LinkWithContext, error)
}
