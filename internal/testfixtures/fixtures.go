package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/interview-scheduler/internal/persistence"
)

var (
	sessionCounter     uint64
	participantCounter uint64
)

// SessionOption configures a generated session fixture.
type SessionOption func(*persistence.Session)

// NewSessionFixture returns a deterministic session with optional overrides.
// Each call yields a distinct identifier and a start time staggered from
// ReferenceTime.
func NewSessionFixture(opts ...SessionOption) persistence.Session {
	idx := atomic.AddUint64(&sessionCounter, 1)
	start := referenceTime.Add(time.Duration(idx) * time.Hour)
	end := start.Add(30 * time.Minute)
	session := persistence.Session{
		ID:           fmt.Sprintf("session-%03d", idx),
		RoomLabel:    "A",
		Round:        1,
		ScheduledAt:  start,
		ScheduledEnd: &end,
		OrderNo:      1,
		Interviewers: []string{"김면접"},
		Status:       persistence.StatusScheduled,
		CreatedAt:    referenceTime,
	}
	for _, opt := range opts {
		opt(&session)
	}
	return session
}

// WithSessionID overrides the generated session identifier.
func WithSessionID(id string) SessionOption {
	return func(s *persistence.Session) {
		s.ID = id
	}
}

// WithSessionRoom overrides the room label.
func WithSessionRoom(label string) SessionOption {
	return func(s *persistence.Session) {
		s.RoomLabel = label
	}
}

// WithSessionTimes overrides the scheduled start and end.
func WithSessionTimes(start, end time.Time) SessionOption {
	return func(s *persistence.Session) {
		s.ScheduledAt = start
		s.ScheduledEnd = &end
	}
}

// WithoutSessionEnd clears the scheduled end time.
func WithoutSessionEnd() SessionOption {
	return func(s *persistence.Session) {
		s.ScheduledEnd = nil
	}
}

// WithSessionInterviewers overrides the interviewer names.
func WithSessionInterviewers(names ...string) SessionOption {
	return func(s *persistence.Session) {
		s.Interviewers = names
	}
}

// WithSessionStatus overrides the session status.
func WithSessionStatus(status persistence.SessionStatus) SessionOption {
	return func(s *persistence.Session) {
		s.Status = status
	}
}

// ParticipantOption configures a generated participant fixture.
type ParticipantOption func(*persistence.Participant)

// NewParticipantFixture returns a deterministic participant with optional
// overrides.
func NewParticipantFixture(opts ...ParticipantOption) persistence.Participant {
	idx := atomic.AddUint64(&participantCounter, 1)
	participant := persistence.Participant{
		ID:            fmt.Sprintf("participant-%03d", idx),
		Name:          fmt.Sprintf("지원자%03d", idx),
		ApplicantCode: fmt.Sprintf("APP-%03d", idx),
		Position:      "백엔드",
		Score:         0,
		CreatedAt:     referenceTime,
	}
	for _, opt := range opts {
		opt(&participant)
	}
	return participant
}

// WithParticipantID overrides the generated participant identifier.
func WithParticipantID(id string) ParticipantOption {
	return func(p *persistence.Participant) {
		p.ID = id
	}
}

// WithParticipantName overrides the generated name.
func WithParticipantName(name string) ParticipantOption {
	return func(p *persistence.Participant) {
		p.Name = name
	}
}

// WithParticipantCode overrides the generated applicant code.
func WithParticipantCode(code string) ParticipantOption {
	return func(p *persistence.Participant) {
		p.ApplicantCode = code
	}
}

// WithParticipantScore overrides the score.
func WithParticipantScore(score int) ParticipantOption {
	return func(p *persistence.Participant) {
		p.Score = score
	}
}
