package importer

import (
	"context"
	"time"

	"github.com/example/interview-scheduler/internal/persistence"
)

// ScheduleLinker creates session-participant join rows. No uniqueness check
// is made on the (session, participant) pair: a name listed twice in one
// imported row creates two links.
type ScheduleLinker struct {
	idGen func() string
	now   func() time.Time
}

// NewScheduleLinker builds a linker with the given id and time sources.
func NewScheduleLinker(idGen func() string, now func() time.Time) *ScheduleLinker {
	return &ScheduleLinker{idGen: idGen, now: now}
}

// Link joins one session to one participant with the current timestamp.
func (l *ScheduleLinker) Link(ctx context.Context, store Store, sessionID, participantID string) (persistence.SessionParticipantLink, error) {
	link := persistence.SessionParticipantLink{
		ID:            l.idGen(),
		SessionID:     sessionID,
		ParticipantID: participantID,
		CreatedAt:     l.now(),
	}
	if err := store.CreateLink(ctx, link); err != nil {
		return persistence.SessionParticipantLink{}, err
	}
	return link, nil
}
