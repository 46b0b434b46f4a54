package importer

import (
	"context"
	"time"

	"github.com/example/interview-scheduler/internal/persistence"
)

// ParticipantResolver performs get-or-create of participants by name,
// deduplicated within one batch run. The cache is scoped to one resolver
// instance and discarded with it; there is no process-wide registry.
type ParticipantResolver struct {
	cache   map[string]persistence.Participant
	pending map[string]persistence.Participant
	idGen   func() string
	now     func() time.Time
}

// NewParticipantResolver builds a resolver for a single import run.
func NewParticipantResolver(idGen func() string, now func() time.Time) *ParticipantResolver {
	return &ParticipantResolver{
		cache:   make(map[string]persistence.Participant),
		pending: make(map[string]persistence.Participant),
		idGen:   idGen,
		now:     now,
	}
}

// Resolve returns the participant with the given name, creating it with a
// zero default score when absent. The store performs an atomic
// insert-or-fetch, so the same new name referenced by two overlapping
// imports cannot produce duplicate rows.
//
// Resolutions performed inside an uncommitted transaction stay in a pending
// set until Commit; Discard drops them after a rollback so later rows do not
// reference participants that were never persisted.
func (r *ParticipantResolver) Resolve(ctx context.Context, store Store, name string) (persistence.Participant, error) {
	if p, ok := r.cache[name]; ok {
		return p, nil
	}
	if p, ok := r.pending[name]; ok {
		return p, nil
	}

	p, err := store.UpsertParticipantByName(ctx, persistence.Participant{
		ID:        r.idGen(),
		Name:      name,
		Score:     0,
		CreatedAt: r.now(),
	})
	if err != nil {
		return persistence.Participant{}, err
	}

	r.pending[name] = p
	return p, nil
}

// Commit promotes pending resolutions into the batch cache after the row's
// transaction committed.
func (r *ParticipantResolver) Commit() {
	for name, p := range r.pending {
		r.cache[name] = p
	}
	clear(r.pending)
}

// Discard drops pending resolutions after the row's transaction rolled back.
func (r *ParticipantResolver) Discard() {
	clear(r.pending)
}
