// Package views reconstructs read-views of the interview schedule from the
// persisted sessions, participants, and links. Builders hold no state between
// calls; every identifier registry is scoped to a single build.
package views

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/example/interview-scheduler/internal/persistence"
)

// Repository is the read surface the builders need. *sqlite.Store satisfies it.
type Repository interface {
	ListSessions(ctx context.Context, filter persistence.SessionFilter) ([]persistence.Session, error)
	DistinctRoomLabels(ctx context.Context, date *time.Time) ([]string, error)
	ListLinksForSessions(ctx context.Context, sessionIDs []string) ([]persistence.SessionParticipantLink, error)
	ListParticipantsByIDs(ctx context.Context, ids []string) ([]persistence.Participant, error)
	ListLinksWithContext(ctx context.Context, filter persistence.ListingFilter) ([]persistence.LinkWithContext, error)
}

// Builder assembles schedule views from the repository.
type Builder struct {
	repo Repository
}

func NewBuilder(repo Repository) *Builder {
	return &Builder{repo: repo}
}

const (
	viewFetchedMessage    = "면접 일정이 성공적으로 조회되었습니다."
	allFetchedMessage     = "전체 면접 일정을 성공적으로 조회했습니다."
	roomNamePrefix        = "면접실 "
	slotIDPrefix          = "ts_"
	candidateIDPrefix     = "c"
	detailedTimeSeparator = " - "
	simpleTimeSeparator   = "~"
)

// sessionEnd resolves the display end of a session: the stored end when
// present, otherwise one hour after the start.
func sessionEnd(s persistence.Session) time.Time {
	if s.ScheduledEnd != nil {
		return *s.ScheduledEnd
	}
	return s.ScheduledAt.Add(time.Hour)
}

func timeRangeLabel(s persistence.Session, sep string) string {
	return s.ScheduledAt.Format("15:04") + sep + sessionEnd(s).Format("15:04")
}

// interviewerRegistry assigns stable identifiers to interviewer names in
// first-seen order within one build.
type interviewerRegistry struct {
	ids   map[string]string
	order []string
}

func newInterviewerRegistry() *interviewerRegistry {
	return &interviewerRegistry{ids: make(map[string]string)}
}

func (r *interviewerRegistry) idFor(name string) string {
	if id, ok := r.ids[name]; ok {
		return id
	}
	id := fmt.Sprintf("i%d", len(r.order)+1)
	r.ids[name] = id
	r.order = append(r.order, name)
	return id
}

// sessionGraph is the fetched state shared by the detailed and simple builds.
type sessionGraph struct {
	sessions       []persistence.Session
	linksBySession map[string][]persistence.SessionParticipantLink
	participants   map[string]persistence.Participant
}

func (b *Builder) loadGraph(ctx context.Context, filter persistence.SessionFilter) (*sessionGraph, error) {
	sessions, err := b.repo.ListSessions(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	g := &sessionGraph{
		sessions:       sessions,
		linksBySession: make(map[string][]persistence.SessionParticipantLink),
		participants:   make(map[string]persistence.Participant),
	}
	if len(sessions) == 0 {
		return g, nil
	}
	sessionIDs := make([]string, 0, len(sessions))
	for _, s := range sessions {
		sessionIDs = append(sessionIDs, s.ID)
	}
	links, err := b.repo.ListLinksForSessions(ctx, sessionIDs)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	participantIDs := make([]string, 0, len(links))
	seen := make(map[string]bool, len(links))
	for _, l := range links {
		g.linksBySession[l.SessionID] = append(g.linksBySession[l.SessionID], l)
		if !seen[l.ParticipantID] {
			seen[l.ParticipantID] = true
			participantIDs = append(participantIDs, l.ParticipantID)
		}
	}
	people, err := b.repo.ListParticipantsByIDs(ctx, participantIDs)
	if err != nil {
		return nil, fmt.Errorf("list participants: %w", err)
	}
	for _, p := range people {
		g.participants[p.ID] = p
	}
	return g, nil
}

// DetailedSchedule builds the grouped view: rooms, time slots, and a
// deduplicated people list with registry-assigned interviewer identifiers.
func (b *Builder) DetailedSchedule(ctx context.Context, filter persistence.SessionFilter) (DetailedScheduleView, error) {
	g, err := b.loadGraph(ctx, filter)
	if err != nil {
		return DetailedScheduleView{}, err
	}

	reg := newInterviewerRegistry()
	view := DetailedScheduleView{
		Rooms:     []Room{},
		TimeSlots: []TimeSlot{},
		People:    []Person{},
		Message:   viewFetchedMessage,
	}

	seenCandidate := make(map[string]bool)
	seenInterviewer := make(map[string]bool)

	for _, s := range g.sessions {
		slot := TimeSlot{
			ID:             slotIDPrefix + s.ID,
			RoomID:         s.RoomLabel,
			TimeRangeLabel: timeRangeLabel(s, detailedTimeSeparator),
			InterviewerIDs: []string{},
			ParticipantIDs: []string{},
		}
		for _, name := range s.Interviewers {
			id := reg.idFor(name)
			slot.InterviewerIDs = appendUnique(slot.InterviewerIDs, id)
		}
		slotSeen := make(map[string]bool)
		for _, l := range g.linksBySession[s.ID] {
			cid := candidateIDPrefix + l.ParticipantID
			if !slotSeen[cid] {
				slotSeen[cid] = true
				slot.ParticipantIDs = append(slot.ParticipantIDs, cid)
			}
			if !seenCandidate[l.ParticipantID] {
				seenCandidate[l.ParticipantID] = true
				if p, ok := g.participants[l.ParticipantID]; ok {
					view.People = append(view.People, Person{ID: cid, Name: p.Name, Role: RoleCandidate})
				}
			}
		}
		view.TimeSlots = append(view.TimeSlots, slot)
	}

	for _, s := range g.sessions {
		for _, name := range s.Interviewers {
			if seenInterviewer[name] {
				continue
			}
			seenInterviewer[name] = true
			view.People = append(view.People, Person{ID: reg.idFor(name), Name: name, Role: RoleInterviewer})
		}
	}

	labels := roomLabels(g.sessions)
	if len(labels) == 0 {
		labels, err = b.repo.DistinctRoomLabels(ctx, nil)
		if err != nil {
			return DetailedScheduleView{}, fmt.Errorf("list room labels: %w", err)
		}
	}
	for _, label := range labels {
		view.Rooms = append(view.Rooms, Room{ID: label, Label: roomNamePrefix + label})
	}
	return view, nil
}

// SimpleSchedule builds the flat view: one item per session in start order,
// names carried verbatim without deduplication across sessions.
func (b *Builder) SimpleSchedule(ctx context.Context, filter persistence.SessionFilter) (SimpleScheduleView, error) {
	g, err := b.loadGraph(ctx, filter)
	if err != nil {
		return SimpleScheduleView{}, err
	}
	view := SimpleScheduleView{Schedules: []ScheduleItem{}, Message: allFetchedMessage}
	if filter.Date != nil {
		view.Message = viewFetchedMessage
	}
	for _, s := range g.sessions {
		item := ScheduleItem{
			Date:             s.ScheduledAt.Format("2006-01-02"),
			TimeRangeLabel:   timeRangeLabel(s, simpleTimeSeparator),
			RoomLabel:        roomNamePrefix + s.RoomLabel,
			Status:           s.Status.Label(),
			InterviewerNames: append([]string{}, s.Interviewers...),
			ParticipantNames: []string{},
		}
		for _, l := range g.linksBySession[s.ID] {
			if p, ok := g.participants[l.ParticipantID]; ok {
				item.ParticipantNames = append(item.ParticipantNames, p.Name)
			}
		}
		view.Schedules = append(view.Schedules, item)
	}
	return view, nil
}

// ParticipantListing fans links out one entry per link so a participant
// interviewed twice appears twice, each with its own session context.
func (b *Builder) ParticipantListing(ctx context.Context, filter persistence.ListingFilter) (ParticipantListing, error) {
	rows, err := b.repo.ListLinksWithContext(ctx, filter)
	if err != nil {
		return ParticipantListing{}, fmt.Errorf("list links with context: %w", err)
	}
	listing := ParticipantListing{Data: []ParticipantEntry{}}
	for _, r := range rows {
		score := r.Participant.Score
		if r.Link.Score != nil {
			score = *r.Link.Score
		}
		listing.Data = append(listing.Data, ParticipantEntry{
			ParticipantID: r.Participant.ID,
			Name:          r.Participant.Name,
			ApplicantCode: r.Participant.ApplicantCode,
			Position:      r.Participant.Position,
			Score:         score,
			SessionContext: SessionContext{
				Date:   r.Session.ScheduledAt.Format("2006-01-02"),
				Status: r.Session.Status.Label(),
				Room:   roomNamePrefix + r.Session.RoomLabel,
			},
		})
	}
	listing.TotalCount = len(listing.Data)
	return listing, nil
}

func roomLabels(sessions []persistence.Session) []string {
	seen := make(map[string]bool, len(sessions))
	labels := make([]string, 0, len(sessions))
	for _, s := range sessions {
		if s.RoomLabel == "" || seen[s.RoomLabel] {
			continue
		}
		seen[s.RoomLabel] = true
		labels = append(labels, s.RoomLabel)
	}
	sort.Strings(labels)
	return labels
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}
