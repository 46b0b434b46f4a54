package views

// Room identifies an interview room observed in the schedule.
type Room struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// TimeSlot is one session rendered onto the scheduling grid.
type TimeSlot struct {
	ID             string   `json:"id"`
	RoomID         string   `json:"roomId"`
	TimeRangeLabel string   `json:"timeRange"`
	InterviewerIDs []string `json:"interviewerIds"`
	ParticipantIDs []string `json:"candidateIds"`
}

// Person is an interviewer or candidate appearing in the detailed view.
type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

const (
	RoleInterviewer = "interviewer"
	RoleCandidate   = "candidate"
)

// DetailedScheduleView is the grouped, deduplicated read-view consumed by
// the scheduling grid UI.
type DetailedScheduleView struct {
	Rooms     []Room     `json:"rooms"`
	TimeSlots []TimeSlot `json:"timeSlots"`
	People    []Person   `json:"people"`
	Message   string     `json:"message"`
}

// ScheduleItem is one session in the flat view: a direct projection with no
// grouping pass.
type ScheduleItem struct {
	Date             string   `json:"interviewDate"`
	TimeRangeLabel   string   `json:"timeRange"`
	RoomLabel        string   `json:"roomName"`
	Status           string   `json:"status"`
	InterviewerNames []string `json:"interviewers"`
	ParticipantNames []string `json:"interviewees"`
}

// SimpleScheduleView lists sessions ordered by scheduled start ascending.
type SimpleScheduleView struct {
	Schedules []ScheduleItem `json:"schedules"`
	Message   string         `json:"message"`
}

// SessionContext carries the schedule context of one listing row.
type SessionContext struct {
	Date   string `json:"date"`
	Status string `json:"status"`
	Room   string `json:"room"`
}

// ParticipantEntry is one session-participant link with its context. A
// participant interviewed in two sessions yields two entries by design.
type ParticipantEntry struct {
	ParticipantID  string         `json:"participantId"`
	Name           string         `json:"name"`
	ApplicantCode  string         `json:"applicantId,omitempty"`
	Position       string         `json:"position,omitempty"`
	Score          int            `json:"score"`
	SessionContext SessionContext `json:"sessionContext"`
}

// ParticipantListing is the filtered link listing with its total count.
type ParticipantListing struct {
	Data       []ParticipantEntry `json:"data"`
	TotalCount int                `json:"totalCount"`
}
