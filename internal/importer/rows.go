package importer

import (
	"strconv"
	"strings"
	"time"

	"github.com/example/interview-scheduler/internal/persistence"
	"github.com/example/interview-scheduler/internal/workbook"
)

const (
	scheduleRowWidth    = 5
	participantRowWidth = 8
)

// ScheduleRow is one validated 5-column schedule-import row: date,
// time-range, room, interviewer names, participant names.
type ScheduleRow struct {
	Row              int
	Date             time.Time
	Start            time.Time
	End              time.Time
	RoomLabel        string
	InterviewerNames []string
	ParticipantNames []string
}

// ParticipantRow is one validated 8-column participant-import row: name,
// applicant code, position, date, status, score, interviewer, location.
// The schedule-context columns are validated for format; only the identity
// columns and the score are persisted.
type ParticipantRow struct {
	Row           int
	Name          string
	ApplicantCode string
	Position      string
	Date          *time.Time
	Status        persistence.SessionStatus
	Score         int
	Interviewer   string
	Location      string
}

// IsBlankRow reports whether every cell in the positional layout coerces to
// the empty string. Blank rows are skipped silently and not counted.
func IsBlankRow(cells []workbook.Cell, width int) bool {
	for i := 0; i < width; i++ {
		if !workbook.CellAt(cells, i).IsBlank() {
			return false
		}
	}
	return true
}

// ParseScheduleRow assembles the coerced cells of one schedule row, or
// returns a single row-scoped error. Parsing is a pure function of the cell
// values: the row either coerces in full or not at all.
func ParseScheduleRow(cells []workbook.Cell, rowNum int) (ScheduleRow, error) {
	dateCell := workbook.CellAt(cells, 0)
	if dateCell.IsBlank() {
		return ScheduleRow{}, parseErrorf(rowNum, "missing required field: date")
	}
	date, err := workbook.ParseDate(dateCell)
	if err != nil {
		return ScheduleRow{}, parseErrorf(rowNum, "%s", err.Error())
	}

	timeCell := workbook.CellAt(cells, 1)
	if timeCell.IsBlank() {
		return ScheduleRow{}, parseErrorf(rowNum, "missing required field: time range")
	}
	timeRange, err := workbook.ParseTimeRange(timeCell.Text())
	if err != nil {
		return ScheduleRow{}, parseErrorf(rowNum, "%s", err.Error())
	}

	room := workbook.CellAt(cells, 2).Text()
	if room == "" {
		return ScheduleRow{}, parseErrorf(rowNum, "missing required field: room")
	}

	start, end := timeRange.At(date)

	return ScheduleRow{
		Row:              rowNum,
		Date:             date,
		Start:            start,
		End:              end,
		RoomLabel:        room,
		InterviewerNames: workbook.SplitNames(workbook.CellAt(cells, 3).Text()),
		ParticipantNames: workbook.SplitNames(workbook.CellAt(cells, 4).Text()),
	}, nil
}

// ParseParticipantRow assembles the coerced cells of one participant row, or
// returns a single row-scoped error.
func ParseParticipantRow(cells []workbook.Cell, rowNum int) (ParticipantRow, error) {
	name := workbook.CellAt(cells, 0).Text()
	if name == "" {
		return ParticipantRow{}, parseErrorf(rowNum, "missing required field: name")
	}
	code := workbook.CellAt(cells, 1).Text()
	if code == "" {
		return ParticipantRow{}, parseErrorf(rowNum, "missing required field: applicant id")
	}
	position := workbook.CellAt(cells, 2).Text()
	if position == "" {
		return ParticipantRow{}, parseErrorf(rowNum, "missing required field: position")
	}

	row := ParticipantRow{
		Row:           rowNum,
		Name:          name,
		ApplicantCode: code,
		Position:      position,
		Status:        persistence.StatusUndecided,
		Interviewer:   workbook.CellAt(cells, 6).Text(),
		Location:      workbook.CellAt(cells, 7).Text(),
	}

	if dateCell := workbook.CellAt(cells, 3); !dateCell.IsBlank() {
		date, err := workbook.ParseDate(dateCell)
		if err != nil {
			return ParticipantRow{}, parseErrorf(rowNum, "%s", err.Error())
		}
		row.Date = &date
	}

	status, err := persistence.ParseSessionStatus(workbook.CellAt(cells, 4).Text())
	if err != nil {
		return ParticipantRow{}, parseErrorf(rowNum, "%s", err.Error())
	}
	row.Status = status

	if scoreCell := workbook.CellAt(cells, 5); !scoreCell.IsBlank() {
		score, err := strconv.Atoi(strings.TrimSpace(scoreCell.Text()))
		if err != nil {
			return ParticipantRow{}, parseErrorf(rowNum, "invalid score: %s", scoreCell.Text())
		}
		row.Score = score
	}

	return row, nil
}
