package workbook

import (
	"fmt"
	"strings"
	"time"
)

var dateLayouts = []string{"2006-01-02", "2006/01/02"}

// ParseDate coerces a cell to a calendar date. Date-formatted numeric cells
// yield their stored date directly; string cells are tried against
// yyyy-MM-dd and then yyyy/MM/dd.
func ParseDate(c Cell) (time.Time, error) {
	if c.Kind == CellNumeric && c.IsDate {
		d := c.Date
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC), nil
	}

	raw := c.Text()
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %s", raw)
}

// TimeRange is a start/end pair of 24-hour clock times on the zero date.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// ParseTimeRange splits a time-range label on "~" or " - " and parses both
// tokens as HH:mm. Exactly two tokens are required.
func ParseTimeRange(text string) (TimeRange, error) {
	trimmed := strings.TrimSpace(text)

	parts := strings.Split(trimmed, "~")
	if len(parts) != 2 {
		parts = strings.Split(trimmed, " - ")
	}
	if len(parts) != 2 {
		return TimeRange{}, fmt.Errorf("invalid time range: %s", text)
	}

	start, err := time.Parse("15:04", strings.TrimSpace(parts[0]))
	if err != nil {
		return TimeRange{}, fmt.Errorf("invalid time range: %s", text)
	}
	end, err := time.Parse("15:04", strings.TrimSpace(parts[1]))
	if err != nil {
		return TimeRange{}, fmt.Errorf("invalid time range: %s", text)
	}

	return TimeRange{Start: start, End: end}, nil
}

// At anchors the clock times onto the given calendar day.
func (r TimeRange) At(day time.Time) (time.Time, time.Time) {
	start := time.Date(day.Year(), day.Month(), day.Day(), r.Start.Hour(), r.Start.Minute(), 0, 0, time.UTC)
	end := time.Date(day.Year(), day.Month(), day.Day(), r.End.Hour(), r.End.Minute(), 0, 0, time.UTC)
	return start, end
}

// SplitNames splits a comma-separated name list, trimming tokens and
// dropping empty ones.
//
// Headcount placeholders like "1~2명" describe an expected number of
// attendees rather than actual names; such a value yields zero names by
// rule, not an error. This mirrors the sheets produced by the recruiting
// team, where participant columns are sometimes filled before candidates
// are assigned.
func SplitNames(text string) []string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil
	}
	if strings.Contains(trimmed, "~") && strings.Contains(trimmed, "명") {
		return nil
	}

	parts := strings.Split(trimmed, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
