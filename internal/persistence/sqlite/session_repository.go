package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/example/interview-scheduler/internal/persistence"
)

const sessionColumns = `id, room_label, round, scheduled_at, scheduled_end_at, order_no, interviewers, status, created_at`

// CreateSession inserts a new session inside the enclosing transaction.
func (t *TxStore) CreateSession(ctx context.Context, session persistence.Session) error {
	if session.ID == "" {
		return fmt.Errorf("sqlite: session id must not be empty")
	}

	var end sql.NullString
	if session.ScheduledEnd != nil {
		end.String = formatTime(*session.ScheduledEnd)
		end.Valid = true
	}

	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO sessions (`+sessionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID,
		session.RoomLabel,
		session.Round,
		formatTime(session.ScheduledAt),
		end,
		session.OrderNo,
		joinNames(session.Interviewers),
		string(session.Status),
		formatTime(session.CreatedAt),
	)
	return mapError(err)
}

// GetSession retrieves one session by id.
func (s *Store) GetSession(ctx context.Context, id string) (persistence.Session, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	return scanSession(row)
}

// ListSessions returns sessions matching the filter ordered by scheduled
// start ascending, then id for a stable order.
func (s *Store) ListSessions(ctx context.Context, filter persistence.SessionFilter) ([]persistence.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions`
	where, args := sessionFilterClauses(filter, "")
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY scheduled_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	sessions := make([]persistence.Session, 0)
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

// DistinctRoomLabels returns the distinct non-empty room labels, optionally
// limited to sessions on the given day. Passing nil covers all sessions.
func (s *Store) DistinctRoomLabels(ctx context.Context, date *time.Time) ([]string, error) {
	query := `SELECT DISTINCT room_label FROM sessions WHERE room_label != ''`
	args := []any{}
	if date != nil {
		from, to := dayRange(*date)
		query += ` AND scheduled_at >= ? AND scheduled_at < ?`
		args = append(args, from, to)
	}
	query += ` ORDER BY room_label ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	labels := make([]string, 0)
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		labels = append(labels, label)
	}
	return labels, rows.Err()
}

func sessionFilterClauses(filter persistence.SessionFilter, prefix string) ([]string, []any) {
	where := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if filter.Date != nil {
		from, to := dayRange(*filter.Date)
		where = append(where, prefix+`scheduled_at >= ? AND `+prefix+`scheduled_at < ?`)
		args = append(args, from, to)
	}
	if filter.Status != nil {
		where = append(where, prefix+`status = ?`)
		args = append(args, string(*filter.Status))
	}
	return where, args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(scanner rowScanner) (persistence.Session, error) {
	var (
		session      persistence.Session
		scheduledAt  string
		scheduledEnd sql.NullString
		interviewers string
		status       string
		createdAt    string
	)

	err := scanner.Scan(
		&session.ID,
		&session.RoomLabel,
		&session.Round,
		&scheduledAt,
		&scheduledEnd,
		&session.OrderNo,
		&interviewers,
		&status,
		&createdAt,
	)
	if err != nil {
		return persistence.Session{}, mapError(err)
	}

	if session.ScheduledAt, err = parseTime(scheduledAt); err != nil {
		return persistence.Session{}, err
	}
	if scheduledEnd.Valid {
		end, err := parseTime(scheduledEnd.String)
		if err != nil {
			return persistence.Session{}, err
		}
		session.ScheduledEnd = &end
	}
	if session.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Session{}, err
	}
	session.Interviewers = splitNames(interviewers)
	session.Status = persistence.SessionStatus(status)

	return session, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("sqlite: parse stored time %q: %w", value, err)
	}
	return t.UTC(), nil
}

func dayRange(date time.Time) (string, string) {
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	return formatTime(day), formatTime(day.AddDate(0, 0, 1))
}

func joinNames(names []string) string {
	return strings.Join(names, ", ")
}

func splitNames(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
