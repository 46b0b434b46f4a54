package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/interview-scheduler/internal/persistence"
)

const linkColumns = `id, session_id, participant_id, score, comment, file_path, created_at`

// CreateLink inserts a session-participant join row inside the enclosing
// transaction. Duplicate (session, participant) pairs are allowed.
func (t *TxStore) CreateLink(ctx context.Context, link persistence.SessionParticipantLink) error {
	if link.ID == "" {
		return fmt.Errorf("sqlite: link id must not be empty")
	}

	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO session_participants (`+linkColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		link.ID,
		link.SessionID,
		link.ParticipantID,
		nullableInt(link.Score),
		nullableStringPtr(link.Comment),
		nullableStringPtr(link.FilePath),
		formatTime(link.CreatedAt),
	)
	return mapError(err)
}

// ListLinksForSessions fetches the links of all listed sessions in one query,
// avoiding a per-session round trip during view reconstruction.
func (s *Store) ListLinksForSessions(ctx context.Context, sessionIDs []string) ([]persistence.SessionParticipantLink, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(sessionIDs)), ", ")
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+linkColumns+` FROM session_participants
		 WHERE session_id IN (`+placeholders+`)
		 ORDER BY created_at ASC, id ASC`,
		args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	links := make([]persistence.SessionParticipantLink, 0)
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, link)
	}
	return links, rows.Err()
}

// ListLinksWithContext joins links with their session schedule context and
// participant identity. One result row per link: a participant appearing in
// two sessions yields two rows.
func (s *Store) ListLinksWithContext(ctx context.Context, filter persistence.ListingFilter) ([]persistence.LinkWithContext, error) {
	query := `SELECT
			l.id, l.session_id, l.participant_id, l.score, l.comment, l.file_path, l.created_at,
			s.id, s.room_label, s.round, s.scheduled_at, s.scheduled_end_at, s.order_no, s.interviewers, s.status, s.created_at,
			p.id, p.name, p.applicant_code, p.position, p.score, p.created_at
		FROM session_participants l
		JOIN sessions s ON s.id = l.session_id
		JOIN participants p ON p.id = l.participant_id`

	where, args := sessionFilterClauses(persistence.SessionFilter{Date: filter.Date, Status: filter.Status}, "s.")
	if filter.Position != "" {
		where = append(where, `p.position = ?`)
		args = append(args, filter.Position)
	}
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY s.scheduled_at ASC, l.created_at ASC, l.id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	results := make([]persistence.LinkWithContext, 0)
	for rows.Next() {
		var (
			entry        persistence.LinkWithContext
			linkScore    sql.NullInt64
			linkComment  sql.NullString
			linkFilePath sql.NullString
			linkCreated  string
			scheduledAt  string
			scheduledEnd sql.NullString
			interviewers string
			status       string
			sessCreated  string
			code         sql.NullString
			partCreated  string
		)

		err := rows.Scan(
			&entry.Link.ID, &entry.Link.SessionID, &entry.Link.ParticipantID,
			&linkScore, &linkComment, &linkFilePath, &linkCreated,
			&entry.Session.ID, &entry.Session.RoomLabel, &entry.Session.Round,
			&scheduledAt, &scheduledEnd, &entry.Session.OrderNo, &interviewers, &status, &sessCreated,
			&entry.Participant.ID, &entry.Participant.Name, &code,
			&entry.Participant.Position, &entry.Participant.Score, &partCreated,
		)
		if err != nil {
			return nil, mapError(err)
		}

		if linkScore.Valid {
			score := int(linkScore.Int64)
			entry.Link.Score = &score
		}
		if linkComment.Valid {
			comment := linkComment.String
			entry.Link.Comment = &comment
		}
		if linkFilePath.Valid {
			path := linkFilePath.String
			entry.Link.FilePath = &path
		}
		if entry.Link.CreatedAt, err = parseTime(linkCreated); err != nil {
			return nil, err
		}

		if entry.Session.ScheduledAt, err = parseTime(scheduledAt); err != nil {
			return nil, err
		}
		if scheduledEnd.Valid {
			end, err := parseTime(scheduledEnd.String)
			if err != nil {
				return nil, err
			}
			entry.Session.ScheduledEnd = &end
		}
		if entry.Session.CreatedAt, err = parseTime(sessCreated); err != nil {
			return nil, err
		}
		entry.Session.Interviewers = splitNames(interviewers)
		entry.Session.Status = persistence.SessionStatus(status)

		if code.Valid {
			entry.Participant.ApplicantCode = code.String
		}
		if entry.Participant.CreatedAt, err = parseTime(partCreated); err != nil {
			return nil, err
		}

		results = append(results, entry)
	}
	return results, rows.Err()
}

func scanLink(scanner rowScanner) (persistence.SessionParticipantLink, error) {
	var (
		link      persistence.SessionParticipantLink
		score     sql.NullInt64
		comment   sql.NullString
		filePath  sql.NullString
		createdAt string
	)
	if err := scanner.Scan(&link.ID, &link.SessionID, &link.ParticipantID, &score, &comment, &filePath, &createdAt); err != nil {
		return persistence.SessionParticipantLink{}, mapError(err)
	}

	if score.Valid {
		value := int(score.Int64)
		link.Score = &value
	}
	if comment.Valid {
		value := comment.String
		link.Comment = &value
	}
	if filePath.Valid {
		value := filePath.String
		link.FilePath = &value
	}

	var err error
	if link.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.SessionParticipantLink{}, err
	}
	return link, nil
}

func nullableInt(value *int) sql.NullInt64 {
	if value == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*value), Valid: true}
}

func nullableStringPtr(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}
