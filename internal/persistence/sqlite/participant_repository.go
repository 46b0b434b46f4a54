package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/example/interview-scheduler/internal/persistence"
)

const participantColumns = `id, name, applicant_code, position, score, created_at`

// UpsertParticipantByName inserts the participant unless one with the same
// name exists, then returns the stored row. The insert-or-fetch happens
// inside the enclosing transaction so concurrent imports cannot race
// duplicate rows past the unique constraint.
func (t *TxStore) UpsertParticipantByName(ctx context.Context, participant persistence.Participant) (persistence.Participant, error) {
	if participant.ID == "" {
		return persistence.Participant{}, fmt.Errorf("sqlite: participant id must not be empty")
	}

	_, err := t.tx.ExecContext(ctx,
		`INSERT INTO participants (`+participantColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO NOTHING`,
		participant.ID,
		participant.Name,
		nullableString(participant.ApplicantCode),
		participant.Position,
		participant.Score,
		formatTime(participant.CreatedAt),
	)
	if err != nil {
		return persistence.Participant{}, mapError(err)
	}

	row := t.tx.QueryRowContext(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE name = ?`, participant.Name)
	return scanParticipant(row)
}

// CreateParticipants bulk-inserts participant rows inside the enclosing
// transaction. Any natural-key collision fails the whole batch.
func (t *TxStore) CreateParticipants(ctx context.Context, participants []persistence.Participant) error {
	stmt, err := t.tx.PrepareContext(ctx,
		`INSERT INTO participants (`+participantColumns+`) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return mapError(err)
	}
	defer stmt.Close()

	for _, p := range participants {
		if p.ID == "" {
			return fmt.Errorf("sqlite: participant id must not be empty")
		}
		if _, err := stmt.ExecContext(ctx,
			p.ID, p.Name, nullableString(p.ApplicantCode), p.Position, p.Score, formatTime(p.CreatedAt),
		); err != nil {
			return mapError(err)
		}
	}
	return nil
}

// GetParticipant retrieves one participant by id.
func (s *Store) GetParticipant(ctx context.Context, id string) (persistence.Participant, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE id = ?`, id)
	return scanParticipant(row)
}

// GetParticipantByName retrieves one participant by natural-key name.
func (s *Store) GetParticipantByName(ctx context.Context, name string) (persistence.Participant, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE name = ?`, name)
	return scanParticipant(row)
}

// GetParticipantByApplicantCode retrieves one participant by external
// applicant code.
func (s *Store) GetParticipantByApplicantCode(ctx context.Context, code string) (persistence.Participant, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE applicant_code = ?`, code)
	return scanParticipant(row)
}

// ListParticipantsByIDs fetches all participants whose ids are listed, in one
// query. Unknown ids are silently absent from the result.
func (s *Store) ListParticipantsByIDs(ctx context.Context, ids []string) ([]persistence.Participant, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+participantColumns+` FROM participants WHERE id IN (`+placeholders+`) ORDER BY created_at ASC, id ASC`,
		args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	participants := make([]persistence.Participant, 0, len(ids))
	for rows.Next() {
		p, err := scanParticipant(rows)
		if err != nil {
			return nil, err
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

func scanParticipant(scanner rowScanner) (persistence.Participant, error) {
	var (
		p         persistence.Participant
		code      sql.NullString
		createdAt string
	)
	if err := scanner.Scan(&p.ID, &p.Name, &code, &p.Position, &p.Score, &createdAt); err != nil {
		return persistence.Participant{}, mapError(err)
	}
	if code.Valid {
		p.ApplicantCode = code.String
	}

	var err error
	if p.CreatedAt, err = parseTime(createdAt); err != nil {
		return persistence.Participant{}, err
	}
	return p, nil
}

func nullableString(value string) sql.NullString {
	return sql.NullString{String: value, Valid: value != ""}
}
