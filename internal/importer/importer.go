// Package importer turns interview spreadsheets into persisted sessions,
// participants, and their join rows.
//
// Two commit policies coexist deliberately. The participant import
// validates the whole file first and writes nothing unless every row is
// clean; the schedule import commits row by row and keeps earlier successes
// when later rows fail. Do not unify them.
package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/interview-scheduler/internal/logging"
	"github.com/example/interview-scheduler/internal/metrics"
	"github.com/example/interview-scheduler/internal/persistence"
	"github.com/example/interview-scheduler/internal/workbook"
)

// Store captures the transaction-scoped write operations the import
// pipeline needs.
type Store interface {
	CreateSession(ctx context.Context, session persistence.Session) error
	UpsertParticipantByName(ctx context.Context, participant persistence.Participant) (persistence.Participant, error)
	CreateLink(ctx context.Context, link persistence.SessionParticipantLink) error
	CreateParticipants(ctx context.Context, participants []persistence.Participant) error
}

// Repository provides transactions plus the read lookups used for
// natural-key duplicate detection.
type Repository interface {
	InTransaction(ctx context.Context, fn func(Store) error) error
	GetParticipantByName(ctx context.Context, name string) (persistence.Participant, error)
	GetParticipantByApplicantCode(ctx context.Context, code string) (persistence.Participant, error)
}

// Importer orchestrates parsing, participant resolution, and persistence
// across an entire workbook.
type Importer struct {
	repo    Repository
	idGen   func() string
	now     func() time.Time
	maxRows int
	metrics *metrics.ImportMetrics
}

// Option customises an Importer.
type Option func(*Importer)

// WithMaxRows caps the number of non-blank rows one schedule import
// processes. Rows past the budget are left untouched and the partial result
// reports only what ran. Zero means no cap.
func WithMaxRows(n int) Option {
	return func(imp *Importer) { imp.maxRows = n }
}

// WithMetrics attaches Prometheus instrumentation to import runs.
func WithMetrics(m *metrics.ImportMetrics) Option {
	return func(imp *Importer) { imp.metrics = m }
}

// NewImporter wires an importer with the given id and time sources.
func NewImporter(repo Repository, idGen func() string, now func() time.Time, opts ...Option) *Importer {
	if idGen == nil {
		idGen = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	imp := &Importer{repo: repo, idGen: idGen, now: now}
	for _, opt := range opts {
		opt(imp)
	}
	return imp
}

// ImportSchedules ingests a 5-column schedule workbook under the
// best-effort-per-row policy: each row gets its own transaction, failures
// are recorded, and processing continues. When the context is cancelled the
// partial result accompanies the context error.
func (imp *Importer) ImportSchedules(ctx context.Context, path string) (ImportResult, error) {
	logger := logging.FromContext(ctx).With("flow", metrics.FlowSchedule, "file", path)
	started := time.Now()

	sheet, err := workbook.Open(path)
	if err != nil {
		logger.Error("workbook open failed", "error", err)
		return ImportResult{}, err
	}

	resolver := NewParticipantResolver(imp.idGen, imp.now)
	linker := NewScheduleLinker(imp.idGen, imp.now)

	var res ImportResult
	for i := 1; i < len(sheet.Rows); i++ {
		if ctx.Err() != nil {
			logger.Warn("import cancelled", "processed", res.ProcessedCount)
			imp.observe(metrics.FlowSchedule, res, started)
			return res, ctx.Err()
		}

		cells := sheet.Rows[i]
		rowNum := i + 1
		if IsBlankRow(cells, scheduleRowWidth) {
			continue
		}

		if imp.maxRows > 0 && res.ProcessedCount >= imp.maxRows {
			logger.Warn("row budget exhausted", "budget", imp.maxRows, "row", rowNum)
			break
		}
		res.ProcessedCount++

		row, err := ParseScheduleRow(cells, rowNum)
		if err != nil {
			res.addError(rowNum, err)
			logger.Warn("row rejected", "row", rowNum, "error", err)
			continue
		}

		if err := imp.persistScheduleRow(ctx, row, resolver, linker); err != nil {
			resolver.Discard()
			res.addError(rowNum, err)
			logger.Warn("row persist failed", "row", rowNum, "error", err)
			continue
		}
		resolver.Commit()
		res.SuccessCount++
	}

	res.Message = fmt.Sprintf("총 %d개 일정 중 %d개 성공, %d개 실패",
		res.ProcessedCount, res.SuccessCount, res.ErrorCount)
	logger.Info("schedule import finished",
		"processed", res.ProcessedCount, "succeeded", res.SuccessCount, "failed", res.ErrorCount)
	imp.observe(metrics.FlowSchedule, res, started)
	return res, nil
}

func (imp *Importer) persistScheduleRow(ctx context.Context, row ScheduleRow, resolver *ParticipantResolver, linker *ScheduleLinker) error {
	return imp.repo.InTransaction(ctx, func(store Store) error {
		end := row.End
		session := persistence.Session{
			ID:           imp.idGen(),
			RoomLabel:    row.RoomLabel,
			Round:        1,
			ScheduledAt:  row.Start,
			ScheduledEnd: &end,
			OrderNo:      1,
			Interviewers: row.InterviewerNames,
			Status:       persistence.StatusScheduled,
			CreatedAt:    imp.now(),
		}
		if err := store.CreateSession(ctx, session); err != nil {
			return err
		}

		for _, name := range row.ParticipantNames {
			participant, err := resolver.Resolve(ctx, store, name)
			if err != nil {
				return err
			}
			if _, err := linker.Link(ctx, store, session.ID, participant.ID); err != nil {
				return err
			}
		}
		return nil
	})
}

// ImportParticipants ingests an 8-column participant workbook under the
// validate-all-then-commit policy: every row is parsed and checked first,
// including natural-key duplicates against both the file and the database.
// Any error aborts the batch before a single write; a clean file persists in
// one bulk transaction.
func (imp *Importer) ImportParticipants(ctx context.Context, path string) (ImportResult, error) {
	logger := logging.FromContext(ctx).With("flow", metrics.FlowParticipant, "file", path)
	started := time.Now()

	sheet, err := workbook.Open(path)
	if err != nil {
		logger.Error("workbook open failed", "error", err)
		return ImportResult{}, err
	}

	var (
		res       ImportResult
		parsed    []ParticipantRow
		seenCodes = make(map[string]int)
		seenNames = make(map[string]int)
	)

	for i := 1; i < len(sheet.Rows); i++ {
		cells := sheet.Rows[i]
		rowNum := i + 1
		if IsBlankRow(cells, participantRowWidth) {
			continue
		}
		res.ProcessedCount++

		row, err := ParseParticipantRow(cells, rowNum)
		if err != nil {
			res.addError(rowNum, err)
			continue
		}

		if firstRow, ok := seenCodes[row.ApplicantCode]; ok {
			res.addError(rowNum, &DuplicateKeyError{Row: rowNum,
				Key: fmt.Sprintf("%s (also row %d)", row.ApplicantCode, firstRow)})
			continue
		}
		if firstRow, ok := seenNames[row.Name]; ok {
			res.addError(rowNum, &DuplicateKeyError{Row: rowNum,
				Key: fmt.Sprintf("%s (also row %d)", row.Name, firstRow)})
			continue
		}
		seenCodes[row.ApplicantCode] = rowNum
		seenNames[row.Name] = rowNum

		if dup, err := imp.duplicateKey(ctx, row); err != nil {
			return ImportResult{}, err
		} else if dup != "" {
			res.addError(rowNum, &DuplicateKeyError{Row: rowNum, Key: dup})
			continue
		}

		parsed = append(parsed, row)
	}

	if res.ErrorCount > 0 {
		res.Message = fmt.Sprintf("총 %d명 중 %d명 성공, %d건 실패",
			res.ProcessedCount, 0, res.ErrorCount)
		logger.Warn("participant import aborted, nothing written",
			"processed", res.ProcessedCount, "failed", res.ErrorCount)
		imp.observe(metrics.FlowParticipant, res, started)
		return res, nil
	}

	participants := make([]persistence.Participant, len(parsed))
	for i, row := range parsed {
		participants[i] = persistence.Participant{
			ID:            imp.idGen(),
			Name:          row.Name,
			ApplicantCode: row.ApplicantCode,
			Position:      row.Position,
			Score:         row.Score,
			CreatedAt:     imp.now(),
		}
	}

	if err := imp.repo.InTransaction(ctx, func(store Store) error {
		return store.CreateParticipants(ctx, participants)
	}); err != nil {
		logger.Error("bulk insert failed", "error", err)
		return ImportResult{}, err
	}

	res.SuccessCount = len(parsed)
	res.Message = fmt.Sprintf("총 %d명 중 %d명 성공, %d건 실패",
		res.ProcessedCount, res.SuccessCount, res.ErrorCount)
	logger.Info("participant import finished", "succeeded", res.SuccessCount)
	imp.observe(metrics.FlowParticipant, res, started)
	return res, nil
}

// duplicateKey reports which natural key of the row already exists in
// storage, or "" when the row is new.
func (imp *Importer) duplicateKey(ctx context.Context, row ParticipantRow) (string, error) {
	if _, err := imp.repo.GetParticipantByApplicantCode(ctx, row.ApplicantCode); err == nil {
		return row.ApplicantCode, nil
	} else if !errors.Is(err, persistence.ErrNotFound) {
		return "", err
	}
	if _, err := imp.repo.GetParticipantByName(ctx, row.Name); err == nil {
		return row.Name, nil
	} else if !errors.Is(err, persistence.ErrNotFound) {
		return "", err
	}
	return "", nil
}

func (imp *Importer) observe(flow string, res ImportResult, started time.Time) {
	imp.metrics.ObserveRun(flow, res.ProcessedCount, res.SuccessCount, res.ErrorCount, time.Since(started))
}
