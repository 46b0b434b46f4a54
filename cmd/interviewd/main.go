package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/example/interview-scheduler/internal/config"
	"github.com/example/interview-scheduler/internal/importer"
	"github.com/example/interview-scheduler/internal/logging"
	"github.com/example/interview-scheduler/internal/metrics"
	"github.com/example/interview-scheduler/internal/persistence"
	"github.com/example/interview-scheduler/internal/persistence/sqlite"
	"github.com/example/interview-scheduler/internal/views"
)

const usage = `usage: interviewd <command> [flags]

commands:
  import         import a workbook (schedule or participant list)
  view           print a schedule view as JSON
  serve-metrics  expose Prometheus metrics over HTTP
`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "interviewd:", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel)
	ctx = logging.ContextWithLogger(ctx, logger)

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("missing command")
	}

	store, err := sqlite.Open(cfg.SQLiteDSN)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if cerr := store.Close(); cerr != nil {
			logger.Error("failed to close store", "error", cerr)
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	switch os.Args[1] {
	case "import":
		return runImport(ctx, cfg, store, os.Args[2:])
	case "view":
		return runView(ctx, store, os.Args[2:])
	case "serve-metrics":
		return runServeMetrics(ctx, cfg)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", os.Args[1])
	}
}

// repositoryAdapter bridges the sqlite store to the importer's transaction
// surface.
type repositoryAdapter struct {
	store *sqlite.Store
}

func (a *repositoryAdapter) InTransaction(ctx context.Context, fn func(importer.Store) error) error {
	return a.store.InTransaction(ctx, func(tx *sqlite.TxStore) error {
		return fn(tx)
	})
}

func (a *repositoryAdapter) GetParticipantByName(ctx context.Context, name string) (persistence.Participant, error) {
	return a.store.GetParticipantByName(ctx, name)
}

func (a *repositoryAdapter) GetParticipantByApplicantCode(ctx context.Context, code string) (persistence.Participant, error) {
	return a.store.GetParticipantByApplicantCode(ctx, code)
}

func runImport(ctx context.Context, cfg *config.Config, store *sqlite.Store, args []string) error {
	fs := flag.NewFlagSet("import", flag.ContinueOnError)
	file := fs.String("file", "", "workbook path, absolute or relative to the upload directory")
	kind := fs.String("kind", "schedule", "workbook kind: schedule or participant")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *file == "" {
		return errors.New("import: -file is required")
	}

	path := *file
	if !filepath.IsAbs(path) {
		if _, err := os.Stat(path); err != nil {
			path = filepath.Join(cfg.UploadDir, *file)
		}
	}

	logger := logging.FromContext(ctx)
	registry := prometheus.NewRegistry()
	imp := importer.NewImporter(
		&repositoryAdapter{store: store},
		uuid.NewString,
		time.Now,
		importer.WithMaxRows(cfg.ImportMaxRows),
		importer.WithMetrics(metrics.New(registry)),
	)

	runCtx, cancel := context.WithTimeout(ctx, cfg.ImportTimeout)
	defer cancel()

	var (
		result importer.ImportResult
		err    error
	)
	switch *kind {
	case "schedule":
		result, err = imp.ImportSchedules(runCtx, path)
	case "participant":
		result, err = imp.ImportParticipants(runCtx, path)
	default:
		return fmt.Errorf("import: unknown kind %q", *kind)
	}
	if err != nil {
		return fmt.Errorf("import %s: %w", *kind, err)
	}

	logger.Info("import finished",
		"kind", *kind,
		"processed", result.ProcessedCount,
		"succeeded", result.SuccessCount,
		"failed", result.ErrorCount,
	)
	return printJSON(result)
}

func runView(ctx context.Context, store *sqlite.Store, args []string) error {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	mode := fs.String("mode", "detailed", "view mode: detailed, simple, or participants")
	date := fs.String("date", "", "filter by date (YYYY-MM-DD)")
	status := fs.String("status", "", "filter by session status")
	position := fs.String("position", "", "filter by applied position (participants mode)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var day *time.Time
	if *date != "" {
		parsed, err := time.Parse("2006-01-02", *date)
		if err != nil {
			return fmt.Errorf("view: invalid date %q", *date)
		}
		day = &parsed
	}
	var st *persistence.SessionStatus
	if *status != "" {
		parsed, err := persistence.ParseSessionStatus(*status)
		if err != nil {
			return fmt.Errorf("view: %w", err)
		}
		st = &parsed
	}

	builder := views.NewBuilder(store)
	switch *mode {
	case "detailed":
		view, err := builder.DetailedSchedule(ctx, persistence.SessionFilter{Date: day, Status: st})
		if err != nil {
			return err
		}
		return printJSON(view)
	case "simple":
		view, err := builder.SimpleSchedule(ctx, persistence.SessionFilter{Date: day, Status: st})
		if err != nil {
			return err
		}
		return printJSON(view)
	case "participants":
		listing, err := builder.ParticipantListing(ctx, persistence.ListingFilter{Date: day, Status: st, Position: *position})
		if err != nil {
			return err
		}
		return printJSON(listing)
	default:
		return fmt.Errorf("view: unknown mode %q", *mode)
	}
}

func runServeMetrics(ctx context.Context, cfg *config.Config) error {
	logger := logging.FromContext(ctx)

	registry := prometheus.NewRegistry()
	metrics.New(registry)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown metrics server", "error", err)
		}
	}()

	logger.Info("metrics listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
