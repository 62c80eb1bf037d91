// Package pipeline orchestrates a full data-quality run: schema gate,
// scoring, resolution, monitoring, and persistence. One Run call processes
// one batch atomically; the batch table is owned by the run and never
// shared with concurrent writers.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"cleanroom/internal/domain"
	"cleanroom/internal/monitoring"
	"cleanroom/internal/resolution"
	"cleanroom/internal/resolution/ports"
	"cleanroom/internal/results"
	"cleanroom/internal/scoring"
	"cleanroom/pkg/platform/audit"
)

const tracerName = "cleanroom/pipeline"

// Config collects every pipeline tunable in one explicit structure.
type Config struct {
	Penalties   scoring.Penalties
	Resolution  resolution.Config
	Anomaly     scoring.AnomalyConfig
	Alerts      monitoring.AlertThresholds
	SLA         monitoring.SLAThresholds
	TrendWindow int

	// ScoreWorkers bounds the parallel scoring goroutines. Zero means
	// GOMAXPROCS.
	ScoreWorkers int
}

// DefaultConfig returns production defaults for every tunable.
func DefaultConfig() Config {
	return Config{
		Penalties:   scoring.DefaultPenalties(),
		Resolution:  resolution.DefaultConfig(),
		Anomaly:     scoring.DefaultAnomalyConfig(),
		Alerts:      monitoring.DefaultAlertThresholds(),
		SLA:         monitoring.DefaultSLAThresholds(),
		TrendWindow: monitoring.DefaultTrendWindow,
	}
}

// RunReport is what one pipeline run hands back to operators.
type RunReport struct {
	RunID     string    `json:"run_id"`
	Timestamp time.Time `json:"timestamp"`

	Metrics monitoring.BatchMetrics `json:"metrics"`
	Alerts  []monitoring.Alert      `json:"alerts"`
	SLA     monitoring.SLAResult    `json:"sla"`
	Trends  monitoring.TrendReport  `json:"trends"`
	Health  scoring.DatasetHealth   `json:"health"`
	Dataset scoring.DatasetReport   `json:"dataset_report"`

	ArchivedRows int      `json:"archived_rows"`
	Warnings     []string `json:"warnings,omitempty"`
}

// Runner wires the pipeline stages together.
type Runner struct {
	cfg     Config
	scorer  *scoring.Scorer
	engine  *resolution.Engine
	store   results.Store
	history results.HistoryStore
	auditor ports.AuditPort
	logger  *slog.Logger
	now     func() time.Time
}

func NewRunner(cfg Config, engine *resolution.Engine, store results.Store, history results.HistoryStore, auditor ports.AuditPort, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		cfg:     cfg,
		scorer:  scoring.NewScorer(cfg.Penalties),
		engine:  engine,
		store:   store,
		history: history,
		auditor: auditor,
		logger:  logger,
		now:     time.Now,
	}
}

// Run executes one batch end to end. Schema failures abort before any row
// is touched; everything after the schema gate either completes or returns
// an error with no partial output persisted.
func (r *Runner) Run(ctx context.Context, columns []string, batch []domain.Record) (*RunReport, error) {
	runID := uuid.New().String()
	start := r.now().UTC()

	ctx, span := otel.Tracer(tracerName).Start(ctx, "pipeline.run",
		trace.WithAttributes(
			attribute.String("run_id", runID),
			attribute.Int("input_rows", len(batch)),
		))
	defer span.End()

	if err := scoring.CheckSchema(columns); err != nil {
		r.logger.ErrorContext(ctx, "schema validation failed", "run_id", runID, "error", err)
		return nil, err
	}

	scored, err := r.scoreParallel(ctx, batch)
	if err != nil {
		return nil, fmt.Errorf("score batch: %w", err)
	}

	outcome, err := r.engine.Resolve(ctx, scored)
	if err != nil {
		return nil, err
	}

	report := &RunReport{
		RunID:        runID,
		Timestamp:    start,
		Metrics:      monitoring.ComputeMetrics(outcome.Cleaned, outcome.Quarantined),
		Health:       scoring.ClassifyHealth(scored),
		Dataset:      scoring.Analyze(scored, r.cfg.Anomaly, start),
		ArchivedRows: len(outcome.Archived),
		Warnings:     outcome.Warnings,
	}
	report.Alerts = monitoring.EvaluateAlerts(report.Metrics, r.cfg.Alerts)

	snapshot := snapshotOf(outcome.Cleaned, outcome.Quarantined)
	report.SLA = monitoring.EvaluateSLA(snapshot, r.cfg.SLA)

	if err := r.store.ReplaceCurrent(ctx, results.RunResults{
		RunID:       runID,
		Timestamp:   start,
		Cleaned:     outcome.Cleaned,
		Quarantined: outcome.Quarantined,
		Archived:    outcome.Archived,
	}); err != nil {
		return nil, fmt.Errorf("persist current results: %w", err)
	}

	runMetrics := monitoring.RunMetrics{
		RunID:        runID,
		Timestamp:    start,
		TotalRows:    snapshot.TotalRows,
		AverageScore: snapshot.AverageScore,
		BadRows:      snapshot.BadRows,
		WarningRows:  warningRows(outcome.Cleaned, outcome.Quarantined),
		Batch:        report.Metrics,
	}
	if err := r.history.AppendRun(ctx, runMetrics); err != nil {
		return nil, fmt.Errorf("append run history: %w", err)
	}

	history, err := r.history.Recent(ctx, r.cfg.TrendWindow)
	if err != nil {
		return nil, fmt.Errorf("load run history: %w", err)
	}
	report.Trends = monitoring.ComputeTrends(history, r.cfg.TrendWindow)

	r.emitRunEvent(ctx, report)

	r.logger.InfoContext(ctx, "pipeline run completed",
		"run_id", runID,
		"total_rows", report.Metrics.TotalRows,
		"quarantine_rate", report.Metrics.QuarantineRate,
		"sla_status", report.SLA.Status,
		"alerts", len(report.Alerts),
		"duration_ms", r.now().UTC().Sub(start).Milliseconds(),
	)
	return report, nil
}

// scoreParallel fans row scoring out over a bounded worker group. Scoring
// has no cross-row dependency once the duplicate-ID map exists, so rows can
// be scored in place by index without shared-mutation hazards.
func (r *Runner) scoreParallel(ctx context.Context, batch []domain.Record) ([]domain.Record, error) {
	dups := scoring.DuplicateIDs(batch)

	workers := r.cfg.ScoreWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	scored := make([]domain.Record, len(batch))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range batch {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			scored[i] = r.scorer.Score(batch[i], dups[strings.TrimSpace(batch[i].EmployeeID)])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scored, nil
}

func snapshotOf(cleaned, quarantined []domain.Record) monitoring.SLASnapshot {
	var snapshot monitoring.SLASnapshot
	var total int
	for _, rec := range append(append([]domain.Record{}, cleaned...), quarantined...) {
		snapshot.TotalRows++
		total += rec.QualityScore
		if rec.Usability == domain.UsabilityBad {
			snapshot.BadRows++
		}
	}
	if snapshot.TotalRows > 0 {
		snapshot.AverageScore = float64(total) / float64(snapshot.TotalRows)
	}
	return snapshot
}

func warningRows(cleaned, quarantined []domain.Record) int {
	n := 0
	for _, rec := range cleaned {
		if rec.Usability == domain.UsabilityWarning {
			n++
		}
	}
	for _, rec := range quarantined {
		if rec.Usability == domain.UsabilityWarning {
			n++
		}
	}
	return n
}

// emitRunEvent records the run in the audit trail; failures are warnings.
func (r *Runner) emitRunEvent(ctx context.Context, report *RunReport) {
	if r.auditor == nil {
		return
	}
	err := r.auditor.Emit(ctx, audit.Event{
		Action:   audit.ActionRunCompleted,
		Source:   "pipeline",
		Reason:   fmt.Sprintf("run %s resolved %d rows", report.RunID, report.Metrics.TotalRows),
		Severity: audit.SeverityInfo,
		Metadata: map[string]string{
			"run_id":          report.RunID,
			"quarantine_rate": fmt.Sprintf("%.3f", report.Metrics.QuarantineRate),
			"sla_status":      string(report.SLA.Status),
		},
	})
	if err != nil {
		report.Warnings = append(report.Warnings, fmt.Sprintf("audit write failed: %v", err))
	}
}
