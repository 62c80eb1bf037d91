// Package resolution hosts the engine that assigns every scored record its
// final disposition. It is the one place where conflicting per-field
// findings collapse into a single action per row.
package resolution

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cleanroom/internal/dedupe"
	"cleanroom/internal/domain"
	"cleanroom/internal/resolution/metrics"
	"cleanroom/internal/resolution/ports"
	"cleanroom/internal/standardize"
	dErrors "cleanroom/pkg/domain-errors"
	"cleanroom/pkg/platform/audit"
)

const quarantineSource = "resolution_engine"

// Outcome is the result of resolving one batch. Every survivor of
// deduplication lands in exactly one of Cleaned or Quarantined; dedupe
// losers are retained in Archived for audit retrieval.
type Outcome struct {
	Cleaned     []domain.Record
	Quarantined []domain.Record
	Archived    []domain.Record

	// Warnings carries non-fatal failures (audit sink writes, identity
	// capability errors) surfaced to the caller.
	Warnings []string
}

// Engine orchestrates the resolution phase: deduplicate, decide per record,
// standardize or quarantine as needed, and partition the output.
type Engine struct {
	cfg      Config
	identity ports.IdentityChecker
	auditor  ports.AuditPort
	logger   *slog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

// NewEngine constructs an engine. identity and auditor may be nil when the
// respective capability is not wired; both degrade gracefully.
func NewEngine(cfg Config, identity ports.IdentityChecker, auditor ports.AuditPort, logger *slog.Logger, m *metrics.Metrics) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		cfg:      cfg,
		identity: identity,
		auditor:  auditor,
		logger:   logger,
		metrics:  m,
		now:      time.Now,
	}
}

// Resolve processes a scored batch. The post-condition
// len(Cleaned)+len(Quarantined) == survivors is checked before returning;
// a mismatch is an internal defect, not a data-quality finding.
func (e *Engine) Resolve(ctx context.Context, batch []domain.Record) (*Outcome, error) {
	start := e.now()
	out := &Outcome{}

	survivors, archived := dedupe.Deduplicate(batch)
	out.Archived = archived
	e.metrics.AddDedupedRows(len(archived))
	for _, loser := range archived {
		e.emit(ctx, out, audit.Event{
			Action:   audit.ActionRecordDeduped,
			Source:   quarantineSource,
			RecordID: loser.EmployeeID,
			Reason:   loser.Resolution.Reason,
			Severity: audit.SeverityLow,
		})
	}

	for _, rec := range survivors {
		resolved := e.resolveRecord(ctx, out, rec)
		if resolved.Resolution.Action == domain.ActionQuarantine {
			out.Quarantined = append(out.Quarantined, resolved)
		} else {
			out.Cleaned = append(out.Cleaned, resolved)
		}
		e.metrics.IncrementOutcome(string(resolved.Resolution.Action))
	}

	if got := len(out.Cleaned) + len(out.Quarantined); got != len(survivors) {
		return nil, dErrors.New(dErrors.CodeInternal,
			fmt.Sprintf("resolution lost records: %d in, %d out", len(survivors), got))
	}

	e.metrics.ObserveResolveLatency(e.now().Sub(start))
	e.logger.InfoContext(ctx, "batch resolved",
		"input_rows", len(batch),
		"deduped", len(archived),
		"cleaned", len(out.Cleaned),
		"quarantined", len(out.Quarantined),
		"duration_ms", e.now().Sub(start).Milliseconds(),
	)
	return out, nil
}

// resolveRecord assigns exactly one action to a record and applies its side
// effects (standardization merge, quarantine metadata, audit event).
func (e *Engine) resolveRecord(ctx context.Context, out *Outcome, rec domain.Record) domain.Record {
	rec = e.checkIdentity(ctx, out, rec)

	decision := Decide(rec, e.cfg)
	resolved := rec.Clone()

	if decision.Action == domain.ActionStandardize {
		standardized, changes := standardize.Standardize(resolved)
		resolved = standardized
		for _, change := range changes {
			e.emit(ctx, out, audit.Event{
				Action:   audit.ActionStandardizeField,
				Source:   "standardization",
				RecordID: resolved.EmployeeID,
				Reason:   change.Reason,
				Severity: audit.SeverityInfo,
				Metadata: map[string]string{
					"field":  change.Field,
					"before": change.Before,
					"after":  change.After,
				},
			})
		}
	}

	resolved.Resolution = &domain.Resolution{
		Action:     decision.Action,
		Reason:     decision.Reason,
		Confidence: decision.Confidence,
	}

	if decision.Action == domain.ActionQuarantine {
		resolved.Quarantine = &domain.QuarantineInfo{
			Reason:    decision.Reason,
			Source:    quarantineSource,
			Timestamp: e.now().UTC(),
		}
	}

	e.emit(ctx, out, audit.Event{
		Action:   audit.ActionRecordResolved,
		Source:   quarantineSource,
		RecordID: resolved.EmployeeID,
		Reason:   decision.Reason,
		Severity: severityFor(decision.Action),
		Metadata: map[string]string{
			"action":     string(decision.Action),
			"confidence": fmt.Sprintf("%.2f", decision.Confidence),
		},
	})
	return resolved
}

// checkIdentity consults the external validity capability for records that
// carry an SSN but no precomputed flag. Capability failures are fail-closed:
// the record is treated as invalid and the error surfaces as a warning.
func (e *Engine) checkIdentity(ctx context.Context, out *Outcome, rec domain.Record) domain.Record {
	if e.identity == nil || rec.SSNValid != nil || rec.SSN == "" {
		return rec
	}

	valid, err := e.identity.Valid(ctx, rec.SSN)
	if err != nil {
		out.Warnings = append(out.Warnings,
			fmt.Sprintf("identity check failed for %s, treating as invalid: %v", rec.EmployeeID, err))
		valid = false
	}
	checked := rec.Clone()
	checked.SSNValid = &valid
	return checked
}

// severityFor scales audit severity to the action taken.
func severityFor(action domain.ResolutionAction) audit.Severity {
	switch action {
	case domain.ActionAccept:
		return audit.SeverityInfo
	case domain.ActionStandardize:
		return audit.SeverityLow
	case domain.ActionQuarantine:
		return audit.SeverityHigh
	default:
		return audit.SeverityInfo
	}
}

// emit forwards an audit event, downgrading sink failures to warnings so
// the batch never aborts on audit trouble.
func (e *Engine) emit(ctx context.Context, out *Outcome, event audit.Event) {
	if e.auditor == nil {
		return
	}
	if err := e.auditor.Emit(ctx, event); err != nil {
		out.Warnings = append(out.Warnings, fmt.Sprintf("audit write failed: %v", err))
	}
}
