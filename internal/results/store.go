// Package results persists pipeline output: the current-results view,
// overwritten on every run, and the append-only run history.
package results

import (
	"context"
	"errors"
	"time"

	"cleanroom/internal/domain"
	"cleanroom/internal/monitoring"
)

// ErrNoResults is returned when no run has been persisted yet.
var ErrNoResults = errors.New("no results persisted")

// RunResults is the durable snapshot of one pipeline run.
type RunResults struct {
	RunID       string
	Timestamp   time.Time
	Cleaned     []domain.Record
	Quarantined []domain.Record
	Archived    []domain.Record
}

// Clone deep-copies the snapshot so callers can mutate the result without
// touching the stored records.
func (r RunResults) Clone() RunResults {
	out := r
	out.Cleaned = cloneRecords(r.Cleaned)
	out.Quarantined = cloneRecords(r.Quarantined)
	out.Archived = cloneRecords(r.Archived)
	return out
}

func cloneRecords(recs []domain.Record) []domain.Record {
	if recs == nil {
		return nil
	}
	out := make([]domain.Record, len(recs))
	for i := range recs {
		out[i] = recs[i].Clone()
	}
	return out
}

// Store holds the "current results" view. ReplaceCurrent overwrites the
// previous run's snapshot; there is exactly one live snapshot at a time.
type Store interface {
	ReplaceCurrent(ctx context.Context, results RunResults) error
	Current(ctx context.Context) (*RunResults, error)
}

// HistoryStore is the append-only monitoring history, one row per run.
type HistoryStore interface {
	AppendRun(ctx context.Context, run monitoring.RunMetrics) error
	// Recent returns up to limit runs ordered oldest first.
	Recent(ctx context.Context, limit int) ([]monitoring.RunMetrics, error)
}
