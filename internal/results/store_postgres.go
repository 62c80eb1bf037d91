package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cleanroom/internal/domain"
	"cleanroom/internal/monitoring"
)

// PostgresStore persists run snapshots to PostgreSQL. The current-results
// table holds at most one run; ReplaceCurrent swaps it atomically inside a
// transaction so readers never observe a half-written run.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) ReplaceCurrent(ctx context.Context, results RunResults) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace results: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM current_results`); err != nil {
		return fmt.Errorf("clear current results: %w", err)
	}

	insert := `
		INSERT INTO current_results (
			run_id, employee_id, quality_score, usability_status,
			resolution_action, resolution_reason, resolution_confidence,
			bucket, payload, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	write := func(partition string, recs []domain.Record) error {
		for _, rec := range recs {
			payload, err := json.Marshal(recordRow(rec))
			if err != nil {
				return fmt.Errorf("marshal record %s: %w", rec.EmployeeID, err)
			}
			var action, reason string
			var confidence float64
			if rec.Resolution != nil {
				action = string(rec.Resolution.Action)
				reason = rec.Resolution.Reason
				confidence = rec.Resolution.Confidence
			}
			if _, err := tx.ExecContext(ctx, insert,
				results.RunID,
				rec.EmployeeID,
				rec.QualityScore,
				string(rec.Usability),
				action,
				reason,
				confidence,
				partition,
				payload,
				results.Timestamp,
			); err != nil {
				return fmt.Errorf("insert record %s: %w", rec.EmployeeID, err)
			}
		}
		return nil
	}

	if err := write("cleaned", results.Cleaned); err != nil {
		return err
	}
	if err := write("quarantined", results.Quarantined); err != nil {
		return err
	}
	if err := write("archived", results.Archived); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace results: %w", err)
	}
	return nil
}

func (s *PostgresStore) Current(ctx context.Context) (*RunResults, error) {
	query := `
		SELECT run_id, bucket, payload, created_at
		FROM current_results
		ORDER BY employee_id ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query current results: %w", err)
	}
	defer rows.Close()

	var out RunResults
	found := false
	for rows.Next() {
		var partition string
		var payload []byte
		if err := rows.Scan(&out.RunID, &partition, &payload, &out.Timestamp); err != nil {
			return nil, fmt.Errorf("scan current results: %w", err)
		}
		found = true

		var row storedRecord
		if err := json.Unmarshal(payload, &row); err != nil {
			return nil, fmt.Errorf("unmarshal record payload: %w", err)
		}
		rec := row.toRecord()
		switch partition {
		case "cleaned":
			out.Cleaned = append(out.Cleaned, rec)
		case "quarantined":
			out.Quarantined = append(out.Quarantined, rec)
		case "archived":
			out.Archived = append(out.Archived, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoResults
	}
	return &out, nil
}

// PostgresHistory is the append-only run history table.
type PostgresHistory struct {
	db *sql.DB
}

func NewPostgresHistory(db *sql.DB) *PostgresHistory {
	return &PostgresHistory{db: db}
}

func (s *PostgresHistory) AppendRun(ctx context.Context, run monitoring.RunMetrics) error {
	payload, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("marshal run metrics: %w", err)
	}
	query := `
		INSERT INTO run_history (run_id, payload, created_at)
		VALUES ($1, $2, $3)
	`
	if _, err := s.db.ExecContext(ctx, query, run.RunID, payload, run.Timestamp); err != nil {
		return fmt.Errorf("insert run history: %w", err)
	}
	return nil
}

func (s *PostgresHistory) Recent(ctx context.Context, limit int) ([]monitoring.RunMetrics, error) {
	query := `
		SELECT payload FROM (
			SELECT payload, created_at FROM run_history
			ORDER BY created_at DESC
			LIMIT $1
		) recent
		ORDER BY created_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query run history: %w", err)
	}
	defer rows.Close()

	var runs []monitoring.RunMetrics
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan run history: %w", err)
		}
		var run monitoring.RunMetrics
		if err := json.Unmarshal(payload, &run); err != nil {
			return nil, fmt.Errorf("unmarshal run metrics: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
