package monitoring

import "time"

// RunMetrics is one monitoring run as persisted in history. History is
// append-only, one row per run.
type RunMetrics struct {
	RunID        string       `json:"run_id"`
	Timestamp    time.Time    `json:"timestamp"`
	TotalRows    int          `json:"total_rows"`
	AverageScore float64      `json:"average_score"`
	BadRows      int          `json:"bad_rows"`
	WarningRows  int          `json:"warning_rows"`
	Batch        BatchMetrics `json:"batch"`
}

// TrendDirection reports which way quality is moving run over run.
type TrendDirection string

const (
	TrendImproving TrendDirection = "IMPROVING"
	TrendDegrading TrendDirection = "DEGRADING"
)

// DefaultTrendWindow is the trailing number of runs trends are computed over.
const DefaultTrendWindow = 5

// TrendReport compares the oldest and newest runs inside the window.
// Insufficient is set explicitly when fewer than two runs exist; deltas are
// meaningless in that case and must not be read.
type TrendReport struct {
	Insufficient     bool           `json:"insufficient_data"`
	AvgScoreDelta    float64        `json:"avg_score_trend"`
	BadRowsDelta     int            `json:"bad_rows_trend"`
	WarningRowsDelta int            `json:"warning_rows_trend"`
	Direction        TrendDirection `json:"direction,omitempty"`
}

// ComputeTrends derives run-over-run deltas from ordered history (oldest
// first). The window takes the trailing N runs; a non-positive window falls
// back to DefaultTrendWindow, and a window of 1 holds no delta so it reports
// insufficient data. Direction is DEGRADING exactly when the bad-row count
// moved up.
func ComputeTrends(history []RunMetrics, window int) TrendReport {
	if window <= 0 {
		window = DefaultTrendWindow
	}
	if len(history) > window {
		history = history[len(history)-window:]
	}
	if len(history) < 2 {
		return TrendReport{Insufficient: true}
	}

	oldest := history[0]
	newest := history[len(history)-1]

	report := TrendReport{
		AvgScoreDelta:    newest.AverageScore - oldest.AverageScore,
		BadRowsDelta:     newest.BadRows - oldest.BadRows,
		WarningRowsDelta: newest.WarningRows - oldest.WarningRows,
	}
	if report.BadRowsDelta > 0 {
		report.Direction = TrendDegrading
	} else {
		report.Direction = TrendImproving
	}
	return report
}
