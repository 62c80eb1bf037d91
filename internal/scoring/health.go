package scoring

import (
	"math"

	"cleanroom/internal/domain"
)

// HealthStatus summarizes an entire dataset.
type HealthStatus string

const (
	HealthGood     HealthStatus = "GOOD"
	HealthDegraded HealthStatus = "DEGRADED"
	HealthFail     HealthStatus = "FAIL"
)

// DatasetHealth is the operator-facing rollup of a scored batch.
type DatasetHealth struct {
	Status       HealthStatus
	AverageScore float64
	BadRowPct    float64
	RowsAnalyzed int
}

// ClassifyHealth rolls a scored batch up into a single health status using
// the average score and the share of BAD rows.
func ClassifyHealth(batch []domain.Record) DatasetHealth {
	health := DatasetHealth{Status: HealthFail, RowsAnalyzed: len(batch)}
	if len(batch) == 0 {
		return health
	}

	var total int
	var bad int
	for _, rec := range batch {
		total += rec.QualityScore
		if rec.Usability == domain.UsabilityBad {
			bad++
		}
	}

	health.AverageScore = round2(float64(total) / float64(len(batch)))
	health.BadRowPct = round2(float64(bad) / float64(len(batch)) * 100)

	switch {
	case health.AverageScore >= 85 && health.BadRowPct <= 5:
		health.Status = HealthGood
	case health.AverageScore >= 70 && health.BadRowPct <= 20:
		health.Status = HealthDegraded
	}
	return health
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
