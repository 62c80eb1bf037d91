// Package monitoring aggregates resolution outcomes into the rates, alerts,
// SLA verdicts, and trend signals operators watch.
package monitoring

import (
	"math"

	"cleanroom/internal/domain"
)

// BatchMetrics summarizes one resolved batch.
type BatchMetrics struct {
	TotalRows    int `json:"total_rows"`
	Accepted     int `json:"accepted"`
	Standardized int `json:"standardized"`
	Quarantined  int `json:"quarantined"`

	AcceptRate      float64 `json:"accept_rate"`
	StandardizeRate float64 `json:"standardize_rate"`
	QuarantineRate  float64 `json:"quarantine_rate"`
}

// ComputeMetrics counts actions across the resolved partitions and derives
// rates rounded to three decimals. An empty batch yields zero rates, never
// a division by zero.
func ComputeMetrics(cleaned, quarantined []domain.Record) BatchMetrics {
	m := BatchMetrics{TotalRows: len(cleaned) + len(quarantined)}

	for _, rec := range cleaned {
		if rec.Resolution == nil {
			continue
		}
		switch rec.Resolution.Action {
		case domain.ActionAccept:
			m.Accepted++
		case domain.ActionStandardize:
			m.Standardized++
		}
	}
	m.Quarantined = len(quarantined)

	if m.TotalRows == 0 {
		return m
	}
	total := float64(m.TotalRows)
	m.AcceptRate = round3(float64(m.Accepted) / total)
	m.StandardizeRate = round3(float64(m.Standardized) / total)
	m.QuarantineRate = round3(float64(m.Quarantined) / total)
	return m
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
