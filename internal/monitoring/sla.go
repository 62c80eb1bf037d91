package monitoring

// SLAStatus is the overall verdict for a run.
type SLAStatus string

const (
	SLAOK       SLAStatus = "OK"
	SLABreached SLAStatus = "BREACHED"
)

// SLA violation codes.
const (
	ViolationBadRowPct    = "BAD_ROW_PERCENTAGE_EXCEEDED"
	ViolationAverageScore = "AVERAGE_SCORE_TOO_LOW"
)

// SLASnapshot carries the per-run quality figures the SLA is judged on.
type SLASnapshot struct {
	TotalRows    int
	BadRows      int
	AverageScore float64
}

// SLAThresholds are the contractual quality bounds.
type SLAThresholds struct {
	MaxBadRowFraction float64
	MinAverageScore   float64
}

// DefaultSLAThresholds returns the production SLA bounds.
func DefaultSLAThresholds() SLAThresholds {
	return SLAThresholds{
		MaxBadRowFraction: 0.05,
		MinAverageScore:   85,
	}
}

// SLAResult is the itemized verdict on a run.
type SLAResult struct {
	Status     SLAStatus `json:"sla_status"`
	Violations []string  `json:"violations"`
}

// EvaluateSLA judges one run against the thresholds. An empty run cannot
// breach the bad-row bound.
func EvaluateSLA(s SLASnapshot, t SLAThresholds) SLAResult {
	result := SLAResult{Status: SLAOK, Violations: []string{}}

	if s.TotalRows > 0 {
		badFraction := float64(s.BadRows) / float64(s.TotalRows)
		if badFraction > t.MaxBadRowFraction {
			result.Violations = append(result.Violations, ViolationBadRowPct)
		}
	}
	if s.AverageScore < t.MinAverageScore {
		result.Violations = append(result.Violations, ViolationAverageScore)
	}

	if len(result.Violations) > 0 {
		result.Status = SLABreached
	}
	return result
}
