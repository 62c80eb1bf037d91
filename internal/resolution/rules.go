package resolution

import (
	"cleanroom/internal/domain"
)

// Config holds the resolution tunables. It is passed explicitly at
// construction; nothing in this package reads ambient state.
type Config struct {
	// StandardizeMinScore is the minimum score a WARNING row needs to be
	// standardized instead of quarantined.
	StandardizeMinScore int
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{StandardizeMinScore: 75}
}

// Decision is the per-record outcome of rule evaluation.
type Decision struct {
	Action     domain.ResolutionAction
	Reason     string
	Confidence float64
}

// Decide determines what should happen to a single record. Rules are
// evaluated in fixed priority order, first match wins:
//
//  1. Explicit SSN-invalid flag: hard quarantine regardless of score
//  2. BAD usability: quarantine
//  3. WARNING usability: standardize above the threshold, else quarantine
//  4. GOOD usability: accept
//
// This is pure domain logic - no I/O, no side effects.
func Decide(rec domain.Record, cfg Config) Decision {
	if rec.SSNValid != nil && !*rec.SSNValid {
		return Decision{
			Action:     domain.ActionQuarantine,
			Reason:     "Invalid SSN",
			Confidence: 0.95,
		}
	}

	switch rec.Usability {
	case domain.UsabilityBad:
		return Decision{
			Action:     domain.ActionQuarantine,
			Reason:     "Row failed quality thresholds",
			Confidence: 0.9,
		}
	case domain.UsabilityWarning:
		if rec.QualityScore >= cfg.StandardizeMinScore {
			return Decision{
				Action:     domain.ActionStandardize,
				Reason:     "Minor data quality issues, standardization applied",
				Confidence: 0.85,
			}
		}
		return Decision{
			Action:     domain.ActionQuarantine,
			Reason:     "Minor issues below standardize threshold",
			Confidence: 0.7,
		}
	case domain.UsabilityGood:
		return Decision{
			Action:     domain.ActionAccept,
			Reason:     "Meets all quality thresholds",
			Confidence: 0.99,
		}
	}

	// Unclassified rows never reach here once scoring ran; quarantine is
	// the conservative fallback.
	return Decision{
		Action:     domain.ActionQuarantine,
		Reason:     "Unclassified usability status",
		Confidence: 0.5,
	}
}

