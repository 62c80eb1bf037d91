package scoring

import (
	"strings"

	"cleanroom/internal/domain"
)

// Penalties are the fixed score deductions applied per defect. They start
// from a perfect 100 and the result is floored at zero.
type Penalties struct {
	MissingRequiredField int
	InvalidEmail         int
	InvalidPhone         int
	MissingAge           int
	MissingHireDate      int
	MissingSalary        int
	DuplicateID          int
}

// DefaultPenalties returns the production penalty weights.
func DefaultPenalties() Penalties {
	return Penalties{
		MissingRequiredField: 25,
		InvalidEmail:         20,
		InvalidPhone:         15,
		MissingAge:           10,
		MissingHireDate:      10,
		MissingSalary:        5,
		DuplicateID:          30,
	}
}

// Scorer computes quality scores and usability buckets for a batch.
type Scorer struct {
	penalties Penalties
}

func NewScorer(penalties Penalties) *Scorer {
	return &Scorer{penalties: penalties}
}

// DuplicateIDs reports which identity keys appear more than once in the
// batch. This is the one batch-wide input to per-row scoring and must be
// computed over the fully materialized batch before scoring starts.
func DuplicateIDs(batch []domain.Record) map[string]bool {
	counts := make(map[string]int, len(batch))
	for _, rec := range batch {
		if key := strings.TrimSpace(rec.EmployeeID); key != "" {
			counts[key]++
		}
	}
	dups := make(map[string]bool, len(counts))
	for key, n := range counts {
		if n > 1 {
			dups[key] = true
		}
	}
	return dups
}

// ScoreBatch scores every record and assigns its usability status. The
// duplicate-ID flag is computed batch-wide before any per-row scoring, so
// scoring order does not matter. The input slice is not mutated.
func (s *Scorer) ScoreBatch(batch []domain.Record) []domain.Record {
	dups := DuplicateIDs(batch)
	out := make([]domain.Record, 0, len(batch))
	for _, rec := range batch {
		out = append(out, s.Score(rec, dups[strings.TrimSpace(rec.EmployeeID)]))
	}
	return out
}

// Score computes one record's score given its batch-wide duplicate flag.
// It is a pure transform: the returned record is a copy.
func (s *Scorer) Score(rec domain.Record, duplicateID bool) domain.Record {
	out := rec.Clone()
	score := 100

	for _, field := range []string{rec.EmployeeID, rec.FirstName, rec.LastName, rec.Email, rec.Department} {
		if strings.TrimSpace(field) == "" {
			score -= s.penalties.MissingRequiredField
		}
	}

	if !strings.Contains(rec.Email, "@") {
		score -= s.penalties.InvalidEmail
	}

	if rec.Phone != "" && !allDigits(rec.Phone) {
		score -= s.penalties.InvalidPhone
	}

	if rec.Age == nil {
		score -= s.penalties.MissingAge
	}
	if rec.HireDate == nil && strings.TrimSpace(rec.HireDateRaw) == "" {
		score -= s.penalties.MissingHireDate
	}
	if rec.Salary == nil {
		score -= s.penalties.MissingSalary
	}

	if duplicateID {
		score -= s.penalties.DuplicateID
	}

	if score < 0 {
		score = 0
	}

	out.QualityScore = score
	out.Usability = domain.ClassifyScore(score)
	return out
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
