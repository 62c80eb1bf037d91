package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"cleanroom/internal/domain"
)

type ScorerSuite struct {
	suite.Suite
	scorer *Scorer
}

func TestScorerSuite(t *testing.T) {
	suite.Run(t, new(ScorerSuite))
}

func (s *ScorerSuite) SetupTest() {
	s.scorer = NewScorer(DefaultPenalties())
}

// completeRecord returns a record with no defects. Individual tests break
// one field at a time.
func completeRecord() domain.Record {
	salary := 75000.0
	age := 34
	hired := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
	return domain.Record{
		EmployeeID:  "E-1001",
		FirstName:   "Dana",
		LastName:    "Whitfield",
		Email:       "dana.whitfield@example.com",
		Department:  "Engineering",
		Phone:       "5551234567",
		Salary:      &salary,
		Age:         &age,
		HireDate:    &hired,
		HireDateRaw: "2019-06-01",
	}
}

func (s *ScorerSuite) TestScore() {
	s.Run("complete record scores 100 and lands in GOOD", func() {
		out := s.scorer.Score(completeRecord(), false)
		s.Equal(100, out.QualityScore)
		s.Equal(domain.UsabilityGood, out.Usability)
	})

	s.Run("missing required field deducts 25", func() {
		rec := completeRecord()
		rec.Department = "   "
		out := s.scorer.Score(rec, false)
		s.Equal(75, out.QualityScore)
		s.Equal(domain.UsabilityWarning, out.Usability)
	})

	s.Run("email without at-sign deducts 20", func() {
		rec := completeRecord()
		rec.Email = "dana.whitfield.example.com"
		out := s.scorer.Score(rec, false)
		s.Equal(80, out.QualityScore)
		s.Equal(domain.UsabilityWarning, out.Usability)
	})

	s.Run("non-digit phone deducts 15 and stays GOOD at the boundary", func() {
		rec := completeRecord()
		rec.Phone = "555-123-4567"
		out := s.scorer.Score(rec, false)
		s.Equal(85, out.QualityScore)
		s.Equal(domain.UsabilityGood, out.Usability)
	})

	s.Run("empty phone is not penalized", func() {
		rec := completeRecord()
		rec.Phone = ""
		out := s.scorer.Score(rec, false)
		s.Equal(100, out.QualityScore)
	})

	s.Run("missing optional fields deduct 10 10 5", func() {
		rec := completeRecord()
		rec.Age = nil
		rec.HireDate = nil
		rec.HireDateRaw = ""
		rec.Salary = nil
		out := s.scorer.Score(rec, false)
		s.Equal(75, out.QualityScore)
	})

	s.Run("raw hire date string counts as present even when unparsed", func() {
		rec := completeRecord()
		rec.HireDate = nil
		rec.HireDateRaw = "sometime in 2019"
		out := s.scorer.Score(rec, false)
		s.Equal(100, out.QualityScore)
	})

	s.Run("duplicate identity deducts 30 and lands on the WARNING boundary", func() {
		out := s.scorer.Score(completeRecord(), true)
		s.Equal(70, out.QualityScore)
		s.Equal(domain.UsabilityWarning, out.Usability)
	})

	s.Run("stacked defects drop below WARNING", func() {
		rec := completeRecord()
		rec.Email = "no-at-sign"
		rec.Phone = "call me"
		out := s.scorer.Score(rec, false)
		s.Equal(65, out.QualityScore)
		s.Equal(domain.UsabilityBad, out.Usability)
	})

	s.Run("score floors at zero", func() {
		out := s.scorer.Score(domain.Record{}, true)
		s.Equal(0, out.QualityScore)
		s.Equal(domain.UsabilityBad, out.Usability)
	})

	s.Run("input record is not mutated", func() {
		rec := completeRecord()
		rec.Email = "broken"
		_ = s.scorer.Score(rec, false)
		s.Equal(0, rec.QualityScore)
		s.Empty(rec.Usability)
	})
}

func (s *ScorerSuite) TestScoreBatch() {
	s.Run("duplicate flag is batch-wide regardless of row order", func() {
		a := completeRecord()
		b := completeRecord()
		b.FirstName = "Other"
		c := completeRecord()
		c.EmployeeID = "E-2002"

		scored := s.scorer.ScoreBatch([]domain.Record{a, b, c})
		s.Require().Len(scored, 3)
		s.Equal(70, scored[0].QualityScore)
		s.Equal(70, scored[1].QualityScore)
		s.Equal(100, scored[2].QualityScore)
	})

	s.Run("identity keys are trimmed before duplicate matching", func() {
		a := completeRecord()
		b := completeRecord()
		b.EmployeeID = "  E-1001  "

		scored := s.scorer.ScoreBatch([]domain.Record{a, b})
		s.Equal(70, scored[0].QualityScore)
		s.Equal(70, scored[1].QualityScore)
	})

	s.Run("blank identity keys never count as duplicates", func() {
		a := completeRecord()
		a.EmployeeID = ""
		b := completeRecord()
		b.EmployeeID = "   "

		scored := s.scorer.ScoreBatch([]domain.Record{a, b})
		// Both lose the required-field penalty only.
		s.Equal(75, scored[0].QualityScore)
		s.Equal(75, scored[1].QualityScore)
	})
}
