package domain

import "time"

// UsabilityStatus buckets a record by its quality score.
type UsabilityStatus string

const (
	UsabilityGood    UsabilityStatus = "GOOD"
	UsabilityWarning UsabilityStatus = "WARNING"
	UsabilityBad     UsabilityStatus = "BAD"
)

// Score thresholds for usability classification.
const (
	GoodScoreMin    = 85
	WarningScoreMin = 70
)

// ClassifyScore maps a quality score to its usability bucket. Status is a pure
// function of the score so the two can never disagree.
func ClassifyScore(score int) UsabilityStatus {
	switch {
	case score >= GoodScoreMin:
		return UsabilityGood
	case score >= WarningScoreMin:
		return UsabilityWarning
	default:
		return UsabilityBad
	}
}

// ResolutionAction enumerates the possible dispositions for a record.
type ResolutionAction string

const (
	ActionAccept      ResolutionAction = "ACCEPT"
	ActionStandardize ResolutionAction = "STANDARDIZE"
	ActionQuarantine  ResolutionAction = "QUARANTINE"
	ActionDedupe      ResolutionAction = "DEDUPE"
)

// Resolution is the disposition assigned to a record by the resolution
// engine. It is assigned exactly once per run; human review appends an
// outcome on top rather than rewriting it.
type Resolution struct {
	Action     ResolutionAction
	Reason     string
	Confidence float64
}

// QuarantineInfo captures why and when a record was isolated.
type QuarantineInfo struct {
	Reason    string
	Source    string
	Timestamp time.Time
}

// ReviewOutcome is the disposition applied by a human reviewer.
type ReviewOutcome string

const (
	ReviewOutcomeAccepted ReviewOutcome = "ACCEPT"
	ReviewOutcomeRejected ReviewOutcome = "REJECTED"
	ReviewOutcomeNeedsFix ReviewOutcome = "NEEDS_FIX"
)

// ReviewInfo is appended to a record when a human decision is applied.
// Original resolution fields are never erased.
type ReviewInfo struct {
	Outcome    ReviewOutcome
	Notes      string
	ReviewedAt time.Time
}

// Record is one employee row flowing through the pipeline. Raw field values
// come from ingestion; the pipeline fills in score, usability, resolution and
// quarantine/review metadata as the record moves through its lifecycle.
type Record struct {
	EmployeeID string
	FirstName  string
	LastName   string
	Email      string
	Department string

	Phone       string
	Salary      *float64
	Age         *int
	HireDate    *time.Time
	HireDateRaw string

	Status      string
	Performance string

	// SSNValid is the externally supplied identity-validity flag.
	// nil means the capability was never consulted for this record.
	SSNValid *bool
	SSN      string

	QualityScore int
	Usability    UsabilityStatus

	Resolution *Resolution
	Quarantine *QuarantineInfo
	Review     *ReviewInfo
}

// NonNullFieldCount reports how many of the record's raw fields carry a
// value. Used by deduplication as the completeness tie-breaker.
func (r Record) NonNullFieldCount() int {
	n := 0
	for _, s := range []string{r.EmployeeID, r.FirstName, r.LastName, r.Email, r.Department, r.Phone, r.Status, r.Performance, r.SSN} {
		if s != "" {
			n++
		}
	}
	if r.Salary != nil {
		n++
	}
	if r.Age != nil {
		n++
	}
	if r.HireDate != nil {
		n++
	}
	return n
}

// Clone returns a deep copy so transforms never alias pointer fields of the
// source record.
func (r Record) Clone() Record {
	out := r
	if r.Salary != nil {
		v := *r.Salary
		out.Salary = &v
	}
	if r.Age != nil {
		v := *r.Age
		out.Age = &v
	}
	if r.HireDate != nil {
		v := *r.HireDate
		out.HireDate = &v
	}
	if r.SSNValid != nil {
		v := *r.SSNValid
		out.SSNValid = &v
	}
	if r.Resolution != nil {
		v := *r.Resolution
		out.Resolution = &v
	}
	if r.Quarantine != nil {
		v := *r.Quarantine
		out.Quarantine = &v
	}
	if r.Review != nil {
		v := *r.Review
		out.Review = &v
	}
	return out
}
