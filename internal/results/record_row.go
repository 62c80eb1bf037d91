package results

import (
	"time"

	"cleanroom/internal/domain"
)

// storedRecord is the JSON shape persisted per record. The raw SSN is
// deliberately excluded; only the validity flag survives persistence.
type storedRecord struct {
	EmployeeID  string   `json:"employee_id"`
	FirstName   string   `json:"first_name,omitempty"`
	LastName    string   `json:"last_name,omitempty"`
	Email       string   `json:"email,omitempty"`
	Department  string   `json:"department,omitempty"`
	Phone       string   `json:"phone,omitempty"`
	Salary      *float64 `json:"salary,omitempty"`
	Age         *int     `json:"age,omitempty"`
	HireDate    *string  `json:"hire_date,omitempty"`
	HireDateRaw string   `json:"hire_date_raw,omitempty"`
	Status      string   `json:"status,omitempty"`
	Performance string   `json:"performance,omitempty"`
	SSNValid    *bool    `json:"ssn_valid,omitempty"`

	QualityScore int    `json:"quality_score"`
	Usability    string `json:"usability_status"`

	ResolutionAction     string  `json:"resolution_action,omitempty"`
	ResolutionReason     string  `json:"resolution_reason,omitempty"`
	ResolutionConfidence float64 `json:"resolution_confidence,omitempty"`

	QuarantineReason    string     `json:"quarantine_reason,omitempty"`
	QuarantineSource    string     `json:"quarantine_source,omitempty"`
	QuarantineTimestamp *time.Time `json:"quarantine_timestamp,omitempty"`

	ReviewOutcome string     `json:"review_outcome,omitempty"`
	ReviewNotes   string     `json:"review_notes,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
}

func recordRow(rec domain.Record) storedRecord {
	row := storedRecord{
		EmployeeID:   rec.EmployeeID,
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		Email:        rec.Email,
		Department:   rec.Department,
		Phone:        rec.Phone,
		Salary:       rec.Salary,
		Age:          rec.Age,
		HireDateRaw:  rec.HireDateRaw,
		Status:       rec.Status,
		Performance:  rec.Performance,
		SSNValid:     rec.SSNValid,
		QualityScore: rec.QualityScore,
		Usability:    string(rec.Usability),
	}
	if rec.HireDate != nil {
		s := rec.HireDate.Format("2006-01-02")
		row.HireDate = &s
	}
	if rec.Resolution != nil {
		row.ResolutionAction = string(rec.Resolution.Action)
		row.ResolutionReason = rec.Resolution.Reason
		row.ResolutionConfidence = rec.Resolution.Confidence
	}
	if rec.Quarantine != nil {
		row.QuarantineReason = rec.Quarantine.Reason
		row.QuarantineSource = rec.Quarantine.Source
		ts := rec.Quarantine.Timestamp
		row.QuarantineTimestamp = &ts
	}
	if rec.Review != nil {
		row.ReviewOutcome = string(rec.Review.Outcome)
		row.ReviewNotes = rec.Review.Notes
		ts := rec.Review.ReviewedAt
		row.ReviewedAt = &ts
	}
	return row
}

func (row storedRecord) toRecord() domain.Record {
	rec := domain.Record{
		EmployeeID:   row.EmployeeID,
		FirstName:    row.FirstName,
		LastName:     row.LastName,
		Email:        row.Email,
		Department:   row.Department,
		Phone:        row.Phone,
		Salary:       row.Salary,
		Age:          row.Age,
		HireDateRaw:  row.HireDateRaw,
		Status:       row.Status,
		Performance:  row.Performance,
		SSNValid:     row.SSNValid,
		QualityScore: row.QualityScore,
		Usability:    domain.UsabilityStatus(row.Usability),
	}
	if row.HireDate != nil {
		if t, err := time.Parse("2006-01-02", *row.HireDate); err == nil {
			rec.HireDate = &t
		}
	}
	if row.ResolutionAction != "" {
		rec.Resolution = &domain.Resolution{
			Action:     domain.ResolutionAction(row.ResolutionAction),
			Reason:     row.ResolutionReason,
			Confidence: row.ResolutionConfidence,
		}
	}
	if row.QuarantineTimestamp != nil || row.QuarantineReason != "" {
		info := domain.QuarantineInfo{
			Reason: row.QuarantineReason,
			Source: row.QuarantineSource,
		}
		if row.QuarantineTimestamp != nil {
			info.Timestamp = *row.QuarantineTimestamp
		}
		rec.Quarantine = &info
	}
	if row.ReviewOutcome != "" {
		info := domain.ReviewInfo{
			Outcome: domain.ReviewOutcome(row.ReviewOutcome),
			Notes:   row.ReviewNotes,
		}
		if row.ReviewedAt != nil {
			info.ReviewedAt = *row.ReviewedAt
		}
		rec.Review = &info
	}
	return rec
}
