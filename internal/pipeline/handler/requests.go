package handler

import (
	"strings"
	"time"

	"cleanroom/internal/domain"
)

// RunRequest is the ingestion payload for one pipeline run. Columns name
// the dataset's schema; rows carry the raw field values. When columns are
// omitted they are derived from the keys present across the rows.
type RunRequest struct {
	Columns []string         `json:"columns,omitempty"`
	Rows    []map[string]any `json:"rows"`
}

// ResolvedColumns returns the declared columns, or the union of row keys
// when the payload did not declare any.
func (r RunRequest) ResolvedColumns() []string {
	if len(r.Columns) > 0 {
		return r.Columns
	}
	seen := map[string]bool{}
	var columns []string
	for _, row := range r.Rows {
		for key := range row {
			if !seen[key] {
				seen[key] = true
				columns = append(columns, key)
			}
		}
	}
	return columns
}

// Records converts the raw rows into domain records. Unknown keys are
// ignored; malformed optional values degrade to absent rather than failing
// ingestion, since row defects are the pipeline's job to find.
func (r RunRequest) Records() []domain.Record {
	records := make([]domain.Record, 0, len(r.Rows))
	for _, row := range r.Rows {
		records = append(records, toRecord(row))
	}
	return records
}

func toRecord(row map[string]any) domain.Record {
	rec := domain.Record{
		EmployeeID:  str(row, "employee_id"),
		FirstName:   str(row, "first_name"),
		LastName:    str(row, "last_name"),
		Email:       str(row, "email"),
		Department:  str(row, "department"),
		Phone:       str(row, "phone"),
		Status:      str(row, "status"),
		Performance: str(row, "performance"),
		SSN:         str(row, "ssn"),
		HireDateRaw: str(row, "hire_date"),
	}

	if v, ok := row["salary"].(float64); ok {
		rec.Salary = &v
	}
	if v, ok := row["age"].(float64); ok {
		age := int(v)
		rec.Age = &age
	}
	if v, ok := row["ssn_valid"].(bool); ok {
		rec.SSNValid = &v
	}
	if rec.HireDateRaw != "" {
		for _, layout := range []string{"2006-01-02", time.RFC3339, "01/02/2006", "2006/01/02"} {
			if t, err := time.Parse(layout, strings.TrimSpace(rec.HireDateRaw)); err == nil {
				rec.HireDate = &t
				break
			}
		}
	}
	return rec
}

func str(row map[string]any, key string) string {
	if v, ok := row[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
