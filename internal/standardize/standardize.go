// Package standardize applies rule-based, idempotent normalization to
// individual record fields. Every change is reported as a field-level event
// for the audit trail; row identity and score are never touched.
package standardize

import (
	"strings"
	"time"
	"unicode"

	"cleanroom/internal/domain"
)

// FieldChange describes one normalization applied to a record.
type FieldChange struct {
	Field  string
	Before string
	After  string
	Reason string
}

// dateLayouts are the formats accepted when canonicalizing hire dates.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"01/02/2006",
	"2006/01/02",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// Standardize returns a normalized copy of the record plus the list of
// field changes applied. Fields already in canonical form produce no event,
// which also makes every transform idempotent.
func Standardize(rec domain.Record) (domain.Record, []FieldChange) {
	out := rec.Clone()
	var changes []FieldChange

	if rec.Email != "" {
		if after := Email(rec.Email); after != rec.Email {
			out.Email = after
			changes = append(changes, FieldChange{
				Field:  "email",
				Before: rec.Email,
				After:  after,
				Reason: "normalized email casing and spacing",
			})
		}
	}

	if rec.Phone != "" {
		if after := Phone(rec.Phone); after != rec.Phone {
			out.Phone = after
			changes = append(changes, FieldChange{
				Field:  "phone",
				Before: rec.Phone,
				After:  after,
				Reason: "removed non-numeric characters from phone number",
			})
		}
	}

	if rec.Department != "" {
		if after := Department(rec.Department); after != rec.Department {
			out.Department = after
			changes = append(changes, FieldChange{
				Field:  "department",
				Before: rec.Department,
				After:  after,
				Reason: "normalized department casing",
			})
		}
	}

	if rec.HireDateRaw != "" {
		if after := Date(rec.HireDateRaw); after != rec.HireDateRaw {
			out.HireDateRaw = after
			if t, err := time.Parse("2006-01-02", after); err == nil {
				out.HireDate = &t
			}
			changes = append(changes, FieldChange{
				Field:  "hire_date",
				Before: rec.HireDateRaw,
				After:  after,
				Reason: "re-emitted hire date as ISO-8601",
			})
		}
	}

	return out, changes
}

// Email trims surrounding whitespace and lower-cases the address.
func Email(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Phone strips non-digit characters. If the result is not exactly ten
// digits the original value is kept: the transform never invents digits.
func Phone(phone string) string {
	var digits strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 10 {
		return digits.String()
	}
	return phone
}

// Department trims and title-cases the department name.
func Department(dept string) string {
	return titleCase(strings.TrimSpace(dept))
}

// Date re-emits a date string as an ISO-8601 calendar date. Values that
// cannot be parsed pass through unchanged rather than failing the record.
func Date(value string) string {
	trimmed := strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}

func titleCase(s string) string {
	var b strings.Builder
	startOfWord := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			startOfWord = true
			b.WriteRune(r)
		case startOfWord:
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
