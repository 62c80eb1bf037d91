package scoring

import (
	"fmt"
	"strings"

	dErrors "cleanroom/pkg/domain-errors"
)

// RequiredColumns are the columns a batch must carry before any row-level
// processing happens. A missing column is a dataset defect, not a row defect.
var RequiredColumns = []string{
	"employee_id",
	"first_name",
	"last_name",
	"email",
	"department",
}

// SchemaError reports every required column missing from a batch. It is
// fatal for the run: no partial output is produced.
type SchemaError struct {
	MissingColumns []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("required columns missing: %s", strings.Join(e.MissingColumns, ", "))
}

// CheckSchema validates the set of columns present in a batch. Column names
// are compared case-insensitively after trimming, matching how upstream
// ingestion normalizes headers.
func CheckSchema(columns []string) error {
	present := make(map[string]bool, len(columns))
	for _, c := range columns {
		present[strings.ToLower(strings.TrimSpace(c))] = true
	}

	var missing []string
	for _, required := range RequiredColumns {
		if !present[required] {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return dErrors.Wrap(dErrors.CodeSchema, "batch failed schema validation", &SchemaError{MissingColumns: missing})
	}
	return nil
}
