package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanroom/internal/domain"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestAnalyzeAccuracyChecks(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	future := now.AddDate(1, 0, 0)
	ancient := now.AddDate(-45, 0, 0)

	batch := []domain.Record{
		{EmployeeID: "E-1", Age: intPtr(17), Salary: floatPtr(20000)},
		{EmployeeID: "E-2", Age: intPtr(71), Email: "not-an-email"},
		{EmployeeID: "E-3", Phone: "555-CALL", HireDate: &future},
		{EmployeeID: "E-4", Email: "ok@example.com", Phone: "5551234567", HireDate: &ancient},
		{EmployeeID: "E-5", Age: intPtr(35), Salary: floatPtr(80000)},
	}

	report := Analyze(batch, DefaultAnomalyConfig(), now)

	assert.Equal(t, 2, report.InvalidAge)
	assert.Equal(t, 1, report.InvalidSalary)
	assert.Equal(t, 1, report.InvalidEmail)
	assert.Equal(t, 1, report.InvalidPhone)
	assert.Equal(t, 1, report.FutureHireDates)
	assert.Equal(t, 1, report.AncientHireDates)
}

func TestAnalyzeOutliers(t *testing.T) {
	now := time.Now().UTC()

	t.Run("single extreme salary is flagged", func(t *testing.T) {
		batch := make([]domain.Record, 0, 11)
		for i := 0; i < 10; i++ {
			batch = append(batch, domain.Record{EmployeeID: "E-base", Salary: floatPtr(50000)})
		}
		batch = append(batch, domain.Record{EmployeeID: "E-spike", Salary: floatPtr(1000000)})

		report := Analyze(batch, DefaultAnomalyConfig(), now)
		require.Len(t, report.SalaryOutliers, 1)
		assert.Equal(t, "E-spike", report.SalaryOutliers[0].EmployeeID)
		assert.Equal(t, "salary", report.SalaryOutliers[0].Field)
		assert.Equal(t, 1000000.0, report.SalaryOutliers[0].Value)
	})

	t.Run("single extreme age is flagged", func(t *testing.T) {
		batch := make([]domain.Record, 0, 11)
		for i := 0; i < 10; i++ {
			batch = append(batch, domain.Record{EmployeeID: "E-base", Age: intPtr(30)})
		}
		batch = append(batch, domain.Record{EmployeeID: "E-spike", Age: intPtr(100)})

		report := Analyze(batch, DefaultAnomalyConfig(), now)
		require.Len(t, report.AgeOutliers, 1)
		assert.Equal(t, "E-spike", report.AgeOutliers[0].EmployeeID)
	})

	t.Run("fewer than two values yields no outliers", func(t *testing.T) {
		batch := []domain.Record{{EmployeeID: "E-1", Salary: floatPtr(1000000)}}
		report := Analyze(batch, DefaultAnomalyConfig(), now)
		assert.Empty(t, report.SalaryOutliers)
	})

	t.Run("identical values have no deviation and no outliers", func(t *testing.T) {
		batch := []domain.Record{
			{EmployeeID: "E-1", Salary: floatPtr(50000)},
			{EmployeeID: "E-2", Salary: floatPtr(50000)},
			{EmployeeID: "E-3", Salary: floatPtr(50000)},
		}
		report := Analyze(batch, DefaultAnomalyConfig(), now)
		assert.Empty(t, report.SalaryOutliers)
	})
}
