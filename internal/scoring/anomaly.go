package scoring

import (
	"math"
	"regexp"
	"time"

	"cleanroom/internal/domain"
)

// AnomalyConfig bounds what "plausible" field values look like. These are
// dataset-level checks that feed the run report; they never fail a run.
type AnomalyConfig struct {
	AgeMin           int
	AgeMax           int
	SalaryMin        float64
	SalaryMax        float64
	ZScoreThreshold  float64
	MaxHireDateAgeYr int
}

func DefaultAnomalyConfig() AnomalyConfig {
	return AnomalyConfig{
		AgeMin:           18,
		AgeMax:           70,
		SalaryMin:        30000,
		SalaryMax:        250000,
		ZScoreThreshold:  3,
		MaxHireDateAgeYr: 40,
	}
}

var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
var phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)

// Outlier identifies one statistically anomalous value.
type Outlier struct {
	EmployeeID string
	Field      string
	Value      float64
}

// DatasetReport aggregates batch-level accuracy and anomaly findings.
type DatasetReport struct {
	InvalidAge       int
	InvalidSalary    int
	InvalidEmail     int
	InvalidPhone     int
	FutureHireDates  int
	AncientHireDates int
	SalaryOutliers   []Outlier
	AgeOutliers      []Outlier
}

// Analyze runs accuracy, timeliness, and statistical anomaly checks over a
// batch. Findings are informational: they surface on the run report for
// operators but do not change per-row routing.
func Analyze(batch []domain.Record, cfg AnomalyConfig, now time.Time) DatasetReport {
	var report DatasetReport
	oldest := now.AddDate(-cfg.MaxHireDateAgeYr, 0, 0)

	for _, rec := range batch {
		if rec.Age != nil && (*rec.Age < cfg.AgeMin || *rec.Age > cfg.AgeMax) {
			report.InvalidAge++
		}
		if rec.Salary != nil && (*rec.Salary < cfg.SalaryMin || *rec.Salary > cfg.SalaryMax) {
			report.InvalidSalary++
		}
		if rec.Email != "" && !emailPattern.MatchString(rec.Email) {
			report.InvalidEmail++
		}
		if rec.Phone != "" && !phonePattern.MatchString(rec.Phone) {
			report.InvalidPhone++
		}
		if rec.HireDate != nil {
			if rec.HireDate.After(now) {
				report.FutureHireDates++
			}
			if rec.HireDate.Before(oldest) {
				report.AncientHireDates++
			}
		}
	}

	report.SalaryOutliers = detectOutliers(batch, "salary", cfg.ZScoreThreshold, func(r domain.Record) (float64, bool) {
		if r.Salary == nil {
			return 0, false
		}
		return *r.Salary, true
	})
	report.AgeOutliers = detectOutliers(batch, "age", cfg.ZScoreThreshold, func(r domain.Record) (float64, bool) {
		if r.Age == nil {
			return 0, false
		}
		return float64(*r.Age), true
	})

	return report
}

// detectOutliers flags values whose z-score exceeds the threshold. Batches
// with fewer than two usable values have no meaningful deviation and return
// nothing.
func detectOutliers(batch []domain.Record, field string, threshold float64, value func(domain.Record) (float64, bool)) []Outlier {
	var values []float64
	for _, rec := range batch {
		if v, ok := value(rec); ok {
			values = append(values, v)
		}
	}
	if len(values) < 2 {
		return nil
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))

	var sq float64
	for _, v := range values {
		sq += (v - mean) * (v - mean)
	}
	std := math.Sqrt(sq / float64(len(values)-1))
	if std == 0 {
		return nil
	}

	var outliers []Outlier
	for _, rec := range batch {
		v, ok := value(rec)
		if !ok {
			continue
		}
		if math.Abs((v-mean)/std) > threshold {
			outliers = append(outliers, Outlier{EmployeeID: rec.EmployeeID, Field: field, Value: v})
		}
	}
	return outliers
}
