//go:build integration

package results_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"cleanroom/internal/domain"
	"cleanroom/internal/monitoring"
	"cleanroom/internal/results"
	"cleanroom/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *results.PostgresStore
	history  *results.PostgresHistory
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = results.NewPostgresStore(s.postgres.DB)
	s.history = results.NewPostgresHistory(s.postgres.DB)
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateTables(context.Background(), "current_results", "run_history"))
}

func newRun(runID string) results.RunResults {
	salary := 75000.0
	age := 34
	hired := time.Date(2019, 6, 1, 0, 0, 0, 0, time.UTC)
	valid := true
	quarantinedAt := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	return results.RunResults{
		RunID:     runID,
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Cleaned: []domain.Record{{
			EmployeeID:   "E-1",
			FirstName:    "Dana",
			LastName:     "Whitfield",
			Email:        "dana@example.com",
			Department:   "Engineering",
			Phone:        "5551234567",
			Salary:       &salary,
			Age:          &age,
			HireDate:     &hired,
			HireDateRaw:  "2019-06-01",
			SSNValid:     &valid,
			SSN:          "123-45-6789",
			QualityScore: 100,
			Usability:    domain.UsabilityGood,
			Resolution:   &domain.Resolution{Action: domain.ActionAccept, Reason: "Meets all quality thresholds", Confidence: 0.99},
		}},
		Quarantined: []domain.Record{{
			EmployeeID:   "E-2",
			QualityScore: 40,
			Usability:    domain.UsabilityBad,
			Resolution:   &domain.Resolution{Action: domain.ActionQuarantine, Reason: "Row failed quality thresholds", Confidence: 0.9},
			Quarantine:   &domain.QuarantineInfo{Reason: "Row failed quality thresholds", Source: "resolution_engine", Timestamp: quarantinedAt},
		}},
		Archived: []domain.Record{{
			EmployeeID:   "E-1",
			QualityScore: 60,
			Usability:    domain.UsabilityBad,
			Resolution:   &domain.Resolution{Action: domain.ActionDedupe, Reason: "duplicate identity key, superseded by higher-ranked record", Confidence: 0.85},
		}},
	}
}

func (s *PostgresStoreSuite) TestCurrentRoundTrip() {
	ctx := context.Background()

	_, err := s.store.Current(ctx)
	s.Require().ErrorIs(err, results.ErrNoResults)

	run := newRun("run-1")
	s.Require().NoError(s.store.ReplaceCurrent(ctx, run))

	got, err := s.store.Current(ctx)
	s.Require().NoError(err)

	s.Equal("run-1", got.RunID)
	s.Require().Len(got.Cleaned, 1)
	s.Require().Len(got.Quarantined, 1)
	s.Require().Len(got.Archived, 1)

	cleaned := got.Cleaned[0]
	s.Equal("E-1", cleaned.EmployeeID)
	s.Equal("dana@example.com", cleaned.Email)
	s.Require().NotNil(cleaned.Salary)
	s.Equal(75000.0, *cleaned.Salary)
	s.Require().NotNil(cleaned.Resolution)
	s.Equal(domain.ActionAccept, cleaned.Resolution.Action)

	quarantined := got.Quarantined[0]
	s.Require().NotNil(quarantined.Quarantine)
	s.Equal("resolution_engine", quarantined.Quarantine.Source)

	s.Equal(domain.ActionDedupe, got.Archived[0].Resolution.Action)
}

func (s *PostgresStoreSuite) TestRawSSNNeverPersisted() {
	ctx := context.Background()
	s.Require().NoError(s.store.ReplaceCurrent(ctx, newRun("run-1")))

	got, err := s.store.Current(ctx)
	s.Require().NoError(err)

	s.Empty(got.Cleaned[0].SSN)
	s.Require().NotNil(got.Cleaned[0].SSNValid)
	s.True(*got.Cleaned[0].SSNValid)

	var count int
	err = s.postgres.DB.QueryRowContext(ctx,
		`SELECT count(*) FROM current_results WHERE payload::text LIKE '%123-45-6789%'`).Scan(&count)
	s.Require().NoError(err)
	s.Zero(count)
}

func (s *PostgresStoreSuite) TestReplaceIsAtomic() {
	ctx := context.Background()

	s.Require().NoError(s.store.ReplaceCurrent(ctx, newRun("run-1")))
	s.Require().NoError(s.store.ReplaceCurrent(ctx, newRun("run-2")))

	got, err := s.store.Current(ctx)
	s.Require().NoError(err)
	s.Equal("run-2", got.RunID)
	s.Len(got.Cleaned, 1)
}

func (s *PostgresStoreSuite) TestHistory() {
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		s.Require().NoError(s.history.AppendRun(ctx, monitoring.RunMetrics{
			RunID:        fmt.Sprintf("run-%d", i),
			Timestamp:    time.Now().UTC().Add(time.Duration(i) * time.Minute),
			TotalRows:    100,
			AverageScore: 80 + float64(i),
			BadRows:      i,
			WarningRows:  i * 2,
			Batch:        monitoring.BatchMetrics{TotalRows: 100, Accepted: 100 - i, Quarantined: i},
		}))
	}

	runs, err := s.history.Recent(ctx, 5)
	s.Require().NoError(err)
	s.Require().Len(runs, 5)

	// Oldest first inside the trailing window.
	s.Equal(3, runs[0].BadRows)
	s.Equal(7, runs[4].BadRows)
	s.Equal(85.0, runs[2].AverageScore)
	s.Equal(95, runs[4].Batch.Accepted)
}
