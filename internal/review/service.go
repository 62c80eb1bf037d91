// Package review exposes the human-review surface: a queue of records the
// engine was not confident about, and the decisions reviewers apply to them.
package review

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cleanroom/internal/domain"
	"cleanroom/internal/resolution/ports"
	"cleanroom/internal/results"
	dErrors "cleanroom/pkg/domain-errors"
	"cleanroom/pkg/platform/audit"
)

// ReviewConfidenceThreshold: resolutions below this confidence join the
// queue even when they were not quarantined.
const ReviewConfidenceThreshold = 0.8

// Service builds the review queue from current results and applies human
// decisions back onto the stored records.
type Service struct {
	store   results.Store
	auditor ports.AuditPort
	logger  *slog.Logger
	now     func() time.Time
}

func NewService(store results.Store, auditor ports.AuditPort, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{store: store, auditor: auditor, logger: logger, now: time.Now}
}

// Queue returns the records requiring human attention: everything
// quarantined, plus any resolution with confidence below the threshold.
func (s *Service) Queue(ctx context.Context) ([]QueueItem, error) {
	current, err := s.store.Current(ctx)
	if err != nil {
		if err == results.ErrNoResults {
			return []QueueItem{}, nil
		}
		return nil, fmt.Errorf("load current results: %w", err)
	}

	var queue []QueueItem
	appendItem := func(rec domain.Record) {
		queue = append(queue, QueueItem{
			EmployeeID:   rec.EmployeeID,
			CurrentScore: rec.QualityScore,
			Action:       string(rec.Resolution.Action),
			IssueReason:  rec.Resolution.Reason,
			Confidence:   rec.Resolution.Confidence,
		})
	}

	for _, rec := range current.Quarantined {
		if rec.Resolution != nil {
			appendItem(rec)
		}
	}
	for _, rec := range current.Cleaned {
		if rec.Resolution != nil && rec.Resolution.Confidence < ReviewConfidenceThreshold {
			appendItem(rec)
		}
	}
	return queue, nil
}

// Apply records a human decision on one record. The original resolution is
// kept intact; review fields are appended on top and the updated snapshot is
// written back.
func (s *Service) Apply(ctx context.Context, req DecisionRequest) (*Applied, error) {
	outcome, err := outcomeFor(req.Decision)
	if err != nil {
		return nil, err
	}

	current, err := s.store.Current(ctx)
	if err != nil {
		if err == results.ErrNoResults {
			return nil, dErrors.New(dErrors.CodeNotFound, "no results to review")
		}
		return nil, fmt.Errorf("load current results: %w", err)
	}

	reviewedAt := s.now().UTC()
	info := &domain.ReviewInfo{Outcome: outcome, Notes: req.Notes, ReviewedAt: reviewedAt}

	found := false
	stamp := func(recs []domain.Record) {
		for i := range recs {
			if recs[i].EmployeeID == req.EmployeeID {
				recs[i].Review = info
				found = true
			}
		}
	}
	stamp(current.Cleaned)
	stamp(current.Quarantined)

	if !found {
		return nil, dErrors.New(dErrors.CodeNotFound, "record not found in current results")
	}

	if err := s.store.ReplaceCurrent(ctx, *current); err != nil {
		return nil, fmt.Errorf("persist review decision: %w", err)
	}

	if s.auditor != nil {
		err := s.auditor.Emit(ctx, audit.Event{
			Action:   audit.ActionReviewApplied,
			Source:   "human_review",
			RecordID: req.EmployeeID,
			Reason:   req.Notes,
			Severity: audit.SeverityMedium,
			Metadata: map[string]string{
				"decision": string(req.Decision),
				"outcome":  string(outcome),
			},
		})
		if err != nil {
			s.logger.WarnContext(ctx, "audit write failed for review decision",
				"employee_id", req.EmployeeID, "error", err)
		}
	}

	return &Applied{EmployeeID: req.EmployeeID, Outcome: string(outcome), ReviewedAt: reviewedAt}, nil
}

func outcomeFor(d Decision) (domain.ReviewOutcome, error) {
	switch d {
	case DecisionApprove:
		return domain.ReviewOutcomeAccepted, nil
	case DecisionReject:
		return domain.ReviewOutcomeRejected, nil
	case DecisionFix:
		return domain.ReviewOutcomeNeedsFix, nil
	default:
		return "", dErrors.New(dErrors.CodeBadRequest, "decision must be APPROVE, REJECT, or FIX")
	}
}
