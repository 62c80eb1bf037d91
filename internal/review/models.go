package review

import "time"

// Decision values a human reviewer can submit.
type Decision string

const (
	DecisionApprove Decision = "APPROVE"
	DecisionReject  Decision = "REJECT"
	DecisionFix     Decision = "FIX"
)

// QueueItem is one record awaiting human review, shaped for display.
type QueueItem struct {
	EmployeeID   string  `json:"employee_id"`
	CurrentScore int     `json:"current_score"`
	Action       string  `json:"suggested_action"`
	IssueReason  string  `json:"issue_reason"`
	Confidence   float64 `json:"confidence"`
}

// DecisionRequest is a submitted human decision for one record.
type DecisionRequest struct {
	EmployeeID string   `json:"employee_id"`
	Decision   Decision `json:"decision"`
	Notes      string   `json:"notes,omitempty"`
}

// Applied reports the result of applying a decision.
type Applied struct {
	EmployeeID string    `json:"employee_id"`
	Outcome    string    `json:"review_outcome"`
	ReviewedAt time.Time `json:"reviewed_at"`
}
