package entity

import "time"

// ApprovalLog is one immutable audit entry for an appraisal's approval chain:
// chain creation (level 0) or a per-step approve/reject action.
type ApprovalLog struct {
	ID             int64     `json:"id"`
	AppraisalID    int64     `json:"appraisal_id"`
	ApprovalLevel  int       `json:"approval_level"` // 0 for chain creation
	Action         string    `json:"action"`
	ActorID        int64     `json:"actor_id"` // 0 for system entries
	PreviousStatus string    `json:"previous_status"`
	NewStatus      string    `json:"new_status"`
	Comments       string    `json:"comments,omitempty"`
	CreatedAt      time.Time `json:"created_at"`

	// Populated by joins for display
	ActorName string `json:"actor_name,omitempty"`
}
