package entity

import "time"

// ApprovalStep is one level of an appraisal's approval chain
type ApprovalStep struct {
	ID              int64      `json:"id"`
	AppraisalID     int64      `json:"appraisal_id"`
	Level           int        `json:"level"` // 1-based, contiguous within a chain
	ApproverID      int64      `json:"approver_id"`
	ApproverRole    string     `json:"approver_role"`
	Status          string     `json:"status"`
	CanRate         bool       `json:"can_rate"`
	CanEditRatings  bool       `json:"can_edit_ratings"` // reserved, always false
	IsMandatory     bool       `json:"is_mandatory"`
	IsFinalApprover bool       `json:"is_final_approver"`
	ActionDate      *time.Time `json:"action_date,omitempty"`
	Comments        string     `json:"comments,omitempty"`

	// Display fields populated by joins, not stored on the step itself
	ApproverName      string `json:"approver_name,omitempty"`
	ApproverEmpNumber string `json:"approver_emp_number,omitempty"`
}
