package entity

import "time"

// Appraisal represents one performance-appraisal instance. The chain engine
// owns current_approval_level, total_approval_levels, status and the final
// approval fields from the moment the chain is built.
type Appraisal struct {
	ID                   int64      `json:"id"`
	EmployeeID           int64      `json:"employee_id"`
	FormID               int64      `json:"form_id"`
	Status               string     `json:"status"`
	CurrentApprovalLevel int        `json:"current_approval_level"`
	TotalApprovalLevels  int        `json:"total_approval_levels"`
	FinalApproverID      int64      `json:"final_approver_id"`
	FinalApprovalDate    *time.Time `json:"final_approval_date,omitempty"`
	EmployeeSubmittedAt  *time.Time `json:"employee_submitted_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            time.Time  `json:"updated_at"`
}

// PendingApproval is a row in an approver's work queue: an appraisal whose
// current pending step is assigned to them, with employee display info.
type PendingApproval struct {
	AppraisalID       int64      `json:"appraisal_id"`
	EmployeeName      string     `json:"employee_name"`
	EmployeeEmpNumber string     `json:"employee_emp_number"`
	DepartmentName    string     `json:"department_name"`
	ApprovalLevel     int        `json:"approval_level"`
	ApproverRole      string     `json:"approver_role"`
	CanRate           bool       `json:"can_rate"`
	SubmittedAt       *time.Time `json:"submitted_at,omitempty"`
}
