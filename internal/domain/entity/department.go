package entity

// LevelApprover is one configured approver slot in a department's chain.
// Levels 2 through MaxApprovalLevels are configurable; level 1 is always the
// employee's direct supervisor and never appears here.
type LevelApprover struct {
	Level      int    `json:"level"`
	ApproverID int64  `json:"approver_id"`
	RoleName   string `json:"role_name"`
}

// Department holds per-department approval policy
type Department struct {
	ID        int64  `json:"id"`
	CompanyID int64  `json:"company_id"`
	Name      string `json:"name"`

	// LevelApprovers holds the configured approvers for levels 2..6, ordered
	// by level. A level with no configured approver is simply absent.
	LevelApprovers []LevelApprover `json:"level_approvers"`

	// Default chain lengths per employee type; 0 means "use the global default".
	StaffApprovalLevels      int `json:"staff_approval_levels"`
	WorkerApprovalLevels     int `json:"worker_approval_levels"`
	SupervisorApprovalLevels int `json:"supervisor_approval_levels"`
	ManagerApprovalLevels    int `json:"manager_approval_levels"`
	ExecutiveApprovalLevels  int `json:"executive_approval_levels"`

	// ProbationApprovalLevels caps the chain for unconfirmed employees;
	// 0 means no probation cap is defined.
	ProbationApprovalLevels int `json:"probation_approval_levels"`
}

// ApproverAtLevel returns the configured approver for a level, if any
func (d *Department) ApproverAtLevel(level int) (LevelApprover, bool) {
	for _, la := range d.LevelApprovers {
		if la.Level == level {
			return la, true
		}
	}
	return LevelApprover{}, false
}
