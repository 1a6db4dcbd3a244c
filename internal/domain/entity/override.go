package entity

// Override is a prioritized exception rule that can shrink, skip, or extend a
// computed approval chain. Scope fields are pointers: a nil field matches any
// value, so rules are partial wildcards evaluated in memory.
type Override struct {
	ID        int64 `json:"id"`
	CompanyID int64 `json:"company_id"`
	Priority  int   `json:"priority"` // lower value wins
	IsActive  bool  `json:"is_active"`

	// Scope (nil = matches anything)
	DepartmentID *int64  `json:"department_id,omitempty"`
	EmployeeType *string `json:"employee_type,omitempty"`
	IsProbation  *bool   `json:"is_probation,omitempty"`
	UserID       *int64  `json:"user_id,omitempty"`
	PositionID   *int64  `json:"position_id,omitempty"`

	// Effects
	SetApprovalLevels    int   `json:"set_approval_levels"` // 0 = no explicit count
	SkipLevel2           bool  `json:"skip_level_2"`
	SkipLevel3           bool  `json:"skip_level_3"`
	SkipLevel4           bool  `json:"skip_level_4"`
	AdditionalApproverID int64 `json:"additional_approver_id"` // 0 = none
}

// OverrideScope is the set of resolved employee attributes an override rule is
// matched against.
type OverrideScope struct {
	CompanyID    int64
	DepartmentID int64
	EmployeeType string
	IsProbation  bool
	UserID       int64
	PositionID   int64
}

// Matches reports whether the rule applies to the given scope. Each non-nil
// scope field must match exactly.
func (o *Override) Matches(s OverrideScope) bool {
	if !o.IsActive || o.CompanyID != s.CompanyID {
		return false
	}
	if o.DepartmentID != nil && *o.DepartmentID != s.DepartmentID {
		return false
	}
	if o.EmployeeType != nil && *o.EmployeeType != s.EmployeeType {
		return false
	}
	if o.IsProbation != nil && *o.IsProbation != s.IsProbation {
		return false
	}
	if o.UserID != nil && *o.UserID != s.UserID {
		return false
	}
	if o.PositionID != nil && *o.PositionID != s.PositionID {
		return false
	}
	return true
}
