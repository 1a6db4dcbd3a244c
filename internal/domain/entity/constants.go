package entity

// MaxApprovalLevels is the hard ceiling on chain length, regardless of
// department configuration or overrides.
const MaxApprovalLevels = 6

// Status constants for Appraisal
const (
	AppraisalStatusDraft           = "draft"
	AppraisalStatusPendingApproval = "pending_approval"
	AppraisalStatusCompleted       = "completed"
	AppraisalStatusRejected        = "rejected"
)

// Status constants for ApprovalStep
const (
	StepStatusPending  = "pending"
	StepStatusApproved = "approved"
	StepStatusRejected = "rejected"
)

// Approver role constants
const (
	RoleDirectSupervisor   = "direct_supervisor"
	RoleAdditionalApprover = "additional_approver"
)

// Employee type constants
const (
	EmployeeTypeOfficeStaff      = "office_staff"
	EmployeeTypeProductionWorker = "production_worker"
	EmployeeTypeSupervisor       = "supervisor"
	EmployeeTypeManager          = "manager"
	EmployeeTypeExecutive        = "executive"
)

// Approval action constants
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionCreated = "created"
)
