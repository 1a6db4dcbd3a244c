package port

import (
	"context"
	"time"

	"github.com/hrworks/appraisal-engine/internal/domain/entity"
)

// EmployeeRepository reads the organization directory
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Employee, error)
}

// PositionRepository reads position records
type PositionRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Position, error)
}

// DepartmentRepository reads department approval policy, including the
// per-level approver configuration for levels 2..6
type DepartmentRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Department, error)
}

// OverrideRepository reads exception rules
type OverrideRepository interface {
	// GetActiveByCompany returns all active rules for a company ordered by
	// priority then id; matching happens in memory.
	GetActiveByCompany(ctx context.Context, companyID int64) ([]entity.Override, error)
}

// AppraisalRepository defines persistence operations on the appraisal
// aggregate fields owned by the chain engine
type AppraisalRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Appraisal, error)

	// InitializeChainMetadata points the appraisal at level 1 of a freshly
	// persisted chain and moves it to pending_approval.
	InitializeChainMetadata(ctx context.Context, id int64, totalLevels int, submittedAt time.Time) error

	// AdvanceLevel moves current_approval_level to the given level
	AdvanceLevel(ctx context.Context, id int64, level int) error

	// Complete marks the appraisal completed by its final approver
	Complete(ctx context.Context, id int64, approverID int64, approvedAt time.Time) error

	// Reject marks the appraisal rejected
	Reject(ctx context.Context, id int64) error

	// ListPendingForApprover returns appraisals whose current pending step is
	// assigned to the user
	ListPendingForApprover(ctx context.Context, userID int64) ([]*entity.PendingApproval, error)
}

// ApprovalStepRepository defines persistence operations for chain steps
type ApprovalStepRepository interface {
	// ReplaceChain deletes any existing steps for the appraisal and inserts
	// the new chain. Callers wrap it in a transaction.
	ReplaceChain(ctx context.Context, appraisalID int64, steps []entity.ApprovalStep) error

	// GetByAppraisalID returns the full chain ordered by level, with approver
	// display names joined in
	GetByAppraisalID(ctx context.Context, appraisalID int64) ([]*entity.ApprovalStep, error)

	// GetPendingAtLevel returns the pending step at the given level, or nil
	// when none exists
	GetPendingAtLevel(ctx context.Context, appraisalID int64, level int) (*entity.ApprovalStep, error)

	// RecordDecision stores an approve/reject outcome on a step
	RecordDecision(ctx context.Context, appraisalID int64, level int, status string, actionDate time.Time, comments string) error
}

// ApprovalLogRepository appends and reads the immutable audit trail
type ApprovalLogRepository interface {
	Create(ctx context.Context, log *entity.ApprovalLog) error
	GetByAppraisalID(ctx context.Context, appraisalID int64) ([]*entity.ApprovalLog, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	// WithTransaction executes fn within a transaction, rolling back on error
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
