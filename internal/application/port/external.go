package port

import "context"

// Notifier sends approval-flow notifications. Implementations resolve
// recipients themselves; failures are logged by callers and never roll back
// the transaction that triggered them.
type Notifier interface {
	// ApprovalRequested tells the approver at the given level that an
	// appraisal is waiting for them
	ApprovalRequested(ctx context.Context, appraisalID int64, level int) error

	// AppraisalCompleted tells the employee every level has approved
	AppraisalCompleted(ctx context.Context, appraisalID int64) error

	// AppraisalRejected tells the employee their appraisal was rejected
	AppraisalRejected(ctx context.Context, appraisalID int64, reason string) error
}
