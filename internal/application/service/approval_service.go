package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hrworks/appraisal-engine/internal/application/port"
	"github.com/hrworks/appraisal-engine/internal/domain/entity"
	"github.com/hrworks/appraisal-engine/internal/domain/workflow"
)

// ApprovalResult describes the outcome of a processed approval action
type ApprovalResult struct {
	Action    string `json:"action"`
	Level     int    `json:"level"`
	Completed bool   `json:"completed"`
	Rejected  bool   `json:"rejected"`
	NextLevel int    `json:"next_level,omitempty"`
	Message   string `json:"message"`
}

// ApprovalService drives per-step approve/reject transitions against a
// persisted chain and exposes the read-only chain queries
type ApprovalService interface {
	// ProcessApproval applies one approve/reject action by the current
	// pending approver. All writes happen in a single transaction.
	ProcessApproval(ctx context.Context, appraisalID, userID int64, action, comments string) (*ApprovalResult, error)

	// GetCurrentApprover returns the pending step at the appraisal's current
	// level, or nil when nothing is pending
	GetCurrentApprover(ctx context.Context, appraisalID int64) (*entity.ApprovalStep, error)

	// CanUserApprove reports whether the user is the current pending approver
	CanUserApprove(ctx context.Context, appraisalID, userID int64) (bool, error)

	// CanUserRate reports whether the user is the current pending approver
	// and their step carries the rating capability
	CanUserRate(ctx context.Context, appraisalID, userID int64) (bool, error)

	// GetApprovalChain returns the full ordered chain with display names
	GetApprovalChain(ctx context.Context, appraisalID int64) ([]*entity.ApprovalStep, error)

	// GetPendingForUser returns the user's approval work queue
	GetPendingForUser(ctx context.Context, userID int64) ([]*entity.PendingApproval, error)
}

type approvalServiceImpl struct {
	appraisalRepo port.AppraisalRepository
	stepRepo      port.ApprovalStepRepository
	auditService  AuditService
	txManager     port.TransactionManager
	notifier      port.Notifier
	logger        Logger
}

// NewApprovalService creates a new ApprovalService
func NewApprovalService(
	appraisalRepo port.AppraisalRepository,
	stepRepo port.ApprovalStepRepository,
	auditService AuditService,
	txManager port.TransactionManager,
	notifier port.Notifier,
	logger Logger,
) ApprovalService {
	return &approvalServiceImpl{
		appraisalRepo: appraisalRepo,
		stepRepo:      stepRepo,
		auditService:  auditService,
		txManager:     txManager,
		notifier:      notifier,
		logger:        logger,
	}
}

// ProcessApproval applies one approval action
func (s *approvalServiceImpl) ProcessApproval(ctx context.Context, appraisalID, userID int64, action, comments string) (*ApprovalResult, error) {
	if action != entity.ActionApprove && action != entity.ActionReject {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAction, action)
	}

	appraisal, err := s.appraisalRepo.GetByID(ctx, appraisalID)
	if err != nil {
		return nil, fmt.Errorf("get appraisal: %w", err)
	}
	if appraisal == nil {
		return nil, ErrAppraisalNotFound
	}

	// Current step: pending at the appraisal's level pointer. Absent when the
	// appraisal is terminal or the step was already acted on (double submit).
	step, err := s.stepRepo.GetPendingAtLevel(ctx, appraisalID, appraisal.CurrentApprovalLevel)
	if err != nil {
		return nil, fmt.Errorf("get current step: %w", err)
	}
	if step == nil || step.ApproverID != userID {
		return nil, ErrNotAuthorized
	}

	machine, err := workflow.ForAppraisal(appraisal.Status)
	if err != nil {
		return nil, err
	}

	trigger := workflow.TriggerReject
	if action == entity.ActionApprove {
		if step.IsFinalApprover {
			trigger = workflow.TriggerComplete
		} else {
			trigger = workflow.TriggerAdvance
		}
	}
	if err := machine.Fire(ctx, trigger); err != nil {
		// Not in an approvable state; surfaced the same as a stale step
		return nil, ErrNotAuthorized
	}

	result := &ApprovalResult{Action: action, Level: step.Level}
	now := time.Now()

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		switch action {
		case entity.ActionApprove:
			if err := s.stepRepo.RecordDecision(txCtx, appraisalID, step.Level, entity.StepStatusApproved, now, comments); err != nil {
				return fmt.Errorf("record approval: %w", err)
			}
			if step.IsFinalApprover {
				if err := s.appraisalRepo.Complete(txCtx, appraisalID, userID, now); err != nil {
					return fmt.Errorf("complete appraisal: %w", err)
				}
				result.Completed = true
				result.Message = "Appraisal approved and completed"
			} else {
				next := step.Level + 1
				if err := s.appraisalRepo.AdvanceLevel(txCtx, appraisalID, next); err != nil {
					return fmt.Errorf("advance approval level: %w", err)
				}
				result.NextLevel = next
				result.Message = fmt.Sprintf("Appraisal approved, moving to level %d", next)
			}
			return s.auditService.RecordAction(txCtx, appraisalID, step.Level, action, userID, entity.StepStatusApproved, comments)

		case entity.ActionReject:
			if err := s.stepRepo.RecordDecision(txCtx, appraisalID, step.Level, entity.StepStatusRejected, now, comments); err != nil {
				return fmt.Errorf("record rejection: %w", err)
			}
			if err := s.appraisalRepo.Reject(txCtx, appraisalID); err != nil {
				return fmt.Errorf("reject appraisal: %w", err)
			}
			result.Rejected = true
			result.Message = "Appraisal rejected"
			return s.auditService.RecordAction(txCtx, appraisalID, step.Level, action, userID, entity.StepStatusRejected, comments)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to process approval",
			"error", err,
			"appraisal_id", appraisalID,
			"user_id", userID,
			"action", action)
		return nil, err
	}

	s.logger.Info("Approval processed",
		"appraisal_id", appraisalID,
		"level", step.Level,
		"action", action,
		"completed", result.Completed,
		"rejected", result.Rejected)

	s.notifyAfterAction(ctx, appraisalID, result, comments)
	return result, nil
}

// notifyAfterAction sends post-commit notifications; failures are logged only
func (s *approvalServiceImpl) notifyAfterAction(ctx context.Context, appraisalID int64, result *ApprovalResult, comments string) {
	var err error
	switch {
	case result.Rejected:
		err = s.notifier.AppraisalRejected(ctx, appraisalID, comments)
	case result.Completed:
		err = s.notifier.AppraisalCompleted(ctx, appraisalID)
	case result.NextLevel > 0:
		err = s.notifier.ApprovalRequested(ctx, appraisalID, result.NextLevel)
	}
	if err != nil {
		s.logger.Error("Failed to send approval notification", "error", err, "appraisal_id", appraisalID)
	}
}

// GetCurrentApprover returns the pending step at the current level
func (s *approvalServiceImpl) GetCurrentApprover(ctx context.Context, appraisalID int64) (*entity.ApprovalStep, error) {
	appraisal, err := s.appraisalRepo.GetByID(ctx, appraisalID)
	if err != nil {
		return nil, fmt.Errorf("get appraisal: %w", err)
	}
	if appraisal == nil {
		return nil, ErrAppraisalNotFound
	}

	step, err := s.stepRepo.GetPendingAtLevel(ctx, appraisalID, appraisal.CurrentApprovalLevel)
	if err != nil {
		return nil, fmt.Errorf("get current step: %w", err)
	}
	return step, nil
}

// CanUserApprove reports whether the user is the current pending approver
func (s *approvalServiceImpl) CanUserApprove(ctx context.Context, appraisalID, userID int64) (bool, error) {
	step, err := s.GetCurrentApprover(ctx, appraisalID)
	if err != nil {
		return false, err
	}
	return step != nil && step.ApproverID == userID, nil
}

// CanUserRate reports whether the user may assign ratings right now
func (s *approvalServiceImpl) CanUserRate(ctx context.Context, appraisalID, userID int64) (bool, error) {
	step, err := s.GetCurrentApprover(ctx, appraisalID)
	if err != nil {
		return false, err
	}
	return step != nil && step.ApproverID == userID && step.CanRate, nil
}

// GetApprovalChain returns the full ordered chain for an appraisal
func (s *approvalServiceImpl) GetApprovalChain(ctx context.Context, appraisalID int64) ([]*entity.ApprovalStep, error) {
	steps, err := s.stepRepo.GetByAppraisalID(ctx, appraisalID)
	if err != nil {
		s.logger.Error("Failed to get approval chain", "error", err, "appraisal_id", appraisalID)
		return nil, err
	}
	return steps, nil
}

// GetPendingForUser returns the user's approval work queue
func (s *approvalServiceImpl) GetPendingForUser(ctx context.Context, userID int64) ([]*entity.PendingApproval, error) {
	pending, err := s.appraisalRepo.ListPendingForApprover(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list pending approvals", "error", err, "user_id", userID)
		return nil, err
	}
	return pending, nil
}
