package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/hrworks/appraisal-engine/internal/application/port"
	"github.com/hrworks/appraisal-engine/internal/domain/entity"
)

// AuditService appends and reads the append-only approval audit trail
type AuditService interface {
	// RecordChainCreation writes one entry summarizing a freshly built chain.
	// Must be called with the transaction context of the chain persist.
	RecordChainCreation(ctx context.Context, appraisalID int64, steps []entity.ApprovalStep) error

	// RecordAction writes one entry for an approve/reject decision. Must be
	// called with the transaction context of the decision.
	RecordAction(ctx context.Context, appraisalID int64, level int, action string, actorID int64, newStatus, comments string) error

	// GetLogs returns the full trail for an appraisal, newest first
	GetLogs(ctx context.Context, appraisalID int64) ([]*entity.ApprovalLog, error)
}

type auditServiceImpl struct {
	logRepo port.ApprovalLogRepository
	logger  Logger
}

// NewAuditService creates a new AuditService
func NewAuditService(logRepo port.ApprovalLogRepository, logger Logger) AuditService {
	return &auditServiceImpl{logRepo: logRepo, logger: logger}
}

// RecordChainCreation writes the chain-creation audit entry
func (s *auditServiceImpl) RecordChainCreation(ctx context.Context, appraisalID int64, steps []entity.ApprovalStep) error {
	summary := make([]string, 0, len(steps))
	for _, step := range steps {
		summary = append(summary, fmt.Sprintf("L%d:%d(%s)", step.Level, step.ApproverID, step.ApproverRole))
	}

	entry := &entity.ApprovalLog{
		AppraisalID:   appraisalID,
		ApprovalLevel: 0,
		Action:        entity.ActionCreated,
		ActorID:       0,
		NewStatus:     entity.AppraisalStatusPendingApproval,
		Comments:      "Approval chain created: " + strings.Join(summary, " -> "),
	}

	if err := s.logRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("record chain creation: %w", err)
	}
	return nil
}

// RecordAction writes one decision audit entry
func (s *auditServiceImpl) RecordAction(ctx context.Context, appraisalID int64, level int, action string, actorID int64, newStatus, comments string) error {
	entry := &entity.ApprovalLog{
		AppraisalID:    appraisalID,
		ApprovalLevel:  level,
		Action:         action,
		ActorID:        actorID,
		PreviousStatus: entity.StepStatusPending,
		NewStatus:      newStatus,
		Comments:       comments,
	}

	if err := s.logRepo.Create(ctx, entry); err != nil {
		return fmt.Errorf("record approval action: %w", err)
	}
	return nil
}

// GetLogs returns the audit trail for an appraisal
func (s *auditServiceImpl) GetLogs(ctx context.Context, appraisalID int64) ([]*entity.ApprovalLog, error) {
	logs, err := s.logRepo.GetByAppraisalID(ctx, appraisalID)
	if err != nil {
		s.logger.Error("Failed to get approval logs", "error", err, "appraisal_id", appraisalID)
		return nil, err
	}
	return logs, nil
}
