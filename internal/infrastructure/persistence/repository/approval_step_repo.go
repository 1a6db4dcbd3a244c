package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hrworks/appraisal-engine/internal/application/port"
	"github.com/hrworks/appraisal-engine/internal/domain/entity"
	"go.uber.org/zap"
)

// ApprovalStepRepository implements port.ApprovalStepRepository
type ApprovalStepRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewApprovalStepRepository creates a new approval step repository
func NewApprovalStepRepository(db *sql.DB, logger *zap.Logger) port.ApprovalStepRepository {
	return &ApprovalStepRepository{
		db:     db,
		logger: logger,
	}
}

// ReplaceChain deletes any prior chain for the appraisal and inserts the new
// steps. Callers must wrap it in a transaction so a failed insert never
// leaves the appraisal without a chain.
func (r *ApprovalStepRepository) ReplaceChain(ctx context.Context, appraisalID int64, steps []entity.ApprovalStep) error {
	exec := getExecutor(ctx, r.db)

	if _, err := exec.ExecContext(ctx, `DELETE FROM appraisal_approvals WHERE appraisal_id = ?`, appraisalID); err != nil {
		r.logger.Error("Failed to delete existing chain", zap.Int64("appraisal_id", appraisalID), zap.Error(err))
		return fmt.Errorf("failed to delete existing chain: %w", err)
	}

	query := `
		INSERT INTO appraisal_approvals (
			appraisal_id, level, approver_id, approver_role, status,
			can_rate, can_edit_ratings, is_mandatory, is_final_approver
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	for _, step := range steps {
		_, err := exec.ExecContext(ctx, query,
			appraisalID,
			step.Level,
			step.ApproverID,
			step.ApproverRole,
			entity.StepStatusPending,
			step.CanRate,
			step.CanEditRatings,
			step.IsMandatory,
			step.IsFinalApprover,
		)
		if err != nil {
			r.logger.Error("Failed to insert approval step",
				zap.Int64("appraisal_id", appraisalID),
				zap.Int("level", step.Level),
				zap.Error(err))
			return fmt.Errorf("failed to insert approval step: %w", err)
		}
	}

	return nil
}

// GetByAppraisalID returns the full chain ordered by level with approver names
func (r *ApprovalStepRepository) GetByAppraisalID(ctx context.Context, appraisalID int64) ([]*entity.ApprovalStep, error) {
	query := `
		SELECT aa.id, aa.appraisal_id, aa.level, aa.approver_id, aa.approver_role,
			aa.status, aa.can_rate, aa.can_edit_ratings, aa.is_mandatory,
			aa.is_final_approver, aa.action_date, aa.comments,
			e.name, e.emp_number
		FROM appraisal_approvals aa
		JOIN employees e ON aa.approver_id = e.id
		WHERE aa.appraisal_id = ?
		ORDER BY aa.level ASC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, appraisalID)
	if err != nil {
		r.logger.Error("Failed to get approval chain", zap.Int64("appraisal_id", appraisalID), zap.Error(err))
		return nil, fmt.Errorf("failed to get approval chain: %w", err)
	}
	defer rows.Close()

	var steps []*entity.ApprovalStep
	for rows.Next() {
		step, err := scanStep(rows)
		if err != nil {
			return nil, err
		}
		steps = append(steps, step)
	}

	return steps, rows.Err()
}

// GetPendingAtLevel returns the pending step at the given level, if any
func (r *ApprovalStepRepository) GetPendingAtLevel(ctx context.Context, appraisalID int64, level int) (*entity.ApprovalStep, error) {
	query := `
		SELECT aa.id, aa.appraisal_id, aa.level, aa.approver_id, aa.approver_role,
			aa.status, aa.can_rate, aa.can_edit_ratings, aa.is_mandatory,
			aa.is_final_approver, aa.action_date, aa.comments,
			e.name, e.emp_number
		FROM appraisal_approvals aa
		JOIN employees e ON aa.approver_id = e.id
		WHERE aa.appraisal_id = ? AND aa.level = ? AND aa.status = ?
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, appraisalID, level, entity.StepStatusPending)
	if err != nil {
		r.logger.Error("Failed to get pending step",
			zap.Int64("appraisal_id", appraisalID),
			zap.Int("level", level),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get pending step: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}

	step, err := scanStep(rows)
	if err != nil {
		return nil, err
	}
	return step, rows.Err()
}

// RecordDecision stores an approve/reject outcome on a step
func (r *ApprovalStepRepository) RecordDecision(ctx context.Context, appraisalID int64, level int, status string, actionDate time.Time, comments string) error {
	query := `
		UPDATE appraisal_approvals
		SET status = ?, action_date = ?, comments = ?
		WHERE appraisal_id = ? AND level = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, status, actionDate, comments, appraisalID, level)
	if err != nil {
		r.logger.Error("Failed to record decision",
			zap.Int64("appraisal_id", appraisalID),
			zap.Int("level", level),
			zap.String("status", status),
			zap.Error(err))
		return fmt.Errorf("failed to record decision: %w", err)
	}

	return nil
}

// scanStep reads one chain row including joined approver display fields
func scanStep(rows *sql.Rows) (*entity.ApprovalStep, error) {
	var step entity.ApprovalStep
	var (
		actionDate sql.NullTime
		comments   sql.NullString
	)

	err := rows.Scan(
		&step.ID,
		&step.AppraisalID,
		&step.Level,
		&step.ApproverID,
		&step.ApproverRole,
		&step.Status,
		&step.CanRate,
		&step.CanEditRatings,
		&step.IsMandatory,
		&step.IsFinalApprover,
		&actionDate,
		&comments,
		&step.ApproverName,
		&step.ApproverEmpNumber,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan approval step: %w", err)
	}

	if actionDate.Valid {
		step.ActionDate = &actionDate.Time
	}
	if comments.Valid {
		step.Comments = comments.String
	}

	return &step, nil
}

// Verify interface compliance
var _ port.ApprovalStepRepository = (*ApprovalStepRepository)(nil)
