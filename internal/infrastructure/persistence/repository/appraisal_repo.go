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

// AppraisalRepository implements port.AppraisalRepository
type AppraisalRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewAppraisalRepository creates a new appraisal repository
func NewAppraisalRepository(db *sql.DB, logger *zap.Logger) port.AppraisalRepository {
	return &AppraisalRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves an appraisal by ID
func (r *AppraisalRepository) GetByID(ctx context.Context, id int64) (*entity.Appraisal, error) {
	query := `
		SELECT id, employee_id, form_id, status, current_approval_level,
			total_approval_levels, final_approver_id, final_approval_date,
			employee_submitted_at, created_at, updated_at
		FROM appraisals
		WHERE id = ?
	`

	var a entity.Appraisal
	var (
		finalApproverID sql.NullInt64
		finalDate       sql.NullTime
		submittedAt     sql.NullTime
	)

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.EmployeeID,
		&a.FormID,
		&a.Status,
		&a.CurrentApprovalLevel,
		&a.TotalApprovalLevels,
		&finalApproverID,
		&finalDate,
		&submittedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get appraisal by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get appraisal: %w", err)
	}

	if finalApproverID.Valid {
		a.FinalApproverID = finalApproverID.Int64
	}
	if finalDate.Valid {
		a.FinalApprovalDate = &finalDate.Time
	}
	if submittedAt.Valid {
		a.EmployeeSubmittedAt = &submittedAt.Time
	}

	return &a, nil
}

// InitializeChainMetadata points the appraisal at level 1 of a new chain
func (r *AppraisalRepository) InitializeChainMetadata(ctx context.Context, id int64, totalLevels int, submittedAt time.Time) error {
	query := `
		UPDATE appraisals
		SET current_approval_level = 1,
			total_approval_levels = ?,
			status = ?,
			employee_submitted_at = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, totalLevels, entity.AppraisalStatusPendingApproval, submittedAt, id)
	if err != nil {
		r.logger.Error("Failed to initialize chain metadata", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to initialize chain metadata: %w", err)
	}

	return nil
}

// AdvanceLevel moves the current approval level pointer
func (r *AppraisalRepository) AdvanceLevel(ctx context.Context, id int64, level int) error {
	query := `
		UPDATE appraisals
		SET current_approval_level = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, level, id)
	if err != nil {
		r.logger.Error("Failed to advance approval level", zap.Int64("id", id), zap.Int("level", level), zap.Error(err))
		return fmt.Errorf("failed to advance approval level: %w", err)
	}

	return nil
}

// Complete marks the appraisal completed. The level pointer stays at the
// final step; it records the last action, not a next position.
func (r *AppraisalRepository) Complete(ctx context.Context, id int64, approverID int64, approvedAt time.Time) error {
	query := `
		UPDATE appraisals
		SET status = ?,
			final_approver_id = ?,
			final_approval_date = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, entity.AppraisalStatusCompleted, approverID, approvedAt, id)
	if err != nil {
		r.logger.Error("Failed to complete appraisal", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to complete appraisal: %w", err)
	}

	return nil
}

// Reject marks the appraisal rejected
func (r *AppraisalRepository) Reject(ctx context.Context, id int64) error {
	query := `
		UPDATE appraisals
		SET status = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := getExecutor(ctx, r.db).ExecContext(ctx, query, entity.AppraisalStatusRejected, id)
	if err != nil {
		r.logger.Error("Failed to reject appraisal", zap.Int64("id", id), zap.Error(err))
		return fmt.Errorf("failed to reject appraisal: %w", err)
	}

	return nil
}

// ListPendingForApprover returns appraisals whose current pending step is
// assigned to the user
func (r *AppraisalRepository) ListPendingForApprover(ctx context.Context, userID int64) ([]*entity.PendingApproval, error) {
	query := `
		SELECT a.id, e.name, e.emp_number, d.name,
			aa.level, aa.approver_role, aa.can_rate, a.employee_submitted_at
		FROM appraisals a
		JOIN employees e ON a.employee_id = e.id
		JOIN departments d ON e.department_id = d.id
		JOIN appraisal_approvals aa ON a.id = aa.appraisal_id
			AND a.current_approval_level = aa.level
		WHERE aa.approver_id = ?
			AND aa.status = ?
			AND a.status = ?
		ORDER BY a.employee_submitted_at DESC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, userID, entity.StepStatusPending, entity.AppraisalStatusPendingApproval)
	if err != nil {
		r.logger.Error("Failed to list pending approvals", zap.Int64("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to list pending approvals: %w", err)
	}
	defer rows.Close()

	var pending []*entity.PendingApproval
	for rows.Next() {
		var p entity.PendingApproval
		var submittedAt sql.NullTime

		err := rows.Scan(
			&p.AppraisalID,
			&p.EmployeeName,
			&p.EmployeeEmpNumber,
			&p.DepartmentName,
			&p.ApprovalLevel,
			&p.ApproverRole,
			&p.CanRate,
			&submittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending approval: %w", err)
		}

		if submittedAt.Valid {
			p.SubmittedAt = &submittedAt.Time
		}

		pending = append(pending, &p)
	}

	return pending, rows.Err()
}

// Verify interface compliance
var _ port.AppraisalRepository = (*AppraisalRepository)(nil)
