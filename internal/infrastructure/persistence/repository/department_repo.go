package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hrworks/appraisal-engine/internal/application/port"
	"github.com/hrworks/appraisal-engine/internal/domain/entity"
	"go.uber.org/zap"
)

// DepartmentRepository implements port.DepartmentRepository
type DepartmentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *sql.DB, logger *zap.Logger) port.DepartmentRepository {
	return &DepartmentRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a department with its per-level approver configuration
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*entity.Department, error) {
	query := `
		SELECT id, company_id, name,
			staff_approval_levels, worker_approval_levels,
			supervisor_approval_levels, manager_approval_levels,
			executive_approval_levels, probation_approval_levels
		FROM departments
		WHERE id = ?
	`

	var dept entity.Department
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&dept.ID,
		&dept.CompanyID,
		&dept.Name,
		&dept.StaffApprovalLevels,
		&dept.WorkerApprovalLevels,
		&dept.SupervisorApprovalLevels,
		&dept.ManagerApprovalLevels,
		&dept.ExecutiveApprovalLevels,
		&dept.ProbationApprovalLevels,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get department by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	approvers, err := r.getLevelApprovers(ctx, id)
	if err != nil {
		return nil, err
	}
	dept.LevelApprovers = approvers

	return &dept, nil
}

// getLevelApprovers loads the configured approver slots for levels 2..6
func (r *DepartmentRepository) getLevelApprovers(ctx context.Context, departmentID int64) ([]entity.LevelApprover, error) {
	query := `
		SELECT level, approver_id, role_name
		FROM department_level_approvers
		WHERE department_id = ?
		ORDER BY level ASC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, departmentID)
	if err != nil {
		r.logger.Error("Failed to get level approvers", zap.Int64("department_id", departmentID), zap.Error(err))
		return nil, fmt.Errorf("failed to get level approvers: %w", err)
	}
	defer rows.Close()

	var approvers []entity.LevelApprover
	for rows.Next() {
		var la entity.LevelApprover
		var roleName sql.NullString
		if err := rows.Scan(&la.Level, &la.ApproverID, &roleName); err != nil {
			return nil, fmt.Errorf("failed to scan level approver: %w", err)
		}
		if roleName.Valid {
			la.RoleName = roleName.String
		}
		approvers = append(approvers, la)
	}

	return approvers, rows.Err()
}

// Verify interface compliance
var _ port.DepartmentRepository = (*DepartmentRepository)(nil)
