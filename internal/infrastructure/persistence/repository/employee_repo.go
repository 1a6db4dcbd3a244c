package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hrworks/appraisal-engine/internal/application/port"
	"github.com/hrworks/appraisal-engine/internal/domain/entity"
	"go.uber.org/zap"
)

// EmployeeRepository implements port.EmployeeRepository
type EmployeeRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *sql.DB, logger *zap.Logger) port.EmployeeRepository {
	return &EmployeeRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves an employee by ID
func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*entity.Employee, error) {
	query := `
		SELECT id, name, emp_number, email, company_id, department_id,
			position_id, supervisor_id, is_confirmed, created_at
		FROM employees
		WHERE id = ?
	`

	var emp entity.Employee
	var supervisorID sql.NullInt64

	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&emp.ID,
		&emp.Name,
		&emp.EmpNumber,
		&emp.Email,
		&emp.CompanyID,
		&emp.DepartmentID,
		&emp.PositionID,
		&supervisorID,
		&emp.IsConfirmed,
		&emp.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get employee by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	if supervisorID.Valid {
		emp.SupervisorID = supervisorID.Int64
	}

	return &emp, nil
}

// Verify interface compliance
var _ port.EmployeeRepository = (*EmployeeRepository)(nil)
