package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hrworks/appraisal-engine/internal/application/port"
	"github.com/hrworks/appraisal-engine/internal/domain/entity"
	"go.uber.org/zap"
)

// OverrideRepository implements port.OverrideRepository
type OverrideRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewOverrideRepository creates a new override repository
func NewOverrideRepository(db *sql.DB, logger *zap.Logger) port.OverrideRepository {
	return &OverrideRepository{
		db:     db,
		logger: logger,
	}
}

// GetActiveByCompany returns all active override rules for a company. Scope
// matching and priority selection happen in memory against this list.
func (r *OverrideRepository) GetActiveByCompany(ctx context.Context, companyID int64) ([]entity.Override, error) {
	query := `
		SELECT id, company_id, priority, is_active,
			department_id, employee_type, is_probation, user_id, position_id,
			set_approval_levels, skip_level_2, skip_level_3, skip_level_4,
			additional_approver_id
		FROM approval_overrides
		WHERE company_id = ? AND is_active = 1
		ORDER BY priority ASC, id ASC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, companyID)
	if err != nil {
		r.logger.Error("Failed to query override rules", zap.Int64("company_id", companyID), zap.Error(err))
		return nil, fmt.Errorf("failed to query override rules: %w", err)
	}
	defer rows.Close()

	var overrides []entity.Override
	for rows.Next() {
		var o entity.Override
		var (
			departmentID sql.NullInt64
			employeeType sql.NullString
			isProbation  sql.NullBool
			userID       sql.NullInt64
			positionID   sql.NullInt64
			setLevels    sql.NullInt64
			additional   sql.NullInt64
		)

		err := rows.Scan(
			&o.ID,
			&o.CompanyID,
			&o.Priority,
			&o.IsActive,
			&departmentID,
			&employeeType,
			&isProbation,
			&userID,
			&positionID,
			&setLevels,
			&o.SkipLevel2,
			&o.SkipLevel3,
			&o.SkipLevel4,
			&additional,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan override rule: %w", err)
		}

		if departmentID.Valid {
			o.DepartmentID = &departmentID.Int64
		}
		if employeeType.Valid {
			o.EmployeeType = &employeeType.String
		}
		if isProbation.Valid {
			o.IsProbation = &isProbation.Bool
		}
		if userID.Valid {
			o.UserID = &userID.Int64
		}
		if positionID.Valid {
			o.PositionID = &positionID.Int64
		}
		if setLevels.Valid {
			o.SetApprovalLevels = int(setLevels.Int64)
		}
		if additional.Valid {
			o.AdditionalApproverID = additional.Int64
		}

		overrides = append(overrides, o)
	}

	return overrides, rows.Err()
}

// Verify interface compliance
var _ port.OverrideRepository = (*OverrideRepository)(nil)
