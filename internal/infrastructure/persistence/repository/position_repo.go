package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hrworks/appraisal-engine/internal/application/port"
	"github.com/hrworks/appraisal-engine/internal/domain/entity"
	"go.uber.org/zap"
)

// PositionRepository implements port.PositionRepository
type PositionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPositionRepository creates a new position repository
func NewPositionRepository(db *sql.DB, logger *zap.Logger) port.PositionRepository {
	return &PositionRepository{
		db:     db,
		logger: logger,
	}
}

// GetByID retrieves a position by ID
func (r *PositionRepository) GetByID(ctx context.Context, id int64) (*entity.Position, error) {
	query := `
		SELECT id, title, employee_type, is_management
		FROM positions
		WHERE id = ?
	`

	var pos entity.Position
	err := getExecutor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&pos.ID,
		&pos.Title,
		&pos.EmployeeType,
		&pos.IsManagement,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get position by ID", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get position: %w", err)
	}

	return &pos, nil
}

// Verify interface compliance
var _ port.PositionRepository = (*PositionRepository)(nil)
