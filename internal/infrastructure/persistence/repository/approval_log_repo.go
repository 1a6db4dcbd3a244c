package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hrworks/appraisal-engine/internal/application/port"
	"github.com/hrworks/appraisal-engine/internal/domain/entity"
	"go.uber.org/zap"
)

// ApprovalLogRepository implements port.ApprovalLogRepository. The table is
// append-only; entries are never updated or deleted.
type ApprovalLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewApprovalLogRepository creates a new approval log repository
func NewApprovalLogRepository(db *sql.DB, logger *zap.Logger) port.ApprovalLogRepository {
	return &ApprovalLogRepository{
		db:     db,
		logger: logger,
	}
}

// Create appends an audit entry
func (r *ApprovalLogRepository) Create(ctx context.Context, log *entity.ApprovalLog) error {
	query := `
		INSERT INTO appraisal_approval_logs (
			appraisal_id, approval_level, action, actor_id,
			previous_status, new_status, comments
		) VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	result, err := getExecutor(ctx, r.db).ExecContext(ctx, query,
		log.AppraisalID,
		log.ApprovalLevel,
		log.Action,
		log.ActorID,
		log.PreviousStatus,
		log.NewStatus,
		log.Comments,
	)
	if err != nil {
		r.logger.Error("Failed to create approval log", zap.Int64("appraisal_id", log.AppraisalID), zap.Error(err))
		return fmt.Errorf("failed to create approval log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	log.ID = id
	return nil
}

// GetByAppraisalID returns the audit trail for an appraisal, newest first
func (r *ApprovalLogRepository) GetByAppraisalID(ctx context.Context, appraisalID int64) ([]*entity.ApprovalLog, error) {
	query := `
		SELECT al.id, al.appraisal_id, al.approval_level, al.action, al.actor_id,
			al.previous_status, al.new_status, al.comments, al.created_at,
			COALESCE(e.name, '')
		FROM appraisal_approval_logs al
		LEFT JOIN employees e ON al.actor_id = e.id
		WHERE al.appraisal_id = ?
		ORDER BY al.created_at DESC, al.id DESC
	`

	rows, err := getExecutor(ctx, r.db).QueryContext(ctx, query, appraisalID)
	if err != nil {
		r.logger.Error("Failed to get approval logs", zap.Int64("appraisal_id", appraisalID), zap.Error(err))
		return nil, fmt.Errorf("failed to get approval logs: %w", err)
	}
	defer rows.Close()

	var logs []*entity.ApprovalLog
	for rows.Next() {
		var l entity.ApprovalLog
		var comments sql.NullString

		err := rows.Scan(
			&l.ID,
			&l.AppraisalID,
			&l.ApprovalLevel,
			&l.Action,
			&l.ActorID,
			&l.PreviousStatus,
			&l.NewStatus,
			&comments,
			&l.CreatedAt,
			&l.ActorName,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan approval log: %w", err)
		}

		if comments.Valid {
			l.Comments = comments.String
		}

		logs = append(logs, &l)
	}

	return logs, rows.Err()
}

// Verify interface compliance
var _ port.ApprovalLogRepository = (*ApprovalLogRepository)(nil)
