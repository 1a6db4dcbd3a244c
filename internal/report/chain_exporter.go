// Package report produces audit artifacts for external reporting consumers.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/hrworks/appraisal-engine/internal/domain/entity"
)

const (
	chainSheet = "Approval Chain"
	logSheet   = "Audit Log"
)

// ChainExporter renders an appraisal's chain and audit trail as a spreadsheet
type ChainExporter struct {
	logger *zap.Logger
}

// NewChainExporter creates a new exporter
func NewChainExporter(logger *zap.Logger) *ChainExporter {
	return &ChainExporter{logger: logger}
}

// Export writes the chain and log sheets and returns the encoded workbook
func (e *ChainExporter) Export(appraisalID int64, steps []*entity.ApprovalStep, logs []*entity.ApprovalLog) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(chainSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create chain sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := e.writeChainSheet(f, steps); err != nil {
		return nil, err
	}
	if err := e.writeLogSheet(f, logs); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to encode workbook: %w", err)
	}

	e.logger.Info("Approval chain exported",
		zap.Int64("appraisal_id", appraisalID),
		zap.Int("steps", len(steps)),
		zap.Int("log_entries", len(logs)))

	return buf, nil
}

func (e *ChainExporter) writeChainSheet(f *excelize.File, steps []*entity.ApprovalStep) error {
	headers := []string{"Level", "Approver", "Emp Number", "Role", "Status", "Can Rate", "Final Approver", "Action Date", "Comments"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(chainSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write chain header: %w", err)
		}
	}

	for i, step := range steps {
		row := i + 2
		values := []interface{}{
			step.Level,
			step.ApproverName,
			step.ApproverEmpNumber,
			step.ApproverRole,
			step.Status,
			step.CanRate,
			step.IsFinalApprover,
			formatTime(step.ActionDate),
			step.Comments,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(chainSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write chain row %d: %w", row, err)
			}
		}
	}

	return nil
}

func (e *ChainExporter) writeLogSheet(f *excelize.File, logs []*entity.ApprovalLog) error {
	if _, err := f.NewSheet(logSheet); err != nil {
		return fmt.Errorf("failed to create log sheet: %w", err)
	}

	headers := []string{"Timestamp", "Level", "Action", "Actor", "Previous Status", "New Status", "Comments"}
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(logSheet, cell, h); err != nil {
			return fmt.Errorf("failed to write log header: %w", err)
		}
	}

	for i, l := range logs {
		row := i + 2
		values := []interface{}{
			l.CreatedAt.Format(time.RFC3339),
			l.ApprovalLevel,
			l.Action,
			l.ActorName,
			l.PreviousStatus,
			l.NewStatus,
			l.Comments,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := f.SetCellValue(logSheet, cell, v); err != nil {
				return fmt.Errorf("failed to write log row %d: %w", row, err)
			}
		}
	}

	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}
