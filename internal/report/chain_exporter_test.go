package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/hrworks/appraisal-engine/internal/domain/entity"
)

func TestExport(t *testing.T) {
	exporter := NewChainExporter(zap.NewNop())

	actionDate := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	steps := []*entity.ApprovalStep{
		{
			Level:        1,
			ApproverID:   12,
			ApproverName: "Dana Supervisor",
			ApproverRole: entity.RoleDirectSupervisor,
			Status:       entity.StepStatusApproved,
			CanRate:      true,
			ActionDate:   &actionDate,
			Comments:     "strong quarter",
		},
		{
			Level:           2,
			ApproverID:      30,
			ApproverName:    "Hector Head",
			ApproverRole:    "department_head",
			Status:          entity.StepStatusPending,
			IsFinalApprover: true,
		},
	}
	logs := []*entity.ApprovalLog{
		{
			ApprovalLevel: 1,
			Action:        entity.ActionApprove,
			ActorName:     "Dana Supervisor",
			NewStatus:     entity.StepStatusApproved,
			CreatedAt:     actionDate,
		},
	}

	buf, err := exporter.Export(55, steps, logs)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.ElementsMatch(t, []string{"Approval Chain", "Audit Log"}, f.GetSheetList())

	rows, err := f.GetRows("Approval Chain")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Level", rows[0][0])
	assert.Equal(t, "1", rows[1][0])
	assert.Equal(t, "Dana Supervisor", rows[1][1])
	assert.Equal(t, "approved", rows[1][4])
	assert.Equal(t, "2", rows[2][0])
	assert.Equal(t, "Hector Head", rows[2][1])

	logRows, err := f.GetRows("Audit Log")
	require.NoError(t, err)
	require.Len(t, logRows, 2)
	assert.Equal(t, "approve", logRows[1][2])
	assert.Equal(t, "Dana Supervisor", logRows[1][3])
}

func TestExport_EmptyChain(t *testing.T) {
	exporter := NewChainExporter(zap.NewNop())

	buf, err := exporter.Export(62, nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Approval Chain")
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
