package service

import (
	"context"
	"time"

	"github.com/hrworks/appraisal-engine/internal/domain/entity"
)

// Function-field mocks keep each test's behavior next to its assertions.
// Unset fields mean "not expected to be called" and will panic the test.

type mockEmployeeRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*entity.Employee, error)
}

func (m *mockEmployeeRepo) GetByID(ctx context.Context, id int64) (*entity.Employee, error) {
	return m.getByIDFunc(ctx, id)
}

type mockPositionRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*entity.Position, error)
}

func (m *mockPositionRepo) GetByID(ctx context.Context, id int64) (*entity.Position, error) {
	return m.getByIDFunc(ctx, id)
}

type mockDepartmentRepo struct {
	getByIDFunc func(ctx context.Context, id int64) (*entity.Department, error)
}

func (m *mockDepartmentRepo) GetByID(ctx context.Context, id int64) (*entity.Department, error) {
	return m.getByIDFunc(ctx, id)
}

type mockOverrideRepo struct {
	getActiveFunc func(ctx context.Context, companyID int64) ([]entity.Override, error)
}

func (m *mockOverrideRepo) GetActiveByCompany(ctx context.Context, companyID int64) ([]entity.Override, error) {
	return m.getActiveFunc(ctx, companyID)
}

type mockAppraisalRepo struct {
	getByIDFunc      func(ctx context.Context, id int64) (*entity.Appraisal, error)
	initChainFunc    func(ctx context.Context, id int64, totalLevels int, submittedAt time.Time) error
	advanceLevelFunc func(ctx context.Context, id int64, level int) error
	completeFunc     func(ctx context.Context, id int64, approverID int64, approvedAt time.Time) error
	rejectFunc       func(ctx context.Context, id int64) error
	listPendingFunc  func(ctx context.Context, userID int64) ([]*entity.PendingApproval, error)
}

func (m *mockAppraisalRepo) GetByID(ctx context.Context, id int64) (*entity.Appraisal, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockAppraisalRepo) InitializeChainMetadata(ctx context.Context, id int64, totalLevels int, submittedAt time.Time) error {
	return m.initChainFunc(ctx, id, totalLevels, submittedAt)
}

func (m *mockAppraisalRepo) AdvanceLevel(ctx context.Context, id int64, level int) error {
	return m.advanceLevelFunc(ctx, id, level)
}

func (m *mockAppraisalRepo) Complete(ctx context.Context, id int64, approverID int64, approvedAt time.Time) error {
	return m.completeFunc(ctx, id, approverID, approvedAt)
}

func (m *mockAppraisalRepo) Reject(ctx context.Context, id int64) error {
	return m.rejectFunc(ctx, id)
}

func (m *mockAppraisalRepo) ListPendingForApprover(ctx context.Context, userID int64) ([]*entity.PendingApproval, error) {
	return m.listPendingFunc(ctx, userID)
}

type mockStepRepo struct {
	replaceChainFunc      func(ctx context.Context, appraisalID int64, steps []entity.ApprovalStep) error
	getByAppraisalIDFunc  func(ctx context.Context, appraisalID int64) ([]*entity.ApprovalStep, error)
	getPendingAtLevelFunc func(ctx context.Context, appraisalID int64, level int) (*entity.ApprovalStep, error)
	recordDecisionFunc    func(ctx context.Context, appraisalID int64, level int, status string, actionDate time.Time, comments string) error
}

func (m *mockStepRepo) ReplaceChain(ctx context.Context, appraisalID int64, steps []entity.ApprovalStep) error {
	return m.replaceChainFunc(ctx, appraisalID, steps)
}

func (m *mockStepRepo) GetByAppraisalID(ctx context.Context, appraisalID int64) ([]*entity.ApprovalStep, error) {
	return m.getByAppraisalIDFunc(ctx, appraisalID)
}

func (m *mockStepRepo) GetPendingAtLevel(ctx context.Context, appraisalID int64, level int) (*entity.ApprovalStep, error) {
	return m.getPendingAtLevelFunc(ctx, appraisalID, level)
}

func (m *mockStepRepo) RecordDecision(ctx context.Context, appraisalID int64, level int, status string, actionDate time.Time, comments string) error {
	return m.recordDecisionFunc(ctx, appraisalID, level, status, actionDate, comments)
}

type mockLogRepo struct {
	createFunc           func(ctx context.Context, log *entity.ApprovalLog) error
	getByAppraisalIDFunc func(ctx context.Context, appraisalID int64) ([]*entity.ApprovalLog, error)
}

func (m *mockLogRepo) Create(ctx context.Context, log *entity.ApprovalLog) error {
	return m.createFunc(ctx, log)
}

func (m *mockLogRepo) GetByAppraisalID(ctx context.Context, appraisalID int64) ([]*entity.ApprovalLog, error) {
	return m.getByAppraisalIDFunc(ctx, appraisalID)
}

// mockTxManager runs the function inline; the default simulates a committed
// transaction, pass-through of fn's error simulates the rollback path.
type mockTxManager struct{}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockNotifier struct {
	requested []int // levels notified
	completed int
	rejected  int
	err       error
}

func (m *mockNotifier) ApprovalRequested(ctx context.Context, appraisalID int64, level int) error {
	m.requested = append(m.requested, level)
	return m.err
}

func (m *mockNotifier) AppraisalCompleted(ctx context.Context, appraisalID int64) error {
	m.completed++
	return m.err
}

func (m *mockNotifier) AppraisalRejected(ctx context.Context, appraisalID int64, reason string) error {
	m.rejected++
	return m.err
}

type noopLogger struct{}

func (noopLogger) Info(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (noopLogger) Error(msg string, keysAndValues ...interface{}) {}
