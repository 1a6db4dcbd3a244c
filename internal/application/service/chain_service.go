package service

import (
	"context"
	"fmt"
	"time"

	"github.com/hrworks/appraisal-engine/internal/application/port"
	"github.com/hrworks/appraisal-engine/internal/domain/chain"
	"github.com/hrworks/appraisal-engine/internal/domain/entity"
	"github.com/hrworks/appraisal-engine/internal/domain/workflow"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ChainService builds and persists approval chains on appraisal submission
type ChainService interface {
	// BuildApprovalChain computes the chain for an appraisal, atomically
	// replaces any existing chain, and moves the appraisal to
	// pending_approval. On error the appraisal keeps its previous state.
	BuildApprovalChain(ctx context.Context, appraisalID, employeeID int64) ([]entity.ApprovalStep, error)
}

type chainServiceImpl struct {
	employeeRepo   port.EmployeeRepository
	positionRepo   port.PositionRepository
	departmentRepo port.DepartmentRepository
	overrideRepo   port.OverrideRepository
	appraisalRepo  port.AppraisalRepository
	stepRepo       port.ApprovalStepRepository
	auditService   AuditService
	txManager      port.TransactionManager
	notifier       port.Notifier
	policy         chain.Policy
	logger         Logger
}

// NewChainService creates a new ChainService
func NewChainService(
	employeeRepo port.EmployeeRepository,
	positionRepo port.PositionRepository,
	departmentRepo port.DepartmentRepository,
	overrideRepo port.OverrideRepository,
	appraisalRepo port.AppraisalRepository,
	stepRepo port.ApprovalStepRepository,
	auditService AuditService,
	txManager port.TransactionManager,
	notifier port.Notifier,
	policy chain.Policy,
	logger Logger,
) ChainService {
	return &chainServiceImpl{
		employeeRepo:   employeeRepo,
		positionRepo:   positionRepo,
		departmentRepo: departmentRepo,
		overrideRepo:   overrideRepo,
		appraisalRepo:  appraisalRepo,
		stepRepo:       stepRepo,
		auditService:   auditService,
		txManager:      txManager,
		notifier:       notifier,
		policy:         policy,
		logger:         logger,
	}
}

// BuildApprovalChain is the main entry point called when an employee submits
func (s *chainServiceImpl) BuildApprovalChain(ctx context.Context, appraisalID, employeeID int64) ([]entity.ApprovalStep, error) {
	appraisal, err := s.appraisalRepo.GetByID(ctx, appraisalID)
	if err != nil {
		return nil, fmt.Errorf("get appraisal: %w", err)
	}
	if appraisal == nil {
		return nil, ErrAppraisalNotFound
	}

	// Submission is only legal from draft, or as a full rebuild while pending
	machine, err := workflow.ForAppraisal(appraisal.Status)
	if err != nil {
		return nil, err
	}
	if err := machine.Fire(ctx, workflow.TriggerSubmit); err != nil {
		return nil, err
	}

	input, err := s.resolveInput(ctx, appraisalID, employeeID)
	if err != nil {
		return nil, err
	}

	steps, warnings, err := chain.Build(*input, s.policy)
	if err != nil {
		return nil, err
	}
	for _, w := range warnings {
		s.logger.Warn("Chain build warning", "code", w.Code, "detail", w.Message, "appraisal_id", appraisalID)
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		if err := s.stepRepo.ReplaceChain(txCtx, appraisalID, steps); err != nil {
			return fmt.Errorf("replace chain: %w", err)
		}
		if err := s.appraisalRepo.InitializeChainMetadata(txCtx, appraisalID, len(steps), time.Now()); err != nil {
			return fmt.Errorf("update appraisal metadata: %w", err)
		}
		if err := s.auditService.RecordChainCreation(txCtx, appraisalID, steps); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to persist approval chain", "error", err, "appraisal_id", appraisalID)
		return nil, err
	}

	s.logger.Info("Approval chain created",
		"appraisal_id", appraisalID,
		"employee_id", employeeID,
		"levels", len(steps))

	// Notify the level-1 approver after commit; failure never unwinds the chain
	if len(steps) > 0 {
		if err := s.notifier.ApprovalRequested(ctx, appraisalID, 1); err != nil {
			s.logger.Error("Failed to notify first approver", "error", err, "appraisal_id", appraisalID)
		}
	}

	return steps, nil
}

// resolveInput loads the employee's attributes and the applicable override.
// Unresolvable employee, department, or position aborts the build.
func (s *chainServiceImpl) resolveInput(ctx context.Context, appraisalID, employeeID int64) (*chain.Input, error) {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("get employee: %w", err)
	}
	if employee == nil {
		return nil, chain.ErrEmployeeNotFound
	}

	department, err := s.departmentRepo.GetByID(ctx, employee.DepartmentID)
	if err != nil {
		return nil, fmt.Errorf("get department: %w", err)
	}
	if department == nil {
		return nil, chain.ErrDepartmentNotFound
	}

	position, err := s.positionRepo.GetByID(ctx, employee.PositionID)
	if err != nil {
		return nil, fmt.Errorf("get position: %w", err)
	}
	if position == nil {
		return nil, chain.ErrPositionNotFound
	}

	rules, err := s.overrideRepo.GetActiveByCompany(ctx, employee.CompanyID)
	if err != nil {
		return nil, fmt.Errorf("get override rules: %w", err)
	}

	override := chain.SelectOverride(rules, entity.OverrideScope{
		CompanyID:    employee.CompanyID,
		DepartmentID: employee.DepartmentID,
		EmployeeType: position.EmployeeType,
		IsProbation:  !employee.IsConfirmed,
		UserID:       employee.ID,
		PositionID:   employee.PositionID,
	})
	if override != nil {
		s.logger.Info("Override rule applied",
			"override_id", override.ID,
			"priority", override.Priority,
			"appraisal_id", appraisalID)
	}

	return &chain.Input{
		AppraisalID: appraisalID,
		Employee:    employee,
		Position:    position,
		Department:  department,
		Override:    override,
	}, nil
}
