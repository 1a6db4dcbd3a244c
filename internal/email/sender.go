// Package email sends approval-flow notifications over SMTP. Delivery is
// best-effort: callers log failures and never roll back on them.
package email

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/hrworks/appraisal-engine/internal/application/port"
	"github.com/hrworks/appraisal-engine/internal/domain/entity"
	"go.uber.org/zap"
)

// Config holds SMTP settings
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	From     string
	BaseURL  string
	Disabled bool
}

// Sender implements port.Notifier over SMTP
type Sender struct {
	cfg           Config
	appraisalRepo port.AppraisalRepository
	stepRepo      port.ApprovalStepRepository
	employeeRepo  port.EmployeeRepository
	logger        *zap.Logger
}

// NewSender creates a new notification sender
func NewSender(
	cfg Config,
	appraisalRepo port.AppraisalRepository,
	stepRepo port.ApprovalStepRepository,
	employeeRepo port.EmployeeRepository,
	logger *zap.Logger,
) *Sender {
	return &Sender{
		cfg:           cfg,
		appraisalRepo: appraisalRepo,
		stepRepo:      stepRepo,
		employeeRepo:  employeeRepo,
		logger:        logger,
	}
}

// ApprovalRequested notifies the approver at the given level
func (s *Sender) ApprovalRequested(ctx context.Context, appraisalID int64, level int) error {
	_, employee, err := s.resolveAppraisal(ctx, appraisalID)
	if err != nil {
		return err
	}

	steps, err := s.stepRepo.GetByAppraisalID(ctx, appraisalID)
	if err != nil {
		return fmt.Errorf("get chain: %w", err)
	}

	var step *entity.ApprovalStep
	for _, st := range steps {
		if st.Level == level {
			step = st
			break
		}
	}
	if step == nil {
		return fmt.Errorf("no step at level %d for appraisal %d", level, appraisalID)
	}

	approver, err := s.employeeRepo.GetByID(ctx, step.ApproverID)
	if err != nil || approver == nil {
		return fmt.Errorf("resolve approver %d: %w", step.ApproverID, err)
	}

	verb := "approve"
	if step.CanRate {
		verb = "review and rate"
	}

	subject := fmt.Sprintf("Appraisal Approval Required - %s", employee.Name)
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", approver.Name)
	fmt.Fprintf(&b, "You have a pending appraisal to %s.\n\n", verb)
	fmt.Fprintf(&b, "Employee: %s (%s)\n", employee.Name, employee.EmpNumber)
	fmt.Fprintf(&b, "Your Role: %s\n", roleLabel(step.ApproverRole))
	fmt.Fprintf(&b, "Approval Level: %d\n\n", level)
	fmt.Fprintf(&b, "Please log in to the system to complete your review.\n%s/approvals/pending\n\nThank you.", s.cfg.BaseURL)

	return s.send(approver.Email, subject, b.String())
}

// AppraisalCompleted notifies the employee that every level approved
func (s *Sender) AppraisalCompleted(ctx context.Context, appraisalID int64) error {
	_, employee, err := s.resolveAppraisal(ctx, appraisalID)
	if err != nil {
		return err
	}

	subject := "Appraisal Completed - All Approvals Received"
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", employee.Name)
	b.WriteString("Your appraisal has been completed and approved by all required levels.\n\n")
	fmt.Fprintf(&b, "You can now view your final appraisal results.\n%s/appraisals/%d\n\nThank you.", s.cfg.BaseURL, appraisalID)

	return s.send(employee.Email, subject, b.String())
}

// AppraisalRejected notifies the employee of a rejection
func (s *Sender) AppraisalRejected(ctx context.Context, appraisalID int64, reason string) error {
	_, employee, err := s.resolveAppraisal(ctx, appraisalID)
	if err != nil {
		return err
	}

	subject := "Appraisal Rejected - Action Required"
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", employee.Name)
	b.WriteString("Your appraisal has been rejected and requires revision.\n\n")
	if reason != "" {
		fmt.Fprintf(&b, "Reason: %s\n\n", reason)
	}
	fmt.Fprintf(&b, "Please review the feedback and resubmit.\n%s/appraisals/%d/edit\n\nThank you.", s.cfg.BaseURL, appraisalID)

	return s.send(employee.Email, subject, b.String())
}

// resolveAppraisal loads the appraisal and its employee
func (s *Sender) resolveAppraisal(ctx context.Context, appraisalID int64) (*entity.Appraisal, *entity.Employee, error) {
	appraisal, err := s.appraisalRepo.GetByID(ctx, appraisalID)
	if err != nil {
		return nil, nil, fmt.Errorf("get appraisal: %w", err)
	}
	if appraisal == nil {
		return nil, nil, fmt.Errorf("appraisal %d not found", appraisalID)
	}

	employee, err := s.employeeRepo.GetByID(ctx, appraisal.EmployeeID)
	if err != nil {
		return nil, nil, fmt.Errorf("get employee: %w", err)
	}
	if employee == nil {
		return nil, nil, fmt.Errorf("employee %d not found", appraisal.EmployeeID)
	}

	return appraisal, employee, nil
}

// send delivers one plain-text message
func (s *Sender) send(to, subject, body string) error {
	if s.cfg.Disabled {
		s.logger.Info("Email delivery disabled, skipping",
			zap.String("to", to),
			zap.String("subject", subject))
		return nil
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.cfg.FromName, s.cfg.From, to, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.Username != "" {
		auth = smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg)); err != nil {
		s.logger.Error("Failed to send email",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Notification email sent",
		zap.String("to", to),
		zap.String("subject", subject))
	return nil
}

// roleLabel turns a role key into a display label ("direct_supervisor" ->
// "Direct Supervisor")
func roleLabel(role string) string {
	words := strings.Split(role, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Verify interface compliance
var _ port.Notifier = (*Sender)(nil)
