// Package chain computes multi-level approval chains for appraisals. Building
// is pure: the caller resolves employee attributes and candidate override
// rules up front, and persistence happens elsewhere.
package chain

import (
	"fmt"

	"github.com/hrworks/appraisal-engine/internal/domain/entity"
)

// Warning codes recorded for data-quality gaps that do not abort a build
const (
	WarnMissingSupervisor    = "missing_supervisor"
	WarnMissingLevelApprover = "missing_level_approver"
	WarnDuplicateApprover    = "duplicate_approver"
	WarnEmptyChain           = "empty_chain"
)

// Warning records a non-fatal data-quality gap found during a build
type Warning struct {
	Code    string
	Message string
}

// Policy controls whether data-quality gaps fail the build or are recorded as
// warnings. Zero value matches the historical behavior: warn and continue.
type Policy struct {
	RequireSupervisor bool
	AllowEmptyChain   bool
}

// DefaultPolicy preserves the historical warn-and-continue behavior
func DefaultPolicy() Policy {
	return Policy{RequireSupervisor: false, AllowEmptyChain: true}
}

// Input carries the resolved attributes a build needs
type Input struct {
	AppraisalID int64
	Employee    *entity.Employee
	Position    *entity.Position
	Department  *entity.Department
	Override    *entity.Override // nil when no rule applies
}

// Build produces the ordered approval chain for an appraisal. Levels are
// contiguous starting at 1, approvers are unique, the last step is the single
// final approver, and only a level-1 direct supervisor can rate.
func Build(in Input, policy Policy) ([]entity.ApprovalStep, []Warning, error) {
	var warnings []Warning

	if policy.RequireSupervisor && !in.Employee.HasSupervisor() {
		return nil, nil, ErrMissingSupervisor
	}

	totalLevels := TotalLevels(in.Employee, in.Position, in.Department, in.Override)

	steps := generate(in, totalLevels, &warnings)
	steps = deduplicate(steps, &warnings)

	if in.Override != nil {
		steps = applyOverride(steps, in.AppraisalID, in.Override, &warnings)
	}

	if len(steps) == 0 {
		if !policy.AllowEmptyChain {
			return nil, warnings, ErrEmptyChain
		}
		warnings = append(warnings, Warning{
			Code:    WarnEmptyChain,
			Message: fmt.Sprintf("appraisal %d: no approvers resolved", in.AppraisalID),
		})
		return steps, warnings, nil
	}

	steps[len(steps)-1].IsFinalApprover = true
	return steps, warnings, nil
}

// generate builds the raw chain: level 1 is the direct supervisor, levels
// 2..totalLevels come from department configuration. Unconfigured slots are
// skipped and recorded as warnings.
func generate(in Input, totalLevels int, warnings *[]Warning) []entity.ApprovalStep {
	steps := make([]entity.ApprovalStep, 0, totalLevels)

	if in.Employee.HasSupervisor() {
		steps = append(steps, entity.ApprovalStep{
			AppraisalID:  in.AppraisalID,
			Level:        1,
			ApproverID:   in.Employee.SupervisorID,
			ApproverRole: entity.RoleDirectSupervisor,
			Status:       entity.StepStatusPending,
			CanRate:      true,
			IsMandatory:  true,
		})
	} else {
		*warnings = append(*warnings, Warning{
			Code:    WarnMissingSupervisor,
			Message: fmt.Sprintf("employee %d has no direct supervisor", in.Employee.ID),
		})
	}

	for level := 2; level <= totalLevels; level++ {
		approver, ok := in.Department.ApproverAtLevel(level)
		if !ok {
			*warnings = append(*warnings, Warning{
				Code:    WarnMissingLevelApprover,
				Message: fmt.Sprintf("department %d has no approver at level %d", in.Department.ID, level),
			})
			continue
		}

		role := approver.RoleName
		if role == "" {
			role = fmt.Sprintf("level_%d_approver", level)
		}

		steps = append(steps, entity.ApprovalStep{
			AppraisalID:  in.AppraisalID,
			Level:        level,
			ApproverID:   approver.ApproverID,
			ApproverRole: role,
			Status:       entity.StepStatusPending,
			IsMandatory:  true,
		})
	}

	return steps
}

// deduplicate drops later occurrences of an approver already seen at a lower
// level, then renumbers. The first occurrence keeps its attributes, so a
// supervisor who doubles as a department approver keeps can_rate.
func deduplicate(steps []entity.ApprovalStep, warnings *[]Warning) []entity.ApprovalStep {
	seen := make(map[int64]bool, len(steps))
	out := steps[:0]
	for _, step := range steps {
		if seen[step.ApproverID] {
			*warnings = append(*warnings, Warning{
				Code:    WarnDuplicateApprover,
				Message: fmt.Sprintf("approver %d already present, dropping duplicate at level %d", step.ApproverID, step.Level),
			})
			continue
		}
		seen[step.ApproverID] = true
		out = append(out, step)
	}
	return renumber(out)
}

// applyOverride removes explicitly skipped levels (evaluated against the
// post-dedup numbering) and appends the additional approver, then renumbers.
func applyOverride(steps []entity.ApprovalStep, appraisalID int64, override *entity.Override, warnings *[]Warning) []entity.ApprovalStep {
	skip := map[int]bool{
		2: override.SkipLevel2,
		3: override.SkipLevel3,
		4: override.SkipLevel4,
	}

	out := steps[:0]
	for _, step := range steps {
		if skip[step.Level] {
			continue
		}
		out = append(out, step)
	}
	out = renumber(out)

	if override.AdditionalApproverID != 0 {
		duplicate := false
		for _, step := range out {
			if step.ApproverID == override.AdditionalApproverID {
				duplicate = true
				break
			}
		}
		if duplicate {
			*warnings = append(*warnings, Warning{
				Code:    WarnDuplicateApprover,
				Message: fmt.Sprintf("additional approver %d already in chain", override.AdditionalApproverID),
			})
		} else {
			out = append(out, entity.ApprovalStep{
				AppraisalID:  appraisalID,
				Level:        len(out) + 1,
				ApproverID:   override.AdditionalApproverID,
				ApproverRole: entity.RoleAdditionalApprover,
				Status:       entity.StepStatusPending,
				IsMandatory:  true,
			})
		}
	}

	return out
}

// renumber rewrites levels to a contiguous 1..N sequence
func renumber(steps []entity.ApprovalStep) []entity.ApprovalStep {
	for i := range steps {
		steps[i].Level = i + 1
	}
	return steps
}
