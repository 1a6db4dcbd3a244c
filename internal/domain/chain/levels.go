package chain

import "github.com/hrworks/appraisal-engine/internal/domain/entity"

// defaultLevelsByType holds the global chain-length defaults, used when the
// department does not configure a count for the employee type.
var defaultLevelsByType = map[string]int{
	entity.EmployeeTypeOfficeStaff:      2,
	entity.EmployeeTypeProductionWorker: 5,
	entity.EmployeeTypeSupervisor:       3,
	entity.EmployeeTypeManager:          3,
	entity.EmployeeTypeExecutive:        2,
}

const fallbackLevels = 2

// departmentLevels returns the department's configured chain length for the
// employee type, falling back to the global default for unknown types.
func departmentLevels(dept *entity.Department, employeeType string) int {
	var configured int
	switch employeeType {
	case entity.EmployeeTypeOfficeStaff:
		configured = dept.StaffApprovalLevels
	case entity.EmployeeTypeProductionWorker:
		configured = dept.WorkerApprovalLevels
	case entity.EmployeeTypeSupervisor:
		configured = dept.SupervisorApprovalLevels
	case entity.EmployeeTypeManager:
		configured = dept.ManagerApprovalLevels
	case entity.EmployeeTypeExecutive:
		configured = dept.ExecutiveApprovalLevels
	}
	if configured > 0 {
		return configured
	}
	if levels, ok := defaultLevelsByType[employeeType]; ok {
		return levels
	}
	return fallbackLevels
}

// TotalLevels computes the chain length N for an employee. An override with an
// explicit count wins; otherwise the department default for the employee type
// applies, clamped by the probation cap for unconfirmed employees. The result
// never exceeds entity.MaxApprovalLevels.
func TotalLevels(employee *entity.Employee, position *entity.Position, dept *entity.Department, override *entity.Override) int {
	if override != nil && override.SetApprovalLevels > 0 {
		return min(override.SetApprovalLevels, entity.MaxApprovalLevels)
	}

	levels := departmentLevels(dept, position.EmployeeType)

	if !employee.IsConfirmed && dept.ProbationApprovalLevels > 0 {
		levels = min(levels, dept.ProbationApprovalLevels)
	}

	return min(levels, entity.MaxApprovalLevels)
}
