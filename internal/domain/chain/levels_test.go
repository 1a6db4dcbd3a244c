package chain

import (
	"testing"

	"github.com/hrworks/appraisal-engine/internal/domain/entity"
)

func TestTotalLevels(t *testing.T) {
	tests := []struct {
		name     string
		employee *entity.Employee
		position *entity.Position
		dept     *entity.Department
		override *entity.Override
		want     int
	}{
		{
			name:     "office staff global default",
			employee: &entity.Employee{IsConfirmed: true},
			position: &entity.Position{EmployeeType: entity.EmployeeTypeOfficeStaff},
			dept:     &entity.Department{},
			want:     2,
		},
		{
			name:     "production worker global default",
			employee: &entity.Employee{IsConfirmed: true},
			position: &entity.Position{EmployeeType: entity.EmployeeTypeProductionWorker},
			dept:     &entity.Department{},
			want:     5,
		},
		{
			name:     "supervisor global default",
			employee: &entity.Employee{IsConfirmed: true},
			position: &entity.Position{EmployeeType: entity.EmployeeTypeSupervisor},
			dept:     &entity.Department{},
			want:     3,
		},
		{
			name:     "manager global default",
			employee: &entity.Employee{IsConfirmed: true},
			position: &entity.Position{EmployeeType: entity.EmployeeTypeManager},
			dept:     &entity.Department{},
			want:     3,
		},
		{
			name:     "executive global default",
			employee: &entity.Employee{IsConfirmed: true},
			position: &entity.Position{EmployeeType: entity.EmployeeTypeExecutive},
			dept:     &entity.Department{},
			want:     2,
		},
		{
			name:     "unknown type falls back to two",
			employee: &entity.Employee{IsConfirmed: true},
			position: &entity.Position{EmployeeType: "contractor"},
			dept:     &entity.Department{},
			want:     2,
		},
		{
			name:     "department configuration beats global default",
			employee: &entity.Employee{IsConfirmed: true},
			position: &entity.Position{EmployeeType: entity.EmployeeTypeOfficeStaff},
			dept:     &entity.Department{StaffApprovalLevels: 4},
			want:     4,
		},
		{
			name:     "probation cap shortens the chain",
			employee: &entity.Employee{IsConfirmed: false},
			position: &entity.Position{EmployeeType: entity.EmployeeTypeProductionWorker},
			dept:     &entity.Department{ProbationApprovalLevels: 2},
			want:     2,
		},
		{
			name:     "probation cap never lengthens the chain",
			employee: &entity.Employee{IsConfirmed: false},
			position: &entity.Position{EmployeeType: entity.EmployeeTypeOfficeStaff},
			dept:     &entity.Department{ProbationApprovalLevels: 4},
			want:     2,
		},
		{
			name:     "confirmed employee ignores probation cap",
			employee: &entity.Employee{IsConfirmed: true},
			position: &entity.Position{EmployeeType: entity.EmployeeTypeProductionWorker},
			dept:     &entity.Department{ProbationApprovalLevels: 2},
			want:     5,
		},
		{
			name:     "override explicit count wins over everything",
			employee: &entity.Employee{IsConfirmed: false},
			position: &entity.Position{EmployeeType: entity.EmployeeTypeProductionWorker},
			dept:     &entity.Department{ProbationApprovalLevels: 2},
			override: &entity.Override{SetApprovalLevels: 4},
			want:     4,
		},
		{
			name:     "override without explicit count defers to department",
			employee: &entity.Employee{IsConfirmed: true},
			position: &entity.Position{EmployeeType: entity.EmployeeTypeOfficeStaff},
			dept:     &entity.Department{StaffApprovalLevels: 3},
			override: &entity.Override{SkipLevel2: true},
			want:     3,
		},
		{
			name:     "hard ceiling applies to department configuration",
			employee: &entity.Employee{IsConfirmed: true},
			position: &entity.Position{EmployeeType: entity.EmployeeTypeOfficeStaff},
			dept:     &entity.Department{StaffApprovalLevels: 9},
			want:     entity.MaxApprovalLevels,
		},
		{
			name:     "hard ceiling applies to override count",
			employee: &entity.Employee{IsConfirmed: true},
			position: &entity.Position{EmployeeType: entity.EmployeeTypeOfficeStaff},
			dept:     &entity.Department{},
			override: &entity.Override{SetApprovalLevels: 10},
			want:     entity.MaxApprovalLevels,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalLevels(tt.employee, tt.position, tt.dept, tt.override)
			if got != tt.want {
				t.Errorf("TotalLevels() = %d, want %d", got, tt.want)
			}
		})
	}
}
