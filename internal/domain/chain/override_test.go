package chain

import (
	"testing"

	"github.com/hrworks/appraisal-engine/internal/domain/entity"
)

func int64Ptr(v int64) *int64 { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool { return &v }

func testScope() entity.OverrideScope {
	return entity.OverrideScope{
		CompanyID:    1,
		DepartmentID: 10,
		EmployeeType: entity.EmployeeTypeOfficeStaff,
		IsProbation:  false,
		UserID:       100,
		PositionID:   20,
	}
}

func TestSelectOverride(t *testing.T) {
	scope := testScope()

	t.Run("no candidates", func(t *testing.T) {
		if got := SelectOverride(nil, scope); got != nil {
			t.Errorf("SelectOverride() = %v, want nil", got)
		}
	})

	t.Run("lowest priority wins", func(t *testing.T) {
		rules := []entity.Override{
			{ID: 1, CompanyID: 1, IsActive: true, Priority: 20},
			{ID: 2, CompanyID: 1, IsActive: true, Priority: 5},
			{ID: 3, CompanyID: 1, IsActive: true, Priority: 10},
		}
		got := SelectOverride(rules, scope)
		if got == nil || got.ID != 2 {
			t.Errorf("SelectOverride() = %v, want rule 2", got)
		}
	})

	t.Run("first rule wins a priority tie", func(t *testing.T) {
		rules := []entity.Override{
			{ID: 1, CompanyID: 1, IsActive: true, Priority: 10},
			{ID: 2, CompanyID: 1, IsActive: true, Priority: 10},
		}
		got := SelectOverride(rules, scope)
		if got == nil || got.ID != 1 {
			t.Errorf("SelectOverride() = %v, want rule 1", got)
		}
	})

	t.Run("non-matching rules are ignored", func(t *testing.T) {
		rules := []entity.Override{
			{ID: 1, CompanyID: 1, IsActive: true, Priority: 1, DepartmentID: int64Ptr(99)},
			{ID: 2, CompanyID: 1, IsActive: false, Priority: 2},
			{ID: 3, CompanyID: 1, IsActive: true, Priority: 30},
		}
		got := SelectOverride(rules, scope)
		if got == nil || got.ID != 3 {
			t.Errorf("SelectOverride() = %v, want rule 3", got)
		}
	})
}

func TestOverrideMatches(t *testing.T) {
	scope := testScope()

	tests := []struct {
		name string
		rule entity.Override
		want bool
	}{
		{
			name: "all-wildcard rule matches",
			rule: entity.Override{CompanyID: 1, IsActive: true},
			want: true,
		},
		{
			name: "inactive rule never matches",
			rule: entity.Override{CompanyID: 1, IsActive: false},
			want: false,
		},
		{
			name: "other company never matches",
			rule: entity.Override{CompanyID: 2, IsActive: true},
			want: false,
		},
		{
			name: "department scope matches",
			rule: entity.Override{CompanyID: 1, IsActive: true, DepartmentID: int64Ptr(10)},
			want: true,
		},
		{
			name: "department scope mismatch",
			rule: entity.Override{CompanyID: 1, IsActive: true, DepartmentID: int64Ptr(11)},
			want: false,
		},
		{
			name: "employee type scope matches",
			rule: entity.Override{CompanyID: 1, IsActive: true, EmployeeType: strPtr(entity.EmployeeTypeOfficeStaff)},
			want: true,
		},
		{
			name: "employee type scope mismatch",
			rule: entity.Override{CompanyID: 1, IsActive: true, EmployeeType: strPtr(entity.EmployeeTypeManager)},
			want: false,
		},
		{
			name: "probation scope mismatch",
			rule: entity.Override{CompanyID: 1, IsActive: true, IsProbation: boolPtr(true)},
			want: false,
		},
		{
			name: "user scope matches",
			rule: entity.Override{CompanyID: 1, IsActive: true, UserID: int64Ptr(100)},
			want: true,
		},
		{
			name: "position scope mismatch",
			rule: entity.Override{CompanyID: 1, IsActive: true, PositionID: int64Ptr(99)},
			want: false,
		},
		{
			name: "all scope fields set and matching",
			rule: entity.Override{
				CompanyID:    1,
				IsActive:     true,
				DepartmentID: int64Ptr(10),
				EmployeeType: strPtr(entity.EmployeeTypeOfficeStaff),
				IsProbation:  boolPtr(false),
				UserID:       int64Ptr(100),
				PositionID:   int64Ptr(20),
			},
			want: true,
		},
		{
			name: "one mismatching field rejects the rule",
			rule: entity.Override{
				CompanyID:    1,
				IsActive:     true,
				DepartmentID: int64Ptr(10),
				UserID:       int64Ptr(101),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rule.Matches(scope); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
