package entity

import "time"

// Employee represents a user record from the organization directory
type Employee struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	EmpNumber    string    `json:"emp_number"`
	Email        string    `json:"email"`
	CompanyID    int64     `json:"company_id"`
	DepartmentID int64     `json:"department_id"`
	PositionID   int64     `json:"position_id"`
	SupervisorID int64     `json:"supervisor_id"` // 0 when no direct supervisor is configured
	IsConfirmed  bool      `json:"is_confirmed"`  // false while on probation
	CreatedAt    time.Time `json:"created_at"`
}

// Position carries the employee-type classification used for level defaults
type Position struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	EmployeeType string `json:"employee_type"`
	IsManagement bool   `json:"is_management"`
}

// HasSupervisor reports whether a direct supervisor is configured
func (e *Employee) HasSupervisor() bool {
	return e.SupervisorID != 0
}
