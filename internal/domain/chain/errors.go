package chain

import "errors"

var (
	// ErrEmployeeNotFound is returned when the employee cannot be resolved
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrDepartmentNotFound is returned when the employee's department cannot be resolved
	ErrDepartmentNotFound = errors.New("department not found")

	// ErrPositionNotFound is returned when the employee's position cannot be resolved
	ErrPositionNotFound = errors.New("position not found")

	// ErrMissingSupervisor is returned when the employee has no direct
	// supervisor and policy requires one
	ErrMissingSupervisor = errors.New("employee has no direct supervisor")

	// ErrEmptyChain is returned when the built chain has no steps and policy
	// forbids an empty chain
	ErrEmptyChain = errors.New("approval chain is empty")
)
