// Package workflow implements the appraisal lifecycle state machine. The
// machine validates transitions; the approval service performs the side
// effects inside its transaction.
package workflow

import (
	"context"
	"fmt"
)

// GuardFunc evaluates whether a permitted transition may actually fire
type GuardFunc func(ctx context.Context) bool

type transition struct {
	toState State
	guard   GuardFunc
}

// Machine tracks the current appraisal state and its permitted transitions
type Machine struct {
	currentState State
	transitions  map[State]map[Trigger][]transition
}

// NewMachine creates a state machine positioned at the given initial state
func NewMachine(initial State) (*Machine, error) {
	if !initial.IsValid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidState, initial)
	}
	return &Machine{
		currentState: initial,
		transitions:  make(map[State]map[Trigger][]transition),
	}, nil
}

// Permit allows trigger to move the machine from one state to another
func (m *Machine) Permit(from State, trigger Trigger, to State) *Machine {
	return m.PermitIf(from, trigger, to, nil)
}

// PermitIf allows the transition only when the guard passes
func (m *Machine) PermitIf(from State, trigger Trigger, to State, guard GuardFunc) *Machine {
	if !from.IsValid() || !to.IsValid() {
		panic(fmt.Sprintf("invalid transition %s -> %s", from, to))
	}
	if m.transitions[from] == nil {
		m.transitions[from] = make(map[Trigger][]transition)
	}
	m.transitions[from][trigger] = append(m.transitions[from][trigger], transition{toState: to, guard: guard})
	return m
}

// State returns the current state
func (m *Machine) State() State {
	return m.currentState
}

// CanFire reports whether at least one transition exists for the trigger in
// the current state. Guards are not evaluated here.
func (m *Machine) CanFire(trigger Trigger) bool {
	return len(m.transitions[m.currentState][trigger]) > 0
}

// Fire executes the trigger, moving to the first transition whose guard passes
func (m *Machine) Fire(ctx context.Context, trigger Trigger) error {
	candidates := m.transitions[m.currentState][trigger]
	if len(candidates) == 0 {
		return fmt.Errorf("%w: cannot fire %s from state %s", ErrInvalidTransition, trigger, m.currentState)
	}

	for _, t := range candidates {
		if t.guard == nil || t.guard(ctx) {
			m.currentState = t.toState
			return nil
		}
	}

	return fmt.Errorf("%w: trigger %s from state %s", ErrGuardFailed, trigger, m.currentState)
}

// PermittedTriggers returns the triggers that can fire from the current state
func (m *Machine) PermittedTriggers() []Trigger {
	current := m.transitions[m.currentState]
	triggers := make([]Trigger, 0, len(current))
	for trigger := range current {
		triggers = append(triggers, trigger)
	}
	return triggers
}
