package workflow

import (
	"context"
	"errors"
	"testing"
)

func TestNewMachine_RejectsUnknownState(t *testing.T) {
	if _, err := NewMachine(State("archived")); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("NewMachine() error = %v, want ErrInvalidState", err)
	}
}

func TestMachine_FireMovesState(t *testing.T) {
	m, err := NewMachine(StateDraft)
	if err != nil {
		t.Fatalf("NewMachine() error = %v", err)
	}
	m.Permit(StateDraft, TriggerSubmit, StatePendingApproval)

	if !m.CanFire(TriggerSubmit) {
		t.Error("CanFire(SUBMIT) = false, want true")
	}
	if err := m.Fire(context.Background(), TriggerSubmit); err != nil {
		t.Fatalf("Fire() error = %v", err)
	}
	if m.State() != StatePendingApproval {
		t.Errorf("State() = %s, want %s", m.State(), StatePendingApproval)
	}
}

func TestMachine_FireUnpermittedTrigger(t *testing.T) {
	m, err := NewMachine(StateDraft)
	if err != nil {
		t.Fatalf("NewMachine() error = %v", err)
	}
	m.Permit(StateDraft, TriggerSubmit, StatePendingApproval)

	if err := m.Fire(context.Background(), TriggerComplete); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("Fire(COMPLETE) error = %v, want ErrInvalidTransition", err)
	}
	if m.State() != StateDraft {
		t.Errorf("state moved to %s on a failed fire", m.State())
	}
}

func TestMachine_GuardBlocksTransition(t *testing.T) {
	m, err := NewMachine(StateDraft)
	if err != nil {
		t.Fatalf("NewMachine() error = %v", err)
	}

	allow := false
	m.PermitIf(StateDraft, TriggerSubmit, StatePendingApproval, func(ctx context.Context) bool {
		return allow
	})

	if err := m.Fire(context.Background(), TriggerSubmit); !errors.Is(err, ErrGuardFailed) {
		t.Fatalf("Fire() error = %v, want ErrGuardFailed", err)
	}

	allow = true
	if err := m.Fire(context.Background(), TriggerSubmit); err != nil {
		t.Fatalf("Fire() after guard opens error = %v", err)
	}
	if m.State() != StatePendingApproval {
		t.Errorf("State() = %s, want %s", m.State(), StatePendingApproval)
	}
}

func TestStateIsTerminal(t *testing.T) {
	tests := []struct {
		state State
		want  bool
	}{
		{StateDraft, false},
		{StatePendingApproval, false},
		{StateCompleted, true},
		{StateRejected, true},
	}

	for _, tt := range tests {
		t.Run(tt.state.String(), func(t *testing.T) {
			if got := tt.state.IsTerminal(); got != tt.want {
				t.Errorf("IsTerminal() = %v, want %v", got, tt.want)
			}
		})
	}
}
