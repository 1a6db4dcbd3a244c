package workflow

import (
	"context"
	"errors"
	"testing"
)

func TestForAppraisal_Transitions(t *testing.T) {
	tests := []struct {
		name      string
		status    string
		trigger   Trigger
		wantState State
		wantErr   error
	}{
		{
			name:      "draft submits to pending",
			status:    "draft",
			trigger:   TriggerSubmit,
			wantState: StatePendingApproval,
		},
		{
			name:      "pending resubmit stays pending",
			status:    "pending_approval",
			trigger:   TriggerSubmit,
			wantState: StatePendingApproval,
		},
		{
			name:      "pending advance stays pending",
			status:    "pending_approval",
			trigger:   TriggerAdvance,
			wantState: StatePendingApproval,
		},
		{
			name:      "pending completes",
			status:    "pending_approval",
			trigger:   TriggerComplete,
			wantState: StateCompleted,
		},
		{
			name:      "pending rejects",
			status:    "pending_approval",
			trigger:   TriggerReject,
			wantState: StateRejected,
		},
		{
			name:    "draft cannot advance",
			status:  "draft",
			trigger: TriggerAdvance,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "completed is terminal",
			status:  "completed",
			trigger: TriggerSubmit,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "rejected is terminal",
			status:  "rejected",
			trigger: TriggerSubmit,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "rejected cannot advance either",
			status:  "rejected",
			trigger: TriggerAdvance,
			wantErr: ErrInvalidTransition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ForAppraisal(tt.status)
			if err != nil {
				t.Fatalf("ForAppraisal(%q) error = %v", tt.status, err)
			}

			err = m.Fire(context.Background(), tt.trigger)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Fire(%s) error = %v, want %v", tt.trigger, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Fire(%s) error = %v", tt.trigger, err)
			}
			if m.State() != tt.wantState {
				t.Errorf("State() = %s, want %s", m.State(), tt.wantState)
			}
		})
	}
}

func TestForAppraisal_UnknownStatus(t *testing.T) {
	if _, err := ForAppraisal("archived"); !errors.Is(err, ErrInvalidState) {
		t.Fatalf("ForAppraisal() error = %v, want ErrInvalidState", err)
	}
}
