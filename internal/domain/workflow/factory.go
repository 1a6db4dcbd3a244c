package workflow

// ForAppraisal builds the appraisal lifecycle machine positioned at the given
// status. Rejection is terminal for the whole chain: no trigger leaves the
// rejected state. A rejected appraisal is revised and resubmitted as a fresh
// draft, which rebuilds the chain from scratch.
func ForAppraisal(status string) (*Machine, error) {
	m, err := NewMachine(State(status))
	if err != nil {
		return nil, err
	}

	m.Permit(StateDraft, TriggerSubmit, StatePendingApproval)
	// Re-submission while pending replaces the chain wholesale
	m.Permit(StatePendingApproval, TriggerSubmit, StatePendingApproval)
	m.Permit(StatePendingApproval, TriggerAdvance, StatePendingApproval)
	m.Permit(StatePendingApproval, TriggerComplete, StateCompleted)
	m.Permit(StatePendingApproval, TriggerReject, StateRejected)

	return m, nil
}
