package workflow

// Trigger represents an event that can move an appraisal between states
type Trigger string

const (
	// TriggerSubmit fires when the employee submits and the chain is persisted
	TriggerSubmit Trigger = "SUBMIT"

	// TriggerAdvance fires when a non-final step is approved; the appraisal
	// stays pending with the level pointer moved forward
	TriggerAdvance Trigger = "ADVANCE"

	// TriggerComplete fires when the final approver approves
	TriggerComplete Trigger = "COMPLETE"

	// TriggerReject fires when any approver rejects; terminal for the chain
	TriggerReject Trigger = "REJECT"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
