package workflow

// State represents an appraisal lifecycle state as driven by the approval chain
type State string

const (
	StateDraft           State = "draft"
	StatePendingApproval State = "pending_approval"
	StateCompleted       State = "completed"
	StateRejected        State = "rejected"
)

var validStates = map[State]bool{
	StateDraft:           true,
	StatePendingApproval: true,
	StateCompleted:       true,
	StateRejected:        true,
}

var terminalStates = map[State]bool{
	StateCompleted: true,
	StateRejected:  true,
}

// IsTerminal returns true if no further transitions are allowed from the state
func (s State) IsTerminal() bool {
	return terminalStates[s]
}

// IsValid returns true if the state is a known appraisal state
func (s State) IsValid() bool {
	return validStates[s]
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}
