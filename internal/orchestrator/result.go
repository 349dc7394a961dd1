package orchestrator

// State is a step of the start state machine.
type State int

// States in transition order. Resolved and Failed are terminal.
const (
	StateIdle State = iota
	StateStarting
	StateAwaitingAddress
	StateResolved
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateStarting:
		return "Starting"
	case StateAwaitingAddress:
		return "AwaitingAddress"
	case StateResolved:
		return "Resolved"
	case StateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Result is either Resolved or Failed.
type Result interface {
	isResult()
}

// Resolved reports a started instance. PublicAddress may be empty when the
// provider has not assigned one yet.
type Resolved struct {
	PublicAddress string
	Description   any
}

// Failed carries the platform error and the state in which it occurred.
type Failed struct {
	Err   error
	State State
}

func (Resolved) isResult() {}
func (Failed) isResult()   {}
