package tracker

// State describes how much of a tracking layout exists.
type State int

// Inspection outcomes.
const (
	// StateAbsent means the namespace does not exist.
	StateAbsent State = iota
	// StateInitialized means the namespace and a table with the canonical columns exist.
	StateInitialized
	// StateNamespaceOnly means the namespace exists without the change table.
	StateNamespaceOnly
	// StateMismatch means the change table exists with unexpected columns.
	StateMismatch
)

func (s State) String() string {
	switch s {
	case StateAbsent:
		return "absent"
	case StateInitialized:
		return "initialized"
	case StateNamespaceOnly:
		return "namespace-only"
	case StateMismatch:
		return "mismatch"
	default:
		return "unknown"
	}
}
