package domain

// ProcessingState identifies a phase of an ingestion or deletion operation.
type ProcessingState string

// Processing states.
const (
	// StateIdle means no operation is in flight.
	StateIdle ProcessingState = "idle"

	// StateProcessing means document ingestion is running.
	StateProcessing ProcessingState = "processing"

	// StateDeleting means chunk removal is running.
	StateDeleting ProcessingState = "deleting"

	// StateCompleted is the success terminal state. It reverts to Idle
	// after a short visibility delay.
	StateCompleted ProcessingState = "completed"

	// StateFailed is the failure terminal state. It reverts to Idle
	// after a short visibility delay.
	StateFailed ProcessingState = "failed"
)

// ProcessingStatus is the live status of one ingestion or deletion
// operation. It is a transient signal for observers, never persisted.
type ProcessingStatus struct {
	// State is the current phase.
	State ProcessingState

	// DocumentID identifies the document being operated on.
	DocumentID string

	// Progress is the completion percentage, 0-100. Monotonically
	// non-decreasing within one operation.
	Progress int

	// Step is a human-readable label, e.g. "embedding chunk 3/12".
	Step string

	// Reason holds the failure description when State is StateFailed.
	Reason string
}

// IsTerminal reports whether the status is Completed or Failed.
func (s ProcessingStatus) IsTerminal() bool {
	return s.State == StateCompleted || s.State == StateFailed
}

// IsActive reports whether an operation is in flight.
func (s ProcessingStatus) IsActive() bool {
	return s.State == StateProcessing || s.State == StateDeleting
}

// Idle returns the resting status.
func Idle() ProcessingStatus {
	return ProcessingStatus{State: StateIdle}
}
