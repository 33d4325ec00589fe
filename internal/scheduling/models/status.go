package models

// ShiftStatus is the lifecycle state of a shift.
//
// Transitions: Scheduled → InProgress → Completed; Scheduled/InProgress →
// Cancelled; Scheduled → NoShow. Completed, Cancelled, and NoShow are
// terminal.
type ShiftStatus string

const (
	ShiftScheduled  ShiftStatus = "scheduled"
	ShiftInProgress ShiftStatus = "in_progress"
	ShiftCompleted  ShiftStatus = "completed"
	ShiftCancelled  ShiftStatus = "cancelled"
	ShiftNoShow     ShiftStatus = "no_show"
)

// IsValid reports whether the value is a known shift status.
func (s ShiftStatus) IsValid() bool {
	switch s {
	case ShiftScheduled, ShiftInProgress, ShiftCompleted, ShiftCancelled, ShiftNoShow:
		return true
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed.
func (s ShiftStatus) IsTerminal() bool {
	switch s {
	case ShiftCompleted, ShiftCancelled, ShiftNoShow:
		return true
	}
	return false
}

// CanTransitionTo reports whether the status machine allows moving to next.
func (s ShiftStatus) CanTransitionTo(next ShiftStatus) bool {
	switch s {
	case ShiftScheduled:
		return next == ShiftInProgress || next == ShiftCancelled || next == ShiftNoShow
	case ShiftInProgress:
		return next == ShiftCompleted || next == ShiftCancelled
	default:
		return false
	}
}
