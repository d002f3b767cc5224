package appointment

import "github.com/salonflowpro/salon-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCanceled:
		return true
	}
	return false
}

// ===============================
// Transitions
// ===============================

// CanTransition valida a ordem scheduled → in_progress → completed,
// com cancelamento permitido a partir de scheduled e in_progress.
func CanTransition(current, next Status) error {
	switch next {
	case StatusInProgress:
		if current == StatusScheduled {
			return nil
		}
	case StatusCompleted:
		if current == StatusInProgress || current == StatusScheduled {
			return nil
		}
	case StatusCanceled:
		if current == StatusScheduled || current == StatusInProgress {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}

func InitialStatus() Status {
	return StatusScheduled
}
