package appointment

import (
	"time"

	"github.com/salonflowpro/salon-api/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Transition(ap *models.Appointment, next Status, now time.Time) error {
	if err := CanTransition(Status(ap.Status), next); err != nil {
		return err
	}

	ap.Status = string(next)

	switch next {
	case StatusCanceled:
		ap.CancelledAt = &now
	case StatusCompleted:
		ap.CompletedAt = &now
	}

	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCompleted, now)
}

func Cancel(ap *models.Appointment, now time.Time) error {
	return Transition(ap, StatusCanceled, now)
}
