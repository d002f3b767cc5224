package appointment

import (
	"context"

	"github.com/salonflowpro/salon-api/internal/audit"
	domain "github.com/salonflowpro/salon-api/internal/domain/appointment"
	"github.com/salonflowpro/salon-api/internal/httperr"
	"github.com/salonflowpro/salon-api/internal/models"
	"github.com/salonflowpro/salon-api/internal/timezone"
)

type ChangeStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	tz    string
}

func NewChangeStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	tz string,
) *ChangeStatus {
	return &ChangeStatus{
		repo:  repo,
		audit: audit,
		tz:    tz,
	}
}

// Execute aplica uma transição de status respeitando a ordem
// scheduled → in_progress → completed, com cancelamento a partir
// dos dois primeiros estados.
func (uc *ChangeStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	next domain.Status,
	userID *uint,
) (*models.Appointment, error) {

	if !domain.IsValidStatus(next) {
		return nil, httperr.ErrBusiness("invalid_status")
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, appointmentID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	now := timezone.NowIn(uc.tz)
	if err := domain.Transition(ap, next, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "appointment_status_" + string(next),
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
