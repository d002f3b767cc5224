package appointment

import (
	"context"

	"github.com/salonflowpro/salon-api/internal/audit"
	domain "github.com/salonflowpro/salon-api/internal/domain/appointment"
	"github.com/salonflowpro/salon-api/internal/httperr"
)

type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute remove o agendamento e seus itens juntos, sem deixar item órfão.
func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	userID *uint,
) error {

	if _, err := uc.repo.GetAppointmentByID(ctx, appointmentID); err != nil {
		return httperr.ErrBusiness("appointment_not_found")
	}

	if err := uc.repo.DeleteAppointmentWithServices(ctx, appointmentID); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}
