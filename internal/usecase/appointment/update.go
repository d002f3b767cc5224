package appointment

import (
	"context"

	"github.com/salonflowpro/salon-api/internal/audit"
	domain "github.com/salonflowpro/salon-api/internal/domain/appointment"
	"github.com/salonflowpro/salon-api/internal/httperr"
	"github.com/salonflowpro/salon-api/internal/models"
)

type UpdateAppointmentInput struct {
	ID uint

	ClientID    uint
	AttendantID uint

	Date      string
	StartTime string
	Notes     string

	ServiceIDs []uint
	TotalPrice float64

	ReturnDays *int

	UserID *uint
}

type UpdateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute atualiza os campos escalares e substitui integralmente os itens
// do agendamento, com novo snapshot de preços. Diferente da criação, a
// edição nunca gera um segundo agendamento de retorno.
func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	in UpdateAppointmentInput,
) (*models.Appointment, error) {

	if in.ClientID == 0 || in.AttendantID == 0 || in.Date == "" || in.StartTime == "" {
		return nil, httperr.ErrBusiness("missing_required_fields")
	}
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("no_services_selected")
	}

	ap, err := uc.repo.GetAppointmentByID(ctx, in.ID)
	if err != nil {
		return nil, httperr.ErrBusiness("appointment_not_found")
	}

	var returnDate *string
	if in.ReturnDays != nil {
		rd, err := domain.ReturnDate(in.Date, *in.ReturnDays)
		if err != nil {
			return nil, err
		}
		returnDate = &rd
	}

	items, err := snapshotItems(ctx, uc.repo, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	ap.ClientID = in.ClientID
	ap.AttendantID = in.AttendantID
	ap.Date = in.Date
	ap.StartTime = in.StartTime
	ap.Notes = in.Notes
	ap.TotalPrice = in.TotalPrice
	ap.ReturnDate = returnDate
	ap.Services = nil
	ap.Payment = nil

	if err := uc.repo.UpdateAppointmentWithServices(ctx, ap, items); err != nil {
		return nil, err
	}
	ap.Services = items

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_updated",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
