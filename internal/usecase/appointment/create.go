package appointment

import (
	"context"

	"github.com/salonflowpro/salon-api/internal/audit"
	domain "github.com/salonflowpro/salon-api/internal/domain/appointment"
	"github.com/salonflowpro/salon-api/internal/httperr"
	"github.com/salonflowpro/salon-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ClientID    uint
	AttendantID uint

	Date      string
	StartTime string
	Notes     string

	ServiceIDs []uint
	TotalPrice float64

	// Dias até o retorno automático (7/15/20/25/30) ou nil.
	ReturnDays *int

	UserID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Validação local
	// --------------------------------------------------
	if in.ClientID == 0 || in.AttendantID == 0 || in.Date == "" || in.StartTime == "" {
		return nil, httperr.ErrBusiness("missing_required_fields")
	}
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("no_services_selected")
	}

	// --------------------------------------------------
	// 2. Data de retorno (dias corridos)
	// --------------------------------------------------
	var returnDate *string
	if in.ReturnDays != nil {
		rd, err := domain.ReturnDate(in.Date, *in.ReturnDays)
		if err != nil {
			return nil, err
		}
		returnDate = &rd
	}

	// --------------------------------------------------
	// 3. Snapshot de preços dos serviços selecionados
	// --------------------------------------------------
	items, err := snapshotItems(ctx, uc.repo, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Agendamento principal
	// --------------------------------------------------
	ap := &models.Appointment{
		ClientID:    in.ClientID,
		AttendantID: in.AttendantID,
		Date:        in.Date,
		StartTime:   in.StartTime,
		Status:      string(domain.InitialStatus()),
		TotalPrice:  in.TotalPrice,
		Notes:       in.Notes,
		ReturnDate:  returnDate,
	}

	// --------------------------------------------------
	// 5. Retorno automático (sem itens; total como placeholder)
	// --------------------------------------------------
	var returnAp *models.Appointment
	if returnDate != nil {
		returnAp = &models.Appointment{
			ClientID:    in.ClientID,
			AttendantID: in.AttendantID,
			Date:        *returnDate,
			StartTime:   in.StartTime,
			Status:      string(domain.InitialStatus()),
			TotalPrice:  in.TotalPrice,
			Notes:       domain.ReturnNote(*in.ReturnDays),
		}
	}

	// --------------------------------------------------
	// 6. Gravação atômica
	// --------------------------------------------------
	if err := uc.repo.CreateAppointmentWithServices(ctx, ap, items, returnAp); err != nil {
		return nil, err
	}
	ap.Services = items

	uc.audit.Dispatch(audit.Event{
		UserID:   in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

// snapshotItems congela o preço atual de cada serviço selecionado.
// Serviço que não resolve mais no catálogo entra com preço 0 — a
// marcação não falha por catálogo desatualizado.
func snapshotItems(
	ctx context.Context,
	repo domain.Repository,
	serviceIDs []uint,
) ([]models.AppointmentService, error) {

	services, err := repo.GetServicesByIDs(ctx, serviceIDs)
	if err != nil {
		return nil, err
	}

	prices := make(map[uint]float64, len(services))
	for _, s := range services {
		prices[s.ID] = s.Price
	}

	items := make([]models.AppointmentService, 0, len(serviceIDs))
	for _, sid := range serviceIDs {
		items = append(items, models.AppointmentService{
			ServiceID: sid,
			Price:     prices[sid],
		})
	}

	return items, nil
}
