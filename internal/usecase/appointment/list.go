package appointment

import (
	"context"
	"time"

	domain "github.com/salonflowpro/salon-api/internal/domain/appointment"
	"github.com/salonflowpro/salon-api/internal/httperr"
	"github.com/salonflowpro/salon-api/internal/models"
)

// ListAppointments cobre as leituras de agenda: dia exato, intervalo de
// datas e histórico de concluídos. Sempre com expansão relacional completa,
// ordenado por data e horário de início.
type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) ByDate(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}

	return uc.repo.ListAppointmentsByDate(ctx, date)
}

func (uc *ListAppointments) ByRange(
	ctx context.Context,
	startDate string,
	endDate string,
) ([]models.Appointment, error) {

	start, err := time.Parse(domain.DateLayout, startDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	end, err := time.Parse(domain.DateLayout, endDate)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	if end.Before(start) {
		return nil, httperr.ErrBusiness("invalid_range")
	}

	return uc.repo.ListAppointmentsByRange(ctx, startDate, endDate)
}

func (uc *ListAppointments) History(
	ctx context.Context,
) ([]models.Appointment, error) {
	return uc.repo.ListCompletedAppointments(ctx)
}
