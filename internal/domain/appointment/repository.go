package appointment

import (
	"context"

	"github.com/salonflowpro/salon-api/internal/models"
)

type Repository interface {
	// -------- Catalog --------
	GetServicesByIDs(
		ctx context.Context,
		ids []uint,
	) ([]models.Service, error)

	// -------- Appointment (read) --------
	GetAppointmentByID(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	ListAppointmentsByDate(
		ctx context.Context,
		date string,
	) ([]models.Appointment, error)

	ListAppointmentsByRange(
		ctx context.Context,
		startDate string,
		endDate string,
	) ([]models.Appointment, error)

	ListCompletedAppointments(
		ctx context.Context,
	) ([]models.Appointment, error)

	// -------- Appointment (write, transactional) --------
	CreateAppointmentWithServices(
		ctx context.Context,
		ap *models.Appointment,
		items []models.AppointmentService,
		returnAp *models.Appointment,
	) error

	UpdateAppointmentWithServices(
		ctx context.Context,
		ap *models.Appointment,
		items []models.AppointmentService,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointmentWithServices(
		ctx context.Context,
		id uint,
	) error

	CompleteWithPayment(
		ctx context.Context,
		ap *models.Appointment,
		payment *models.Payment,
	) error
}
