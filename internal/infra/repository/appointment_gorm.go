package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/salonflowpro/salon-api/internal/domain/appointment"
	"github.com/salonflowpro/salon-api/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Catalog
// --------------------------------------------------

func (r *AppointmentGormRepository) GetServicesByIDs(
	ctx context.Context,
	ids []uint,
) ([]models.Service, error) {

	if len(ids) == 0 {
		return nil, nil
	}

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

// --------------------------------------------------
// Appointment (read)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointmentByID(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Attendant").
		Preload("Services.Service").
		Preload("Payment").
		First(&ap, id).Error; err != nil {
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByDate(
	ctx context.Context,
	date string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.listQuery(ctx).
		Where("date = ?", date).
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListAppointmentsByRange(
	ctx context.Context,
	startDate string,
	endDate string,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.listQuery(ctx).
		Where("date >= ? AND date <= ?", startDate, endDate).
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) ListCompletedAppointments(
	ctx context.Context,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Attendant").
		Preload("Services.Service").
		Preload("Payment").
		Where("status = ?", string(domain.StatusCompleted)).
		Order("date DESC").
		Order("start_time DESC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormRepository) listQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Client").
		Preload("Attendant").
		Preload("Services.Service").
		Preload("Payment").
		Order("date ASC").
		Order("start_time ASC")
}

// --------------------------------------------------
// Appointment (write)
// --------------------------------------------------

// CreateAppointmentWithServices grava o agendamento, seus itens com preço
// congelado e o retorno automático opcional em uma única transação.
func (r *AppointmentGormRepository) CreateAppointmentWithServices(
	ctx context.Context,
	ap *models.Appointment,
	items []models.AppointmentService,
	returnAp *models.Appointment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Omit(clause.Associations).Create(ap).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].AppointmentID = ap.ID
		}
		if len(items) > 0 {
			if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
				return err
			}
		}

		if returnAp != nil {
			if err := tx.Omit(clause.Associations).Create(returnAp).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// UpdateAppointmentWithServices substitui integralmente os itens do
// agendamento: apaga todos os anteriores e insere a seleção nova.
func (r *AppointmentGormRepository) UpdateAppointmentWithServices(
	ctx context.Context,
	ap *models.Appointment,
	items []models.AppointmentService,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Omit(clause.Associations).Save(ap).Error; err != nil {
			return err
		}

		if err := tx.
			Where("appointment_id = ?", ap.ID).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].ID = 0
			items[i].AppointmentID = ap.ID
		}
		if len(items) > 0 {
			if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *AppointmentGormRepository) UpdateAppointment(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(ap).Error
}

// DeleteAppointmentWithServices remove os itens antes do agendamento,
// na mesma transação, para não deixar item órfão.
func (r *AppointmentGormRepository) DeleteAppointmentWithServices(
	ctx context.Context,
	id uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.
			Where("appointment_id = ?", id).
			Delete(&models.AppointmentService{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Appointment{}, id).Error
	})
}

// CompleteWithPayment conclui o atendimento e registra o pagamento juntos.
func (r *AppointmentGormRepository) CompleteWithPayment(
	ctx context.Context,
	ap *models.Appointment,
	payment *models.Payment,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Omit(clause.Associations).Save(ap).Error; err != nil {
			return err
		}

		return tx.Create(payment).Error
	})
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
