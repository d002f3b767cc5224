package appointment

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/salonflowpro/salon-api/internal/audit"
	dbpkg "github.com/salonflowpro/salon-api/internal/db"
	domain "github.com/salonflowpro/salon-api/internal/domain/appointment"
	"github.com/salonflowpro/salon-api/internal/httperr"
	infraRepo "github.com/salonflowpro/salon-api/internal/infra/repository"
	"github.com/salonflowpro/salon-api/internal/models"
)

// ======================================================
// HELPERS
// ======================================================

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))
	return db
}

type fixture struct {
	db       *gorm.DB
	repo     domain.Repository
	audit    *audit.Dispatcher
	client   models.Client
	attend   models.Attendant
	corte    models.Service
	escova   models.Service
	createUC *CreateAppointment
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	db := setupTestDB(t)
	repo := infraRepo.NewAppointmentGormRepository(db)

	log := zerolog.Nop()
	dispatcher := audit.NewDispatcher(audit.New(db), &log)

	f := &fixture{
		db:     db,
		repo:   repo,
		audit:  dispatcher,
		client: models.Client{Name: "Maria Silva", Phone: "11988887777", Active: true},
		attend: models.Attendant{Name: "Joana", CommissionRate: 20, Active: true},
		corte:  models.Service{Name: "Corte", Price: 10, DurationMinutes: 30, Active: true},
		escova: models.Service{Name: "Escova", Price: 20, DurationMinutes: 40, Active: true},
	}

	require.NoError(t, db.Create(&f.client).Error)
	require.NoError(t, db.Create(&f.attend).Error)
	require.NoError(t, db.Create(&f.corte).Error)
	require.NoError(t, db.Create(&f.escova).Error)

	f.createUC = NewCreateAppointment(repo, dispatcher)
	return f
}

func (f *fixture) createInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		ClientID:    f.client.ID,
		AttendantID: f.attend.ID,
		Date:        "2024-01-01",
		StartTime:   "09:00",
		ServiceIDs:  []uint{f.corte.ID, f.escova.ID},
		TotalPrice:  30,
	}
}

// ======================================================
// CREATE
// ======================================================

func TestCreateSnapshotsServicePrices(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	ap, err := f.createUC.Execute(ctx, f.createInput())
	require.NoError(t, err)
	require.NotZero(t, ap.ID)

	// mudança posterior de tabela não pode tocar o histórico
	require.NoError(t, f.db.Model(&models.Service{}).
		Where("id = ?", f.corte.ID).
		Update("price", 50).Error)

	stored, err := f.repo.GetAppointmentByID(ctx, ap.ID)
	require.NoError(t, err)

	assert.Equal(t, 30.0, stored.TotalPrice)
	require.Len(t, stored.Services, 2)

	byService := map[uint]float64{}
	for _, item := range stored.Services {
		byService[item.ServiceID] = item.Price
	}
	assert.Equal(t, 10.0, byService[f.corte.ID])
	assert.Equal(t, 20.0, byService[f.escova.ID])
}

func TestCreateWithReturnSchedulesFollowUp(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	in := f.createInput()
	days := 15
	in.ReturnDays = &days

	ap, err := f.createUC.Execute(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, ap.ReturnDate)
	assert.Equal(t, "2024-01-16", *ap.ReturnDate)

	var all []models.Appointment
	require.NoError(t, f.db.Order("id ASC").Find(&all).Error)
	require.Len(t, all, 2)

	followUp := all[1]
	assert.Equal(t, "2024-01-16", followUp.Date)
	assert.Equal(t, "09:00", followUp.StartTime)
	assert.Equal(t, string(domain.StatusScheduled), followUp.Status)
	assert.Equal(t, "Retorno automático de 15 dias", followUp.Notes)
	assert.Equal(t, 30.0, followUp.TotalPrice)
	assert.Nil(t, followUp.ReturnDate)

	// retorno não carrega itens
	var itemCount int64
	f.db.Model(&models.AppointmentService{}).
		Where("appointment_id = ?", followUp.ID).
		Count(&itemCount)
	assert.Zero(t, itemCount)
}

func TestCreateWithoutReturnCreatesSingleRow(t *testing.T) {
	f := setupFixture(t)

	_, err := f.createUC.Execute(context.Background(), f.createInput())
	require.NoError(t, err)

	var count int64
	f.db.Model(&models.Appointment{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateUnknownServiceSnapshotsZero(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	in := f.createInput()
	in.ServiceIDs = []uint{f.corte.ID, 999}

	ap, err := f.createUC.Execute(ctx, in)
	require.NoError(t, err)

	stored, err := f.repo.GetAppointmentByID(ctx, ap.ID)
	require.NoError(t, err)
	require.Len(t, stored.Services, 2)

	byService := map[uint]float64{}
	for _, item := range stored.Services {
		byService[item.ServiceID] = item.Price
	}
	assert.Equal(t, 10.0, byService[f.corte.ID])
	assert.Equal(t, 0.0, byService[999])
}

func TestCreateValidation(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	in := f.createInput()
	in.ServiceIDs = nil
	_, err := f.createUC.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "no_services_selected"))

	in = f.createInput()
	in.ClientID = 0
	_, err = f.createUC.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "missing_required_fields"))

	in = f.createInput()
	days := 10
	in.ReturnDays = &days
	_, err = f.createUC.Execute(ctx, in)
	assert.True(t, httperr.IsBusiness(err, "invalid_return_interval"))

	var count int64
	f.db.Model(&models.Appointment{}).Count(&count)
	assert.Zero(t, count)
}

// ======================================================
// UPDATE
// ======================================================

func TestUpdateReplacesLineItems(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	ap, err := f.createUC.Execute(ctx, f.createInput())
	require.NoError(t, err)

	updateUC := NewUpdateAppointment(f.repo, f.audit)

	updated, err := updateUC.Execute(ctx, UpdateAppointmentInput{
		ID:          ap.ID,
		ClientID:    f.client.ID,
		AttendantID: f.attend.ID,
		Date:        "2024-01-02",
		StartTime:   "10:30",
		ServiceIDs:  []uint{f.escova.ID},
		TotalPrice:  20,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-02", updated.Date)
	assert.Equal(t, 20.0, updated.TotalPrice)

	var items []models.AppointmentService
	require.NoError(t, f.db.Where("appointment_id = ?", ap.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, f.escova.ID, items[0].ServiceID)
	assert.Equal(t, 20.0, items[0].Price)

	// nenhum item órfão sobra na tabela
	var total int64
	f.db.Model(&models.AppointmentService{}).Count(&total)
	assert.Equal(t, int64(1), total)
}

func TestUpdateDoesNotScheduleReturn(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	ap, err := f.createUC.Execute(ctx, f.createInput())
	require.NoError(t, err)

	updateUC := NewUpdateAppointment(f.repo, f.audit)

	days := 7
	updated, err := updateUC.Execute(ctx, UpdateAppointmentInput{
		ID:          ap.ID,
		ClientID:    f.client.ID,
		AttendantID: f.attend.ID,
		Date:        "2024-01-01",
		StartTime:   "09:00",
		ServiceIDs:  []uint{f.corte.ID},
		TotalPrice:  10,
		ReturnDays:  &days,
	})
	require.NoError(t, err)
	require.NotNil(t, updated.ReturnDate)
	assert.Equal(t, "2024-01-08", *updated.ReturnDate)

	// a edição grava o return_date mas nunca cria o segundo agendamento
	var count int64
	f.db.Model(&models.Appointment{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

// ======================================================
// STATUS
// ======================================================

func TestChangeStatusEnforcesOrder(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	ap, err := f.createUC.Execute(ctx, f.createInput())
	require.NoError(t, err)

	statusUC := NewChangeStatus(f.repo, f.audit, "America/Sao_Paulo")

	moved, err := statusUC.Execute(ctx, ap.ID, domain.StatusInProgress, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusInProgress), moved.Status)

	moved, err = statusUC.Execute(ctx, ap.ID, domain.StatusCompleted, nil)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCompleted), moved.Status)

	// concluído não volta para a agenda
	_, err = statusUC.Execute(ctx, ap.ID, domain.StatusScheduled, nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))

	_, err = statusUC.Execute(ctx, ap.ID, domain.Status("unknown"), nil)
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

// ======================================================
// COMPLETE + PAYMENT
// ======================================================

func TestCompleteRecordsPaymentWithCommission(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	in := f.createInput()
	in.TotalPrice = 100
	ap, err := f.createUC.Execute(ctx, in)
	require.NoError(t, err)

	completeUC := NewCompleteAppointment(
		f.repo, f.audit, "America/Sao_Paulo", "https://salon.example.com",
	)

	out, err := completeUC.Execute(ctx, CompleteAppointmentInput{
		AppointmentID: ap.ID,
		Method:        domain.MethodPix,
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusCompleted), out.Appointment.Status)

	require.NotNil(t, out.Payment)
	assert.Equal(t, 100.0, out.Payment.Amount)
	assert.Equal(t, "pix", out.Payment.Method)
	assert.Equal(t, 20.0, out.Payment.CommissionAmount)
	assert.NotEmpty(t, out.Payment.ReceiptNumber)

	assert.Contains(t, out.ReceiptURL, "/comprovante/")
	assert.True(t, strings.HasPrefix(out.WhatsAppLink, "https://wa.me/5511988887777?text="))

	var stored models.Payment
	require.NoError(t, f.db.Where("appointment_id = ?", ap.ID).First(&stored).Error)
	assert.Equal(t, 20.0, stored.CommissionAmount)
}

func TestCompleteRejectsInvalidMethodAndDoublePay(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	ap, err := f.createUC.Execute(ctx, f.createInput())
	require.NoError(t, err)

	completeUC := NewCompleteAppointment(
		f.repo, f.audit, "America/Sao_Paulo", "https://salon.example.com",
	)

	_, err = completeUC.Execute(ctx, CompleteAppointmentInput{
		AppointmentID: ap.ID,
		Method:        domain.PaymentMethod("check"),
	})
	assert.True(t, httperr.IsBusiness(err, "invalid_payment_method"))

	_, err = completeUC.Execute(ctx, CompleteAppointmentInput{
		AppointmentID: ap.ID,
		Method:        domain.MethodCash,
	})
	require.NoError(t, err)

	_, err = completeUC.Execute(ctx, CompleteAppointmentInput{
		AppointmentID: ap.ID,
		Method:        domain.MethodCash,
	})
	assert.Error(t, err)

	var count int64
	f.db.Model(&models.Payment{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCompleteWithoutPhoneOmitsWhatsAppLink(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	require.NoError(t, f.db.Model(&models.Client{}).
		Where("id = ?", f.client.ID).
		Update("phone", "").Error)

	ap, err := f.createUC.Execute(ctx, f.createInput())
	require.NoError(t, err)

	completeUC := NewCompleteAppointment(
		f.repo, f.audit, "America/Sao_Paulo", "https://salon.example.com",
	)

	out, err := completeUC.Execute(ctx, CompleteAppointmentInput{
		AppointmentID: ap.ID,
		Method:        domain.MethodDebit,
	})
	require.NoError(t, err)
	assert.Empty(t, out.WhatsAppLink)
}

// ======================================================
// DELETE
// ======================================================

func TestDeleteRemovesLineItems(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	ap, err := f.createUC.Execute(ctx, f.createInput())
	require.NoError(t, err)

	deleteUC := NewDeleteAppointment(f.repo, f.audit)
	require.NoError(t, deleteUC.Execute(ctx, ap.ID, nil))

	var apCount, itemCount int64
	f.db.Model(&models.Appointment{}).Count(&apCount)
	f.db.Model(&models.AppointmentService{}).Count(&itemCount)
	assert.Zero(t, apCount)
	assert.Zero(t, itemCount)

	err = deleteUC.Execute(ctx, ap.ID, nil)
	assert.True(t, httperr.IsBusiness(err, "appointment_not_found"))
}

// ======================================================
// LIST
// ======================================================

func TestListByDateAndRange(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	for _, d := range []string{"2024-01-01", "2024-01-03", "2024-01-05"} {
		in := f.createInput()
		in.Date = d
		_, err := f.createUC.Execute(ctx, in)
		require.NoError(t, err)
	}

	listUC := NewListAppointments(f.repo)

	byDate, err := listUC.ByDate(ctx, "2024-01-03")
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, "2024-01-03", byDate[0].Date)
	assert.Equal(t, f.client.Name, byDate[0].Client.Name)

	byRange, err := listUC.ByRange(ctx, "2024-01-01", "2024-01-03")
	require.NoError(t, err)
	assert.Len(t, byRange, 2)

	_, err = listUC.ByDate(ctx, "03/01/2024")
	assert.True(t, httperr.IsBusiness(err, "invalid_date"))

	_, err = listUC.ByRange(ctx, "2024-01-05", "2024-01-01")
	assert.True(t, httperr.IsBusiness(err, "invalid_range"))
}

func TestHistoryListsOnlyCompleted(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	first, err := f.createUC.Execute(ctx, f.createInput())
	require.NoError(t, err)

	in := f.createInput()
	in.Date = "2024-01-02"
	_, err = f.createUC.Execute(ctx, in)
	require.NoError(t, err)

	completeUC := NewCompleteAppointment(
		f.repo, f.audit, "America/Sao_Paulo", "https://salon.example.com",
	)
	_, err = completeUC.Execute(ctx, CompleteAppointmentInput{
		AppointmentID: first.ID,
		Method:        domain.MethodPix,
	})
	require.NoError(t, err)

	listUC := NewListAppointments(f.repo)

	history, err := listUC.History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, first.ID, history[0].ID)
	require.NotNil(t, history[0].Payment)
	assert.Equal(t, "pix", history[0].Payment.Method)
}
