package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	dbpkg "github.com/salonflowpro/salon-api/internal/db"
	"github.com/salonflowpro/salon-api/internal/dto"
	infraRepo "github.com/salonflowpro/salon-api/internal/infra/repository"
	"github.com/salonflowpro/salon-api/internal/models"
)

func setupPublicRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	h := NewPublicHandler(infraRepo.NewAppointmentGormRepository(db), nil)

	r := gin.New()
	r.GET("/comprovante/:id", h.Receipt)
	r.GET("/.well-known/assetlinks.json", h.Assetlinks)
	return r, db
}

func seedCompletedAppointment(t *testing.T, db *gorm.DB) models.Appointment {
	t.Helper()

	client := models.Client{Name: "Maria Silva", Phone: "11988887777", Active: true}
	attendant := models.Attendant{Name: "Joana", CommissionRate: 20, Active: true}
	service := models.Service{Name: "Corte", Price: 80, DurationMinutes: 30, Active: true}
	require.NoError(t, db.Create(&client).Error)
	require.NoError(t, db.Create(&attendant).Error)
	require.NoError(t, db.Create(&service).Error)

	ap := models.Appointment{
		ClientID:    client.ID,
		AttendantID: attendant.ID,
		Date:        "2024-01-01",
		StartTime:   "09:00",
		Status:      "completed",
		TotalPrice:  80,
	}
	require.NoError(t, db.Create(&ap).Error)
	require.NoError(t, db.Create(&models.AppointmentService{
		AppointmentID: ap.ID,
		ServiceID:     service.ID,
		Price:         80,
	}).Error)
	require.NoError(t, db.Create(&models.Payment{
		AppointmentID:    ap.ID,
		Amount:           80,
		Method:           "pix",
		CommissionAmount: 16,
		ReceiptNumber:    "rcpt-001",
	}).Error)

	return ap
}

func TestReceiptReturnsFullSnapshot(t *testing.T) {
	r, db := setupPublicRouter(t)
	ap := seedCompletedAppointment(t, db)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/comprovante/1", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got dto.ReceiptDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	assert.Equal(t, ap.ID, got.AppointmentID)
	assert.Equal(t, "Maria Silva", got.ClientName)
	assert.Equal(t, "Joana", got.AttendantName)
	assert.Equal(t, "2024-01-01", got.Date)
	assert.Equal(t, "completed", got.Status)
	assert.Equal(t, 80.0, got.TotalPrice)

	require.Len(t, got.Items, 1)
	assert.Equal(t, "Corte", got.Items[0].ServiceName)
	assert.Equal(t, 80.0, got.Items[0].Price)

	require.NotNil(t, got.Payment)
	assert.Equal(t, "pix", got.Payment.Method)
	assert.Equal(t, "rcpt-001", got.Payment.ReceiptNumber)
}

func TestReceiptNotFound(t *testing.T) {
	r, _ := setupPublicRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/comprovante/999", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReceiptInvalidID(t *testing.T) {
	r, _ := setupPublicRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/comprovante/abc", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAssetlinksDeclaresAndroidApp(t *testing.T) {
	r, _ := setupPublicRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/.well-known/assetlinks.json", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, 1)

	target, ok := got[0]["target"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "app.vercel.salonflow_pro_three.twa", target["package_name"])
}
