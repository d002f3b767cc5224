package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/salonflowpro/salon-api/internal/audit"
	dbpkg "github.com/salonflowpro/salon-api/internal/db"
	"github.com/salonflowpro/salon-api/internal/httpresp"
	"github.com/salonflowpro/salon-api/internal/models"
)

func setupClientRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, dbpkg.Migrate(db))

	log := zerolog.Nop()
	h := NewClientHandler(db, nil, audit.NewDispatcher(audit.New(db), &log))

	r := gin.New()
	r.GET("/clients", h.List)
	return r, db
}

func TestClientListReturnsEnvelope(t *testing.T) {
	r, db := setupClientRouter(t)

	require.NoError(t, db.Create(&models.Client{Name: "Ana", Active: true}).Error)
	require.NoError(t, db.Create(&models.Client{Name: "Bruna", Active: true}).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got httpresp.ListResponse[models.Client]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	assert.Equal(t, 2, got.Total)
	require.Len(t, got.Data, 2)
	assert.Equal(t, "Ana", got.Data[0].Name)
}

func TestClientListFiltersByQuery(t *testing.T) {
	r, db := setupClientRouter(t)

	require.NoError(t, db.Create(&models.Client{Name: "Ana Souza", Phone: "11911112222", Active: true}).Error)
	require.NoError(t, db.Create(&models.Client{Name: "Bruna Lima", Phone: "11933334444", Active: true}).Error)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/clients?query=bruna", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var got httpresp.ListResponse[models.Client]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	assert.Equal(t, 1, got.Total)
	require.Len(t, got.Data, 1)
	assert.Equal(t, "Bruna Lima", got.Data[0].Name)
}
