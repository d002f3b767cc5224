package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonflowpro/salon-api/internal/audit"
	"github.com/salonflowpro/salon-api/internal/cache"
	"github.com/salonflowpro/salon-api/internal/httpresp"
	"github.com/salonflowpro/salon-api/internal/models"
)

const attendantsCollection = "attendants"

type AttendantHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewAttendantHandler(db *gorm.DB, c *cache.Cache, audit *audit.Dispatcher) *AttendantHandler {
	return &AttendantHandler{db: db, cache: c, audit: audit}
}

// --------- Requests ---------

type CreateAttendantRequest struct {
	Name           string            `json:"name" binding:"required"`
	Specialty      string            `json:"specialty"`
	Phone          string            `json:"phone"`
	CommissionRate float64           `json:"commission_rate" binding:"min=0,max=100"`
	Color          string            `json:"color"`
	WorkDays       []int             `json:"work_days"`
	WorkHours      *models.WorkHours `json:"work_hours"`
}

type UpdateAttendantRequest struct {
	Name           *string           `json:"name,omitempty"`
	Specialty      *string           `json:"specialty,omitempty"`
	Phone          *string           `json:"phone,omitempty"`
	CommissionRate *float64          `json:"commission_rate,omitempty"`
	Color          *string           `json:"color,omitempty"`
	WorkDays       []int             `json:"work_days,omitempty"`
	WorkHours      *models.WorkHours `json:"work_hours,omitempty"`
	Active         *bool             `json:"active,omitempty"`
}

func validWorkDays(days []int) bool {
	for _, d := range days {
		if d < 0 || d > 6 {
			return false
		}
	}
	return true
}

// --------- Handlers ---------

func (h *AttendantHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []models.Attendant
	if h.cache.Get(ctx, attendantsCollection, "all", &cached) {
		httpresp.List(c, cached)
		return
	}

	var attendants []models.Attendant
	if err := h.db.WithContext(ctx).
		Order("name ASC").
		Find(&attendants).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_attendants"})
		return
	}

	h.cache.Set(ctx, attendantsCollection, "all", attendants)

	httpresp.List(c, attendants)
}

func (h *AttendantHandler) Create(c *gin.Context) {
	var req CreateAttendantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if !validWorkDays(req.WorkDays) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_work_days"})
		return
	}

	attendant := models.Attendant{
		Name:           req.Name,
		Specialty:      req.Specialty,
		Phone:          req.Phone,
		CommissionRate: req.CommissionRate,
		WorkDays:       req.WorkDays,
		WorkHours:      req.WorkHours,
		Active:         true,
	}
	if req.Color != "" {
		attendant.Color = req.Color
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&attendant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_attendant"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), attendantsCollection)
	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "attendant_created",
		Entity:   "attendant",
		EntityID: &attendant.ID,
	})

	c.JSON(http.StatusCreated, attendant)
}

func (h *AttendantHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var attendant models.Attendant
	if err := h.db.WithContext(c.Request.Context()).First(&attendant, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "attendant_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_attendant"})
		return
	}

	var req UpdateAttendantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		attendant.Name = *req.Name
	}
	if req.Specialty != nil {
		attendant.Specialty = *req.Specialty
	}
	if req.Phone != nil {
		attendant.Phone = *req.Phone
	}
	if req.CommissionRate != nil && *req.CommissionRate >= 0 && *req.CommissionRate <= 100 {
		attendant.CommissionRate = *req.CommissionRate
	}
	if req.Color != nil {
		attendant.Color = *req.Color
	}
	if req.WorkDays != nil {
		if !validWorkDays(req.WorkDays) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_work_days"})
			return
		}
		attendant.WorkDays = req.WorkDays
	}
	if req.WorkHours != nil {
		attendant.WorkHours = req.WorkHours
	}
	if req.Active != nil {
		attendant.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&attendant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_attendant"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), attendantsCollection)
	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "attendant_updated",
		Entity:   "attendant",
		EntityID: &attendant.ID,
	})

	c.JSON(http.StatusOK, attendant)
}

func (h *AttendantHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var attendant models.Attendant
	if err := h.db.WithContext(c.Request.Context()).First(&attendant, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "attendant_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_attendant"})
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&attendant).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_attendant"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), attendantsCollection)
	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "attendant_deleted",
		Entity:   "attendant",
		EntityID: &attendant.ID,
	})

	c.Status(http.StatusNoContent)
}
