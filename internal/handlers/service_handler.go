package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/salonflowpro/salon-api/internal/audit"
	"github.com/salonflowpro/salon-api/internal/cache"
	"github.com/salonflowpro/salon-api/internal/httpresp"
	"github.com/salonflowpro/salon-api/internal/models"
)

const servicesCollection = "services"

type ServiceHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, c *cache.Cache, audit *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, cache: c, audit: audit}
}

// --------- Requests ---------

type CreateServiceRequest struct {
	Name            string  `json:"name" binding:"required"`
	Description     string  `json:"description"`
	Price           float64 `json:"price" binding:"min=0"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=5"`
	Category        string  `json:"category"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name,omitempty"`
	Description     *string  `json:"description,omitempty"`
	Price           *float64 `json:"price,omitempty"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	Category        *string  `json:"category,omitempty"`
	Active          *bool    `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	category := strings.ToLower(strings.TrimSpace(c.Query("category")))
	activeStr := strings.TrimSpace(c.Query("active"))
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	cacheKey := "category:" + category + ":active:" + activeStr + ":query:" + query

	var cached []models.Service
	if h.cache.Get(ctx, servicesCollection, cacheKey, &cached) {
		httpresp.List(c, cached)
		return
	}

	q := h.db.WithContext(ctx).Model(&models.Service{})

	if category != "" {
		q = q.Where("LOWER(category) = ?", category)
	}

	if activeStr == "true" {
		q = q.Where("active = ?", true)
	} else if activeStr == "false" {
		q = q.Where("active = ?", false)
	}

	if query != "" {
		like := "%" + query + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var services []models.Service
	if err := q.Order("name ASC").Find(&services).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_services"})
		return
	}

	h.cache.Set(ctx, servicesCollection, cacheKey, services)

	httpresp.List(c, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req CreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	service := models.Service{
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Category:        strings.ToLower(req.Category),
		Active:          true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_service"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), servicesCollection)
	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "service_created",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusCreated, service)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	var req UpdateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Price != nil && *req.Price >= 0 {
		service.Price = *req.Price
	}
	if req.DurationMinutes != nil && *req.DurationMinutes >= 5 {
		service.DurationMinutes = *req.DurationMinutes
	}
	if req.Category != nil {
		service.Category = strings.ToLower(*req.Category)
	}
	if req.Active != nil {
		service.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_service"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), servicesCollection)
	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "service_updated",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusOK, service)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var service models.Service
	if err := h.db.WithContext(c.Request.Context()).First(&service, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_service"})
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&service).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_service"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), servicesCollection)
	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "service_deleted",
		Entity:   "service",
		EntityID: &service.ID,
	})

	c.Status(http.StatusNoContent)
}
