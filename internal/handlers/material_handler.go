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

const materialsCollection = "materials"

type MaterialHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewMaterialHandler(db *gorm.DB, c *cache.Cache, audit *audit.Dispatcher) *MaterialHandler {
	return &MaterialHandler{db: db, cache: c, audit: audit}
}

// --------- Requests ---------

type CreateMaterialRequest struct {
	Name            string  `json:"name" binding:"required"`
	Cost            float64 `json:"cost" binding:"min=0"`
	CurrentQuantity float64 `json:"current_quantity" binding:"min=0"`
	MinQuantity     float64 `json:"min_quantity" binding:"min=0"`
	Supplier        string  `json:"supplier"`
}

type UpdateMaterialRequest struct {
	Name            *string  `json:"name,omitempty"`
	Cost            *float64 `json:"cost,omitempty"`
	CurrentQuantity *float64 `json:"current_quantity,omitempty"`
	MinQuantity     *float64 `json:"min_quantity,omitempty"`
	Supplier        *string  `json:"supplier,omitempty"`
}

// --------- Handlers ---------

func (h *MaterialHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []models.Material
	if h.cache.Get(ctx, materialsCollection, "all", &cached) {
		httpresp.List(c, cached)
		return
	}

	var materials []models.Material
	if err := h.db.WithContext(ctx).
		Order("name ASC").
		Find(&materials).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_materials"})
		return
	}

	h.cache.Set(ctx, materialsCollection, "all", materials)

	httpresp.List(c, materials)
}

func (h *MaterialHandler) Create(c *gin.Context) {
	var req CreateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	material := models.Material{
		Name:            req.Name,
		Cost:            req.Cost,
		CurrentQuantity: req.CurrentQuantity,
		MinQuantity:     req.MinQuantity,
		Supplier:        req.Supplier,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_material"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), materialsCollection)
	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "material_created",
		Entity:   "material",
		EntityID: &material.ID,
	})

	c.JSON(http.StatusCreated, material)
}

func (h *MaterialHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var material models.Material
	if err := h.db.WithContext(c.Request.Context()).First(&material, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "material_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_material"})
		return
	}

	var req UpdateMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		material.Name = *req.Name
	}
	if req.Cost != nil && *req.Cost >= 0 {
		material.Cost = *req.Cost
	}
	if req.CurrentQuantity != nil && *req.CurrentQuantity >= 0 {
		material.CurrentQuantity = *req.CurrentQuantity
	}
	if req.MinQuantity != nil && *req.MinQuantity >= 0 {
		material.MinQuantity = *req.MinQuantity
	}
	if req.Supplier != nil {
		material.Supplier = *req.Supplier
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_material"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), materialsCollection)
	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "material_updated",
		Entity:   "material",
		EntityID: &material.ID,
	})

	c.JSON(http.StatusOK, material)
}

func (h *MaterialHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var material models.Material
	if err := h.db.WithContext(c.Request.Context()).First(&material, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "material_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_material"})
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&material).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_material"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), materialsCollection)
	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "material_deleted",
		Entity:   "material",
		EntityID: &material.ID,
	})

	c.Status(http.StatusNoContent)
}
