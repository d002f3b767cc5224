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

const clientsCollection = "clients"

type ClientHandler struct {
	db    *gorm.DB
	cache *cache.Cache
	audit *audit.Dispatcher
}

func NewClientHandler(db *gorm.DB, c *cache.Cache, audit *audit.Dispatcher) *ClientHandler {
	return &ClientHandler{db: db, cache: c, audit: audit}
}

// --------- Requests ---------

type CreateClientRequest struct {
	Name      string `json:"name" binding:"required"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	CpfCnpj   string `json:"cpf_cnpj"`
	BirthDate string `json:"birth_date"`
	Address   string `json:"address"`
	Notes     string `json:"notes"`
}

type UpdateClientRequest struct {
	Name      *string `json:"name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty"`
	CpfCnpj   *string `json:"cpf_cnpj,omitempty"`
	BirthDate *string `json:"birth_date,omitempty"`
	Address   *string `json:"address,omitempty"`
	Notes     *string `json:"notes,omitempty"`
	Active    *bool   `json:"active,omitempty"`
}

// --------- Handlers ---------

func (h *ClientHandler) List(c *gin.Context) {
	ctx := c.Request.Context()
	query := strings.ToLower(strings.TrimSpace(c.Query("query")))

	cacheKey := "all"
	if query != "" {
		cacheKey = "query:" + query
	}

	var cached []models.Client
	if h.cache.Get(ctx, clientsCollection, cacheKey, &cached) {
		httpresp.List(c, cached)
		return
	}

	q := h.db.WithContext(ctx).Model(&models.Client{})
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var clients []models.Client
	if err := q.Order("name ASC").Find(&clients).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_clients"})
		return
	}

	h.cache.Set(ctx, clientsCollection, cacheKey, clients)

	httpresp.List(c, clients)
}

func (h *ClientHandler) Create(c *gin.Context) {
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	client := models.Client{
		Name:      req.Name,
		Phone:     req.Phone,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		CpfCnpj:   req.CpfCnpj,
		BirthDate: req.BirthDate,
		Address:   req.Address,
		Notes:     req.Notes,
		Active:    true,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_client"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), clientsCollection)
	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "client_created",
		Entity:   "client",
		EntityID: &client.ID,
	})

	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_client"})
		return
	}

	var req UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.Phone != nil {
		client.Phone = *req.Phone
	}
	if req.Email != nil {
		client.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.CpfCnpj != nil {
		client.CpfCnpj = *req.CpfCnpj
	}
	if req.BirthDate != nil {
		client.BirthDate = *req.BirthDate
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	if req.Active != nil {
		client.Active = *req.Active
	}

	if err := h.db.WithContext(c.Request.Context()).Save(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_client"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), clientsCollection)
	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "client_updated",
		Entity:   "client",
		EntityID: &client.ID,
	})

	c.JSON(http.StatusOK, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	var client models.Client
	if err := h.db.WithContext(c.Request.Context()).First(&client, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "client_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_client"})
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&client).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_delete_client"})
		return
	}

	h.cache.Invalidate(c.Request.Context(), clientsCollection)
	h.audit.Dispatch(audit.Event{
		UserID:   currentUserID(c),
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: &client.ID,
	})

	c.Status(http.StatusNoContent)
}
