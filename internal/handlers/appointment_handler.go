package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/salonflowpro/salon-api/internal/cache"
	domain "github.com/salonflowpro/salon-api/internal/domain/appointment"
	"github.com/salonflowpro/salon-api/internal/httperr"
	"github.com/salonflowpro/salon-api/internal/httpresp"
	"github.com/salonflowpro/salon-api/internal/models"
	ucAppointment "github.com/salonflowpro/salon-api/internal/usecase/appointment"
)

// As escritas invalidam a coleção inteira; as leituras repopulam sob demanda.
const appointmentsCollection = "appointments"

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC   *ucAppointment.CreateAppointment
	updateUC   *ucAppointment.UpdateAppointment
	statusUC   *ucAppointment.ChangeStatus
	completeUC *ucAppointment.CompleteAppointment
	deleteUC   *ucAppointment.DeleteAppointment
	listUC     *ucAppointment.ListAppointments

	cache *cache.Cache
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	statusUC *ucAppointment.ChangeStatus,
	completeUC *ucAppointment.CompleteAppointment,
	deleteUC *ucAppointment.DeleteAppointment,
	listUC *ucAppointment.ListAppointments,
	c *cache.Cache,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:   createUC,
		updateUC:   updateUC,
		statusUC:   statusUC,
		completeUC: completeUC,
		deleteUC:   deleteUC,
		listUC:     listUC,
		cache:      c,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type AppointmentRequest struct {
	ClientID    uint    `json:"client_id" binding:"required"`
	AttendantID uint    `json:"attendant_id" binding:"required"`
	Date        string  `json:"date" binding:"required"`
	StartTime   string  `json:"start_time" binding:"required"`
	Notes       string  `json:"notes"`
	ServiceIDs  []uint  `json:"service_ids" binding:"required,min=1"`
	TotalPrice  float64 `json:"total_price"`
	ReturnDays  *int    `json:"return_days"`
}

type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CompleteAppointmentRequest struct {
	Method string `json:"method" binding:"required"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.createUC.Execute(c.Request.Context(), ucAppointment.CreateAppointmentInput{
		ClientID:    req.ClientID,
		AttendantID: req.AttendantID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		Notes:       req.Notes,
		ServiceIDs:  req.ServiceIDs,
		TotalPrice:  req.TotalPrice,
		ReturnDays:  req.ReturnDays,
		UserID:      currentUserID(c),
	})
	if err != nil {
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Não foi possível criar o agendamento.")
			return
		}
		httperr.Internal(c, "failed_to_create_appointment", "Erro ao criar agendamento.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), appointmentsCollection)

	c.JSON(201, ap)
}

// ======================================================
// UPDATE
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req AppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.updateUC.Execute(c.Request.Context(), ucAppointment.UpdateAppointmentInput{
		ID:          uint(id),
		ClientID:    req.ClientID,
		AttendantID: req.AttendantID,
		Date:        req.Date,
		StartTime:   req.StartTime,
		Notes:       req.Notes,
		ServiceIDs:  req.ServiceIDs,
		TotalPrice:  req.TotalPrice,
		ReturnDays:  req.ReturnDays,
		UserID:      currentUserID(c),
	})
	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Não foi possível atualizar o agendamento.")
			return
		}
		httperr.Internal(c, "failed_to_update_appointment", "Erro ao atualizar agendamento.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), appointmentsCollection)

	c.JSON(200, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) ChangeStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.statusUC.Execute(
		c.Request.Context(),
		uint(id),
		domain.Status(req.Status),
		currentUserID(c),
	)
	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Transição de status não permitida.")
			return
		}
		httperr.Internal(c, "failed_to_update_status", "Erro ao atualizar status.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), appointmentsCollection)

	c.JSON(200, ap)
}

// ======================================================
// COMPLETE + PAYMENT
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	var req CompleteAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	out, err := h.completeUC.Execute(c.Request.Context(), ucAppointment.CompleteAppointmentInput{
		AppointmentID: uint(id),
		Method:        domain.PaymentMethod(req.Method),
		UserID:        currentUserID(c),
	})
	if err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
		if code, ok := httperr.BusinessCode(err); ok {
			httperr.BadRequest(c, code, "Não foi possível concluir o atendimento.")
			return
		}
		httperr.Internal(c, "failed_to_complete_appointment", "Erro ao concluir atendimento.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), appointmentsCollection, "payments")

	c.JSON(200, out)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), uint(id), currentUserID(c)); err != nil {
		if httperr.IsBusiness(err, "appointment_not_found") {
			httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_delete_appointment", "Erro ao excluir agendamento.")
		return
	}

	h.cache.Invalidate(c.Request.Context(), appointmentsCollection)

	c.Status(204)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	date := c.Query("date")
	startDate := c.Query("start")
	endDate := c.Query("end")

	switch {
	case date != "":
		cacheKey := "date:" + date

		var cached []models.Appointment
		if h.cache.Get(ctx, appointmentsCollection, cacheKey, &cached) {
			httpresp.List(c, cached)
			return
		}

		aps, err := h.listUC.ByDate(ctx, date)
		if err != nil {
			h.writeListError(c, err)
			return
		}

		h.cache.Set(ctx, appointmentsCollection, cacheKey, aps)
		httpresp.List(c, aps)

	case startDate != "" && endDate != "":
		cacheKey := "range:" + startDate + ":" + endDate

		var cached []models.Appointment
		if h.cache.Get(ctx, appointmentsCollection, cacheKey, &cached) {
			httpresp.List(c, cached)
			return
		}

		aps, err := h.listUC.ByRange(ctx, startDate, endDate)
		if err != nil {
			h.writeListError(c, err)
			return
		}

		h.cache.Set(ctx, appointmentsCollection, cacheKey, aps)
		httpresp.List(c, aps)

	default:
		httperr.BadRequest(c, "missing_date", "Informe date ou start e end.")
	}
}

func (h *AppointmentHandler) History(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []models.Appointment
	if h.cache.Get(ctx, appointmentsCollection, "history", &cached) {
		httpresp.List(c, cached)
		return
	}

	aps, err := h.listUC.History(ctx)
	if err != nil {
		httperr.Internal(c, "failed_to_list_history", "Erro ao listar histórico.")
		return
	}

	h.cache.Set(ctx, appointmentsCollection, "history", aps)
	httpresp.List(c, aps)
}

func (h *AppointmentHandler) writeListError(c *gin.Context, err error) {
	if code, ok := httperr.BusinessCode(err); ok {
		httperr.BadRequest(c, code, "Parâmetros inválidos.")
		return
	}
	httperr.Internal(c, "failed_to_list_appointments", "Erro ao listar agendamentos.")
}
