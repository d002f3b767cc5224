package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/salonflowpro/salon-api/internal/cache"
	domainAppointment "github.com/salonflowpro/salon-api/internal/domain/appointment"
	"github.com/salonflowpro/salon-api/internal/dto"
	"github.com/salonflowpro/salon-api/internal/httperr"
	"github.com/salonflowpro/salon-api/internal/models"
)

// PublicHandler serve a superfície sem autenticação: o comprovante
// do atendimento e a declaração de associação do app Android.
type PublicHandler struct {
	repo  domainAppointment.Repository
	cache *cache.Cache

	assetlinks []gin.H
}

func NewPublicHandler(repo domainAppointment.Repository, c *cache.Cache) *PublicHandler {
	return &PublicHandler{
		repo:  repo,
		cache: c,
		assetlinks: []gin.H{
			{
				"relation": []string{"delegate_permission/common.handle_all_urls"},
				"target": gin.H{
					"namespace":    "android_app",
					"package_name": "app.vercel.salonflow_pro_three.twa",
					"sha256_cert_fingerprints": []string{
						"15:17:8B:D9:B9:30:AC:14:4F:93:5E:37:58:67:2B:14:62:A6:CE:D5:A1:E5:56:AE:04:CD:48:99:BD:E4:E9:60",
					},
				},
			},
		},
	}
}

// Receipt monta o comprovante público a partir de uma única leitura
// com expansão de cliente, atendente, itens e pagamento.
func (h *PublicHandler) Receipt(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Identificador inválido.")
		return
	}

	ctx := c.Request.Context()
	cacheKey := "receipt:" + c.Param("id")

	var cached dto.ReceiptDTO
	if h.cache.Get(ctx, appointmentsCollection, cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	ap, err := h.repo.GetAppointmentByID(ctx, uint(id))
	if err != nil {
		httperr.NotFound(c, "receipt_not_found", "Comprovante não encontrado.")
		return
	}

	receipt := buildReceipt(ap)

	h.cache.Set(ctx, appointmentsCollection, cacheKey, receipt)

	c.JSON(http.StatusOK, receipt)
}

func buildReceipt(ap *models.Appointment) dto.ReceiptDTO {
	items := make([]dto.ReceiptItemDTO, 0, len(ap.Services))
	for _, item := range ap.Services {
		items = append(items, dto.ReceiptItemDTO{
			ServiceName: item.Service.Name,
			Price:       item.Price,
		})
	}

	receipt := dto.ReceiptDTO{
		AppointmentID: ap.ID,
		ClientName:    ap.Client.Name,
		AttendantName: ap.Attendant.Name,
		Date:          ap.Date,
		StartTime:     ap.StartTime,
		Status:        ap.Status,
		Items:         items,
		TotalPrice:    ap.TotalPrice,
	}

	if ap.Payment != nil {
		receipt.Payment = &dto.ReceiptPaymentDTO{
			Method:        ap.Payment.Method,
			Amount:        ap.Payment.Amount,
			ReceiptNumber: ap.Payment.ReceiptNumber,
			PaidAt:        ap.Payment.CreatedAt,
		}
	}

	return receipt
}

// Assetlinks delega para o wrapper TWA Android a abertura das URLs do app.
func (h *PublicHandler) Assetlinks(c *gin.Context) {
	c.JSON(http.StatusOK, h.assetlinks)
}
