package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	domain "github.com/salonflowpro/salon-api/internal/domain/appointment"
	"github.com/salonflowpro/salon-api/internal/httperr"
	"github.com/salonflowpro/salon-api/internal/models"
	"github.com/salonflowpro/salon-api/internal/timezone"
)

type DashboardHandler struct {
	db *gorm.DB
	tz string
}

func NewDashboardHandler(db *gorm.DB, tz string) *DashboardHandler {
	return &DashboardHandler{db: db, tz: tz}
}

type revenuePoint struct {
	Weekday string  `json:"weekday"`
	Total   float64 `json:"total"`
}

var weekdayLabels = [7]string{"Dom", "Seg", "Ter", "Qua", "Qui", "Sex", "Sáb"}

// Stats monta os números do painel: atendimentos de hoje, totais de
// cadastro, faturamento do mês e a série dos últimos 7 dias.
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	now := timezone.NowIn(h.tz)
	today := now.Format(domain.DateLayout)

	var todayCount int64
	if err := h.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("date = ?", today).
		Count(&todayCount).Error; err != nil {

		httperr.Internal(c, "failed_to_load_stats", "Erro ao carregar painel.")
		return
	}

	var clientCount int64
	h.db.WithContext(ctx).Model(&models.Client{}).Where("active = ?", true).Count(&clientCount)

	var serviceCount int64
	h.db.WithContext(ctx).Model(&models.Service{}).Where("active = ?", true).Count(&serviceCount)

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var monthRevenue float64
	h.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("created_at >= ?", firstOfMonth).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&monthRevenue)

	weekAgo := now.AddDate(0, 0, -7)

	var weekPayments []models.Payment
	h.db.WithContext(ctx).
		Where("created_at >= ?", weekAgo).
		Find(&weekPayments)

	byWeekday := make(map[int]float64, 7)
	for _, p := range weekPayments {
		byWeekday[int(p.CreatedAt.In(now.Location()).Weekday())] += p.Amount
	}

	series := make([]revenuePoint, 0, 7)
	for wd := 0; wd < 7; wd++ {
		series = append(series, revenuePoint{
			Weekday: weekdayLabels[wd],
			Total:   byWeekday[wd],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"appointments_today": todayCount,
		"active_clients":     clientCount,
		"active_services":    serviceCount,
		"month_revenue":      monthRevenue,
		"weekly_revenue":     series,
	})
}
