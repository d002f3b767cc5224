package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/salonflowpro/salon-api/internal/audit"
	"github.com/salonflowpro/salon-api/internal/cache"
	"github.com/salonflowpro/salon-api/internal/config"
	"github.com/salonflowpro/salon-api/internal/handlers"
	infraRepo "github.com/salonflowpro/salon-api/internal/infra/repository"
	"github.com/salonflowpro/salon-api/internal/middleware"
	"github.com/salonflowpro/salon-api/internal/storage"
	ucAppointment "github.com/salonflowpro/salon-api/internal/usecase/appointment"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	cfg *config.Config,
	appCache *cache.Cache,
	log *zerolog.Logger,
) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.MetricsMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger, log)

	avatarStorage := storage.NewAvatarStorage(cfg)

	// ======================================================
	// USE CASES — APPOINTMENTS
	// ======================================================
	createAppointmentUC := ucAppointment.NewCreateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	updateAppointmentUC := ucAppointment.NewUpdateAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	changeStatusUC := ucAppointment.NewChangeStatus(
		appointmentRepo,
		auditDispatcher,
		cfg.Timezone,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
		cfg.Timezone,
		cfg.PublicBaseURL,
	)

	deleteAppointmentUC := ucAppointment.NewDeleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	listAppointmentsUC := ucAppointment.NewListAppointments(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db, avatarStorage)

	clientHandler := handlers.NewClientHandler(db, appCache, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, appCache, auditDispatcher)
	attendantHandler := handlers.NewAttendantHandler(db, appCache, auditDispatcher)
	materialHandler := handlers.NewMaterialHandler(db, appCache, auditDispatcher)

	appointmentHandler := handlers.NewAppointmentHandler(
		createAppointmentUC,
		updateAppointmentUC,
		changeStatusUC,
		completeAppointmentUC,
		deleteAppointmentUC,
		listAppointmentsUC,
		appCache,
	)

	dashboardHandler := handlers.NewDashboardHandler(db, cfg.Timezone)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)
	publicHandler := handlers.NewPublicHandler(appointmentRepo, appCache)

	// ======================================================
	// ROTAS PÚBLICAS
	// ======================================================
	r.GET("/.well-known/assetlinks.json", publicHandler.Assetlinks)
	r.GET("/comprovante/:id", publicHandler.Receipt)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// API PRIVADA
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)
			secured.POST("/me/avatar", meHandler.UploadAvatar)

			secured.GET("/clients", clientHandler.List)
			secured.POST("/clients", clientHandler.Create)
			secured.PATCH("/clients/:id", clientHandler.Update)
			secured.DELETE("/clients/:id", clientHandler.Delete)

			secured.GET("/services", serviceHandler.List)
			secured.POST("/services", serviceHandler.Create)
			secured.PATCH("/services/:id", serviceHandler.Update)
			secured.DELETE("/services/:id", serviceHandler.Delete)

			secured.GET("/attendants", attendantHandler.List)
			secured.POST("/attendants", attendantHandler.Create)
			secured.PATCH("/attendants/:id", attendantHandler.Update)
			secured.DELETE("/attendants/:id", attendantHandler.Delete)

			secured.GET("/materials", materialHandler.List)
			secured.POST("/materials", materialHandler.Create)
			secured.PATCH("/materials/:id", materialHandler.Update)
			secured.DELETE("/materials/:id", materialHandler.Delete)

			// ------------------------------
			// APPOINTMENTS
			// ------------------------------
			secured.POST("/appointments", appointmentHandler.Create)
			secured.GET("/appointments", appointmentHandler.List)
			secured.GET("/appointments/history", appointmentHandler.History)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.PATCH("/appointments/:id/status", appointmentHandler.ChangeStatus)
			secured.PATCH("/appointments/:id/complete", appointmentHandler.Complete)
			secured.DELETE("/appointments/:id", appointmentHandler.Delete)

			secured.GET("/dashboard/stats", dashboardHandler.Stats)

			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
