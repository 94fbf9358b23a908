package routes

import (
	"log"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/fisiogest/physio-scheduler/internal/audit"
	"github.com/fisiogest/physio-scheduler/internal/billing"
	"github.com/fisiogest/physio-scheduler/internal/cache"
	"github.com/fisiogest/physio-scheduler/internal/config"
	"github.com/fisiogest/physio-scheduler/internal/handlers"
	infraRepo "github.com/fisiogest/physio-scheduler/internal/infra/repository"
	"github.com/fisiogest/physio-scheduler/internal/middleware"
	"github.com/fisiogest/physio-scheduler/internal/storage"
	ucAppointment "github.com/fisiogest/physio-scheduler/internal/usecase/appointment"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	cacheClient := cache.New(cfg)
	uploader := storage.NewUploader(cfg)

	paymentLinks, err := billing.NewPaymentLinks(cfg.MercadoPagoAccessToken)
	if err != nil {
		log.Println("mercadopago deshabilitado:", err)
		paymentLinks = &billing.PaymentLinks{}
	}

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

	cancelAppointmentUC := ucAppointment.NewCancelAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	completeAppointmentUC := ucAppointment.NewCompleteAppointment(
		appointmentRepo,
		auditDispatcher,
	)

	markNoShowUC := ucAppointment.NewMarkNoShow(
		appointmentRepo,
		auditDispatcher,
	)

	checkConflictsUC := ucAppointment.NewCheckConflicts(appointmentRepo)

	dayScheduleUC := ucAppointment.NewGetDaySchedule(appointmentRepo)

	listByRangeUC := ucAppointment.NewListAppointmentsByRange(appointmentRepo)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db, uploader)
	patientHandler := handlers.NewPatientHandler(db)
	clinicalNoteHandler := handlers.NewClinicalNoteHandler(db)
	paymentHandler := handlers.NewPaymentHandler(db, cacheClient, paymentLinks)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	appointmentHandler := handlers.NewAppointmentHandler(
		appointmentRepo,
		cacheClient,
		createAppointmentUC,
		updateAppointmentUC,
		cancelAppointmentUC,
		completeAppointmentUC,
		markNoShowUC,
		checkConflictsUC,
		dayScheduleUC,
		listByRangeUC,
	)

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
			// Perfil
			secured.GET("/me", meHandler.GetMe)
			secured.PUT("/me", meHandler.UpdateMe)
			secured.POST("/me/avatar", meHandler.UploadAvatar)

			// Pacientes
			secured.GET("/patients", patientHandler.List)
			secured.POST("/patients", patientHandler.Create)
			secured.GET("/patients/:id", patientHandler.Get)
			secured.PUT("/patients/:id", patientHandler.Update)
			secured.DELETE("/patients/:id", patientHandler.Delete)

			secured.GET("/patients/:id/appointments", appointmentHandler.ListByPatient)
			secured.GET("/patients/:id/payments", paymentHandler.ListByPatient)
			secured.GET("/patients/:id/balance", paymentHandler.PatientBalance)
			secured.POST("/patients/:id/payment-link", paymentHandler.CreatePaymentLink)

			// Citas
			secured.POST("/appointments", appointmentHandler.Create)
			secured.PUT("/appointments/:id", appointmentHandler.Update)
			secured.POST("/appointments/:id/cancel", appointmentHandler.Cancel)
			secured.POST("/appointments/:id/complete", appointmentHandler.Complete)
			secured.POST("/appointments/:id/no-show", appointmentHandler.MarkNoShow)

			secured.GET("/appointments/conflicts", appointmentHandler.CheckConflicts)
			secured.GET("/appointments/day", appointmentHandler.DaySchedule)
			secured.GET("/appointments", appointmentHandler.ListByRange)

			// Notas clínicas (SOAP)
			secured.GET("/clinical-notes", clinicalNoteHandler.List)
			secured.POST("/clinical-notes", clinicalNoteHandler.Create)
			secured.GET("/clinical-notes/:id", clinicalNoteHandler.Get)
			secured.PUT("/clinical-notes/:id", clinicalNoteHandler.Update)
			secured.DELETE("/clinical-notes/:id", clinicalNoteHandler.Delete)

			// Finanzas
			secured.POST("/payments", paymentHandler.Create)
			secured.DELETE("/payments/:id", paymentHandler.Delete)
			secured.GET("/payments/stats", paymentHandler.FinancialStats)
			secured.GET("/payments/debtors", paymentHandler.PatientsWithBalance)

			// Auditoría
			secured.GET("/audit-logs", auditLogsHandler.List)
		}
	}
}
