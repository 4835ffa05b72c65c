package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/service"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/ratelimit"
)

type Services struct {
	Appointments  *service.AppointmentService
	Patients      *service.PatientService
	Doctors       *service.DoctorService
	Records       *service.MedicalRecordService
	Prescriptions *service.PrescriptionService
	Audit         *service.AuditService
}

type RouterConfig struct {
	Services Services
	Metrics  *metrics.Collector
	Gatherer prometheus.Gatherer
	// Nil disables rate limiting.
	Limiter *ratelimit.Store
	Log     *zap.Logger
}

type Handler struct {
	appointments  *service.AppointmentService
	patients      *service.PatientService
	doctors       *service.DoctorService
	records       *service.MedicalRecordService
	prescriptions *service.PrescriptionService
	audit         *service.AuditService
	log           *zap.Logger
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	h := &Handler{
		appointments:  cfg.Services.Appointments,
		patients:      cfg.Services.Patients,
		doctors:       cfg.Services.Doctors,
		records:       cfg.Services.Records,
		prescriptions: cfg.Services.Prescriptions,
		audit:         cfg.Services.Audit,
		log:           cfg.Log,
	}

	r := gin.New()
	r.Use(
		Recovery(cfg.Log),
		RequestID(),
		AccessLog(cfg.Log),
		Metrics(cfg.Metrics),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(metrics.Handler(cfg.Gatherer)))
	}

	api := r.Group("/api/v1")
	if cfg.Limiter != nil {
		api.Use(RateLimit(cfg.Limiter, cfg.Metrics))
	}

	patients := api.Group("/patients")
	{
		patients.POST("", h.RegisterPatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.GET("/:id/appointments", h.GetAppointmentsForPatient)
		patients.GET("/:id/records", h.GetRecordsForPatient)
		patients.GET("/:id/prescriptions", h.GetPrescriptionsForPatient)
	}

	doctors := api.Group("/doctors")
	{
		doctors.POST("", h.RegisterDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)
		doctors.POST("/:id/patients", h.AssignPatient)
		doctors.DELETE("/:id/patients/:patientId", h.UnassignPatient)
		doctors.GET("/:id/appointments", h.GetAppointmentsForDoctor)
		doctors.GET("/:id/availability", h.IsTimeSlotAvailable)
		doctors.GET("/:id/slots", h.AvailableSlots)
	}
	api.GET("/specializations", h.ListSpecializations)
	if h.audit != nil {
		api.GET("/audit", h.RecentAudit)
	}

	appointments := api.Group("/appointments")
	{
		appointments.POST("", h.ScheduleAppointment)
		appointments.DELETE("", h.ClearAllAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.POST("/:id/confirm", h.transition((*service.AppointmentService).ConfirmAppointment))
		appointments.POST("/:id/start", h.transition((*service.AppointmentService).StartAppointment))
		appointments.POST("/:id/complete", h.transition((*service.AppointmentService).CompleteAppointment))
		appointments.POST("/:id/cancel", h.transition((*service.AppointmentService).CancelAppointment))
		appointments.POST("/:id/no-show", h.transition((*service.AppointmentService).MarkNoShow))
	}

	records := api.Group("/records")
	{
		records.POST("", h.AddRecord)
		records.GET("", h.GetRecordsByType)
		records.DELETE("", h.ClearAllRecords)
		records.GET("/count", h.GetTotalRecordCount)
		records.GET("/:id", h.GetRecord)
		records.POST("/:id/archive", h.ArchiveRecord)
		records.DELETE("/:id", h.DeleteRecord)
	}

	prescriptions := api.Group("/prescriptions")
	{
		prescriptions.POST("", h.IssuePrescription)
		prescriptions.GET("/:id", h.GetPrescription)
		prescriptions.POST("/:id/expire", h.ExpirePrescription)
		prescriptions.POST("/:id/cancel", h.CancelPrescription)
		prescriptions.POST("/:id/fulfill", h.FulfillPrescription)
	}

	return r
}
