package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthhub/config"
	v1 "github.com/dmehra2102/prod-golang-projects/healthhub/internal/handler/v1"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/repository/memory"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/service"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/clock"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/logger"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/metrics"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/ratelimit"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/tracer"
)

const limiterSweepInterval = time.Minute

func serveCmd(configFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFile)
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}
}

// clinic owns the stores and services of one clinic scope.
type clinic struct {
	auditSvc *service.AuditService
	services v1.Services
}

func newClinic(c clock.Clock, m *metrics.Collector, log *zap.Logger) *clinic {
	patients := memory.NewPatientStore()
	doctors := memory.NewDoctorStore()

	auditSvc := service.NewAuditService(memory.NewAuditStore(memory.DefaultAuditCapacity), m, c, log)

	return &clinic{
		auditSvc: auditSvc,
		services: v1.Services{
			Appointments:  service.NewAppointmentService(memory.NewAppointmentStore(c), c, auditSvc, m, log),
			Patients:      service.NewPatientService(patients, c, auditSvc, m, log),
			Doctors:       service.NewDoctorService(doctors, patients, auditSvc, m, log),
			Records:       service.NewMedicalRecordService(memory.NewMedicalRecordStore(), patients, c, auditSvc, m, log),
			Prescriptions: service.NewPrescriptionService(memory.NewPrescriptionStore(), patients, doctors, c, auditSvc, m, log),
			Audit:         auditSvc,
		},
	}
}

func runServer(cfg *config.Config) error {
	log, err := logger.New(cfg.Log,
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.String("clinic_id", cfg.Clinic.ID),
	)
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(ctx, cfg.Tracing,
		attribute.String("clinic.id", cfg.Clinic.ID),
		attribute.String("deployment.environment.name", cfg.App.Environment),
	)
	if err != nil {
		return fmt.Errorf("initialising tracer: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(shutdownCtx); err != nil {
			log.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	m := metrics.NewCollector("healthhub", prometheus.DefaultRegisterer)
	cl := newClinic(clock.New(), m, log)
	defer cl.auditSvc.Shutdown()

	if cfg.Clinic.RosterFile != "" {
		if err := preloadRoster(ctx, cfg.Clinic.RosterFile, cl.services, log); err != nil {
			return err
		}
	}

	limiter := ratelimit.NewStore(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize, cfg.RateLimit.IdleTTL)
	go limiter.Run(ctx, limiterSweepInterval)

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := v1.NewRouter(v1.RouterConfig{
		Services: cl.services,
		Metrics:  m,
		Gatherer: prometheus.DefaultGatherer,
		Limiter:  limiter,
		Log:      log,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server stopped")
	return nil
}

func init() {
	// Keep gin's own banner output off stdout; access logs go through zap.
	gin.DefaultWriter = os.Stderr
}
