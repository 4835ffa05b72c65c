package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/clock"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/metrics"
)

// AppointmentService is the clinic scheduler. Its decisions depend only on the
// repository it was built with.
type AppointmentService struct {
	repo     appointment.Repository
	ids      *appointment.IDGenerator
	clock    clock.Clock
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewAppointmentService(
	repo appointment.Repository,
	c clock.Clock,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:     repo,
		ids:      appointment.NewIDGenerator(c),
		clock:    c,
		auditSvc: auditSvc,
		metrics:  m,
		log:      log,
	}
}

// ScheduleAppointment books the doctor at cmd.ScheduledAt for the patient. Instants in
// the past are accepted. Fails with appointment.ErrSlotUnavailable when a
// non-cancelled appointment already holds the slot.
func (s *AppointmentService) ScheduleAppointment(ctx context.Context, cmd *appointment.ScheduleCommand) (a *appointment.Appointment, err error) {
	ctx, span := startSpan(ctx, "AppointmentService.ScheduleAppointment")
	defer func() { endSpan(span, err) }()

	if cmd.Patient == nil {
		return nil, appointment.ErrPatientRequired
	}
	if cmd.Doctor == nil {
		return nil, appointment.ErrDoctorRequired
	}
	span.SetAttributes(
		attribute.String("patient.id", cmd.Patient.ID),
		attribute.String("doctor.id", cmd.Doctor.ID),
		attribute.String("appointment.scheduled_at", cmd.ScheduledAt.UTC().Format(time.RFC3339)),
	)

	now := s.clock.Now()
	a = &appointment.Appointment{
		ID:          s.ids.Next(),
		PatientID:   cmd.Patient.ID,
		DoctorID:    cmd.Doctor.ID,
		ScheduledAt: cmd.ScheduledAt,
		Status:      appointment.StatusScheduled,
		Reason:      cmd.Reason,
		Notes:       cmd.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, appointment.ErrSlotUnavailable) {
			s.metrics.AppointmentsScheduled.WithLabelValues("slot_unavailable").Inc()
			s.log.Info("slot unavailable",
				zap.String("doctor_id", a.DoctorID),
				zap.Time("scheduled_at", a.ScheduledAt),
			)
			return nil, err
		}
		s.log.Error("failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("creating appointment: %w", err)
	}
	s.metrics.AppointmentsScheduled.WithLabelValues("booked").Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "appointment",
		ResourceID:   a.ID,
	})

	s.log.Info("appointment scheduled",
		zap.String("appointment_id", a.ID),
		zap.String("patient_id", a.PatientID),
		zap.String("doctor_id", a.DoctorID),
		zap.Time("scheduled_at", a.ScheduledAt),
	)

	return a, nil
}

// IsTimeSlotAvailable reports whether the doctor is free at exactly at.
func (s *AppointmentService) IsTimeSlotAvailable(ctx context.Context, d *doctor.Doctor, at time.Time) (ok bool, err error) {
	ctx, span := startSpan(ctx, "AppointmentService.IsTimeSlotAvailable")
	defer func() { endSpan(span, err) }()

	if d == nil {
		return false, appointment.ErrDoctorRequired
	}
	return s.repo.IsSlotAvailable(ctx, d.ID, at)
}

// AvailableSlots lists the standard clinic slots on day's date that the doctor has free.
func (s *AppointmentService) AvailableSlots(ctx context.Context, d *doctor.Doctor, day time.Time) (slots []appointment.TimeSlot, err error) {
	ctx, span := startSpan(ctx, "AppointmentService.AvailableSlots")
	defer func() { endSpan(span, err) }()

	if d == nil {
		return nil, appointment.ErrDoctorRequired
	}

	slots = make([]appointment.TimeSlot, 0, len(appointment.TimeSlots()))
	for _, ts := range appointment.TimeSlots() {
		free, err := s.repo.IsSlotAvailable(ctx, d.ID, ts.At(day))
		if err != nil {
			return nil, err
		}
		if free {
			slots = append(slots, ts)
		}
	}
	return slots, nil
}

func (s *AppointmentService) GetAppointmentsForDoctor(ctx context.Context, d *doctor.Doctor) (list []*appointment.Appointment, err error) {
	ctx, span := startSpan(ctx, "AppointmentService.GetAppointmentsForDoctor")
	defer func() { endSpan(span, err) }()

	if d == nil {
		return nil, appointment.ErrDoctorRequired
	}
	return s.repo.ListByDoctor(ctx, d.ID)
}

func (s *AppointmentService) GetAppointmentsForPatient(ctx context.Context, p *patient.Patient) (list []*appointment.Appointment, err error) {
	ctx, span := startSpan(ctx, "AppointmentService.GetAppointmentsForPatient")
	defer func() { endSpan(span, err) }()

	if p == nil {
		return nil, appointment.ErrPatientRequired
	}
	return s.repo.ListByPatient(ctx, p.ID)
}

func (s *AppointmentService) GetAppointment(ctx context.Context, id string) (*appointment.Appointment, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action: "read", ResourceType: "appointment", ResourceID: id,
	})

	return a, nil
}

// ClearAllAppointments empties this scheduler's appointment book.
func (s *AppointmentService) ClearAllAppointments(ctx context.Context) (err error) {
	ctx, span := startSpan(ctx, "AppointmentService.ClearAllAppointments")
	defer func() { endSpan(span, err) }()

	n, err := s.repo.Count(ctx)
	if err != nil {
		return err
	}
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clearing appointments: %w", err)
	}
	s.metrics.AppointmentResets.Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "reset",
		ResourceType: "appointment",
		Changes:      fmt.Sprintf(`{"removed":%d}`, n),
	})

	s.log.Warn("appointment book cleared", zap.Int("removed", n))
	return nil
}

func (s *AppointmentService) ConfirmAppointment(ctx context.Context, id string) (*appointment.Appointment, error) {
	return s.transition(ctx, "AppointmentService.ConfirmAppointment", id, appointment.StatusConfirmed)
}

func (s *AppointmentService) StartAppointment(ctx context.Context, id string) (*appointment.Appointment, error) {
	return s.transition(ctx, "AppointmentService.StartAppointment", id, appointment.StatusInProgress)
}

func (s *AppointmentService) CompleteAppointment(ctx context.Context, id string) (*appointment.Appointment, error) {
	return s.transition(ctx, "AppointmentService.CompleteAppointment", id, appointment.StatusCompleted)
}

// CancelAppointment cancels the appointment and frees its slot for rebooking.
func (s *AppointmentService) CancelAppointment(ctx context.Context, id string) (*appointment.Appointment, error) {
	return s.transition(ctx, "AppointmentService.CancelAppointment", id, appointment.StatusCancelled)
}

func (s *AppointmentService) MarkNoShow(ctx context.Context, id string) (*appointment.Appointment, error) {
	return s.transition(ctx, "AppointmentService.MarkNoShow", id, appointment.StatusNoShow)
}

func (s *AppointmentService) transition(ctx context.Context, spanName, id string, next appointment.Status) (a *appointment.Appointment, err error) {
	ctx, span := startSpan(ctx, spanName,
		attribute.String("appointment.id", id),
		attribute.String("appointment.status", string(next)),
	)
	defer func() { endSpan(span, err) }()

	a, err = s.repo.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, err
	}
	s.metrics.AppointmentTransitions.WithLabelValues(string(next)).Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "update",
		ResourceType: "appointment",
		ResourceID:   id,
		Changes:      fmt.Sprintf(`{"status":%q}`, next),
	})

	s.log.Info("appointment status changed",
		zap.String("appointment_id", id),
		zap.String("status", string(next)),
	)
	return a, nil
}
