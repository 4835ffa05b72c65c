package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/clock"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/metrics"
)

type PatientService struct {
	repo     patient.Repository
	clock    clock.Clock
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewPatientService(repo patient.Repository, c clock.Clock, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *PatientService {
	return &PatientService{
		repo:     repo,
		clock:    c,
		auditSvc: auditSvc,
		metrics:  m,
		log:      log,
	}
}

func (s *PatientService) RegisterPatient(ctx context.Context, cmd *patient.RegisterPatientCommand) (p *patient.Patient, err error) {
	ctx, span := startSpan(ctx, "PatientService.RegisterPatient")
	defer func() { endSpan(span, err) }()

	if err := s.validateRegisterCommand(cmd); err != nil {
		return nil, err
	}

	var opts []patient.Option
	if email := strings.ToLower(strings.TrimSpace(cmd.Email)); email != "" {
		opts = append(opts, patient.WithEmail(email))
	}
	if phone := strings.TrimSpace(cmd.Phone); phone != "" {
		opts = append(opts, patient.WithPhoneNumber(phone))
	}
	p = patient.New(
		strings.TrimSpace(cmd.ID),
		strings.TrimSpace(cmd.FirstName),
		strings.TrimSpace(cmd.LastName),
		cmd.DateOfBirth,
		opts...,
	)

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create patient", zap.String("patient_id", p.ID), zap.Error(err))
		return nil, fmt.Errorf("creating patient: %w", err)
	}
	s.metrics.PatientsRegistered.Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "patient",
		ResourceID:   p.ID,
	})

	s.log.Info("patient registered", zap.String("patient_id", p.ID))

	return p, nil
}

func (s *PatientService) GetPatient(ctx context.Context, id string) (*patient.Patient, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "read",
		ResourceType: "patient",
		ResourceID:   id,
	})

	return p, nil
}

func (s *PatientService) ListPatients(ctx context.Context) ([]*patient.Patient, error) {
	return s.repo.List(ctx)
}

func (s *PatientService) validateRegisterCommand(cmd *patient.RegisterPatientCommand) error {
	var errs []string

	if !patient.IsValidPatientID(cmd.ID) {
		errs = append(errs, "id is required")
	}
	if strings.TrimSpace(cmd.FirstName) == "" {
		errs = append(errs, "first_name is required")
	}
	if strings.TrimSpace(cmd.LastName) == "" {
		errs = append(errs, "last_name is required")
	}
	if cmd.DateOfBirth.IsZero() {
		errs = append(errs, "date_of_birth is required")
	} else if cmd.DateOfBirth.After(s.clock.Now()) {
		errs = append(errs, patient.ErrInvalidDateOfBirth.Error())
	}
	if email := strings.TrimSpace(cmd.Email); email != "" && !patient.IsValidEmail(email) {
		errs = append(errs, "email is invalid")
	}
	if phone := strings.TrimSpace(cmd.Phone); phone != "" && !patient.IsValidPhoneNumber(phone) {
		errs = append(errs, "phone must be 10 to 15 digits")
	}

	return validationErr(errs)
}
