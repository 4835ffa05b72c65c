package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/doctor"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/metrics"
)

type DoctorService struct {
	repo        doctor.Repository
	patientRepo patient.Repository
	auditSvc    *AuditService
	metrics     *metrics.Collector
	log         *zap.Logger
}

func NewDoctorService(repo doctor.Repository, patientRepo patient.Repository, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *DoctorService {
	return &DoctorService{repo: repo, patientRepo: patientRepo, auditSvc: auditSvc, metrics: m, log: log}
}

func (s *DoctorService) RegisterDoctor(ctx context.Context, cmd *doctor.RegisterDoctorCommand) (d *doctor.Doctor, err error) {
	ctx, span := startSpan(ctx, "DoctorService.RegisterDoctor")
	defer func() { endSpan(span, err) }()

	if err := validateRegisterDoctorCommand(cmd); err != nil {
		return nil, err
	}

	d = doctor.New(strings.TrimSpace(cmd.ID), cmd.LicenseNumber)
	d.FirstName = strings.TrimSpace(cmd.FirstName)
	d.LastName = strings.TrimSpace(cmd.LastName)
	d.Specialization = strings.TrimSpace(cmd.Specialization)

	if err := s.repo.Create(ctx, d); err != nil {
		s.log.Error("failed to create doctor", zap.String("doctor_id", d.ID), zap.Error(err))
		return nil, fmt.Errorf("creating doctor: %w", err)
	}
	s.metrics.DoctorsRegistered.Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "doctor",
		ResourceID:   d.ID,
	})

	s.log.Info("doctor registered",
		zap.String("doctor_id", d.ID),
		zap.String("specialization", d.Specialization),
	)

	return d, nil
}

func (s *DoctorService) GetDoctor(ctx context.Context, id string) (*doctor.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorService) ListDoctors(ctx context.Context) ([]*doctor.Doctor, error) {
	return s.repo.List(ctx)
}

// AssignPatient adds the patient to the doctor's panel. Assigning twice is a no-op.
func (s *DoctorService) AssignPatient(ctx context.Context, doctorID, patientID string) (*doctor.Doctor, error) {
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}

	d, err := s.repo.AssignPatient(ctx, doctorID, patientID)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action: "update", ResourceType: "doctor", ResourceID: doctorID,
		Changes: fmt.Sprintf(`{"assigned_patient":%q}`, patientID),
	})

	return d, nil
}

func (s *DoctorService) UnassignPatient(ctx context.Context, doctorID, patientID string) (*doctor.Doctor, error) {
	d, err := s.repo.UnassignPatient(ctx, doctorID, patientID)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action: "update", ResourceType: "doctor", ResourceID: doctorID,
		Changes: fmt.Sprintf(`{"unassigned_patient":%q}`, patientID),
	})

	return d, nil
}

func validateRegisterDoctorCommand(cmd *doctor.RegisterDoctorCommand) error {
	var errs []string

	if strings.TrimSpace(cmd.ID) == "" {
		errs = append(errs, "id is required")
	}
	if strings.TrimSpace(cmd.FirstName) == "" {
		errs = append(errs, "first_name is required")
	}
	if strings.TrimSpace(cmd.LastName) == "" {
		errs = append(errs, "last_name is required")
	}
	if !doctor.IsValidSpecialization(cmd.Specialization) {
		errs = append(errs, "specialization is required")
	}
	if !doctor.IsValidLicenseNumber(cmd.LicenseNumber) {
		errs = append(errs, "license_number must be two uppercase letters followed by six digits")
	}

	return validationErr(errs)
}
