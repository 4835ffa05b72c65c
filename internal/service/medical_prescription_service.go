package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/doctor"
	mr "github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/medical_record"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/patient"
	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/prescription"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/clock"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/metrics"
)

const recordIDPrefix = "MR-"

type MedicalRecordService struct {
	repo        mr.Repository
	patientRepo patient.Repository
	clock       clock.Clock
	auditSvc    *AuditService
	metrics     *metrics.Collector
	log         *zap.Logger
}

func NewMedicalRecordService(repo mr.Repository, patientRepo patient.Repository, c clock.Clock, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *MedicalRecordService {
	return &MedicalRecordService{repo: repo, patientRepo: patientRepo, clock: c, auditSvc: auditSvc, metrics: m, log: log}
}

// AddRecord stores a new ACTIVE record and links it to the patient's history. An
// empty cmd.ID gets a generated one; duplicate IDs are accepted.
func (s *MedicalRecordService) AddRecord(ctx context.Context, cmd *mr.CreateRecordCommand) (record *mr.MedicalRecord, err error) {
	ctx, span := startSpan(ctx, "MedicalRecordService.AddRecord",
		attribute.String("patient.id", cmd.PatientID),
		attribute.String("record.type", string(cmd.Type)),
	)
	defer func() { endSpan(span, err) }()

	if !cmd.Type.IsValid() {
		return nil, mr.ErrInvalidRecordType
	}

	// Checking Patient Existence
	if _, err := s.patientRepo.GetByID(ctx, cmd.PatientID); err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}

	record = &mr.MedicalRecord{
		ID:          strings.TrimSpace(cmd.ID),
		PatientID:   cmd.PatientID,
		DoctorID:    cmd.DoctorID,
		RecordDate:  cmd.RecordDate,
		Diagnosis:   cmd.Diagnosis,
		Symptoms:    cmd.Symptoms,
		Treatment:   cmd.Treatment,
		TestResults: append([]string{}, cmd.TestResults...),
		Type:        cmd.Type,
		Status:      mr.StatusActive,
	}
	if record.ID == "" {
		record.ID = recordIDPrefix + uuid.NewString()
	}
	if record.RecordDate.IsZero() {
		record.RecordDate = s.clock.Now()
	}

	if err := s.repo.Add(ctx, record); err != nil {
		return nil, fmt.Errorf("creating medical record: %w", err)
	}
	if err := s.patientRepo.AttachRecord(ctx, record.PatientID, record.ID); err != nil {
		s.log.Error("failed to link record to patient",
			zap.String("record_id", record.ID),
			zap.String("patient_id", record.PatientID),
			zap.Error(err),
		)
	}
	s.metrics.RecordsAdded.WithLabelValues(string(record.Type)).Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action:       "create",
		ResourceType: "medical_record",
		ResourceID:   record.ID,
	})

	return record, nil
}

func (s *MedicalRecordService) GetRecord(ctx context.Context, id string) (*mr.MedicalRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action: "read", ResourceType: "medical_record", ResourceID: id,
	})

	return record, nil
}

func (s *MedicalRecordService) GetRecordsForPatient(ctx context.Context, patientID string) ([]*mr.MedicalRecord, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *MedicalRecordService) GetRecordsByType(ctx context.Context, t mr.RecordType) ([]*mr.MedicalRecord, error) {
	if !t.IsValid() {
		return nil, mr.ErrInvalidRecordType
	}
	return s.repo.ListByType(ctx, t)
}

// GetTotalRecordCount counts every record that has not been deleted.
func (s *MedicalRecordService) GetTotalRecordCount(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

func (s *MedicalRecordService) ArchiveRecord(ctx context.Context, id string) (*mr.MedicalRecord, error) {
	record, err := s.repo.Archive(ctx, id)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action: "update", ResourceType: "medical_record", ResourceID: id,
		Changes: `{"status":"archived"}`,
	})

	return record, nil
}

func (s *MedicalRecordService) DeleteRecord(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action: "delete", ResourceType: "medical_record", ResourceID: id,
	})

	return nil
}

func (s *MedicalRecordService) ClearAllRecords(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return fmt.Errorf("clearing medical records: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{Action: "reset", ResourceType: "medical_record"})
	s.log.Warn("medical records cleared")
	return nil
}

type PrescriptionService struct {
	repo        prescription.Repository
	patientRepo patient.Repository
	doctorRepo  doctor.Repository
	clock       clock.Clock
	auditSvc    *AuditService
	metrics     *metrics.Collector
	log         *zap.Logger
}

func NewPrescriptionService(
	repo prescription.Repository,
	patientRepo patient.Repository,
	doctorRepo doctor.Repository,
	c clock.Clock,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *PrescriptionService {
	return &PrescriptionService{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		clock:       c,
		auditSvc:    auditSvc,
		metrics:     m,
		log:         log,
	}
}

// PrescriptionView adds the date-derived expiry flag to a stored prescription.
type PrescriptionView struct {
	*prescription.Prescription
	Expired bool `json:"expired"`
}

func (s *PrescriptionService) view(p *prescription.Prescription) *PrescriptionView {
	return &PrescriptionView{Prescription: p, Expired: p.IsExpired(s.clock.Now())}
}

func (s *PrescriptionService) IssuePrescription(ctx context.Context, cmd *prescription.IssuePrescriptionCommand) (v *PrescriptionView, err error) {
	ctx, span := startSpan(ctx, "PrescriptionService.IssuePrescription",
		attribute.String("prescription.id", cmd.ID),
	)
	defer func() { endSpan(span, err) }()

	p := &prescription.Prescription{
		ID:           strings.TrimSpace(cmd.ID),
		PatientID:    cmd.PatientID,
		DoctorID:     cmd.DoctorID,
		IssueDate:    cmd.IssueDate,
		ExpiryDate:   cmd.ExpiryDate,
		Medications:  append([]prescription.Medication{}, cmd.Medications...),
		Instructions: cmd.Instructions,
		Status:       prescription.StatusActive,
	}
	if p.IssueDate.IsZero() {
		p.IssueDate = clock.Day(s.clock.Now())
	}

	if err := s.validatePrescription(p); err != nil {
		return nil, err
	}
	if _, err := s.patientRepo.GetByID(ctx, p.PatientID); err != nil {
		return nil, fmt.Errorf("verifying patient: %w", err)
	}
	if _, err := s.doctorRepo.GetByID(ctx, p.DoctorID); err != nil {
		return nil, fmt.Errorf("verifying doctor: %w", err)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("creating prescription: %w", err)
	}
	s.metrics.PrescriptionsIssued.Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action: "create", ResourceType: "prescription", ResourceID: p.ID,
	})

	s.log.Info("prescription issued",
		zap.String("prescription_id", p.ID),
		zap.String("patient_id", p.PatientID),
		zap.Int("medications", len(p.Medications)),
	)

	return s.view(p), nil
}

func (s *PrescriptionService) GetPrescription(ctx context.Context, id string) (*PrescriptionView, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action: "read", ResourceType: "prescription", ResourceID: id,
	})

	return s.view(p), nil
}

func (s *PrescriptionService) ListForPatient(ctx context.Context, patientID string) ([]*PrescriptionView, error) {
	list, err := s.repo.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}
	out := make([]*PrescriptionView, 0, len(list))
	for _, p := range list {
		out = append(out, s.view(p))
	}
	return out, nil
}

// ExpirePrescription marks the prescription EXPIRED regardless of its dates or
// current status.
func (s *PrescriptionService) ExpirePrescription(ctx context.Context, id string) (*PrescriptionView, error) {
	return s.update(ctx, id, "expired", func(p *prescription.Prescription) error {
		p.Expire()
		return nil
	})
}

func (s *PrescriptionService) CancelPrescription(ctx context.Context, id string) (*PrescriptionView, error) {
	return s.update(ctx, id, "cancelled", (*prescription.Prescription).Cancel)
}

func (s *PrescriptionService) FulfillPrescription(ctx context.Context, id string) (*PrescriptionView, error) {
	return s.update(ctx, id, "fulfilled", (*prescription.Prescription).Fulfill)
}

func (s *PrescriptionService) update(ctx context.Context, id, status string, fn func(*prescription.Prescription) error) (*PrescriptionView, error) {
	updated, err := s.repo.Update(ctx, id, fn)
	if err != nil {
		return nil, err
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Action: "update", ResourceType: "prescription", ResourceID: id,
		Changes: fmt.Sprintf(`{"status":%q}`, status),
	})

	return s.view(updated), nil
}

func (s *PrescriptionService) validatePrescription(p *prescription.Prescription) error {
	var errs []string

	if !prescription.IsValidPrescriptionID(p.ID) {
		errs = append(errs, `id must start with "RX-"`)
	}
	if strings.TrimSpace(p.PatientID) == "" {
		errs = append(errs, "patient_id is required")
	}
	if strings.TrimSpace(p.DoctorID) == "" {
		errs = append(errs, "doctor_id is required")
	}
	if !prescription.HasMedications(p) {
		errs = append(errs, "at least one medication is required")
	}
	if !prescription.IsValidExpiryDate(p.ExpiryDate, s.clock.Now()) {
		errs = append(errs, "expiry_date must be after today")
	}

	return validationErr(errs)
}
