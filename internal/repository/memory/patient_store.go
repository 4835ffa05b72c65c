package memory

import (
	"context"
	"sync"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/patient"
)

type PatientStore struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*patient.Patient
}

var _ patient.Repository = (*PatientStore)(nil)

func NewPatientStore() *PatientStore {
	return &PatientStore{byID: make(map[string]*patient.Patient)}
}

func (s *PatientStore) Create(ctx context.Context, p *patient.Patient) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[p.ID]; exists {
		return patient.ErrPatientAlreadyExists
	}
	s.byID[p.ID] = p.Clone()
	s.order = append(s.order, p.ID)
	return nil
}

func (s *PatientStore) GetByID(ctx context.Context, id string) (*patient.Patient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, patient.ErrPatientNotFound
	}
	return p.Clone(), nil
}

func (s *PatientStore) List(ctx context.Context) ([]*patient.Patient, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*patient.Patient, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].Clone())
	}
	return out, nil
}

func (s *PatientStore) AttachRecord(ctx context.Context, patientID, recordID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[patientID]
	if !ok {
		return patient.ErrPatientNotFound
	}
	p.AddMedicalRecord(recordID)
	return nil
}
