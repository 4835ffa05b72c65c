package memory

import (
	"context"
	"sync"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/prescription"
)

type PrescriptionStore struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*prescription.Prescription
}

var _ prescription.Repository = (*PrescriptionStore)(nil)

func NewPrescriptionStore() *PrescriptionStore {
	return &PrescriptionStore{byID: make(map[string]*prescription.Prescription)}
}

func (s *PrescriptionStore) Create(ctx context.Context, p *prescription.Prescription) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[p.ID]; exists {
		return prescription.ErrPrescriptionAlreadyExists
	}
	s.byID[p.ID] = p.Clone()
	s.order = append(s.order, p.ID)
	return nil
}

func (s *PrescriptionStore) GetByID(ctx context.Context, id string) (*prescription.Prescription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, prescription.ErrPrescriptionNotFound
	}
	return p.Clone(), nil
}

func (s *PrescriptionStore) ListByPatient(ctx context.Context, patientID string) ([]*prescription.Prescription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*prescription.Prescription, 0)
	for _, id := range s.order {
		if p := s.byID[id]; p.PatientID == patientID {
			out = append(out, p.Clone())
		}
	}
	return out, nil
}

func (s *PrescriptionStore) Update(ctx context.Context, id string, fn func(*prescription.Prescription) error) (*prescription.Prescription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.byID[id]
	if !ok {
		return nil, prescription.ErrPrescriptionNotFound
	}
	draft := p.Clone()
	if err := fn(draft); err != nil {
		return nil, err
	}
	s.byID[id] = draft
	return draft.Clone(), nil
}
