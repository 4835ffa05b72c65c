package memory

import (
	"context"
	"sync"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/doctor"
)

type DoctorStore struct {
	mu    sync.RWMutex
	order []string
	byID  map[string]*doctor.Doctor
}

var _ doctor.Repository = (*DoctorStore)(nil)

func NewDoctorStore() *DoctorStore {
	return &DoctorStore{byID: make(map[string]*doctor.Doctor)}
}

func (s *DoctorStore) Create(ctx context.Context, d *doctor.Doctor) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[d.ID]; exists {
		return doctor.ErrDoctorAlreadyExists
	}
	s.byID[d.ID] = d.Clone()
	s.order = append(s.order, d.ID)
	return nil
}

func (s *DoctorStore) GetByID(ctx context.Context, id string) (*doctor.Doctor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.byID[id]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	return d.Clone(), nil
}

func (s *DoctorStore) List(ctx context.Context) ([]*doctor.Doctor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*doctor.Doctor, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].Clone())
	}
	return out, nil
}

func (s *DoctorStore) AssignPatient(ctx context.Context, doctorID, patientID string) (*doctor.Doctor, error) {
	return s.mutate(ctx, doctorID, func(d *doctor.Doctor) { d.AddPatient(patientID) })
}

func (s *DoctorStore) UnassignPatient(ctx context.Context, doctorID, patientID string) (*doctor.Doctor, error) {
	return s.mutate(ctx, doctorID, func(d *doctor.Doctor) { d.RemovePatient(patientID) })
}

func (s *DoctorStore) mutate(ctx context.Context, doctorID string, fn func(*doctor.Doctor)) (*doctor.Doctor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.byID[doctorID]
	if !ok {
		return nil, doctor.ErrDoctorNotFound
	}
	fn(d)
	return d.Clone(), nil
}
