package memory

import (
	"context"
	"sync"

	mr "github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/medical_record"
)

// MedicalRecordStore keeps records in insertion order. Duplicate IDs are accepted;
// ID lookups resolve to the first live record with that ID.
type MedicalRecordStore struct {
	mu      sync.RWMutex
	records []*mr.MedicalRecord
}

var _ mr.Repository = (*MedicalRecordStore)(nil)

func NewMedicalRecordStore() *MedicalRecordStore {
	return &MedicalRecordStore{}
}

func (s *MedicalRecordStore) Add(ctx context.Context, r *mr.MedicalRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, r.Clone())
	return nil
}

func (s *MedicalRecordStore) GetByID(ctx context.Context, id string) (*mr.MedicalRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r := s.find(id)
	if r == nil {
		return nil, mr.ErrRecordNotFound
	}
	return r.Clone(), nil
}

func (s *MedicalRecordStore) ListByPatient(ctx context.Context, patientID string) ([]*mr.MedicalRecord, error) {
	return s.filter(ctx, func(r *mr.MedicalRecord) bool { return r.PatientID == patientID })
}

func (s *MedicalRecordStore) ListByType(ctx context.Context, t mr.RecordType) ([]*mr.MedicalRecord, error) {
	return s.filter(ctx, func(r *mr.MedicalRecord) bool { return r.Type == t })
}

func (s *MedicalRecordStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, r := range s.records {
		if !r.IsDeleted() {
			n++
		}
	}
	return n, nil
}

func (s *MedicalRecordStore) Archive(ctx context.Context, id string) (*mr.MedicalRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.find(id)
	if r == nil {
		return nil, mr.ErrRecordNotFound
	}
	r.Archive()
	return r.Clone(), nil
}

func (s *MedicalRecordStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.find(id)
	if r == nil {
		return mr.ErrRecordNotFound
	}
	r.MarkDeleted()
	return nil
}

func (s *MedicalRecordStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = nil
	return nil
}

// find must be called with the lock held.
func (s *MedicalRecordStore) find(id string) *mr.MedicalRecord {
	for _, r := range s.records {
		if r.ID == id && !r.IsDeleted() {
			return r
		}
	}
	return nil
}

func (s *MedicalRecordStore) filter(ctx context.Context, keep func(*mr.MedicalRecord) bool) ([]*mr.MedicalRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*mr.MedicalRecord, 0)
	for _, r := range s.records {
		if !r.IsDeleted() && keep(r) {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}
