// Package memory holds the in-memory stores backing the clinic services. Each store is
// an independent instance; two clinics never share state unless they share a store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/dmehra2102/prod-golang-projects/healthhub/internal/domain/appointment"
	"github.com/dmehra2102/prod-golang-projects/healthhub/pkg/clock"
)

// AppointmentStore is the clinic's appointment book. It holds appointments in
// insertion order and indexes them by slot, doctor, patient and ID.
type AppointmentStore struct {
	mu    sync.RWMutex
	clock clock.Clock

	appointments []*appointment.Appointment
	byID         map[string]int
	bySlot       map[appointment.Slot][]string // slot -> IDs of appointments holding it
	byDoctor     map[string][]string
	byPatient    map[string][]string
}

var _ appointment.Repository = (*AppointmentStore)(nil)

func NewAppointmentStore(c clock.Clock) *AppointmentStore {
	s := &AppointmentStore{clock: c}
	s.reset()
	return s
}

func (s *AppointmentStore) reset() {
	s.appointments = nil
	s.byID = make(map[string]int)
	s.bySlot = make(map[appointment.Slot][]string)
	s.byDoctor = make(map[string][]string)
	s.byPatient = make(map[string][]string)
}

func (s *AppointmentStore) Create(ctx context.Context, a *appointment.Appointment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slot := a.Slot()
	if len(s.bySlot[slot]) > 0 && a.Status.HoldsSlot() {
		return appointment.ErrSlotUnavailable
	}

	stored := a.Clone()
	s.byID[stored.ID] = len(s.appointments)
	s.appointments = append(s.appointments, stored)
	if stored.Status.HoldsSlot() {
		s.bySlot[slot] = append(s.bySlot[slot], stored.ID)
	}
	s.byDoctor[stored.DoctorID] = append(s.byDoctor[stored.DoctorID], stored.ID)
	s.byPatient[stored.PatientID] = append(s.byPatient[stored.PatientID], stored.ID)
	return nil
}

func (s *AppointmentStore) GetByID(ctx context.Context, id string) (*appointment.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	return s.appointments[i].Clone(), nil
}

func (s *AppointmentStore) IsSlotAvailable(ctx context.Context, doctorID string, at time.Time) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.bySlot[appointment.SlotOf(doctorID, at)]) == 0, nil
}

func (s *AppointmentStore) ListByDoctor(ctx context.Context, doctorID string) ([]*appointment.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.byDoctor[doctorID]), nil
}

func (s *AppointmentStore) ListByPatient(ctx context.Context, patientID string) ([]*appointment.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(s.byPatient[patientID]), nil
}

// collect must be called with the lock held.
func (s *AppointmentStore) collect(ids []string) []*appointment.Appointment {
	out := make([]*appointment.Appointment, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.appointments[s.byID[id]].Clone())
	}
	return out
}

func (s *AppointmentStore) UpdateStatus(ctx context.Context, id string, next appointment.Status) (*appointment.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[id]
	if !ok {
		return nil, appointment.ErrAppointmentNotFound
	}
	a := s.appointments[i]
	held := a.Status.HoldsSlot()
	if err := a.TransitionTo(next, s.clock.Now()); err != nil {
		return nil, err
	}
	switch holds := a.Status.HoldsSlot(); {
	case held && !holds:
		s.release(a.Slot(), a.ID)
	case !held && holds:
		// A cancelled appointment completed after its slot was rebooked; both now
		// hold the slot.
		s.bySlot[a.Slot()] = append(s.bySlot[a.Slot()], a.ID)
	}
	return a.Clone(), nil
}

// release must be called with the write lock held.
func (s *AppointmentStore) release(slot appointment.Slot, id string) {
	holders := s.bySlot[slot]
	for i, h := range holders {
		if h == id {
			holders = append(holders[:i], holders[i+1:]...)
			break
		}
	}
	if len(holders) == 0 {
		delete(s.bySlot, slot)
		return
	}
	s.bySlot[slot] = holders
}

func (s *AppointmentStore) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

func (s *AppointmentStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.appointments), nil
}
