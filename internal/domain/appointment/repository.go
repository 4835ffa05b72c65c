package appointment

import (
	"context"
	"time"
)

type Repository interface {
	// Create checks the slot and inserts in one step. Returns ErrSlotUnavailable when a
	// non-cancelled appointment already holds a.Slot(); the repository is then unchanged.
	Create(ctx context.Context, a *Appointment) error

	GetByID(ctx context.Context, id string) (*Appointment, error)

	// IsSlotAvailable reports whether no non-cancelled appointment exists for the
	// doctor at exactly the given instant.
	IsSlotAvailable(ctx context.Context, doctorID string, at time.Time) (bool, error)

	// ListByDoctor and ListByPatient return appointments in insertion order.
	ListByDoctor(ctx context.Context, doctorID string) ([]*Appointment, error)
	ListByPatient(ctx context.Context, patientID string) ([]*Appointment, error)

	// UpdateStatus applies a transition and keeps the slot index coherent.
	UpdateStatus(ctx context.Context, id string, next Status) (*Appointment, error)

	// Clear drops every appointment held by this repository.
	Clear(ctx context.Context) error

	Count(ctx context.Context) (int, error)
}
