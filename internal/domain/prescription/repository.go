package prescription

import "context"

type Repository interface {
	// Create returns ErrPrescriptionAlreadyExists on a duplicate ID.
	Create(ctx context.Context, p *Prescription) error
	GetByID(ctx context.Context, id string) (*Prescription, error)
	ListByPatient(ctx context.Context, patientID string) ([]*Prescription, error)

	// Update runs fn on the stored prescription under the repository's lock and keeps
	// the result only if fn returns nil.
	Update(ctx context.Context, id string, fn func(*Prescription) error) (*Prescription, error)
}
