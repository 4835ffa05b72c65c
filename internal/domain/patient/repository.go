package patient

import "context"

type Repository interface {
	// Create registers a new patient. Returns ErrPatientAlreadyExists on a duplicate ID.
	Create(ctx context.Context, p *Patient) error

	// GetByID returns ErrPatientNotFound if no patient has the ID.
	GetByID(ctx context.Context, id string) (*Patient, error)

	// List returns every patient in registration order.
	List(ctx context.Context) ([]*Patient, error)

	// AttachRecord appends a medical record ID to the patient's history.
	AttachRecord(ctx context.Context, patientID, recordID string) error
}
