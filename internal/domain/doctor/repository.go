package doctor

import "context"

type Repository interface {
	// Create registers a new doctor. Returns ErrDoctorAlreadyExists on a duplicate ID.
	Create(ctx context.Context, d *Doctor) error
	GetByID(ctx context.Context, id string) (*Doctor, error)
	List(ctx context.Context) ([]*Doctor, error)

	// AssignPatient and UnassignPatient return the updated doctor.
	AssignPatient(ctx context.Context, doctorID, patientID string) (*Doctor, error)
	UnassignPatient(ctx context.Context, doctorID, patientID string) (*Doctor, error)
}
