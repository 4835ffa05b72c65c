package medical_record

import "context"

// Repository is an append-only record book. IDs are not required to be unique;
// lookups by ID act on the first record stored under that ID. Soft-deleted records are
// excluded from every read.
type Repository interface {
	Add(ctx context.Context, r *MedicalRecord) error
	GetByID(ctx context.Context, id string) (*MedicalRecord, error)
	ListByPatient(ctx context.Context, patientID string) ([]*MedicalRecord, error)
	ListByType(ctx context.Context, t RecordType) ([]*MedicalRecord, error)
	Count(ctx context.Context) (int, error)

	Archive(ctx context.Context, id string) (*MedicalRecord, error)
	Delete(ctx context.Context, id string) error

	Clear(ctx context.Context) error
}
