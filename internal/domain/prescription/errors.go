package prescription

import "errors"

var (
	ErrPrescriptionNotFound      = errors.New("prescription not found")
	ErrPrescriptionAlreadyExists = errors.New("prescription with this ID already exists")
	ErrNotActive                 = errors.New("prescription is not active")
)
