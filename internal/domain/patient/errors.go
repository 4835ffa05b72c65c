package patient

import "errors"

var (
	ErrPatientNotFound      = errors.New("patient not found")
	ErrPatientAlreadyExists = errors.New("patient with this ID already exists")
	ErrInvalidDateOfBirth   = errors.New("date of birth cannot be in the future")
)
