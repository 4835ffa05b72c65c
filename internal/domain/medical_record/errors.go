package medical_record

import "errors"

var (
	ErrRecordNotFound    = errors.New("medical record not found")
	ErrInvalidRecordType = errors.New("invalid medical record type")
)
