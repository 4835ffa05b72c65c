package appointment

import "errors"

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrSlotUnavailable         = errors.New("time slot not available")
	ErrInvalidStatusTransition = errors.New("invalid appointment status transition")
	ErrPatientRequired         = errors.New("patient is required")
	ErrDoctorRequired          = errors.New("doctor is required")
)
