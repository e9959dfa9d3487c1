package scheduling

import "errors"

// Errors returned by the scheduling engine. Handlers map these onto HTTP
// statuses; none of them is retried automatically.
var (
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrPatientNotFound      = errors.New("patient not found")
	ErrAppointmentNotFound  = errors.New("appointment not found")
	ErrConflict             = errors.New("time slot is already booked")
	ErrInvalidConfiguration = errors.New("invalid schedule configuration")
	ErrInvalidSlot          = errors.New("requested time is not a bookable slot")
	ErrInvalidState         = errors.New("appointment is not in a schedulable state")
	ErrAlreadyCancelled     = errors.New("appointment is already cancelled")
)
