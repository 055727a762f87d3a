package clinic

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrInvalidDateFormat     = errors.New("date must be YYYY-MM-DD")
	ErrRecordNotFound        = errors.New("record not found")
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrUnknownService        = errors.New("unknown service")
	ErrCapacityExceeded      = errors.New("no open slots available for appointments")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrPaymentExceedsBalance = errors.New("payment amount exceeds the amount due")
	ErrAlreadyFullyPaid      = errors.New("appointment is already fully paid")
	ErrIdentifierExhausted   = errors.New("identifier range exhausted")
	ErrExportsUnavailable    = errors.New("history store cannot list exports")
)
