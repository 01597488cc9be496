package billing

import "errors"

var (
	ErrBillNotFound    = errors.New("bill not found")
	ErrBookingNotFound = errors.New("booking not found")
	// ErrInvalidTransition rejects a status change the lifecycle does not
	// define (there is deliberately no pending→unpaid path; editing the bill
	// is the only way back to unpaid).
	ErrInvalidTransition = errors.New("invalid bill status transition")
)
