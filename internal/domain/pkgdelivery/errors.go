package pkgdelivery

import "errors"

var (
	ErrPackageNotFound = errors.New("package not found")
	// ErrAlreadyReceived guards the terminal state: a received package can
	// never go back to pending.
	ErrAlreadyReceived = errors.New("package already received")
)
