package maintenance

import "errors"

var (
	ErrRequestNotFound = errors.New("maintenance request not found")
	ErrNotYourRoom     = errors.New("tenant has no confirmed booking for room")
	ErrNotCancellable  = errors.New("only pending requests can be cancelled")
	ErrInvalidStatus   = errors.New("invalid maintenance status")
)
