package tenant

import "errors"

var (
	ErrTenantNotFound = errors.New("tenant not found")
	ErrUsernameTaken  = errors.New("username already taken")
)
