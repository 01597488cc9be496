// Package validation carries the request-validation error the domain
// services raise for bad input; the transport layer maps it to a 400
// response instead of treating it as an internal failure.
package validation

import "fmt"

type Error struct {
	Msg string
}

func (e *Error) Error() string { return e.Msg }

func Errorf(format string, args ...interface{}) error {
	return &Error{Msg: fmt.Sprintf(format, args...)}
}
