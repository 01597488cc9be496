package booking

import (
	"errors"
	"fmt"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrInvalidRange    = errors.New("end date before start date")
	ErrNothingPending  = errors.New("no pending bookings for tenant")
)

// RoomUnavailableError names the room that triggered the conflict so callers
// can tell the user which assignment failed.
type RoomUnavailableError struct {
	RoomID string
}

func (e *RoomUnavailableError) Error() string {
	return fmt.Sprintf("room %s is not available for the requested dates", e.RoomID)
}

// RoomMismatchError reports a room assignment pointing at the wrong property.
type RoomMismatchError struct {
	RoomID     string
	PropertyID string
}

func (e *RoomMismatchError) Error() string {
	return fmt.Sprintf("room %s does not belong to property %s", e.RoomID, e.PropertyID)
}
