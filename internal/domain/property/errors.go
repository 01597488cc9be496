package property

import "errors"

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomCodeTaken    = errors.New("room code already exists in property")
	ErrRoomOccupied     = errors.New("room has pending or confirmed bookings")
	ErrPropertyInUse    = errors.New("property is still referenced")
	ErrInvalidUtility   = errors.New("invalid utility type")
)
