package booking

import (
	"context"
	"time"

	"rental-app-go/internal/domain/access"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	Create(ctx context.Context, b *Booking) error
	Update(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, bookingID string) (*Booking, error)
	Delete(ctx context.Context, bookingID string) (bool, error)
	DeleteByUser(ctx context.Context, userID string) error

	// CountConfirmedOverlapping counts confirmed bookings on the room whose
	// closed date interval intersects [start, end], excluding at most one
	// booking id (empty string excludes nothing).
	CountConfirmedOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeBookingID string) (int64, error)

	ListDetailed(ctx context.Context, scope access.Scope) ([]Detail, error)
	RoomInProperty(ctx context.Context, roomID, propertyID string) (bool, error)
	RoomProperty(ctx context.Context, roomID string) (string, error)
	ConfirmPendingByUser(ctx context.Context, userID string) (int64, error)
}
