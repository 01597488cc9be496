package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"rental-app-go/internal/domain/access"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	Create(ctx context.Context, bill *Bill) error
	Update(ctx context.Context, bill *Bill) error
	GetByID(ctx context.Context, billID string) (*Bill, error)
	Delete(ctx context.Context, billID string) (bool, error)
	ListByBooking(ctx context.Context, bookingID string) ([]Bill, error)

	// GetBookingPricing resolves the booking→room→property chain; returns
	// ErrBookingNotFound when any link is missing.
	GetBookingPricing(ctx context.Context, bookingID string) (*BookingPricing, error)

	// LatestRate returns the most recent effective rate row for the property
	// and utility type at asOf. ok is false when no row exists.
	LatestRate(ctx context.Context, propertyID, utilityType string, asOf time.Time) (rate decimal.Decimal, ok bool, err error)

	BillBelongsToUser(ctx context.Context, billID, userID string) (bool, error)
	ListRoomPrices(ctx context.Context, scope access.Scope) ([]RoomPriceRow, error)
	ListConfirmedBookingsByTenant(ctx context.Context, tenantID string) ([]TenantBookingRef, error)
}
