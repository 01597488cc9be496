package property

import (
	"context"
	"time"

	"rental-app-go/internal/domain/access"
)

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error

	CreateProperty(ctx context.Context, p *Property) error
	UpdateProperty(ctx context.Context, p *Property) error
	GetProperty(ctx context.Context, propertyID string) (*Property, error)
	ListProperties(ctx context.Context) ([]Property, error)
	ListPropertiesScoped(ctx context.Context, scope access.Scope) ([]Property, error)
	DeleteProperty(ctx context.Context, propertyID string) (bool, error)
	CountPropertyReferences(ctx context.Context, propertyID string) (int64, error)
	StatsByProperty(ctx context.Context, propertyIDs []string) (map[string]Stats, error)

	AddOwner(ctx context.Context, propertyID, ownerID string) error
	RemoveOwner(ctx context.Context, propertyID, ownerID string) (bool, error)
	AddStaff(ctx context.Context, propertyID, staffID string) error
	RemoveStaff(ctx context.Context, propertyID, staffID string) (bool, error)

	CreateRoom(ctx context.Context, room *Room) error
	UpdateRoom(ctx context.Context, room *Room) error
	GetRoom(ctx context.Context, roomID string) (*Room, error)
	ListRooms(ctx context.Context, propertyID string) ([]Room, error)
	DeleteRoom(ctx context.Context, roomID string) (bool, error)
	CountRoomCode(ctx context.Context, propertyID, code, excludeRoomID string) (int64, error)
	CountActiveBookingsByRoom(ctx context.Context, roomID string) (int64, error)

	CreateUtilityRate(ctx context.Context, rate *UtilityRate) error
	CurrentRates(ctx context.Context, propertyID string, asOf time.Time) (map[UtilityType]UtilityRate, error)
	ListRateHistory(ctx context.Context, propertyID string) ([]UtilityRate, error)
}
