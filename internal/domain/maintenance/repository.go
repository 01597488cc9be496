package maintenance

import (
	"context"

	"rental-app-go/internal/domain/access"
)

type Repository interface {
	Create(ctx context.Context, req *Request) error
	Update(ctx context.Context, req *Request) error
	GetByID(ctx context.Context, requestID string) (*Request, error)
	Delete(ctx context.Context, requestID, userID string) (bool, error)
	ListDetailed(ctx context.Context, scope access.Scope) ([]Detail, error)
	ListByUser(ctx context.Context, userID string) ([]Detail, error)
	UserHoldsRoom(ctx context.Context, userID, roomID string) (bool, error)
	RoomProperty(ctx context.Context, roomID string) (string, error)
}
