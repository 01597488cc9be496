package tenant

import (
	"context"

	"rental-app-go/internal/domain/access"
)

type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
	GetByID(ctx context.Context, userID string) (*User, error)
	DeleteUser(ctx context.Context, userID string) (bool, error)
	CountUsername(ctx context.Context, username, excludeUserID string) (int64, error)
	ListDetailed(ctx context.Context, scope access.Scope) ([]Detail, error)
}
