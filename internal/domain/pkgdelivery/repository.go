package pkgdelivery

import (
	"context"

	"rental-app-go/internal/domain/access"
)

type Repository interface {
	Create(ctx context.Context, pkg *Package) error
	Update(ctx context.Context, pkg *Package) error
	GetByID(ctx context.Context, packageID string) (*Package, error)
	GetDetail(ctx context.Context, packageID string) (*Detail, error)
	Delete(ctx context.Context, packageID string) (bool, error)
	ListDetailed(ctx context.Context, scope access.Scope) ([]Detail, error)
}
