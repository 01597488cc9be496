package pkgdelivery

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"rental-app-go/internal/domain/access"
	"rental-app-go/internal/domain/validation"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, scope access.Scope, input CreateInput) (*Package, error) {
	if input.PropertyID == "" || strings.TrimSpace(input.Name) == "" {
		return nil, validation.Errorf("property_id and name are required")
	}
	if !scope.AllowsProperty(input.PropertyID) {
		return nil, access.ErrForbidden
	}

	pkg := Package{
		ID:          uuid.NewString(),
		PropertyID:  input.PropertyID,
		UserID:      input.UserID,
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Price:       input.Price,
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, &pkg); err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (s *Service) Update(ctx context.Context, scope access.Scope, input UpdateInput) (*Package, error) {
	if input.UserID == "" {
		return nil, validation.Errorf("recipient is required")
	}

	pkg, err := s.repo.GetByID(ctx, input.PackageID)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsProperty(pkg.PropertyID) {
		return nil, access.ErrForbidden
	}

	pkg.Name = strings.TrimSpace(input.Name)
	pkg.Description = input.Description
	pkg.Price = input.Price
	pkg.UserID = input.UserID
	pkg.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

// MarkReceived is the recipient's pickup confirmation. Received is terminal;
// a second call fails rather than re-stamping.
func (s *Service) MarkReceived(ctx context.Context, userID, packageID string) (*Package, error) {
	pkg, err := s.repo.GetByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	if pkg.UserID != userID {
		return nil, access.ErrForbidden
	}
	if pkg.Status == StatusReceived {
		return nil, ErrAlreadyReceived
	}

	now := time.Now().UTC()
	pkg.Status = StatusReceived
	pkg.ReceivedAt = &now
	pkg.UpdatedAt = now
	if err := s.repo.Update(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *Service) GetDetail(ctx context.Context, packageID string) (*Detail, error) {
	return s.repo.GetDetail(ctx, packageID)
}

func (s *Service) List(ctx context.Context, scope access.Scope) ([]Detail, error) {
	return s.repo.ListDetailed(ctx, scope)
}

func (s *Service) Delete(ctx context.Context, scope access.Scope, packageID string) error {
	pkg, err := s.repo.GetByID(ctx, packageID)
	if err != nil {
		return err
	}
	if !scope.AllowsProperty(pkg.PropertyID) {
		return access.ErrForbidden
	}

	deleted, err := s.repo.Delete(ctx, packageID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPackageNotFound
	}
	return nil
}
