package maintenance

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

// Create files a request for a room the tenant currently holds a confirmed
// booking on.
func (s *Service) Create(ctx context.Context, input CreateInput) (*Request, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, validation.Errorf("description is required")
	}

	holds, err := s.repo.UserHoldsRoom(ctx, input.UserID, input.RoomID)
	if err != nil {
		return nil, err
	}
	if !holds {
		return nil, ErrNotYourRoom
	}

	req := Request{
		ID:          uuid.NewString(),
		UserID:      input.UserID,
		RoomID:      input.RoomID,
		Description: strings.TrimSpace(input.Description),
		Status:      StatusPending,
	}
	if err := s.repo.Create(ctx, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// Update lets the tenant reword or re-target their own request.
func (s *Service) Update(ctx context.Context, input UpdateInput) (*Request, error) {
	if strings.TrimSpace(input.Description) == "" {
		return nil, validation.Errorf("description is required")
	}

	req, err := s.repo.GetByID(ctx, input.RequestID)
	if err != nil {
		return nil, err
	}
	if req.UserID != input.UserID {
		return nil, access.ErrForbidden
	}

	holds, err := s.repo.UserHoldsRoom(ctx, input.UserID, input.RoomID)
	if err != nil {
		return nil, err
	}
	if !holds {
		return nil, ErrNotYourRoom
	}

	req.RoomID = input.RoomID
	req.Description = strings.TrimSpace(input.Description)
	req.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Cancel is a tenant action allowed only while the request is still pending.
func (s *Service) Cancel(ctx context.Context, userID, requestID string) (*Request, error) {
	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.UserID != userID {
		return nil, access.ErrForbidden
	}
	if req.Status != StatusPending {
		return nil, ErrNotCancellable
	}

	req.Status = StatusCancelled
	req.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// SetStatus is the owner/staff/admin progress update.
func (s *Service) SetStatus(ctx context.Context, scope access.Scope, requestID string, status Status) (*Request, error) {
	if !status.SettableByManager() {
		return nil, ErrInvalidStatus
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if scope.Kind != access.Unrestricted {
		propertyID, err := s.repo.RoomProperty(ctx, req.RoomID)
		if err != nil {
			return nil, err
		}
		if !scope.AllowsProperty(propertyID) {
			return nil, access.ErrForbidden
		}
	}

	req.Status = status
	req.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *Service) List(ctx context.Context, scope access.Scope) ([]Detail, error) {
	if !scope.Manages() {
		return nil, access.ErrForbidden
	}
	return s.repo.ListDetailed(ctx, scope)
}

func (s *Service) ListMine(ctx context.Context, userID string) ([]Detail, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *Service) Delete(ctx context.Context, userID, requestID string) error {
	deleted, err := s.repo.Delete(ctx, requestID, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRequestNotFound
	}
	return nil
}
