package tenant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"rental-app-go/internal/domain/access"
	"rental-app-go/internal/domain/booking"
	"rental-app-go/internal/domain/validation"
)

// BookingManager is the slice of the booking service the directory composes
// with: every tenant create/update replaces the tenant's booking set.
type BookingManager interface {
	ReplaceTenantBookings(ctx context.Context, scope access.Scope, input booking.ReplaceTenantInput) ([]booking.Booking, error)
	ConfirmTenant(ctx context.Context, tenantID string) error
	DeleteTenantBookings(ctx context.Context, tenantID string) error
}

type Service struct {
	repo     Repository
	bookings BookingManager
}

func NewService(repo Repository, bookings BookingManager) *Service {
	return &Service{repo: repo, bookings: bookings}
}

// Create registers a tenant user and books the requested rooms. The booking
// replacement runs in its own transaction; if it fails the fresh user row is
// removed again so a retry with the same username succeeds.
func (s *Service) Create(ctx context.Context, scope access.Scope, input CreateInput) (*User, []booking.Booking, error) {
	if !scope.Manages() {
		return nil, nil, access.ErrForbidden
	}
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, nil, validation.Errorf("username is required")
	}
	if len(input.Assignments) == 0 {
		return nil, nil, validation.Errorf("at least one room is required")
	}

	taken, err := s.repo.CountUsername(ctx, username, "")
	if err != nil {
		return nil, nil, err
	}
	if taken > 0 {
		return nil, nil, ErrUsernameTaken
	}

	user := User{
		ID:       uuid.NewString(),
		Username: username,
		Fullname: strings.TrimSpace(input.Fullname),
		Email:    strings.TrimSpace(input.Email),
		Phone:    strings.TrimSpace(input.Phone),
		LineID:   strings.TrimSpace(input.LineID),
		Role:     string(access.RoleTenant),
	}
	if err := s.repo.CreateUser(ctx, &user); err != nil {
		return nil, nil, err
	}

	bookings, err := s.bookings.ReplaceTenantBookings(ctx, scope, replaceInput(user.ID, input.Assignments))
	if err != nil {
		if _, delErr := s.repo.DeleteUser(ctx, user.ID); delErr != nil {
			return nil, nil, fmt.Errorf("booking tenant rooms: %w (cleanup failed: %v)", err, delErr)
		}
		return nil, nil, err
	}
	return &user, bookings, nil
}

// Update rewrites the tenant's profile and replaces their booking set.
func (s *Service) Update(ctx context.Context, scope access.Scope, input UpdateInput) (*User, []booking.Booking, error) {
	if !scope.Manages() {
		return nil, nil, access.ErrForbidden
	}

	user, err := s.repo.GetByID(ctx, input.TenantID)
	if err != nil {
		return nil, nil, err
	}

	user.Fullname = strings.TrimSpace(input.Fullname)
	user.Email = strings.TrimSpace(input.Email)
	user.Phone = strings.TrimSpace(input.Phone)
	user.LineID = strings.TrimSpace(input.LineID)
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, nil, err
	}

	var bookings []booking.Booking
	if len(input.Assignments) > 0 {
		bookings, err = s.bookings.ReplaceTenantBookings(ctx, scope, replaceInput(user.ID, input.Assignments))
		if err != nil {
			return nil, nil, err
		}
	}
	return user, bookings, nil
}

// Confirm promotes all of the tenant's pending bookings to confirmed.
func (s *Service) Confirm(ctx context.Context, scope access.Scope, tenantID string) error {
	if !scope.Manages() {
		return access.ErrForbidden
	}
	if _, err := s.repo.GetByID(ctx, tenantID); err != nil {
		return err
	}
	return s.bookings.ConfirmTenant(ctx, tenantID)
}

// Delete removes the tenant's bookings and then the user row.
func (s *Service) Delete(ctx context.Context, scope access.Scope, tenantID string) error {
	if !scope.Manages() {
		return access.ErrForbidden
	}
	if err := s.bookings.DeleteTenantBookings(ctx, tenantID); err != nil {
		return err
	}
	deleted, err := s.repo.DeleteUser(ctx, tenantID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrTenantNotFound
	}
	return nil
}

func (s *Service) List(ctx context.Context, scope access.Scope) ([]Detail, error) {
	if !scope.Manages() {
		return nil, access.ErrForbidden
	}
	return s.repo.ListDetailed(ctx, scope)
}

func (s *Service) Get(ctx context.Context, userID string) (*User, error) {
	return s.repo.GetByID(ctx, userID)
}

func replaceInput(tenantID string, assignments []Assignment) booking.ReplaceTenantInput {
	rooms := make([]booking.RoomAssignment, 0, len(assignments))
	for _, a := range assignments {
		rooms = append(rooms, booking.RoomAssignment{
			PropertyID:   a.PropertyID,
			RoomID:       a.RoomID,
			BillingCycle: booking.Cycle(a.BillingCycle),
		})
	}
	return booking.ReplaceTenantInput{
		TenantID:    tenantID,
		Assignments: rooms,
		Status:      booking.StatusConfirmed,
	}
}
