package booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rental-app-go/internal/domain/access"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// IsRoomAvailable reports whether the room is free for the closed interval
// [start, end]. Only confirmed bookings block a room; excludeBookingID lets
// an update ignore the booking being replaced.
func (s *Service) IsRoomAvailable(ctx context.Context, roomID string, start, end time.Time, excludeBookingID string) (bool, error) {
	count, err := s.repo.CountConfirmedOverlapping(ctx, roomID, start, end, excludeBookingID)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// CreateBooking checks availability and inserts inside one transaction so
// concurrent attempts for the same room are serialized by the store.
func (s *Service) CreateBooking(ctx context.Context, input CreateBookingInput) (*Booking, error) {
	if input.EndDate.Before(input.StartDate) {
		return nil, ErrInvalidRange
	}

	status := input.Status
	if status == "" {
		status = StatusPending
	}
	cycle := input.BillingCycle
	if cycle == "" {
		cycle = CycleMonthly
	}

	b := Booking{
		ID:           uuid.NewString(),
		RoomID:       input.RoomID,
		UserID:       input.UserID,
		StartDate:    input.StartDate,
		EndDate:      input.EndDate,
		Status:       status,
		BillingCycle: cycle,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		count, err := tx.CountConfirmedOverlapping(ctx, input.RoomID, input.StartDate, input.EndDate, "")
		if err != nil {
			return err
		}
		if count > 0 {
			return &RoomUnavailableError{RoomID: input.RoomID}
		}
		return tx.Create(ctx, &b)
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *Service) UpdateBooking(ctx context.Context, scope access.Scope, input UpdateBookingInput) (*Booking, error) {
	if input.EndDate.Before(input.StartDate) {
		return nil, ErrInvalidRange
	}

	var updated *Booking
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		b, err := tx.GetByID(ctx, input.ID)
		if err != nil {
			return err
		}
		if err := s.authorize(ctx, tx, scope, b); err != nil {
			return err
		}

		count, err := tx.CountConfirmedOverlapping(ctx, input.RoomID, input.StartDate, input.EndDate, b.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return &RoomUnavailableError{RoomID: input.RoomID}
		}

		b.RoomID = input.RoomID
		b.StartDate = input.StartDate
		b.EndDate = input.EndDate
		b.UpdatedAt = time.Now().UTC()
		if err := tx.Update(ctx, b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// ConfirmBooking advances pending to confirmed, re-checking availability
// because only confirmed bookings block a room.
func (s *Service) ConfirmBooking(ctx context.Context, scope access.Scope, bookingID string) (*Booking, error) {
	var confirmed *Booking
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		b, err := tx.GetByID(ctx, bookingID)
		if err != nil {
			return err
		}
		if err := s.authorizeManager(ctx, tx, scope, b); err != nil {
			return err
		}
		if b.Status == StatusConfirmed {
			confirmed = b
			return nil
		}

		count, err := tx.CountConfirmedOverlapping(ctx, b.RoomID, b.StartDate, b.EndDate, b.ID)
		if err != nil {
			return err
		}
		if count > 0 {
			return &RoomUnavailableError{RoomID: b.RoomID}
		}

		b.Status = StatusConfirmed
		b.UpdatedAt = time.Now().UTC()
		if err := tx.Update(ctx, b); err != nil {
			return err
		}
		confirmed = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

func (s *Service) CancelBooking(ctx context.Context, scope access.Scope, bookingID string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, s.repo, scope, b); err != nil {
		return nil, err
	}

	b.Status = StatusCancelled
	b.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Service) DeleteBooking(ctx context.Context, scope access.Scope, bookingID string) error {
	b, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, s.repo, scope, b); err != nil {
		return err
	}

	deleted, err := s.repo.Delete(ctx, bookingID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrBookingNotFound
	}
	return nil
}

func (s *Service) ListBookings(ctx context.Context, scope access.Scope) ([]Detail, error) {
	return s.repo.ListDetailed(ctx, scope)
}

// ReplaceTenantBookings clears the tenant's prior bookings and inserts the
// new assignments, re-checking every room after the delete, all in a single
// transaction. Any failed room rolls the whole replacement back.
func (s *Service) ReplaceTenantBookings(ctx context.Context, scope access.Scope, input ReplaceTenantInput) ([]Booking, error) {
	start, end := input.StartDate, input.EndDate
	now := time.Now().UTC()
	if start.IsZero() {
		start = now.Truncate(24 * time.Hour)
	}
	if end.IsZero() {
		end = start.AddDate(1, 0, 0)
	}
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	status := input.Status
	if status == "" {
		status = StatusConfirmed
	}

	var created []Booking
	err := s.repo.Transaction(ctx, func(tx Repository) error {
		created = created[:0]

		for _, a := range input.Assignments {
			if !scope.AllowsProperty(a.PropertyID) {
				return access.ErrForbidden
			}
			ok, err := tx.RoomInProperty(ctx, a.RoomID, a.PropertyID)
			if err != nil {
				return err
			}
			if !ok {
				return &RoomMismatchError{RoomID: a.RoomID, PropertyID: a.PropertyID}
			}
		}

		if err := tx.DeleteByUser(ctx, input.TenantID); err != nil {
			return err
		}

		for _, a := range input.Assignments {
			count, err := tx.CountConfirmedOverlapping(ctx, a.RoomID, start, end, "")
			if err != nil {
				return err
			}
			if count > 0 {
				return &RoomUnavailableError{RoomID: a.RoomID}
			}

			cycle := a.BillingCycle
			if cycle == "" {
				cycle = CycleMonthly
			}
			b := Booking{
				ID:           uuid.NewString(),
				RoomID:       a.RoomID,
				UserID:       input.TenantID,
				StartDate:    start,
				EndDate:      end,
				Status:       status,
				BillingCycle: cycle,
			}
			if err := tx.Create(ctx, &b); err != nil {
				return err
			}
			created = append(created, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// ConfirmTenant flips every pending booking of the tenant to confirmed.
func (s *Service) ConfirmTenant(ctx context.Context, tenantID string) error {
	affected, err := s.repo.ConfirmPendingByUser(ctx, tenantID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNothingPending
	}
	return nil
}

// DeleteTenantBookings removes every booking of the tenant (tenant removal).
func (s *Service) DeleteTenantBookings(ctx context.Context, tenantID string) error {
	return s.repo.DeleteByUser(ctx, tenantID)
}

func (s *Service) authorize(ctx context.Context, repo Repository, scope access.Scope, b *Booking) error {
	if scope.AllowsUser(b.UserID) {
		return nil
	}
	return s.authorizeManager(ctx, repo, scope, b)
}

func (s *Service) authorizeManager(ctx context.Context, repo Repository, scope access.Scope, b *Booking) error {
	if scope.Kind == access.Unrestricted {
		return nil
	}
	if scope.Kind != access.Properties {
		return access.ErrForbidden
	}
	propertyID, err := repo.RoomProperty(ctx, b.RoomID)
	if err != nil {
		return err
	}
	if !scope.AllowsProperty(propertyID) {
		return access.ErrForbidden
	}
	return nil
}
