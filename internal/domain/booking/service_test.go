package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"rental-app-go/internal/domain/access"
)

const (
	roomID1     = "11111111-1111-1111-1111-111111111111"
	roomID2     = "22222222-2222-2222-2222-222222222222"
	propertyID1 = "33333333-3333-3333-3333-333333333333"
	tenantID1   = "44444444-4444-4444-4444-444444444444"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeBookingRepo struct {
	bookings     map[string]*Booking
	roomProperty map[string]string
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:     make(map[string]*Booking),
		roomProperty: make(map[string]string),
	}
}

// Transaction snapshots state and restores it when fn fails, mirroring a
// database rollback.
func (r *fakeBookingRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	snapshot := make(map[string]*Booking, len(r.bookings))
	for id, b := range r.bookings {
		copied := *b
		snapshot[id] = &copied
	}
	if err := fn(r); err != nil {
		r.bookings = snapshot
		return err
	}
	return nil
}

func (r *fakeBookingRepo) Create(ctx context.Context, b *Booking) error {
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) Update(ctx context.Context, b *Booking) error {
	if _, ok := r.bookings[b.ID]; !ok {
		return ErrBookingNotFound
	}
	copied := *b
	r.bookings[b.ID] = &copied
	return nil
}

func (r *fakeBookingRepo) GetByID(ctx context.Context, bookingID string) (*Booking, error) {
	b, ok := r.bookings[bookingID]
	if !ok {
		return nil, ErrBookingNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *fakeBookingRepo) Delete(ctx context.Context, bookingID string) (bool, error) {
	if _, ok := r.bookings[bookingID]; !ok {
		return false, nil
	}
	delete(r.bookings, bookingID)
	return true, nil
}

func (r *fakeBookingRepo) DeleteByUser(ctx context.Context, userID string) error {
	for id, b := range r.bookings {
		if b.UserID == userID {
			delete(r.bookings, id)
		}
	}
	return nil
}

func (r *fakeBookingRepo) CountConfirmedOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeBookingID string) (int64, error) {
	var count int64
	for _, b := range r.bookings {
		if b.RoomID != roomID || b.Status != StatusConfirmed {
			continue
		}
		if excludeBookingID != "" && b.ID == excludeBookingID {
			continue
		}
		// Closed intervals: touching boundaries overlap.
		if b.EndDate.Before(start) || b.StartDate.After(end) {
			continue
		}
		count++
	}
	return count, nil
}

func (r *fakeBookingRepo) ListDetailed(ctx context.Context, scope access.Scope) ([]Detail, error) {
	return []Detail{}, nil
}

func (r *fakeBookingRepo) RoomInProperty(ctx context.Context, roomID, propertyID string) (bool, error) {
	return r.roomProperty[roomID] == propertyID, nil
}

func (r *fakeBookingRepo) RoomProperty(ctx context.Context, roomID string) (string, error) {
	propertyID, ok := r.roomProperty[roomID]
	if !ok {
		return "", ErrRoomNotFound
	}
	return propertyID, nil
}

func (r *fakeBookingRepo) ConfirmPendingByUser(ctx context.Context, userID string) (int64, error) {
	var affected int64
	for _, b := range r.bookings {
		if b.UserID == userID && b.Status == StatusPending {
			b.Status = StatusConfirmed
			affected++
		}
	}
	return affected, nil
}

func (r *fakeBookingRepo) addConfirmed(id, roomID string, start, end time.Time) {
	r.bookings[id] = &Booking{
		ID:        id,
		RoomID:    roomID,
		UserID:    "someone",
		StartDate: start,
		EndDate:   end,
		Status:    StatusConfirmed,
	}
}

func TestCreateBookingDefaultsToPendingMonthly(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := NewService(repo)

	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		RoomID:    roomID1,
		UserID:    tenantID1,
		StartDate: date(2024, 3, 1),
		EndDate:   date(2024, 3, 31),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if b.Status != StatusPending {
		t.Fatalf("status = %s, want pending", b.Status)
	}
	if b.BillingCycle != CycleMonthly {
		t.Fatalf("cycle = %s, want monthly", b.BillingCycle)
	}
}

func TestCreateBookingRejectsInvertedRange(t *testing.T) {
	svc := NewService(newFakeBookingRepo())

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		RoomID:    roomID1,
		UserID:    tenantID1,
		StartDate: date(2024, 3, 31),
		EndDate:   date(2024, 3, 1),
	})
	if !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("expected ErrInvalidRange, got %v", err)
	}
}

func TestAvailabilityClosedIntervalBoundary(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.addConfirmed("existing", roomID1, date(2024, 1, 1), date(2024, 1, 31))
	svc := NewService(repo)

	// Starting exactly on the existing end date counts as a conflict.
	available, err := svc.IsRoomAvailable(context.Background(), roomID1, date(2024, 1, 31), date(2024, 2, 15), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if available {
		t.Fatalf("boundary date should conflict")
	}

	available, err = svc.IsRoomAvailable(context.Background(), roomID1, date(2024, 2, 1), date(2024, 2, 15), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !available {
		t.Fatalf("disjoint range should be available")
	}
}

func TestPendingBookingsDoNotBlock(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.bookings["pending"] = &Booking{
		ID: "pending", RoomID: roomID1, UserID: "someone",
		StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31),
		Status: StatusPending,
	}
	svc := NewService(repo)

	available, err := svc.IsRoomAvailable(context.Background(), roomID1, date(2024, 1, 10), date(2024, 1, 20), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !available {
		t.Fatalf("pending bookings must not block the room")
	}
}

func TestCreateBookingConflictCarriesRoomID(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.addConfirmed("existing", roomID1, date(2024, 1, 1), date(2024, 1, 31))
	svc := NewService(repo)

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		RoomID:    roomID1,
		UserID:    tenantID1,
		StartDate: date(2024, 1, 15),
		EndDate:   date(2024, 2, 15),
	})

	var unavailable *RoomUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected RoomUnavailableError, got %v", err)
	}
	if unavailable.RoomID != roomID1 {
		t.Fatalf("room id = %s, want %s", unavailable.RoomID, roomID1)
	}
	if len(repo.bookings) != 1 {
		t.Fatalf("conflicting insert must not persist")
	}
}

func TestUpdateBookingExcludesItself(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.roomProperty[roomID1] = propertyID1
	repo.bookings["b-1"] = &Booking{
		ID: "b-1", RoomID: roomID1, UserID: tenantID1,
		StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31),
		Status: StatusConfirmed,
	}
	svc := NewService(repo)

	scope := access.Scope{Kind: access.TenantSelf, UserID: tenantID1}
	b, err := svc.UpdateBooking(context.Background(), scope, UpdateBookingInput{
		ID:        "b-1",
		RoomID:    roomID1,
		StartDate: date(2024, 1, 5),
		EndDate:   date(2024, 2, 5),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !b.StartDate.Equal(date(2024, 1, 5)) {
		t.Fatalf("start date not updated")
	}
}

func TestConfirmBookingRechecksAvailability(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.roomProperty[roomID1] = propertyID1
	repo.addConfirmed("winner", roomID1, date(2024, 1, 1), date(2024, 1, 31))
	repo.bookings["loser"] = &Booking{
		ID: "loser", RoomID: roomID1, UserID: tenantID1,
		StartDate: date(2024, 1, 10), EndDate: date(2024, 2, 10),
		Status: StatusPending,
	}
	svc := NewService(repo)

	_, err := svc.ConfirmBooking(context.Background(), access.Scope{Kind: access.Unrestricted}, "loser")
	var unavailable *RoomUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected RoomUnavailableError, got %v", err)
	}
	if repo.bookings["loser"].Status != StatusPending {
		t.Fatalf("losing booking must stay pending")
	}
}

func TestConfirmBookingIdempotent(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.roomProperty[roomID1] = propertyID1
	repo.addConfirmed("b-1", roomID1, date(2024, 1, 1), date(2024, 1, 31))
	svc := NewService(repo)

	b, err := svc.ConfirmBooking(context.Background(), access.Scope{Kind: access.Unrestricted}, "b-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if b.Status != StatusConfirmed {
		t.Fatalf("status = %s, want confirmed", b.Status)
	}
}

func TestConfirmBookingOutOfScope(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.roomProperty[roomID1] = propertyID1
	repo.bookings["b-1"] = &Booking{
		ID: "b-1", RoomID: roomID1, UserID: tenantID1,
		StartDate: date(2024, 1, 1), EndDate: date(2024, 1, 31),
		Status: StatusPending,
	}
	svc := NewService(repo)

	scope := access.Scope{Kind: access.Properties, PropertyIDs: []string{"other-property"}}
	if _, err := svc.ConfirmBooking(context.Background(), scope, "b-1"); !errors.Is(err, access.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestReplaceTenantBookingsSwapsRooms(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.roomProperty[roomID1] = propertyID1
	repo.roomProperty[roomID2] = propertyID1
	repo.bookings["old"] = &Booking{
		ID: "old", RoomID: roomID1, UserID: tenantID1,
		StartDate: date(2024, 1, 1), EndDate: date(2024, 12, 31),
		Status: StatusConfirmed,
	}
	svc := NewService(repo)

	scope := access.Scope{Kind: access.Properties, PropertyIDs: []string{propertyID1}}
	created, err := svc.ReplaceTenantBookings(context.Background(), scope, ReplaceTenantInput{
		TenantID:  tenantID1,
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 12, 31),
		Assignments: []RoomAssignment{
			{PropertyID: propertyID1, RoomID: roomID2},
		},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(created) != 1 {
		t.Fatalf("created = %d, want 1", len(created))
	}
	if created[0].Status != StatusConfirmed || created[0].BillingCycle != CycleMonthly {
		t.Fatalf("defaults not applied: %+v", created[0])
	}
	if _, ok := repo.bookings["old"]; ok {
		t.Fatalf("old booking must be gone")
	}

	// The tenant's own prior booking on roomID2 must not block rebooking it.
	if _, err := svc.ReplaceTenantBookings(context.Background(), scope, ReplaceTenantInput{
		TenantID:    tenantID1,
		StartDate:   date(2024, 1, 1),
		EndDate:     date(2024, 12, 31),
		Assignments: []RoomAssignment{{PropertyID: propertyID1, RoomID: roomID2}},
	}); err != nil {
		t.Fatalf("rebooking own room failed: %v", err)
	}
}

func TestReplaceTenantBookingsRollsBackOnConflict(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.roomProperty[roomID1] = propertyID1
	repo.roomProperty[roomID2] = propertyID1
	repo.bookings["hers"] = &Booking{
		ID: "hers", RoomID: roomID1, UserID: tenantID1,
		StartDate: date(2024, 1, 1), EndDate: date(2024, 12, 31),
		Status: StatusConfirmed,
	}
	repo.addConfirmed("taken", roomID2, date(2024, 1, 1), date(2024, 12, 31))
	svc := NewService(repo)

	scope := access.Scope{Kind: access.Unrestricted}
	_, err := svc.ReplaceTenantBookings(context.Background(), scope, ReplaceTenantInput{
		TenantID:  tenantID1,
		StartDate: date(2024, 1, 1),
		EndDate:   date(2024, 12, 31),
		Assignments: []RoomAssignment{
			{PropertyID: propertyID1, RoomID: roomID2},
		},
	})

	var unavailable *RoomUnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected RoomUnavailableError, got %v", err)
	}
	if _, ok := repo.bookings["hers"]; !ok {
		t.Fatalf("prior booking must survive the rollback")
	}
}

func TestReplaceTenantBookingsOutOfScopeProperty(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.roomProperty[roomID1] = propertyID1
	svc := NewService(repo)

	scope := access.Scope{Kind: access.Properties, PropertyIDs: []string{"other-property"}}
	_, err := svc.ReplaceTenantBookings(context.Background(), scope, ReplaceTenantInput{
		TenantID:    tenantID1,
		Assignments: []RoomAssignment{{PropertyID: propertyID1, RoomID: roomID1}},
	})
	if !errors.Is(err, access.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestReplaceTenantBookingsRoomMismatch(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.roomProperty[roomID1] = "a-different-property"
	svc := NewService(repo)

	scope := access.Scope{Kind: access.Unrestricted}
	_, err := svc.ReplaceTenantBookings(context.Background(), scope, ReplaceTenantInput{
		TenantID:    tenantID1,
		Assignments: []RoomAssignment{{PropertyID: propertyID1, RoomID: roomID1}},
	})

	var mismatch *RoomMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected RoomMismatchError, got %v", err)
	}
	if mismatch.RoomID != roomID1 {
		t.Fatalf("room id = %s, want %s", mismatch.RoomID, roomID1)
	}
}

func TestConfirmTenant(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.bookings["p-1"] = &Booking{ID: "p-1", RoomID: roomID1, UserID: tenantID1, Status: StatusPending}
	repo.bookings["p-2"] = &Booking{ID: "p-2", RoomID: roomID2, UserID: tenantID1, Status: StatusPending}
	svc := NewService(repo)

	if err := svc.ConfirmTenant(context.Background(), tenantID1); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for id, b := range repo.bookings {
		if b.Status != StatusConfirmed {
			t.Fatalf("booking %s still %s", id, b.Status)
		}
	}

	if err := svc.ConfirmTenant(context.Background(), tenantID1); !errors.Is(err, ErrNothingPending) {
		t.Fatalf("expected ErrNothingPending, got %v", err)
	}
}
