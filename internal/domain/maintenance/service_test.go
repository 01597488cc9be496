package maintenance

import (
	"context"
	"errors"
	"testing"

	"rental-app-go/internal/domain/access"
	"rental-app-go/internal/domain/validation"
)

const (
	tenantID1 = "11111111-1111-1111-1111-111111111111"
	tenantID2 = "22222222-2222-2222-2222-222222222222"
	roomID1   = "33333333-3333-3333-3333-333333333333"
	roomID2   = "44444444-4444-4444-4444-444444444444"
)

type fakeMaintenanceRepo struct {
	requests     map[string]*Request
	heldRooms    map[string]string // userID -> roomID with a confirmed booking
	roomProperty map[string]string
}

func newFakeMaintenanceRepo() *fakeMaintenanceRepo {
	return &fakeMaintenanceRepo{
		requests:     make(map[string]*Request),
		heldRooms:    make(map[string]string),
		roomProperty: make(map[string]string),
	}
}

func (r *fakeMaintenanceRepo) Create(ctx context.Context, req *Request) error {
	copied := *req
	r.requests[req.ID] = &copied
	return nil
}

func (r *fakeMaintenanceRepo) Update(ctx context.Context, req *Request) error {
	if _, ok := r.requests[req.ID]; !ok {
		return ErrRequestNotFound
	}
	copied := *req
	r.requests[req.ID] = &copied
	return nil
}

func (r *fakeMaintenanceRepo) GetByID(ctx context.Context, requestID string) (*Request, error) {
	req, ok := r.requests[requestID]
	if !ok {
		return nil, ErrRequestNotFound
	}
	copied := *req
	return &copied, nil
}

func (r *fakeMaintenanceRepo) Delete(ctx context.Context, requestID, userID string) (bool, error) {
	req, ok := r.requests[requestID]
	if !ok {
		return false, nil
	}
	if userID != "" && req.UserID != userID {
		return false, nil
	}
	delete(r.requests, requestID)
	return true, nil
}

func (r *fakeMaintenanceRepo) ListDetailed(ctx context.Context, scope access.Scope) ([]Detail, error) {
	items := []Detail{}
	for _, req := range r.requests {
		if !scope.AllowsProperty(r.roomProperty[req.RoomID]) {
			continue
		}
		items = append(items, Detail{Request: *req})
	}
	return items, nil
}

func (r *fakeMaintenanceRepo) ListByUser(ctx context.Context, userID string) ([]Detail, error) {
	items := []Detail{}
	for _, req := range r.requests {
		if req.UserID == userID {
			items = append(items, Detail{Request: *req})
		}
	}
	return items, nil
}

func (r *fakeMaintenanceRepo) UserHoldsRoom(ctx context.Context, userID, roomID string) (bool, error) {
	return r.heldRooms[userID] == roomID, nil
}

func (r *fakeMaintenanceRepo) RoomProperty(ctx context.Context, roomID string) (string, error) {
	propertyID, ok := r.roomProperty[roomID]
	if !ok {
		return "", ErrRequestNotFound
	}
	return propertyID, nil
}

func TestCreateRequiresHeldRoom(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	repo.heldRooms[tenantID1] = roomID1
	svc := NewService(repo)

	req, err := svc.Create(context.Background(), CreateInput{
		UserID: tenantID1, RoomID: roomID1, Description: "leaking faucet",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Status != StatusPending {
		t.Fatalf("status = %q, want pending", req.Status)
	}

	_, err = svc.Create(context.Background(), CreateInput{
		UserID: tenantID1, RoomID: roomID2, Description: "broken light",
	})
	if !errors.Is(err, ErrNotYourRoom) {
		t.Fatalf("expected ErrNotYourRoom, got %v", err)
	}
}

func TestUpdateOnlyOwnRequest(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	repo.heldRooms[tenantID2] = roomID1
	repo.requests["m-1"] = &Request{ID: "m-1", UserID: tenantID1, RoomID: roomID1, Status: StatusPending}
	svc := NewService(repo)

	_, err := svc.Update(context.Background(), UpdateInput{
		RequestID: "m-1", UserID: tenantID2, RoomID: roomID1, Description: "rewritten",
	})
	if !errors.Is(err, access.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCancelOnlyWhilePending(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	repo.requests["m-1"] = &Request{ID: "m-1", UserID: tenantID1, RoomID: roomID1, Status: StatusPending}
	svc := NewService(repo)

	req, err := svc.Cancel(context.Background(), tenantID1, "m-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Status != StatusCancelled {
		t.Fatalf("status = %q, want cancelled", req.Status)
	}

	if _, err := svc.Cancel(context.Background(), tenantID1, "m-1"); !errors.Is(err, ErrNotCancellable) {
		t.Fatalf("expected ErrNotCancellable, got %v", err)
	}

	repo.requests["m-2"] = &Request{ID: "m-2", UserID: tenantID1, RoomID: roomID1, Status: StatusInProgress}
	if _, err := svc.Cancel(context.Background(), tenantID1, "m-2"); !errors.Is(err, ErrNotCancellable) {
		t.Fatalf("expected ErrNotCancellable for in_progress, got %v", err)
	}
}

func TestCancelSomeoneElsesRequest(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	repo.requests["m-1"] = &Request{ID: "m-1", UserID: tenantID1, RoomID: roomID1, Status: StatusPending}
	svc := NewService(repo)

	if _, err := svc.Cancel(context.Background(), tenantID2, "m-1"); !errors.Is(err, access.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestSetStatusByManager(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	repo.roomProperty[roomID1] = "p-1"
	repo.requests["m-1"] = &Request{ID: "m-1", UserID: tenantID1, RoomID: roomID1, Status: StatusPending}
	svc := NewService(repo)

	scope := access.Scope{Kind: access.Properties, PropertyIDs: []string{"p-1"}}
	req, err := svc.SetStatus(context.Background(), scope, "m-1", StatusInProgress)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.Status != StatusInProgress {
		t.Fatalf("status = %q, want in_progress", req.Status)
	}
}

func TestSetStatusRejectsCancelled(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	repo.roomProperty[roomID1] = "p-1"
	repo.requests["m-1"] = &Request{ID: "m-1", UserID: tenantID1, RoomID: roomID1, Status: StatusPending}
	svc := NewService(repo)

	_, err := svc.SetStatus(context.Background(), access.Scope{Kind: access.Unrestricted}, "m-1", StatusCancelled)
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestSetStatusOutOfScope(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	repo.roomProperty[roomID1] = "p-1"
	repo.requests["m-1"] = &Request{ID: "m-1", UserID: tenantID1, RoomID: roomID1, Status: StatusPending}
	svc := NewService(repo)

	scope := access.Scope{Kind: access.Properties, PropertyIDs: []string{"p-2"}}
	if _, err := svc.SetStatus(context.Background(), scope, "m-1", StatusCompleted); !errors.Is(err, access.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestListRequiresManagerScope(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	svc := NewService(repo)

	if _, err := svc.List(context.Background(), access.Scope{Kind: access.TenantSelf, UserID: tenantID1}); !errors.Is(err, access.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDeleteOwnRequest(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	repo.requests["m-1"] = &Request{ID: "m-1", UserID: tenantID1, RoomID: roomID1, Status: StatusCancelled}
	svc := NewService(repo)

	if err := svc.Delete(context.Background(), tenantID2, "m-1"); !errors.Is(err, ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound for other tenant, got %v", err)
	}
	if err := svc.Delete(context.Background(), tenantID1, "m-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCreateRequiresDescription(t *testing.T) {
	repo := newFakeMaintenanceRepo()
	repo.heldRooms[tenantID1] = roomID1
	svc := NewService(repo)

	_, err := svc.Create(context.Background(), CreateInput{UserID: tenantID1, RoomID: roomID1, Description: "  "})
	var invalid *validation.Error
	if !errors.As(err, &invalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
