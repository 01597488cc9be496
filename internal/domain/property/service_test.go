package property

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"rental-app-go/internal/domain/access"
	"rental-app-go/internal/domain/validation"
)

const ownerID1 = "11111111-1111-1111-1111-111111111111"

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fakePropertyRepo struct {
	properties map[string]*Property
	rooms      map[string]*Room
	rates      []UtilityRate
	owners     map[string][]string
	staff      map[string][]string

	activeBookings map[string]int64
	failRates      bool
}

func newFakePropertyRepo() *fakePropertyRepo {
	return &fakePropertyRepo{
		properties:     make(map[string]*Property),
		rooms:          make(map[string]*Room),
		owners:         make(map[string][]string),
		staff:          make(map[string][]string),
		activeBookings: make(map[string]int64),
	}
}

// Transaction snapshots and restores on failure, like a rollback.
func (r *fakePropertyRepo) Transaction(ctx context.Context, fn func(Repository) error) error {
	props := make(map[string]*Property, len(r.properties))
	for id, p := range r.properties {
		copied := *p
		props[id] = &copied
	}
	rates := append([]UtilityRate{}, r.rates...)
	owners := make(map[string][]string, len(r.owners))
	for id, list := range r.owners {
		owners[id] = append([]string{}, list...)
	}

	if err := fn(r); err != nil {
		r.properties = props
		r.rates = rates
		r.owners = owners
		return err
	}
	return nil
}

func (r *fakePropertyRepo) CreateProperty(ctx context.Context, p *Property) error {
	copied := *p
	r.properties[p.ID] = &copied
	return nil
}

func (r *fakePropertyRepo) UpdateProperty(ctx context.Context, p *Property) error {
	if _, ok := r.properties[p.ID]; !ok {
		return ErrPropertyNotFound
	}
	copied := *p
	r.properties[p.ID] = &copied
	return nil
}

func (r *fakePropertyRepo) GetProperty(ctx context.Context, propertyID string) (*Property, error) {
	p, ok := r.properties[propertyID]
	if !ok {
		return nil, ErrPropertyNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *fakePropertyRepo) ListProperties(ctx context.Context) ([]Property, error) {
	items := []Property{}
	for _, p := range r.properties {
		items = append(items, *p)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *fakePropertyRepo) ListPropertiesScoped(ctx context.Context, scope access.Scope) ([]Property, error) {
	items := []Property{}
	for _, p := range r.properties {
		if scope.AllowsProperty(p.ID) {
			items = append(items, *p)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (r *fakePropertyRepo) DeleteProperty(ctx context.Context, propertyID string) (bool, error) {
	if _, ok := r.properties[propertyID]; !ok {
		return false, nil
	}
	delete(r.properties, propertyID)
	return true, nil
}

func (r *fakePropertyRepo) CountPropertyReferences(ctx context.Context, propertyID string) (int64, error) {
	var refs int64
	for _, room := range r.rooms {
		if room.PropertyID == propertyID {
			refs++
		}
	}
	refs += int64(len(r.staff[propertyID]))
	return refs, nil
}

func (r *fakePropertyRepo) StatsByProperty(ctx context.Context, propertyIDs []string) (map[string]Stats, error) {
	stats := make(map[string]Stats)
	for _, id := range propertyIDs {
		var s Stats
		for _, room := range r.rooms {
			if room.PropertyID == id {
				s.TotalRooms++
			}
		}
		s.AvailableRooms = s.TotalRooms
		stats[id] = s
	}
	return stats, nil
}

func (r *fakePropertyRepo) AddOwner(ctx context.Context, propertyID, ownerID string) error {
	r.owners[propertyID] = append(r.owners[propertyID], ownerID)
	return nil
}

func (r *fakePropertyRepo) RemoveOwner(ctx context.Context, propertyID, ownerID string) (bool, error) {
	list := r.owners[propertyID]
	for i, id := range list {
		if id == ownerID {
			r.owners[propertyID] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePropertyRepo) AddStaff(ctx context.Context, propertyID, staffID string) error {
	r.staff[propertyID] = append(r.staff[propertyID], staffID)
	return nil
}

func (r *fakePropertyRepo) RemoveStaff(ctx context.Context, propertyID, staffID string) (bool, error) {
	list := r.staff[propertyID]
	for i, id := range list {
		if id == staffID {
			r.staff[propertyID] = append(list[:i], list[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePropertyRepo) CreateRoom(ctx context.Context, room *Room) error {
	copied := *room
	r.rooms[room.ID] = &copied
	return nil
}

func (r *fakePropertyRepo) UpdateRoom(ctx context.Context, room *Room) error {
	if _, ok := r.rooms[room.ID]; !ok {
		return ErrRoomNotFound
	}
	copied := *room
	r.rooms[room.ID] = &copied
	return nil
}

func (r *fakePropertyRepo) GetRoom(ctx context.Context, roomID string) (*Room, error) {
	room, ok := r.rooms[roomID]
	if !ok {
		return nil, ErrRoomNotFound
	}
	copied := *room
	return &copied, nil
}

func (r *fakePropertyRepo) ListRooms(ctx context.Context, propertyID string) ([]Room, error) {
	items := []Room{}
	for _, room := range r.rooms {
		if room.PropertyID == propertyID {
			items = append(items, *room)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Code < items[j].Code })
	return items, nil
}

func (r *fakePropertyRepo) DeleteRoom(ctx context.Context, roomID string) (bool, error) {
	if _, ok := r.rooms[roomID]; !ok {
		return false, nil
	}
	delete(r.rooms, roomID)
	return true, nil
}

func (r *fakePropertyRepo) CountRoomCode(ctx context.Context, propertyID, code, excludeRoomID string) (int64, error) {
	var count int64
	for _, room := range r.rooms {
		if room.PropertyID != propertyID || room.Code != code {
			continue
		}
		if excludeRoomID != "" && room.ID == excludeRoomID {
			continue
		}
		count++
	}
	return count, nil
}

func (r *fakePropertyRepo) CountActiveBookingsByRoom(ctx context.Context, roomID string) (int64, error) {
	return r.activeBookings[roomID], nil
}

func (r *fakePropertyRepo) CreateUtilityRate(ctx context.Context, rate *UtilityRate) error {
	if r.failRates {
		return fmt.Errorf("rate insert failed")
	}
	r.rates = append(r.rates, *rate)
	return nil
}

func (r *fakePropertyRepo) CurrentRates(ctx context.Context, propertyID string, asOf time.Time) (map[UtilityType]UtilityRate, error) {
	result := make(map[UtilityType]UtilityRate)
	for _, rate := range r.rates {
		if rate.PropertyID != propertyID || rate.EffectiveFrom.After(asOf) {
			continue
		}
		current, ok := result[rate.Type]
		if !ok || rate.EffectiveFrom.After(current.EffectiveFrom) {
			result[rate.Type] = rate
		}
	}
	return result, nil
}

func (r *fakePropertyRepo) ListRateHistory(ctx context.Context, propertyID string) ([]UtilityRate, error) {
	items := []UtilityRate{}
	for _, rate := range r.rates {
		if rate.PropertyID == propertyID {
			items = append(items, rate)
		}
	}
	return items, nil
}

func adminScope() access.Scope {
	return access.Scope{Kind: access.Unrestricted}
}

func TestCreatePropertySeedsRatesAndOwner(t *testing.T) {
	repo := newFakePropertyRepo()
	svc := NewService(repo)

	prop, err := svc.CreateProperty(context.Background(), CreatePropertyInput{
		Name:         "Sunrise Court",
		Address:      "12 Hill Rd",
		OwnerID:      ownerID1,
		ElectricRate: dec("7"),
		WaterRate:    dec("18"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(repo.rates) != 2 {
		t.Fatalf("rates = %d, want electric + water", len(repo.rates))
	}
	if len(repo.owners[prop.ID]) != 1 || repo.owners[prop.ID][0] != ownerID1 {
		t.Fatalf("owner assignment missing: %+v", repo.owners[prop.ID])
	}
}

func TestCreatePropertyRollsBackOnRateFailure(t *testing.T) {
	repo := newFakePropertyRepo()
	repo.failRates = true
	svc := NewService(repo)

	_, err := svc.CreateProperty(context.Background(), CreatePropertyInput{Name: "Sunrise Court"})
	if err == nil {
		t.Fatalf("expected error")
	}
	if len(repo.properties) != 0 {
		t.Fatalf("property must not survive a failed rate insert")
	}
}

func TestUpdatePropertyOutOfScope(t *testing.T) {
	repo := newFakePropertyRepo()
	repo.properties["p-1"] = &Property{ID: "p-1", Name: "Sunrise Court"}
	svc := NewService(repo)

	scope := access.Scope{Kind: access.Properties, PropertyIDs: []string{"p-2"}}
	_, err := svc.UpdateProperty(context.Background(), scope, UpdatePropertyInput{ID: "p-1", Name: "Renamed"})
	if !errors.Is(err, access.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDeletePropertyBlockedWhileReferenced(t *testing.T) {
	repo := newFakePropertyRepo()
	repo.properties["p-1"] = &Property{ID: "p-1"}
	repo.rooms["r-1"] = &Room{ID: "r-1", PropertyID: "p-1", Code: "101"}
	svc := NewService(repo)

	if err := svc.DeleteProperty(context.Background(), adminScope(), "p-1"); !errors.Is(err, ErrPropertyInUse) {
		t.Fatalf("expected ErrPropertyInUse, got %v", err)
	}

	delete(repo.rooms, "r-1")
	if err := svc.DeleteProperty(context.Background(), adminScope(), "p-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestCreateRoomCodeUniquePerProperty(t *testing.T) {
	repo := newFakePropertyRepo()
	repo.properties["p-1"] = &Property{ID: "p-1"}
	repo.properties["p-2"] = &Property{ID: "p-2"}
	repo.rooms["r-1"] = &Room{ID: "r-1", PropertyID: "p-1", Code: "101"}
	svc := NewService(repo)

	_, err := svc.CreateRoom(context.Background(), adminScope(), CreateRoomInput{
		PropertyID: "p-1", Name: "Room 101", Code: "101",
	})
	if !errors.Is(err, ErrRoomCodeTaken) {
		t.Fatalf("expected ErrRoomCodeTaken, got %v", err)
	}

	// Same code under a different property is fine.
	if _, err := svc.CreateRoom(context.Background(), adminScope(), CreateRoomInput{
		PropertyID: "p-2", Name: "Room 101", Code: "101",
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestUpdateRoomKeepingOwnCode(t *testing.T) {
	repo := newFakePropertyRepo()
	repo.properties["p-1"] = &Property{ID: "p-1"}
	repo.rooms["r-1"] = &Room{ID: "r-1", PropertyID: "p-1", Name: "Room 101", Code: "101"}
	svc := NewService(repo)

	room, err := svc.UpdateRoom(context.Background(), adminScope(), UpdateRoomInput{
		RoomID: "r-1", Name: "Room 101 deluxe", Code: "101",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if room.Name != "Room 101 deluxe" {
		t.Fatalf("name = %q", room.Name)
	}
}

func TestDeleteRoomBlockedWhileBooked(t *testing.T) {
	repo := newFakePropertyRepo()
	repo.properties["p-1"] = &Property{ID: "p-1"}
	repo.rooms["r-1"] = &Room{ID: "r-1", PropertyID: "p-1", Code: "101"}
	repo.activeBookings["r-1"] = 1
	svc := NewService(repo)

	if err := svc.DeleteRoom(context.Background(), adminScope(), "r-1"); !errors.Is(err, ErrRoomOccupied) {
		t.Fatalf("expected ErrRoomOccupied, got %v", err)
	}

	repo.activeBookings["r-1"] = 0
	if err := svc.DeleteRoom(context.Background(), adminScope(), "r-1"); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}

func TestSetUtilityRateAppendsHistory(t *testing.T) {
	repo := newFakePropertyRepo()
	repo.properties["p-1"] = &Property{ID: "p-1"}
	svc := NewService(repo)

	older := time.Now().UTC().AddDate(0, -1, 0)
	if _, err := svc.SetUtilityRate(context.Background(), adminScope(), SetRateInput{
		PropertyID: "p-1", Type: UtilityWater, Rate: dec("15"), EffectiveFrom: older,
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := svc.SetUtilityRate(context.Background(), adminScope(), SetRateInput{
		PropertyID: "p-1", Type: UtilityWater, Rate: dec("18"),
	}); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(repo.rates) != 2 {
		t.Fatalf("rates = %d, want append-only history of 2", len(repo.rates))
	}

	current, err := repo.CurrentRates(context.Background(), "p-1", time.Now().UTC())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !current[UtilityWater].Rate.Equal(dec("18")) {
		t.Fatalf("current water rate = %s, want 18", current[UtilityWater].Rate)
	}
}

func TestSetUtilityRateRejectsUnknownType(t *testing.T) {
	repo := newFakePropertyRepo()
	repo.properties["p-1"] = &Property{ID: "p-1"}
	svc := NewService(repo)

	_, err := svc.SetUtilityRate(context.Background(), adminScope(), SetRateInput{
		PropertyID: "p-1", Type: UtilityType("gas"), Rate: dec("3"),
	})
	if !errors.Is(err, ErrInvalidUtility) {
		t.Fatalf("expected ErrInvalidUtility, got %v", err)
	}
}

func TestListManagedPropertiesScoped(t *testing.T) {
	repo := newFakePropertyRepo()
	repo.properties["p-1"] = &Property{ID: "p-1", Name: "Mine"}
	repo.properties["p-2"] = &Property{ID: "p-2", Name: "Not mine"}
	repo.rates = append(repo.rates, UtilityRate{
		PropertyID: "p-1", Type: UtilityElectric, Rate: dec("7"),
		EffectiveFrom: time.Now().UTC().AddDate(0, 0, -1),
	})
	svc := NewService(repo)

	scope := access.Scope{Kind: access.Properties, PropertyIDs: []string{"p-1"}}
	items, err := svc.ListManagedProperties(context.Background(), scope)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(items) != 1 || items[0].ID != "p-1" {
		t.Fatalf("items = %+v, want only p-1", items)
	}
	if !items[0].ElectricRate.Equal(dec("7")) {
		t.Fatalf("electric rate = %s, want 7", items[0].ElectricRate)
	}

	if _, err := svc.ListManagedProperties(context.Background(), access.Scope{Kind: access.TenantSelf}); !errors.Is(err, access.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for tenant scope, got %v", err)
	}
}

func TestCreatePropertyRequiresName(t *testing.T) {
	svc := NewService(newFakePropertyRepo())

	_, err := svc.CreateProperty(context.Background(), CreatePropertyInput{Name: "  "})
	var invalid *validation.Error
	if !errors.As(err, &invalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
