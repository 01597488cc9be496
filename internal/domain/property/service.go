package property

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

// CreateProperty inserts the property, its initial electric and water rate
// rows, and the owner assignment in one transaction. When the caller supplies
// no owner (admin-created property) the assignment step is skipped.
func (s *Service) CreateProperty(ctx context.Context, input CreatePropertyInput) (*Property, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, validation.Errorf("name is required")
	}

	now := time.Now().UTC()
	prop := Property{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(input.Name),
		Address:     strings.TrimSpace(input.Address),
		Image:       strings.TrimSpace(input.Image),
		Description: input.Description,
	}

	err := s.repo.Transaction(ctx, func(tx Repository) error {
		if err := tx.CreateProperty(ctx, &prop); err != nil {
			return err
		}

		for _, rate := range []UtilityRate{
			{ID: uuid.NewString(), PropertyID: prop.ID, Type: UtilityElectric, Rate: input.ElectricRate, EffectiveFrom: now},
			{ID: uuid.NewString(), PropertyID: prop.ID, Type: UtilityWater, Rate: input.WaterRate, EffectiveFrom: now},
		} {
			rate := rate
			if err := tx.CreateUtilityRate(ctx, &rate); err != nil {
				return err
			}
		}

		if input.OwnerID != "" {
			return tx.AddOwner(ctx, prop.ID, input.OwnerID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &prop, nil
}

func (s *Service) UpdateProperty(ctx context.Context, scope access.Scope, input UpdatePropertyInput) (*Property, error) {
	if !scope.AllowsProperty(input.ID) {
		return nil, access.ErrForbidden
	}

	prop, err := s.repo.GetProperty(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	prop.Name = strings.TrimSpace(input.Name)
	prop.Address = strings.TrimSpace(input.Address)
	prop.Image = strings.TrimSpace(input.Image)
	prop.Description = input.Description
	prop.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateProperty(ctx, prop); err != nil {
		return nil, err
	}
	return prop, nil
}

func (s *Service) GetProperty(ctx context.Context, propertyID string) (*Property, error) {
	return s.repo.GetProperty(ctx, propertyID)
}

// ListProperties is the public browse view: every property with room counts,
// availability, and minimum prices.
func (s *Service) ListProperties(ctx context.Context) ([]PropertyWithStats, error) {
	props, err := s.repo.ListProperties(ctx)
	if err != nil {
		return nil, err
	}
	return s.withStats(ctx, props)
}

// ListManagedProperties returns the properties inside the caller's scope,
// with stats and current utility rates.
func (s *Service) ListManagedProperties(ctx context.Context, scope access.Scope) ([]PropertyWithStats, error) {
	if !scope.Manages() {
		return nil, access.ErrForbidden
	}

	props, err := s.repo.ListPropertiesScoped(ctx, scope)
	if err != nil {
		return nil, err
	}

	items, err := s.withStats(ctx, props)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	for i := range items {
		rates, err := s.repo.CurrentRates(ctx, items[i].ID, now)
		if err != nil {
			return nil, err
		}
		if rate, ok := rates[UtilityElectric]; ok {
			items[i].ElectricRate = rate.Rate
		}
		if rate, ok := rates[UtilityWater]; ok {
			items[i].WaterRate = rate.Rate
		}
	}
	return items, nil
}

func (s *Service) withStats(ctx context.Context, props []Property) ([]PropertyWithStats, error) {
	if len(props) == 0 {
		return []PropertyWithStats{}, nil
	}

	ids := make([]string, 0, len(props))
	for _, p := range props {
		ids = append(ids, p.ID)
	}

	stats, err := s.repo.StatsByProperty(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]PropertyWithStats, 0, len(props))
	for _, p := range props {
		items = append(items, PropertyWithStats{Property: p, Stats: stats[p.ID]})
	}
	return items, nil
}

// DeleteProperty refuses while rooms, bookings, or assignments still
// reference the property.
func (s *Service) DeleteProperty(ctx context.Context, scope access.Scope, propertyID string) error {
	if !scope.AllowsProperty(propertyID) {
		return access.ErrForbidden
	}

	refs, err := s.repo.CountPropertyReferences(ctx, propertyID)
	if err != nil {
		return err
	}
	if refs > 0 {
		return ErrPropertyInUse
	}

	deleted, err := s.repo.DeleteProperty(ctx, propertyID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPropertyNotFound
	}
	return nil
}

func (s *Service) AssignOwner(ctx context.Context, scope access.Scope, propertyID, ownerID string) error {
	if !scope.AllowsProperty(propertyID) {
		return access.ErrForbidden
	}
	if _, err := s.repo.GetProperty(ctx, propertyID); err != nil {
		return err
	}
	return s.repo.AddOwner(ctx, propertyID, ownerID)
}

func (s *Service) RemoveOwner(ctx context.Context, scope access.Scope, propertyID, ownerID string) error {
	if !scope.AllowsProperty(propertyID) {
		return access.ErrForbidden
	}
	removed, err := s.repo.RemoveOwner(ctx, propertyID, ownerID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrPropertyNotFound
	}
	return nil
}

func (s *Service) AssignStaff(ctx context.Context, scope access.Scope, propertyID, staffID string) error {
	if !scope.AllowsProperty(propertyID) {
		return access.ErrForbidden
	}
	if _, err := s.repo.GetProperty(ctx, propertyID); err != nil {
		return err
	}
	return s.repo.AddStaff(ctx, propertyID, staffID)
}

func (s *Service) RemoveStaff(ctx context.Context, scope access.Scope, propertyID, staffID string) error {
	if !scope.AllowsProperty(propertyID) {
		return access.ErrForbidden
	}
	removed, err := s.repo.RemoveStaff(ctx, propertyID, staffID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrPropertyNotFound
	}
	return nil
}

func (s *Service) CreateRoom(ctx context.Context, scope access.Scope, input CreateRoomInput) (*Room, error) {
	if !scope.AllowsProperty(input.PropertyID) {
		return nil, access.ErrForbidden
	}
	if strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Code) == "" {
		return nil, validation.Errorf("name and code are required")
	}

	if _, err := s.repo.GetProperty(ctx, input.PropertyID); err != nil {
		return nil, err
	}

	code := strings.TrimSpace(input.Code)
	taken, err := s.repo.CountRoomCode(ctx, input.PropertyID, code, "")
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ErrRoomCodeTaken
	}

	room := Room{
		ID:           uuid.NewString(),
		PropertyID:   input.PropertyID,
		Name:         strings.TrimSpace(input.Name),
		Code:         code,
		Description:  input.Description,
		PriceMonthly: input.PriceMonthly,
		PriceTerm:    input.PriceTerm,
		Deposit:      input.Deposit,
		HasAC:        input.HasAC,
		HasFan:       input.HasFan,
	}
	if err := s.repo.CreateRoom(ctx, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, scope access.Scope, input UpdateRoomInput) (*Room, error) {
	room, err := s.repo.GetRoom(ctx, input.RoomID)
	if err != nil {
		return nil, err
	}
	if !scope.AllowsProperty(room.PropertyID) {
		return nil, access.ErrForbidden
	}

	code := strings.TrimSpace(input.Code)
	taken, err := s.repo.CountRoomCode(ctx, room.PropertyID, code, room.ID)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, ErrRoomCodeTaken
	}

	room.Name = strings.TrimSpace(input.Name)
	room.Code = code
	room.Description = input.Description
	room.PriceMonthly = input.PriceMonthly
	room.PriceTerm = input.PriceTerm
	room.Deposit = input.Deposit
	room.HasAC = input.HasAC
	room.HasFan = input.HasFan
	room.UpdatedAt = time.Now().UTC()

	if err := s.repo.UpdateRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, propertyID string) ([]Room, error) {
	if _, err := s.repo.GetProperty(ctx, propertyID); err != nil {
		return nil, err
	}
	return s.repo.ListRooms(ctx, propertyID)
}

// DeleteRoom refuses while a pending or confirmed booking references the room.
func (s *Service) DeleteRoom(ctx context.Context, scope access.Scope, roomID string) error {
	room, err := s.repo.GetRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if !scope.AllowsProperty(room.PropertyID) {
		return access.ErrForbidden
	}

	active, err := s.repo.CountActiveBookingsByRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if active > 0 {
		return ErrRoomOccupied
	}

	deleted, err := s.repo.DeleteRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrRoomNotFound
	}
	return nil
}

// SetUtilityRate appends a new rate row; prior rows stay for history and the
// resolver picks the most recent effective one.
func (s *Service) SetUtilityRate(ctx context.Context, scope access.Scope, input SetRateInput) (*UtilityRate, error) {
	if !scope.AllowsProperty(input.PropertyID) {
		return nil, access.ErrForbidden
	}
	if !input.Type.Valid() {
		return nil, ErrInvalidUtility
	}
	if _, err := s.repo.GetProperty(ctx, input.PropertyID); err != nil {
		return nil, err
	}

	effective := input.EffectiveFrom
	if effective.IsZero() {
		effective = time.Now().UTC()
	}

	rate := UtilityRate{
		ID:            uuid.NewString(),
		PropertyID:    input.PropertyID,
		Type:          input.Type,
		Rate:          input.Rate,
		EffectiveFrom: effective,
	}
	if err := s.repo.CreateUtilityRate(ctx, &rate); err != nil {
		return nil, err
	}
	return &rate, nil
}

func (s *Service) ListRateHistory(ctx context.Context, scope access.Scope, propertyID string) ([]UtilityRate, error) {
	if !scope.AllowsProperty(propertyID) {
		return nil, access.ErrForbidden
	}
	return s.repo.ListRateHistory(ctx, propertyID)
}
