package property

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	accessdomain "rental-app-go/internal/domain/access"
	propertydomain "rental-app-go/internal/domain/property"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(propertydomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CreateProperty(ctx context.Context, p *propertydomain.Property) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *PostgresRepository) UpdateProperty(ctx context.Context, p *propertydomain.Property) error {
	return r.db.WithContext(ctx).
		Model(&propertydomain.Property{}).
		Where("id = ?", p.ID).
		Updates(map[string]interface{}{
			"name":        p.Name,
			"address":     p.Address,
			"image":       p.Image,
			"description": p.Description,
			"updated_at":  p.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) GetProperty(ctx context.Context, propertyID string) (*propertydomain.Property, error) {
	var p propertydomain.Property
	if err := r.db.WithContext(ctx).Where("id = ?", propertyID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, propertydomain.ErrPropertyNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostgresRepository) ListProperties(ctx context.Context) ([]propertydomain.Property, error) {
	var items []propertydomain.Property
	if err := r.db.WithContext(ctx).Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) ListPropertiesScoped(ctx context.Context, scope accessdomain.Scope) ([]propertydomain.Property, error) {
	var items []propertydomain.Property
	err := r.db.WithContext(ctx).
		Scopes(scope.Predicate("properties.id", "")).
		Order("properties.id").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) DeleteProperty(ctx context.Context, propertyID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&propertydomain.Property{}, "id = ?", propertyID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountPropertyReferences(ctx context.Context, propertyID string) (int64, error) {
	var rooms int64
	if err := r.db.WithContext(ctx).
		Model(&propertydomain.Room{}).
		Where("property_id = ?", propertyID).
		Count(&rooms).Error; err != nil {
		return 0, err
	}

	var staff int64
	if err := r.db.WithContext(ctx).
		Table("property_staff").
		Where("property_id = ?", propertyID).
		Count(&staff).Error; err != nil {
		return 0, err
	}

	return rooms + staff, nil
}

func (r *PostgresRepository) StatsByProperty(ctx context.Context, propertyIDs []string) (map[string]propertydomain.Stats, error) {
	stats := make(map[string]propertydomain.Stats, len(propertyIDs))
	if len(propertyIDs) == 0 {
		return stats, nil
	}

	var roomRows []struct {
		PropertyID      string
		TotalRooms      int
		MinPriceMonthly *decimal.Decimal
		MinPriceTerm    *decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Table("rooms").
		Select("property_id, COUNT(*) AS total_rooms, MIN(price_monthly) AS min_price_monthly, MIN(price_term) AS min_price_term").
		Where("property_id IN ?", propertyIDs).
		Group("property_id").
		Find(&roomRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range roomRows {
		stats[row.PropertyID] = propertydomain.Stats{
			TotalRooms:      row.TotalRooms,
			AvailableRooms:  row.TotalRooms,
			MinPriceMonthly: row.MinPriceMonthly,
			MinPriceTerm:    row.MinPriceTerm,
		}
	}

	var bookedRows []struct {
		PropertyID  string
		BookedRooms int
	}
	err = r.db.WithContext(ctx).
		Table("rooms").
		Select("rooms.property_id, COUNT(DISTINCT bookings.room_id) AS booked_rooms").
		Joins("JOIN bookings ON bookings.room_id = rooms.id AND bookings.status = 'confirmed'").
		Where("rooms.property_id IN ?", propertyIDs).
		Group("rooms.property_id").
		Find(&bookedRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range bookedRows {
		s := stats[row.PropertyID]
		s.AvailableRooms = s.TotalRooms - row.BookedRooms
		if s.AvailableRooms < 0 {
			s.AvailableRooms = 0
		}
		stats[row.PropertyID] = s
	}

	return stats, nil
}

func (r *PostgresRepository) AddOwner(ctx context.Context, propertyID, ownerID string) error {
	assignment := propertydomain.OwnerAssignment{PropertyID: propertyID, OwnerID: ownerID}
	return r.db.WithContext(ctx).
		Where(&assignment).
		FirstOrCreate(&assignment).Error
}

func (r *PostgresRepository) RemoveOwner(ctx context.Context, propertyID, ownerID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&propertydomain.OwnerAssignment{}, "property_id = ? AND owner_id = ?", propertyID, ownerID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) AddStaff(ctx context.Context, propertyID, staffID string) error {
	assignment := propertydomain.StaffAssignment{PropertyID: propertyID, StaffID: staffID}
	return r.db.WithContext(ctx).
		Where(&assignment).
		FirstOrCreate(&assignment).Error
}

func (r *PostgresRepository) RemoveStaff(ctx context.Context, propertyID, staffID string) (bool, error) {
	result := r.db.WithContext(ctx).
		Delete(&propertydomain.StaffAssignment{}, "property_id = ? AND staff_id = ?", propertyID, staffID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CreateRoom(ctx context.Context, room *propertydomain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *PostgresRepository) UpdateRoom(ctx context.Context, room *propertydomain.Room) error {
	return r.db.WithContext(ctx).
		Model(&propertydomain.Room{}).
		Where("id = ?", room.ID).
		Updates(map[string]interface{}{
			"name":          room.Name,
			"code":          room.Code,
			"description":   room.Description,
			"price_monthly": room.PriceMonthly,
			"price_term":    room.PriceTerm,
			"deposit":       room.Deposit,
			"has_ac":        room.HasAC,
			"has_fan":       room.HasFan,
			"updated_at":    room.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) GetRoom(ctx context.Context, roomID string) (*propertydomain.Room, error) {
	var room propertydomain.Room
	if err := r.db.WithContext(ctx).Where("id = ?", roomID).First(&room).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, propertydomain.ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *PostgresRepository) ListRooms(ctx context.Context, propertyID string) ([]propertydomain.Room, error) {
	var items []propertydomain.Room
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("code asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) DeleteRoom(ctx context.Context, roomID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&propertydomain.Room{}, "id = ?", roomID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountRoomCode(ctx context.Context, propertyID, code, excludeRoomID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&propertydomain.Room{}).
		Where("property_id = ? AND code = ?", propertyID, code)
	if excludeRoomID != "" {
		query = query.Where("id <> ?", excludeRoomID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *PostgresRepository) CountActiveBookingsByRoom(ctx context.Context, roomID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("bookings").
		Where("room_id = ? AND status IN ?", roomID, []string{"pending", "confirmed"}).
		Count(&count).Error
	return count, err
}

func (r *PostgresRepository) CreateUtilityRate(ctx context.Context, rate *propertydomain.UtilityRate) error {
	return r.db.WithContext(ctx).Create(rate).Error
}

func (r *PostgresRepository) CurrentRates(ctx context.Context, propertyID string, asOf time.Time) (map[propertydomain.UtilityType]propertydomain.UtilityRate, error) {
	rates := make(map[propertydomain.UtilityType]propertydomain.UtilityRate, 2)
	for _, utype := range []propertydomain.UtilityType{propertydomain.UtilityElectric, propertydomain.UtilityWater} {
		var rate propertydomain.UtilityRate
		err := r.db.WithContext(ctx).
			Where("property_id = ? AND type = ? AND effective_from <= ?", propertyID, utype, asOf).
			Order("effective_from desc").
			First(&rate).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		rates[utype] = rate
	}
	return rates, nil
}

func (r *PostgresRepository) ListRateHistory(ctx context.Context, propertyID string) ([]propertydomain.UtilityRate, error) {
	var items []propertydomain.UtilityRate
	err := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Order("type asc, effective_from desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
