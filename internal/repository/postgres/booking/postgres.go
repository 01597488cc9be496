package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	accessdomain "rental-app-go/internal/domain/access"
	bookingdomain "rental-app-go/internal/domain/booking"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(bookingdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Create(ctx context.Context, b *bookingdomain.Booking) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *PostgresRepository) Update(ctx context.Context, b *bookingdomain.Booking) error {
	return r.db.WithContext(ctx).
		Model(&bookingdomain.Booking{}).
		Where("id = ?", b.ID).
		Updates(map[string]interface{}{
			"room_id":    b.RoomID,
			"start_date": b.StartDate,
			"end_date":   b.EndDate,
			"status":     b.Status,
			"updated_at": b.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, bookingID string) (*bookingdomain.Booking, error) {
	var b bookingdomain.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", bookingID).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, bookingdomain.ErrBookingNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, bookingID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&bookingdomain.Booking{}, "id = ?", bookingID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) DeleteByUser(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).Delete(&bookingdomain.Booking{}, "user_id = ?", userID).Error
}

func (r *PostgresRepository) CountConfirmedOverlapping(ctx context.Context, roomID string, start, end time.Time, excludeBookingID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&bookingdomain.Booking{}).
		Where("room_id = ? AND status = ?", roomID, bookingdomain.StatusConfirmed).
		Where("NOT (end_date < ? OR start_date > ?)", start, end)
	if excludeBookingID != "" {
		query = query.Where("id <> ?", excludeBookingID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *PostgresRepository) ListDetailed(ctx context.Context, scope accessdomain.Scope) ([]bookingdomain.Detail, error) {
	var items []bookingdomain.Detail
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.*,
			users.username, users.fullname, users.email,
			rooms.name AS room_name, rooms.code AS room_code,
			rooms.price_monthly, rooms.price_term,
			properties.id AS property_id, properties.name AS property_name,
			properties.address AS property_address`).
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Joins("JOIN properties ON properties.id = rooms.property_id").
		Scopes(scope.Predicate("rooms.property_id", "bookings.user_id")).
		Order("bookings.created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) RoomInProperty(ctx context.Context, roomID, propertyID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("rooms").
		Where("id = ? AND property_id = ?", roomID, propertyID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRepository) RoomProperty(ctx context.Context, roomID string) (string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("rooms").
		Where("id = ?", roomID).
		Limit(1).
		Pluck("property_id", &ids).Error
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", bookingdomain.ErrRoomNotFound
	}
	return ids[0], nil
}

func (r *PostgresRepository) ConfirmPendingByUser(ctx context.Context, userID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&bookingdomain.Booking{}).
		Where("user_id = ? AND status = ?", userID, bookingdomain.StatusPending).
		Updates(map[string]interface{}{
			"status":     bookingdomain.StatusConfirmed,
			"updated_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}
