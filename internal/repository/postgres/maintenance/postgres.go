package maintenance

import (
	"context"
	"errors"

	"gorm.io/gorm"

	accessdomain "rental-app-go/internal/domain/access"
	maintenancedomain "rental-app-go/internal/domain/maintenance"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, req *maintenancedomain.Request) error {
	return r.db.WithContext(ctx).Create(req).Error
}

func (r *PostgresRepository) Update(ctx context.Context, req *maintenancedomain.Request) error {
	return r.db.WithContext(ctx).
		Model(&maintenancedomain.Request{}).
		Where("id = ?", req.ID).
		Updates(map[string]interface{}{
			"room_id":     req.RoomID,
			"description": req.Description,
			"status":      req.Status,
			"updated_at":  req.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, requestID string) (*maintenancedomain.Request, error) {
	var req maintenancedomain.Request
	if err := r.db.WithContext(ctx).Where("id = ?", requestID).First(&req).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, maintenancedomain.ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, requestID, userID string) (bool, error) {
	query := r.db.WithContext(ctx)
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	result := query.Delete(&maintenancedomain.Request{}, "id = ?", requestID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListDetailed(ctx context.Context, scope accessdomain.Scope) ([]maintenancedomain.Detail, error) {
	var items []maintenancedomain.Detail
	err := r.db.WithContext(ctx).
		Table("maintenance_requests").
		Select(`maintenance_requests.*,
			users.username, users.fullname,
			rooms.name AS room_name, rooms.code AS room_code,
			properties.id AS property_id, properties.name AS property_name`).
		Joins("JOIN users ON users.id = maintenance_requests.user_id").
		Joins("JOIN rooms ON rooms.id = maintenance_requests.room_id").
		Joins("JOIN properties ON properties.id = rooms.property_id").
		Scopes(scope.Predicate("rooms.property_id", "maintenance_requests.user_id")).
		Order("maintenance_requests.created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]maintenancedomain.Detail, error) {
	var items []maintenancedomain.Detail
	err := r.db.WithContext(ctx).
		Table("maintenance_requests").
		Select(`maintenance_requests.*,
			users.username, users.fullname,
			rooms.name AS room_name, rooms.code AS room_code,
			properties.id AS property_id, properties.name AS property_name`).
		Joins("JOIN users ON users.id = maintenance_requests.user_id").
		Joins("JOIN rooms ON rooms.id = maintenance_requests.room_id").
		Joins("JOIN properties ON properties.id = rooms.property_id").
		Where("maintenance_requests.user_id = ?", userID).
		Order("maintenance_requests.created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) UserHoldsRoom(ctx context.Context, userID, roomID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("bookings").
		Where("user_id = ? AND room_id = ? AND status = 'confirmed'", userID, roomID).
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
		return "", maintenancedomain.ErrRequestNotFound
	}
	return ids[0], nil
}
