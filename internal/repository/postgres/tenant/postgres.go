package tenant

import (
	"context"
	"errors"

	"gorm.io/gorm"

	accessdomain "rental-app-go/internal/domain/access"
	tenantdomain "rental-app-go/internal/domain/tenant"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) CreateUser(ctx context.Context, user *tenantdomain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *PostgresRepository) UpdateUser(ctx context.Context, user *tenantdomain.User) error {
	return r.db.WithContext(ctx).
		Model(&tenantdomain.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"fullname": user.Fullname,
			"email":    user.Email,
			"phone":    user.Phone,
			"line_id":  user.LineID,
		}).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, userID string) (*tenantdomain.User, error) {
	var user tenantdomain.User
	if err := r.db.WithContext(ctx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tenantdomain.ErrTenantNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) DeleteUser(ctx context.Context, userID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&tenantdomain.User{}, "id = ?", userID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) CountUsername(ctx context.Context, username, excludeUserID string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&tenantdomain.User{}).
		Where("username = ?", username)
	if excludeUserID != "" {
		query = query.Where("id <> ?", excludeUserID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *PostgresRepository) ListDetailed(ctx context.Context, scope accessdomain.Scope) ([]tenantdomain.Detail, error) {
	var users []tenantdomain.User
	err := r.db.WithContext(ctx).
		Where("role = ?", "tenant").
		Where(`id IN (?)`, r.db.
			Table("bookings").
			Select("bookings.user_id").
			Joins("JOIN rooms ON rooms.id = bookings.room_id").
			Scopes(scope.Predicate("rooms.property_id", "bookings.user_id"))).
		Order("username asc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return []tenantdomain.Detail{}, nil
	}

	userIDs := make([]string, 0, len(users))
	for _, u := range users {
		userIDs = append(userIDs, u.ID)
	}

	var rows []struct {
		tenantdomain.BookingRow
		UserID string
	}
	err = r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.id AS booking_id, bookings.user_id, bookings.status,
			bookings.billing_cycle, bookings.start_date, bookings.end_date,
			rooms.id AS room_id, rooms.name AS room_name, rooms.code AS room_code,
			properties.id AS property_id, properties.name AS property_name`).
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Joins("JOIN properties ON properties.id = rooms.property_id").
		Where("bookings.user_id IN ?", userIDs).
		Order("bookings.created_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	byUser := make(map[string][]tenantdomain.BookingRow, len(users))
	for _, row := range rows {
		byUser[row.UserID] = append(byUser[row.UserID], row.BookingRow)
	}

	details := make([]tenantdomain.Detail, 0, len(users))
	for _, u := range users {
		details = append(details, tenantdomain.Detail{User: u, Bookings: byUser[u.ID]})
	}
	return details, nil
}
