package access

import (
	"context"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) PropertyIDsByOwner(ctx context.Context, ownerID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("property_owners").
		Where("owner_id = ?", ownerID).
		Pluck("property_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *PostgresRepository) PropertyIDsByStaff(ctx context.Context, staffID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Table("property_staff").
		Where("staff_id = ?", staffID).
		Pluck("property_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
