package activity

import (
	"context"

	"gorm.io/gorm"

	activitydomain "rental-app-go/internal/domain/activity"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, entry *activitydomain.Entry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *PostgresRepository) ListRecent(ctx context.Context, limit int) ([]activitydomain.Entry, error) {
	var items []activitydomain.Entry
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Limit(limit).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
