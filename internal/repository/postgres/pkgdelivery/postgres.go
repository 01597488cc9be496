package pkgdelivery

import (
	"context"
	"errors"

	"gorm.io/gorm"

	accessdomain "rental-app-go/internal/domain/access"
	pkgdomain "rental-app-go/internal/domain/pkgdelivery"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, pkg *pkgdomain.Package) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *PostgresRepository) Update(ctx context.Context, pkg *pkgdomain.Package) error {
	return r.db.WithContext(ctx).
		Model(&pkgdomain.Package{}).
		Where("id = ?", pkg.ID).
		Updates(map[string]interface{}{
			"user_id":     pkg.UserID,
			"name":        pkg.Name,
			"description": pkg.Description,
			"price":       pkg.Price,
			"status":      pkg.Status,
			"received_at": pkg.ReceivedAt,
			"updated_at":  pkg.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, packageID string) (*pkgdomain.Package, error) {
	var pkg pkgdomain.Package
	if err := r.db.WithContext(ctx).Where("id = ?", packageID).First(&pkg).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgdomain.ErrPackageNotFound
		}
		return nil, err
	}
	return &pkg, nil
}

func (r *PostgresRepository) GetDetail(ctx context.Context, packageID string) (*pkgdomain.Detail, error) {
	var detail pkgdomain.Detail
	err := r.db.WithContext(ctx).
		Table("packages").
		Select(`packages.*,
			properties.name AS property_name, properties.address AS property_address,
			users.fullname AS recipient_name, users.line_id AS recipient_line_id`).
		Joins("JOIN properties ON properties.id = packages.property_id").
		Joins("JOIN users ON users.id = packages.user_id").
		Where("packages.id = ?", packageID).
		Take(&detail).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgdomain.ErrPackageNotFound
		}
		return nil, err
	}
	return &detail, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, packageID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&pkgdomain.Package{}, "id = ?", packageID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListDetailed(ctx context.Context, scope accessdomain.Scope) ([]pkgdomain.Detail, error) {
	var items []pkgdomain.Detail
	err := r.db.WithContext(ctx).
		Table("packages").
		Select(`packages.*,
			properties.name AS property_name, properties.address AS property_address,
			users.fullname AS recipient_name, users.line_id AS recipient_line_id`).
		Joins("JOIN properties ON properties.id = packages.property_id").
		Joins("JOIN users ON users.id = packages.user_id").
		Scopes(scope.Predicate("packages.property_id", "packages.user_id")).
		Order("packages.created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
