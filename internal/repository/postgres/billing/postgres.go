package billing

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	accessdomain "rental-app-go/internal/domain/access"
	billingdomain "rental-app-go/internal/domain/billing"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(billingdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) Create(ctx context.Context, bill *billingdomain.Bill) error {
	return r.db.WithContext(ctx).Create(bill).Error
}

func (r *PostgresRepository) Update(ctx context.Context, bill *billingdomain.Bill) error {
	return r.db.WithContext(ctx).
		Model(&billingdomain.Bill{}).
		Where("id = ?", bill.ID).
		Updates(map[string]interface{}{
			"billing_cycle":  bill.BillingCycle,
			"room_price":     bill.RoomPrice,
			"water_units":    bill.WaterUnits,
			"electric_units": bill.ElectricUnits,
			"other_charges":  bill.OtherCharges,
			"note":           bill.Note,
			"total_amount":   bill.TotalAmount,
			"status":         bill.Status,
			"paid_at":        bill.PaidAt,
			"updated_at":     bill.UpdatedAt,
		}).Error
}

func (r *PostgresRepository) GetByID(ctx context.Context, billID string) (*billingdomain.Bill, error) {
	var bill billingdomain.Bill
	if err := r.db.WithContext(ctx).Where("id = ?", billID).First(&bill).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billingdomain.ErrBillNotFound
		}
		return nil, err
	}
	return &bill, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, billID string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&billingdomain.Bill{}, "id = ?", billID)
	return result.RowsAffected > 0, result.Error
}

func (r *PostgresRepository) ListByBooking(ctx context.Context, bookingID string) ([]billingdomain.Bill, error) {
	var items []billingdomain.Bill
	err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		Order("billing_date desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) GetBookingPricing(ctx context.Context, bookingID string) (*billingdomain.BookingPricing, error) {
	var pricing billingdomain.BookingPricing
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.id AS booking_id, bookings.billing_cycle,
			rooms.id AS room_id, rooms.name AS room_name, rooms.code AS room_code,
			rooms.price_monthly, rooms.price_term,
			properties.id AS property_id, properties.name AS property_name,
			users.id AS tenant_id, users.fullname AS tenant_name,
			users.line_id AS tenant_line_id`).
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Joins("JOIN properties ON properties.id = rooms.property_id").
		Joins("JOIN users ON users.id = bookings.user_id").
		Where("bookings.id = ?", bookingID).
		Take(&pricing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, billingdomain.ErrBookingNotFound
		}
		return nil, err
	}
	return &pricing, nil
}

func (r *PostgresRepository) LatestRate(ctx context.Context, propertyID, utilityType string, asOf time.Time) (decimal.Decimal, bool, error) {
	var row struct {
		Rate decimal.Decimal
	}
	err := r.db.WithContext(ctx).
		Table("utility_rates").
		Select("rate").
		Where("property_id = ? AND type = ? AND effective_from <= ?", propertyID, utilityType, asOf).
		Order("effective_from desc").
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}
	return row.Rate, true, nil
}

func (r *PostgresRepository) BillBelongsToUser(ctx context.Context, billID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("bills").
		Joins("JOIN bookings ON bookings.id = bills.booking_id").
		Where("bills.id = ? AND bookings.user_id = ?", billID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PostgresRepository) ListRoomPrices(ctx context.Context, scope accessdomain.Scope) ([]billingdomain.RoomPriceRow, error) {
	var items []billingdomain.RoomPriceRow
	err := r.db.WithContext(ctx).
		Table("rooms").
		Select(`rooms.id AS room_id, rooms.name AS room_name, rooms.code AS room_code,
			rooms.price_monthly, rooms.price_term, rooms.deposit,
			properties.name AS property_name,
			bookings.id AS booking_id, bookings.billing_cycle,
			users.fullname AS tenant_name,
			latest.id AS bill_id, latest.status AS bill_status,
			latest.total_amount AS bill_total`).
		Joins("JOIN properties ON properties.id = rooms.property_id").
		Joins("JOIN bookings ON bookings.room_id = rooms.id AND bookings.status = 'confirmed'").
		Joins("JOIN users ON users.id = bookings.user_id").
		Joins(`LEFT JOIN LATERAL (
			SELECT id, status, total_amount FROM bills
			WHERE bills.booking_id = bookings.id
			ORDER BY billing_date DESC LIMIT 1
		) latest ON TRUE`).
		Scopes(scope.Predicate("rooms.property_id", "")).
		Order("properties.name, rooms.code").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) ListConfirmedBookingsByTenant(ctx context.Context, tenantID string) ([]billingdomain.TenantBookingRef, error) {
	var items []billingdomain.TenantBookingRef
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.id AS booking_id, bookings.billing_cycle,
			rooms.id AS room_id, rooms.name AS room_name, rooms.code AS room_code,
			properties.id AS property_id, properties.name AS property_name,
			properties.address AS property_address`).
		Joins("JOIN rooms ON rooms.id = bookings.room_id").
		Joins("JOIN properties ON properties.id = rooms.property_id").
		Where("bookings.user_id = ? AND bookings.status = ?", tenantID, "confirmed").
		Order("bookings.created_at desc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
