package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusUnpaid  Status = "unpaid"
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
)

type Bill struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID     string          `gorm:"type:uuid;index;not null" json:"booking_id"`
	BillingDate   time.Time       `gorm:"not null" json:"billing_date"`
	BillingCycle  string          `gorm:"not null" json:"billing_cycle"`
	RoomPrice     decimal.Decimal `gorm:"type:numeric(12,2)" json:"room_price"`
	WaterUnits    decimal.Decimal `gorm:"type:numeric(12,2)" json:"water_units"`
	ElectricUnits decimal.Decimal `gorm:"type:numeric(12,2)" json:"electric_units"`
	OtherCharges  decimal.Decimal `gorm:"type:numeric(12,2)" json:"other_charges"`
	Note          string          `json:"note"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_amount"`
	Status        Status          `gorm:"not null" json:"status"`
	PaidAt        *time.Time      `json:"paid_at"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Bill) TableName() string { return "bills" }

// BookingPricing is the denormalized booking→room→property chain a bill is
// computed against.
type BookingPricing struct {
	BookingID    string
	BillingCycle string
	RoomID       string
	RoomName     string
	RoomCode     string
	PriceMonthly decimal.Decimal
	PriceTerm    decimal.Decimal
	PropertyID   string
	PropertyName string
	TenantID     string
	TenantName   string
	TenantLineID string
}

// Rates holds the resolved per-unit utility prices for a property.
type Rates struct {
	Water    decimal.Decimal
	Electric decimal.Decimal
}

// RoomPriceRow is one row of the owner/staff priced-room overview.
type RoomPriceRow struct {
	RoomID       string           `json:"room_id"`
	RoomName     string           `json:"name"`
	RoomCode     string           `json:"code"`
	PriceMonthly decimal.Decimal  `json:"price_monthly"`
	PriceTerm    decimal.Decimal  `json:"price_term"`
	Deposit      decimal.Decimal  `json:"deposit"`
	PropertyName string           `json:"property_name"`
	BookingID    string           `json:"booking_id"`
	BillingCycle string           `json:"billing_cycle"`
	TenantName   string           `json:"user_fullname"`
	BillID       *string          `json:"bill_id"`
	BillStatus   *Status          `json:"bill_status"`
	BillTotal    *decimal.Decimal `json:"bill_total"`
}

// RentItem is one bill of the tenant's rent view, enriched with the booking
// context and the property's current rates for display.
type RentItem struct {
	BookingID       string          `json:"booking_id"`
	RoomName        string          `json:"room_name"`
	RoomCode        string          `json:"room_code"`
	PropertyName    string          `json:"property_name"`
	PropertyAddress string          `json:"property_address"`
	BillingCycle    string          `json:"billing_cycle"`
	Bill            Bill            `json:"bill"`
	WaterRate       decimal.Decimal `json:"water_rate"`
	ElectricRate    decimal.Decimal `json:"electric_rate"`
}

// TenantBookingRef is a confirmed booking row of the rent view.
type TenantBookingRef struct {
	BookingID       string
	RoomID          string
	PropertyID      string
	RoomName        string
	RoomCode        string
	PropertyName    string
	PropertyAddress string
	BillingCycle    string
}

type CreateBillInput struct {
	BookingID        string
	Readings         Readings
	Note             string
	IncludeRoomPrice bool
}

type UpdateBillInput struct {
	BillID           string
	BookingID        string
	Readings         Readings
	Note             string
	IncludeRoomPrice bool
}
