package booking

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

type Cycle string

const (
	CycleMonthly Cycle = "monthly"
	CycleTerm    Cycle = "term"
)

func (c Cycle) Valid() bool {
	return c == CycleMonthly || c == CycleTerm
}

// Booking occupies a room for a closed date interval. Two confirmed bookings
// for the same room must have disjoint intervals; a booking ending exactly on
// another's start date counts as overlapping.
type Booking struct {
	ID           string    `gorm:"type:uuid;primaryKey" json:"id"`
	RoomID       string    `gorm:"type:uuid;index;not null" json:"room_id"`
	UserID       string    `gorm:"type:uuid;index;not null" json:"user_id"`
	StartDate    time.Time `gorm:"type:date;not null" json:"start_date"`
	EndDate      time.Time `gorm:"type:date;not null" json:"end_date"`
	Status       Status    `gorm:"not null" json:"status"`
	BillingCycle Cycle     `gorm:"not null" json:"billing_cycle"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Booking) TableName() string { return "bookings" }

// Detail is the joined listing row handed to the transport layer.
type Detail struct {
	Booking
	Username        string          `json:"username"`
	Fullname        string          `json:"fullname"`
	Email           string          `json:"email"`
	RoomName        string          `json:"room_name"`
	RoomCode        string          `json:"room_code"`
	PriceMonthly    decimal.Decimal `json:"price_monthly"`
	PriceTerm       decimal.Decimal `json:"price_term"`
	PropertyID      string          `json:"property_id"`
	PropertyName    string          `json:"property_name"`
	PropertyAddress string          `json:"property_address"`
}

type CreateBookingInput struct {
	RoomID       string
	UserID       string
	StartDate    time.Time
	EndDate      time.Time
	Status       Status
	BillingCycle Cycle
}

type UpdateBookingInput struct {
	ID        string
	RoomID    string
	StartDate time.Time
	EndDate   time.Time
}

// RoomAssignment is one room of a tenant's multi-room create/replace request.
type RoomAssignment struct {
	PropertyID   string
	RoomID       string
	BillingCycle Cycle
}

type ReplaceTenantInput struct {
	TenantID    string
	Assignments []RoomAssignment
	StartDate   time.Time
	EndDate     time.Time
	Status      Status
}
