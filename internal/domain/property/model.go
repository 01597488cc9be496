package property

import (
	"time"

	"github.com/shopspring/decimal"
)

type Property struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Address     string    `gorm:"not null" json:"address"`
	Image       string    `gorm:"not null" json:"image"`
	Description string    `gorm:"not null" json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Property) TableName() string { return "properties" }

type Room struct {
	ID           string          `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID   string          `gorm:"type:uuid;index;not null" json:"property_id"`
	Name         string          `gorm:"not null" json:"name"`
	Code         string          `gorm:"not null" json:"code"`
	Description  string          `gorm:"not null" json:"description"`
	PriceMonthly decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_monthly"`
	PriceTerm    decimal.Decimal `gorm:"type:numeric(12,2)" json:"price_term"`
	Deposit      decimal.Decimal `gorm:"type:numeric(12,2)" json:"deposit"`
	HasAC        bool            `gorm:"column:has_ac" json:"has_ac"`
	HasFan       bool            `gorm:"column:has_fan" json:"has_fan"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Room) TableName() string { return "rooms" }

type UtilityType string

const (
	UtilityElectric UtilityType = "electric"
	UtilityWater    UtilityType = "water"
)

func (t UtilityType) Valid() bool {
	return t == UtilityElectric || t == UtilityWater
}

// UtilityRate rows are append-only; the active rate for a (property, type)
// pair is the most recent row whose effective_from is not in the future.
type UtilityRate struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID    string          `gorm:"type:uuid;index;not null" json:"property_id"`
	Type          UtilityType     `gorm:"not null" json:"type"`
	Rate          decimal.Decimal `gorm:"type:numeric(12,4)" json:"rate"`
	EffectiveFrom time.Time       `gorm:"not null" json:"effective_from"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (UtilityRate) TableName() string { return "utility_rates" }

type OwnerAssignment struct {
	PropertyID string `gorm:"type:uuid;primaryKey"`
	OwnerID    string `gorm:"type:uuid;primaryKey"`
}

func (OwnerAssignment) TableName() string { return "property_owners" }

type StaffAssignment struct {
	PropertyID string `gorm:"type:uuid;primaryKey"`
	StaffID    string `gorm:"type:uuid;primaryKey"`
}

func (StaffAssignment) TableName() string { return "property_staff" }

// Stats is the computed overview attached to a property listing.
type Stats struct {
	TotalRooms      int
	AvailableRooms  int
	MinPriceMonthly *decimal.Decimal
	MinPriceTerm    *decimal.Decimal
}

type PropertyWithStats struct {
	Property
	Stats
	ElectricRate decimal.Decimal
	WaterRate    decimal.Decimal
}

type CreatePropertyInput struct {
	Name         string
	Address      string
	Image        string
	Description  string
	OwnerID      string
	ElectricRate decimal.Decimal
	WaterRate    decimal.Decimal
}

type UpdatePropertyInput struct {
	ID          string
	Name        string
	Address     string
	Image       string
	Description string
}

type CreateRoomInput struct {
	PropertyID   string
	Name         string
	Code         string
	Description  string
	PriceMonthly decimal.Decimal
	PriceTerm    decimal.Decimal
	Deposit      decimal.Decimal
	HasAC        bool
	HasFan       bool
}

type UpdateRoomInput struct {
	RoomID       string
	Name         string
	Code         string
	Description  string
	PriceMonthly decimal.Decimal
	PriceTerm    decimal.Decimal
	Deposit      decimal.Decimal
	HasAC        bool
	HasFan       bool
}

type SetRateInput struct {
	PropertyID    string
	Type          UtilityType
	Rate          decimal.Decimal
	EffectiveFrom time.Time
}
