package pkgdelivery

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusReceived Status = "received"
)

type Package struct {
	ID          string          `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID  string          `gorm:"type:uuid;index;not null" json:"property_id"`
	UserID      string          `gorm:"type:uuid;index;not null" json:"user_id"`
	Name        string          `gorm:"not null" json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Status      Status          `gorm:"not null" json:"status"`
	ReceivedAt  *time.Time      `json:"received_at"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Package) TableName() string { return "packages" }

type Detail struct {
	Package
	PropertyName    string `json:"property_name"`
	PropertyAddress string `json:"property_address"`
	RecipientName   string `json:"user_fullname"`
	RecipientLineID string `json:"-"`
}

type CreateInput struct {
	PropertyID  string
	UserID      string
	Name        string
	Description string
	Price       decimal.Decimal
}

type UpdateInput struct {
	PackageID   string
	UserID      string
	Name        string
	Description string
	Price       decimal.Decimal
}
