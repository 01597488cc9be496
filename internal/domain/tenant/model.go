package tenant

import "time"

// User is a directory entry. Credentials live with the external identity
// provider; this table only carries profile and role.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Username  string    `gorm:"not null;uniqueIndex" json:"username"`
	Fullname  string    `json:"fullname"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	LineID    string    `gorm:"column:line_id" json:"line_id"`
	Role      string    `gorm:"not null" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (User) TableName() string { return "users" }

// BookingRow is one of the tenant's bookings in the directory listing.
type BookingRow struct {
	BookingID    string    `json:"booking_id"`
	RoomID       string    `json:"room_id"`
	RoomName     string    `json:"room_name"`
	RoomCode     string    `json:"room_code"`
	PropertyID   string    `json:"property_id"`
	PropertyName string    `json:"property_name"`
	Status       string    `json:"status"`
	BillingCycle string    `json:"billing_cycle"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
}

type Detail struct {
	User
	Bookings []BookingRow `json:"bookings"`
}

// Assignment is one room of a create/update request.
type Assignment struct {
	PropertyID   string `json:"property_id"`
	RoomID       string `json:"room_id"`
	BillingCycle string `json:"billing_cycle"`
}

type CreateInput struct {
	Username    string
	Fullname    string
	Email       string
	Phone       string
	LineID      string
	Assignments []Assignment
}

type UpdateInput struct {
	TenantID    string
	Fullname    string
	Email       string
	Phone       string
	LineID      string
	Assignments []Assignment
}
