package maintenance

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// ManagerStatuses are the states owner/staff may set directly; cancellation
// is a tenant action with its own rule.
var ManagerStatuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

func (s Status) SettableByManager() bool {
	for _, v := range ManagerStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Request struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"type:uuid;index;not null" json:"user_id"`
	RoomID      string    `gorm:"type:uuid;index;not null" json:"room_id"`
	Description string    `gorm:"not null" json:"description"`
	Status      Status    `gorm:"not null" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Request) TableName() string { return "maintenance_requests" }

type Detail struct {
	Request
	Username     string `json:"username"`
	Fullname     string `json:"fullname"`
	RoomName     string `json:"room_name"`
	RoomCode     string `json:"room_code"`
	PropertyID   string `json:"property_id"`
	PropertyName string `json:"property_name"`
}

type CreateInput struct {
	UserID      string
	RoomID      string
	Description string
}

type UpdateInput struct {
	RequestID   string
	UserID      string
	RoomID      string
	Description string
}
