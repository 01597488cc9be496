package activity

import "time"

// Entry is one append-only audit record.
type Entry struct {
	ID          string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      string    `gorm:"type:uuid;index;not null" json:"user_id"`
	Action      string    `gorm:"not null" json:"action"`
	TargetType  string    `gorm:"not null" json:"target_type"`
	TargetID    string    `json:"target_id"`
	Description string    `json:"description"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Entry) TableName() string { return "activity_log" }
