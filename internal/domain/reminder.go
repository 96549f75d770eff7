package domain

import (
	"time"
)

// Reminder is a staff follow-up created by the agent, e.g. "call the event
// planner back within 24 hours". Assignees are restricted to the chef role
// at validation time.
type Reminder struct {
	ID           string     `json:"id" gorm:"type:uuid;primaryKey"`
	RestaurantID int64      `json:"restaurant_id" gorm:"not null;index"`
	Assignee     string     `json:"assignee" gorm:"type:varchar(64);not null"`
	DueAt        time.Time  `json:"due_at" gorm:"not null"`
	Payload      RawPayload `json:"payload" gorm:"type:jsonb"`
	IsCompleted  bool       `json:"is_completed" gorm:"default:false"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Reminder.
func (Reminder) TableName() string {
	return "reminders"
}
