package domain

import (
	"time"
)

// Reservation statuses.
const (
	ReservationStatusPending = "pending"
)

// Reservation is a table reservation captured during a call. Availability
// checking is handled by staff; rows are created pending.
type Reservation struct {
	ID            string    `json:"id" gorm:"type:uuid;primaryKey"`
	RestaurantID  int64     `json:"restaurant_id" gorm:"not null;index"`
	CustomerName  string    `json:"customer_name" gorm:"type:varchar(255);not null"`
	CustomerPhone string    `json:"customer_phone" gorm:"type:varchar(64);not null"`
	DateTime      time.Time `json:"datetime" gorm:"column:datetime;not null"`
	PartySize     int       `json:"party_size" gorm:"not null"`
	Status        string    `json:"status" gorm:"type:varchar(64)"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Reservation.
func (Reservation) TableName() string {
	return "reservations"
}
