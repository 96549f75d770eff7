package domain

import (
	"time"
)

// Order statuses.
const (
	OrderStatusPending = "pending"
)

// Order is a takeout order captured during a call. Payment happens through
// the pay link, never over the phone.
type Order struct {
	ID            string      `json:"id" gorm:"type:uuid;primaryKey"`
	RestaurantID  int64       `json:"restaurant_id" gorm:"not null;index"`
	CustomerName  string      `json:"customer_name" gorm:"type:varchar(255);not null"`
	CustomerPhone string      `json:"customer_phone" gorm:"type:varchar(64);not null"`
	CustomerEmail string      `json:"customer_email" gorm:"type:varchar(255)"`
	Status        string      `json:"status" gorm:"type:varchar(64)"`
	TotalAmount   float64     `json:"total_amount" gorm:"type:numeric(10,2)"`
	PayLink       string      `json:"pay_link" gorm:"type:text"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for Order.
func (Order) TableName() string {
	return "orders"
}

// OrderItem is one line of an order. PriceAtOrder snapshots the menu price
// at the moment the order was taken.
type OrderItem struct {
	ID           string    `json:"id" gorm:"type:uuid;primaryKey"`
	OrderID      string    `json:"order_id" gorm:"type:uuid;not null;index"`
	MenuItemID   string    `json:"menu_item_id" gorm:"type:uuid;not null"`
	Quantity     int       `json:"quantity" gorm:"not null"`
	Notes        string    `json:"notes" gorm:"type:text"`
	PriceAtOrder float64   `json:"price_at_order" gorm:"type:numeric(10,2)"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName sets the table name for OrderItem.
func (OrderItem) TableName() string {
	return "order_items"
}
