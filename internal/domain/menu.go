package domain

import (
	"time"

	"github.com/lib/pq"
)

// MenuItem is one item on a restaurant's menu. Availability combines the
// is_available flag with is_86d, the industry term for an item pulled from
// service mid-shift.
type MenuItem struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey"`
	RestaurantID int64          `json:"restaurant_id" gorm:"not null;index"`
	Name         string         `json:"name" gorm:"type:varchar(255);not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Price        float64        `json:"price" gorm:"type:numeric(10,2);not null"`
	Category     string         `json:"category" gorm:"type:varchar(128)"`
	Tags         pq.StringArray `json:"tags" gorm:"type:text[]"`
	IsAvailable  bool           `json:"is_available" gorm:"default:true"`
	Is86d        bool           `json:"is_86d" gorm:"column:is_86d;default:false"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for MenuItem.
func (MenuItem) TableName() string {
	return "menu_items"
}

// CanFulfill reports whether the item can currently be ordered.
func (m *MenuItem) CanFulfill() bool {
	return m.IsAvailable && !m.Is86d
}
