package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/voiceflow-ai/voice-service/internal/domain"
	"gorm.io/gorm"
)

// GormOrderRepository handles database operations for orders.
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new order repository.
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create inserts a new order row. Line items are inserted separately via
// CreateItem; callers wanting atomicity run both under WithTx.
func (r *GormOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Omit("Items").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// CreateItem inserts one order line.
func (r *GormOrderRepository) CreateItem(ctx context.Context, item *domain.OrderItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create order item: %w", err)
	}
	return nil
}

