package repository

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/voiceflow-ai/voice-service/internal/domain"
	"gorm.io/gorm"
)

// GormMenuRepository handles database reads for menu items.
type GormMenuRepository struct {
	db *gorm.DB
}

// NewGormMenuRepository creates a new menu repository.
func NewGormMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// ListByRestaurant returns the restaurant's menu items, optionally filtered
// to items whose tags contain every requested tag.
func (r *GormMenuRepository) ListByRestaurant(ctx context.Context, restaurantID int64, tags []string) ([]*domain.MenuItem, error) {
	query := r.db.WithContext(ctx).Where("restaurant_id = ?", restaurantID)
	if len(tags) > 0 {
		query = query.Where("tags @> ?", pq.Array(tags))
	}

	var items []*domain.MenuItem
	if err := query.Order("category, name").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}
	return items, nil
}

// GetByID retrieves one menu item scoped to the restaurant. Missing items
// return (nil, nil).
func (r *GormMenuRepository) GetByID(ctx context.Context, restaurantID int64, itemID string) (*domain.MenuItem, error) {
	var item domain.MenuItem
	if err := r.db.WithContext(ctx).
		Where("id = ? AND restaurant_id = ?", itemID, restaurantID).
		First(&item).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get menu item: %w", err)
	}
	return &item, nil
}
