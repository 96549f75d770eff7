package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/voiceflow-ai/voice-service/internal/domain"
	"gorm.io/gorm"
)

// GormReservationRepository handles database operations for reservations.
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new reservation repository.
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

// Create inserts a new reservation row.
func (r *GormReservationRepository) Create(ctx context.Context, reservation *domain.Reservation) error {
	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(reservation).Error; err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

// GormReminderRepository handles database operations for staff reminders.
type GormReminderRepository struct {
	db *gorm.DB
}

// NewGormReminderRepository creates a new reminder repository.
func NewGormReminderRepository(db *gorm.DB) *GormReminderRepository {
	return &GormReminderRepository{db: db}
}

// Create inserts a new reminder row.
func (r *GormReminderRepository) Create(ctx context.Context, reminder *domain.Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(reminder).Error; err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	return nil
}
