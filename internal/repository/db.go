package repository

import (
	"context"
	"time"

	"github.com/voiceflow-ai/voice-service/internal/domain"
	"gorm.io/gorm"
)

// CallLogRepository defines persistence operations for call logs. Each
// mutation maps to a single statement keyed by the vendor call id.
type CallLogRepository interface {
	Create(ctx context.Context, log *domain.CallLog) error
	AppendTranscript(ctx context.Context, retellCallID, segment string) error
	Finish(ctx context.Context, retellCallID string, endTime time.Time, status, transcript string, raw domain.RawPayload) error
	MarkError(ctx context.Context, retellCallID string, raw domain.RawPayload) error
	MarkHandover(ctx context.Context, retellCallID string, raw domain.RawPayload) error
	GetByRetellCallID(ctx context.Context, retellCallID string) (*domain.CallLog, error)
}

// MenuRepository defines read operations over menu items, always scoped to
// one restaurant.
type MenuRepository interface {
	ListByRestaurant(ctx context.Context, restaurantID int64, tags []string) ([]*domain.MenuItem, error)
	GetByID(ctx context.Context, restaurantID int64, itemID string) (*domain.MenuItem, error)
}

// OrderRepository defines persistence operations for orders and their lines.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	CreateItem(ctx context.Context, item *domain.OrderItem) error
}

// ReservationRepository defines persistence operations for reservations.
type ReservationRepository interface {
	Create(ctx context.Context, reservation *domain.Reservation) error
}

// ReminderRepository defines persistence operations for staff reminders.
type ReminderRepository interface {
	Create(ctx context.Context, reminder *domain.Reminder) error
}

// RepositoryManager combines all repositories.
type RepositoryManager interface {
	CallLog() CallLogRepository
	Menu() MenuRepository
	Order() OrderRepository
	Reservation() ReservationRepository
	Reminder() ReminderRepository

	// Transaction support
	WithTx(ctx context.Context, fn func(ctx context.Context, repos RepositoryManager) error) error

	// Health check
	Ping(ctx context.Context) error

	// Close connection
	Close() error
}

// GormRepositoryManager implements RepositoryManager using GORM.
type GormRepositoryManager struct {
	db              *gorm.DB
	callLogRepo     *GormCallLogRepository
	menuRepo        *GormMenuRepository
	orderRepo       *GormOrderRepository
	reservationRepo *GormReservationRepository
	reminderRepo    *GormReminderRepository
}

// NewGormRepositoryManager creates a new GORM repository manager.
func NewGormRepositoryManager(db *gorm.DB) *GormRepositoryManager {
	return &GormRepositoryManager{
		db:              db,
		callLogRepo:     NewGormCallLogRepository(db),
		menuRepo:        NewGormMenuRepository(db),
		orderRepo:       NewGormOrderRepository(db),
		reservationRepo: NewGormReservationRepository(db),
		reminderRepo:    NewGormReminderRepository(db),
	}
}

// CallLog returns the call log repository.
func (m *GormRepositoryManager) CallLog() CallLogRepository {
	return m.callLogRepo
}

// Menu returns the menu repository.
func (m *GormRepositoryManager) Menu() MenuRepository {
	return m.menuRepo
}

// Order returns the order repository.
func (m *GormRepositoryManager) Order() OrderRepository {
	return m.orderRepo
}

// Reservation returns the reservation repository.
func (m *GormRepositoryManager) Reservation() ReservationRepository {
	return m.reservationRepo
}

// Reminder returns the reminder repository.
func (m *GormRepositoryManager) Reminder() ReminderRepository {
	return m.reminderRepo
}

// WithTx executes a function within a database transaction. The callback
// receives a manager bound to the transaction.
func (m *GormRepositoryManager) WithTx(ctx context.Context, fn func(ctx context.Context, repos RepositoryManager) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewGormRepositoryManager(tx))
	})
}

// Ping checks the database connection.
func (m *GormRepositoryManager) Ping(ctx context.Context) error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the database connection.
func (m *GormRepositoryManager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
