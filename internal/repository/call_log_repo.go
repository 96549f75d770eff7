package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/voiceflow-ai/voice-service/internal/domain"
	"gorm.io/gorm"
)

// GormCallLogRepository handles database operations for call logs.
type GormCallLogRepository struct {
	db *gorm.DB
}

// NewGormCallLogRepository creates a new call log repository.
func NewGormCallLogRepository(db *gorm.DB) *GormCallLogRepository {
	return &GormCallLogRepository{db: db}
}

// Create inserts a new call log row.
func (r *GormCallLogRepository) Create(ctx context.Context, log *domain.CallLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("failed to create call log: %w", err)
	}
	return nil
}

// AppendTranscript concatenates a transcript segment onto the call's
// transcript. Appends are order-dependent: concurrent or redelivered deltas
// apply in arrival order with no dedup at this layer.
func (r *GormCallLogRepository) AppendTranscript(ctx context.Context, retellCallID, segment string) error {
	result := r.db.WithContext(ctx).Model(&domain.CallLog{}).
		Where("retell_call_id = ?", retellCallID).
		Updates(map[string]interface{}{
			"transcript": gorm.Expr("COALESCE(transcript, '') || ?", segment),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to append transcript: %w", result.Error)
	}
	return nil
}

// Finish records the end of a call: end time, final status, the full
// transcript reported by the vendor, and the raw closing event.
func (r *GormCallLogRepository) Finish(ctx context.Context, retellCallID string, endTime time.Time, status, transcript string, raw domain.RawPayload) error {
	result := r.db.WithContext(ctx).Model(&domain.CallLog{}).
		Where("retell_call_id = ?", retellCallID).
		Updates(map[string]interface{}{
			"end_time":       endTime,
			"status":         status,
			"transcript":     transcript,
			"raw_event_data": raw,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to finish call log: %w", result.Error)
	}
	return nil
}

// MarkError flags the call as errored and keeps the raw error event.
func (r *GormCallLogRepository) MarkError(ctx context.Context, retellCallID string, raw domain.RawPayload) error {
	return r.markStatus(ctx, retellCallID, domain.CallStatusError, raw)
}

// MarkHandover flags the call as awaiting a human and keeps the raw event.
func (r *GormCallLogRepository) MarkHandover(ctx context.Context, retellCallID string, raw domain.RawPayload) error {
	return r.markStatus(ctx, retellCallID, domain.CallStatusHandover, raw)
}

func (r *GormCallLogRepository) markStatus(ctx context.Context, retellCallID, status string, raw domain.RawPayload) error {
	result := r.db.WithContext(ctx).Model(&domain.CallLog{}).
		Where("retell_call_id = ?", retellCallID).
		Updates(map[string]interface{}{
			"status":         status,
			"raw_event_data": raw,
			"updated_at":     time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark call log %s: %w", status, result.Error)
	}
	return nil
}

// GetByRetellCallID retrieves a call log by vendor call id. Missing rows
// return (nil, nil).
func (r *GormCallLogRepository) GetByRetellCallID(ctx context.Context, retellCallID string) (*domain.CallLog, error) {
	var log domain.CallLog
	if err := r.db.WithContext(ctx).Where("retell_call_id = ?", retellCallID).First(&log).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get call log: %w", err)
	}
	return &log, nil
}
