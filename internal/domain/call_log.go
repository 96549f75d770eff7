package domain

import (
	"time"
)

// Call statuses recorded in call_logs.
const (
	CallStatusStarted   = "started"
	CallStatusError     = "error"
	CallStatusHandover  = "handover_requested"
	CallStatusCompleted = "completed"
)

// EventType is the closed set of webhook event names the vendor delivers.
type EventType string

const (
	EventCallStarted       EventType = "call.started"
	EventTranscriptDelta   EventType = "transcript.delta"
	EventCallEnded         EventType = "call.ended"
	EventHandoverRequested EventType = "handover.requested"
	EventCallError         EventType = "error"
	EventUnknown           EventType = "unknown"
)

// ParseEventType maps a wire event name onto the closed event enum.
// Unrecognized names map to EventUnknown rather than failing, since the
// vendor may add event types at any time.
func ParseEventType(name string) EventType {
	switch EventType(name) {
	case EventCallStarted, EventTranscriptDelta, EventCallEnded, EventHandoverRequested, EventCallError:
		return EventType(name)
	default:
		return EventUnknown
	}
}

// CallLog is the local record of one vendor call, keyed uniquely by the
// vendor call id. Rows are created on call.started, mutated by later events
// and never deleted.
type CallLog struct {
	ID           string     `json:"id" gorm:"type:uuid;primaryKey"`
	RetellCallID string     `json:"retell_call_id" gorm:"type:varchar(255);not null;uniqueIndex"`
	RestaurantID int64      `json:"restaurant_id" gorm:"not null;index"`
	AgentID      string     `json:"agent_id" gorm:"type:varchar(255)"`
	StartTime    time.Time  `json:"start_time"`
	EndTime      *time.Time `json:"end_time,omitempty"`
	Status       string     `json:"status" gorm:"type:varchar(64)"`
	Transcript   string     `json:"transcript" gorm:"type:text"`
	RawEventData RawPayload `json:"raw_event_data" gorm:"type:jsonb"`
	CreatedAt    time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName sets the table name for CallLog.
func (CallLog) TableName() string {
	return "call_logs"
}
