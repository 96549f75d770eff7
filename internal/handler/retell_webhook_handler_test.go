package handler

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voiceflow-ai/voice-service/internal/domain"
	"github.com/voiceflow-ai/voice-service/internal/repository"
)

// memRepos is an in-memory RepositoryManager for handler tests.
type memRepos struct {
	callLog     *memCallLogRepo
	reservation *memReservationRepo
	reminder    *memReminderRepo
}

func newMemRepos() *memRepos {
	return &memRepos{
		callLog:     &memCallLogRepo{logs: map[string]*domain.CallLog{}},
		reservation: &memReservationRepo{},
		reminder:    &memReminderRepo{},
	}
}

func (m *memRepos) CallLog() repository.CallLogRepository         { return m.callLog }
func (m *memRepos) Menu() repository.MenuRepository               { return nil }
func (m *memRepos) Order() repository.OrderRepository             { return nil }
func (m *memRepos) Reservation() repository.ReservationRepository { return m.reservation }
func (m *memRepos) Reminder() repository.ReminderRepository       { return m.reminder }
func (m *memRepos) Ping(ctx context.Context) error                { return nil }
func (m *memRepos) Close() error                                  { return nil }

func (m *memRepos) WithTx(ctx context.Context, fn func(ctx context.Context, repos repository.RepositoryManager) error) error {
	return fn(ctx, m)
}

type memCallLogRepo struct {
	logs    map[string]*domain.CallLog
	creates int
}

func (r *memCallLogRepo) Create(ctx context.Context, log *domain.CallLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	r.logs[log.RetellCallID] = log
	r.creates++
	return nil
}

func (r *memCallLogRepo) AppendTranscript(ctx context.Context, retellCallID, segment string) error {
	if log, ok := r.logs[retellCallID]; ok {
		log.Transcript += segment
	}
	return nil
}

func (r *memCallLogRepo) Finish(ctx context.Context, retellCallID string, endTime time.Time, status, transcript string, raw domain.RawPayload) error {
	log, ok := r.logs[retellCallID]
	if !ok {
		return nil
	}
	log.EndTime = &endTime
	log.Status = status
	log.Transcript = transcript
	log.RawEventData = raw
	return nil
}

func (r *memCallLogRepo) MarkError(ctx context.Context, retellCallID string, raw domain.RawPayload) error {
	if log, ok := r.logs[retellCallID]; ok {
		log.Status = domain.CallStatusError
		log.RawEventData = raw
	}
	return nil
}

func (r *memCallLogRepo) MarkHandover(ctx context.Context, retellCallID string, raw domain.RawPayload) error {
	if log, ok := r.logs[retellCallID]; ok {
		log.Status = domain.CallStatusHandover
		log.RawEventData = raw
	}
	return nil
}

func (r *memCallLogRepo) GetByRetellCallID(ctx context.Context, retellCallID string) (*domain.CallLog, error) {
	return r.logs[retellCallID], nil
}

type memReservationRepo struct {
	reservations []*domain.Reservation
}

func (r *memReservationRepo) Create(ctx context.Context, reservation *domain.Reservation) error {
	if reservation.ID == "" {
		reservation.ID = uuid.New().String()
	}
	r.reservations = append(r.reservations, reservation)
	return nil
}

type memReminderRepo struct {
	reminders []*domain.Reminder
}

func (r *memReminderRepo) Create(ctx context.Context, reminder *domain.Reminder) error {
	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	r.reminders = append(r.reminders, reminder)
	return nil
}

const testSecret = "test-webhook-secret"

func sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func postWebhook(t *testing.T, h *RetellWebhookHandler, body []byte, signature string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/voice/retell/webhook", bytes.NewReader(body))
	if signature != "" {
		req.Header.Set(SignatureHeader, signature)
	}
	rec := httptest.NewRecorder()
	h.HandleWebhook(rec, req)
	return rec
}

func deliver(t *testing.T, h *RetellWebhookHandler, event map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(event)
	require.NoError(t, err)
	return postWebhook(t, h, body, sign(testSecret, body))
}

func TestWebhookSignatureVerification(t *testing.T) {
	repos := newMemRepos()
	h := NewRetellWebhookHandler(testSecret, 1, repos, nil)

	body := []byte(`{"event_name": "call.started", "call_id": "call_1", "agent_id": "agent_1", "start_timestamp": 1757000000000}`)

	t.Run("valid signature accepted", func(t *testing.T) {
		rec := postWebhook(t, h, body, sign(testSecret, body))
		assert.Equal(t, http.StatusOK, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp["status"])
		assert.Equal(t, "call.started", resp["event_received"])
	})

	t.Run("tampered body rejected", func(t *testing.T) {
		tampered := bytes.Replace(body, []byte("call_1"), []byte("call_2"), 1)
		rec := postWebhook(t, h, tampered, sign(testSecret, body))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("tampered signature rejected", func(t *testing.T) {
		sig := []byte(sign(testSecret, body))
		sig[0] ^= 1
		rec := postWebhook(t, h, body, string(sig))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		rec := postWebhook(t, h, body, sign("other-secret", body))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		rec := postWebhook(t, h, body, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing secret rejected", func(t *testing.T) {
		unconfigured := NewRetellWebhookHandler("", 1, repos, nil)
		rec := postWebhook(t, unconfigured, body, sign(testSecret, body))
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestWebhookCallLifecycle(t *testing.T) {
	repos := newMemRepos()
	h := NewRetellWebhookHandler(testSecret, 1, repos, nil)

	started := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	rec := deliver(t, h, map[string]interface{}{
		"event_name":      "call.started",
		"call_id":         "call_42",
		"agent_id":        "agent_7",
		"start_timestamp": started.UnixMilli(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	log := repos.callLog.logs["call_42"]
	require.NotNil(t, log)
	assert.Equal(t, domain.CallStatusStarted, log.Status)
	assert.Equal(t, "agent_7", log.AgentID)
	assert.Equal(t, int64(1), log.RestaurantID)
	assert.True(t, log.StartTime.Equal(started))

	// Transcript deltas concatenate in delivery order.
	deliver(t, h, map[string]interface{}{
		"event_name": "transcript.delta",
		"call_id":    "call_42",
		"transcript": "Hello",
	})
	deliver(t, h, map[string]interface{}{
		"event_name": "transcript.delta",
		"call_id":    "call_42",
		"transcript": " world",
	})
	assert.Equal(t, "Hello world", log.Transcript)

	ended := started.Add(3 * time.Minute)
	deliver(t, h, map[string]interface{}{
		"event_name":    "call.ended",
		"call_id":       "call_42",
		"end_timestamp": ended.UnixMilli(),
		"call_status":   "completed",
		"transcript":    "Hello world, goodbye",
	})
	assert.Equal(t, "completed", log.Status)
	assert.Equal(t, "Hello world, goodbye", log.Transcript)
	require.NotNil(t, log.EndTime)
	assert.True(t, log.EndTime.Equal(ended))
	assert.Equal(t, "call.ended", log.RawEventData["event_name"])
}

func TestWebhookHandoverRequested(t *testing.T) {
	repos := newMemRepos()
	h := NewRetellWebhookHandler(testSecret, 1, repos, nil)

	deliver(t, h, map[string]interface{}{
		"event_name":      "call.started",
		"call_id":         "call_9",
		"agent_id":        "agent_7",
		"start_timestamp": time.Now().UnixMilli(),
	})
	rec := deliver(t, h, map[string]interface{}{
		"event_name": "handover.requested",
		"call_id":    "call_9",
		"reason":     "caller asked for a human",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.CallStatusHandover, repos.callLog.logs["call_9"].Status)
}

func TestWebhookCallError(t *testing.T) {
	repos := newMemRepos()
	h := NewRetellWebhookHandler(testSecret, 1, repos, nil)

	deliver(t, h, map[string]interface{}{
		"event_name":      "call.started",
		"call_id":         "call_13",
		"agent_id":        "agent_7",
		"start_timestamp": time.Now().UnixMilli(),
	})
	rec := deliver(t, h, map[string]interface{}{
		"event_name":    "error",
		"call_id":       "call_13",
		"error_message": "media stream dropped",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	log := repos.callLog.logs["call_13"]
	assert.Equal(t, domain.CallStatusError, log.Status)
	assert.Equal(t, "media stream dropped", log.RawEventData["error_message"])
}

func TestWebhookUnknownEventIsNoop(t *testing.T) {
	repos := newMemRepos()
	h := NewRetellWebhookHandler(testSecret, 1, repos, nil)

	rec := deliver(t, h, map[string]interface{}{
		"event_name": "call.transferred",
		"call_id":    "call_77",
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "call.transferred", resp["event_received"])
	assert.Empty(t, repos.callLog.logs)
}

func TestWebhookDedupSuppressesLifecycleRedelivery(t *testing.T) {
	repos := newMemRepos()
	h := NewRetellWebhookHandler(testSecret, 1, repos, NewMemoryDeduper())

	event := map[string]interface{}{
		"event_name":      "call.started",
		"call_id":         "call_55",
		"agent_id":        "agent_7",
		"start_timestamp": time.Now().UnixMilli(),
	}
	deliver(t, h, event)
	rec := deliver(t, h, event)

	// Redelivery still acks but inserts only once.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, repos.callLog.creates)
}

func TestWebhookDedupNeverSuppressesTranscriptDeltas(t *testing.T) {
	repos := newMemRepos()
	h := NewRetellWebhookHandler(testSecret, 1, repos, NewMemoryDeduper())

	deliver(t, h, map[string]interface{}{
		"event_name":      "call.started",
		"call_id":         "call_56",
		"agent_id":        "agent_7",
		"start_timestamp": time.Now().UnixMilli(),
	})

	delta := map[string]interface{}{
		"event_name": "transcript.delta",
		"call_id":    "call_56",
		"transcript": "ha",
	}
	deliver(t, h, delta)
	deliver(t, h, delta)

	assert.Equal(t, "haha", repos.callLog.logs["call_56"].Transcript)
}
