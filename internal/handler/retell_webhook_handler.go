package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/voiceflow-ai/voice-service/internal/domain"
	"github.com/voiceflow-ai/voice-service/internal/repository"
	"github.com/voiceflow-ai/voice-service/pkg/logger"
	"go.uber.org/zap"
)

// SignatureHeader carries the hex HMAC-SHA256 digest of the raw body.
const SignatureHeader = "X-Retell-Signature"

// retellEvent is the wire shape of a webhook event. Fields not relevant to
// an event type are simply absent.
type retellEvent struct {
	EventName      string `json:"event_name"`
	CallID         string `json:"call_id"`
	AgentID        string `json:"agent_id"`
	StartTimestamp int64  `json:"start_timestamp"`
	EndTimestamp   int64  `json:"end_timestamp"`
	CallStatus     string `json:"call_status"`
	Transcript     string `json:"transcript"`
	Reason         string `json:"reason"`
	ErrorMessage   string `json:"error_message"`
}

// RetellWebhookHandler handles signed webhook events from the voice vendor.
type RetellWebhookHandler struct {
	webhookSecret string
	restaurantID  int64
	repoManager   repository.RepositoryManager
	deduper       EventDeduper
}

// NewRetellWebhookHandler creates a new webhook handler.
func NewRetellWebhookHandler(webhookSecret string, restaurantID int64, repoManager repository.RepositoryManager, deduper EventDeduper) *RetellWebhookHandler {
	return &RetellWebhookHandler{
		webhookSecret: webhookSecret,
		restaurantID:  restaurantID,
		repoManager:   repoManager,
		deduper:       deduper,
	}
}

// SetupWebhookRoutes registers the webhook endpoint.
func (h *RetellWebhookHandler) SetupWebhookRoutes(router *mux.Router) {
	router.HandleFunc("/api/voice/retell/webhook", h.HandleWebhook).Methods("POST")
}

// HandleWebhook verifies the request signature, then dispatches the event by
// type. Signature failures reject before any event processing.
func (h *RetellWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if h.webhookSecret == "" {
		logger.Base().Error("webhook secret not configured")
		http.Error(w, "webhook secret not configured", http.StatusInternalServerError)
		return
	}

	signature := r.Header.Get(SignatureHeader)
	if signature == "" {
		http.Error(w, SignatureHeader+" header missing", http.StatusBadRequest)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	if !h.verifySignature(body, signature) {
		logger.Base().Warn("webhook signature verification failed",
			zap.String("remote_addr", r.RemoteAddr))
		http.Error(w, "invalid webhook signature", http.StatusForbidden)
		return
	}

	var event retellEvent
	if err := json.Unmarshal(body, &event); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	var raw domain.RawPayload
	if err := json.Unmarshal(body, &raw); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	eventType := domain.ParseEventType(event.EventName)
	logger.Base().Info("webhook event received",
		zap.String("event", event.EventName),
		zap.String("call_id", event.CallID))

	if err := h.processEvent(r, eventType, &event, raw); err != nil {
		logger.Base().Error("failed to process webhook event",
			zap.String("event", event.EventName),
			zap.String("call_id", event.CallID),
			zap.Error(err))
		http.Error(w, "failed to process event", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":         "success",
		"event_received": event.EventName,
	})
}

// processEvent routes one verified event. Lifecycle events are deduplicated;
// transcript deltas are not, their ordering and multiplicity carry meaning.
func (h *RetellWebhookHandler) processEvent(r *http.Request, eventType domain.EventType, event *retellEvent, raw domain.RawPayload) error {
	ctx := r.Context()

	switch eventType {
	case domain.EventCallStarted:
		if !h.markNew(r, eventType, event.CallID) {
			return nil
		}
		log := &domain.CallLog{
			RetellCallID: event.CallID,
			RestaurantID: h.restaurantID,
			AgentID:      event.AgentID,
			StartTime:    time.UnixMilli(event.StartTimestamp),
			Status:       domain.CallStatusStarted,
			RawEventData: raw,
		}
		if err := h.repoManager.CallLog().Create(ctx, log); err != nil {
			return fmt.Errorf("failed to record call start: %w", err)
		}

	case domain.EventTranscriptDelta:
		if err := h.repoManager.CallLog().AppendTranscript(ctx, event.CallID, event.Transcript); err != nil {
			return fmt.Errorf("failed to append transcript: %w", err)
		}

	case domain.EventCallEnded:
		if !h.markNew(r, eventType, event.CallID) {
			return nil
		}
		endTime := time.UnixMilli(event.EndTimestamp)
		if err := h.repoManager.CallLog().Finish(ctx, event.CallID, endTime, event.CallStatus, event.Transcript, raw); err != nil {
			return fmt.Errorf("failed to record call end: %w", err)
		}

	case domain.EventHandoverRequested:
		logger.Base().Warn("handover requested",
			zap.String("call_id", event.CallID),
			zap.String("reason", event.Reason))
		if err := h.repoManager.CallLog().MarkHandover(ctx, event.CallID, raw); err != nil {
			return fmt.Errorf("failed to record handover: %w", err)
		}

	case domain.EventCallError:
		if !h.markNew(r, eventType, event.CallID) {
			return nil
		}
		logger.Base().Error("vendor reported call error",
			zap.String("call_id", event.CallID),
			zap.String("error_message", event.ErrorMessage))
		if err := h.repoManager.CallLog().MarkError(ctx, event.CallID, raw); err != nil {
			return fmt.Errorf("failed to record call error: %w", err)
		}

	default:
		logger.Base().Info("unhandled webhook event type",
			zap.String("event", event.EventName),
			zap.String("call_id", event.CallID))
	}
	return nil
}

// markNew reports whether this lifecycle event should be processed. With no
// deduper configured every delivery is processed.
func (h *RetellWebhookHandler) markNew(r *http.Request, eventType domain.EventType, callID string) bool {
	if h.deduper == nil {
		return true
	}
	key := string(eventType) + ":" + callID
	if !h.deduper.MarkProcessed(r.Context(), key) {
		logger.Base().Info("duplicate webhook delivery skipped",
			zap.String("event", string(eventType)),
			zap.String("call_id", callID))
		return false
	}
	return true
}

// verifySignature checks the hex HMAC-SHA256 digest of the raw body against
// the header value using a constant-time compare.
func (h *RetellWebhookHandler) verifySignature(body []byte, signature string) bool {
	mac := hmac.New(sha256.New, []byte(h.webhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}
