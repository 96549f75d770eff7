package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/voiceflow-ai/voice-service/internal/services/tools"
	"github.com/voiceflow-ai/voice-service/pkg/logger"
	"go.uber.org/zap"
)

// actionRequest is the wire shape of a tool invocation from the agent.
type actionRequest struct {
	ToolName   string          `json:"tool_name"`
	Parameters json.RawMessage `json:"parameters"`
}

// RetellActionHandler handles tool invocations from the voice agent.
type RetellActionHandler struct {
	toolService *tools.Service
}

// NewRetellActionHandler creates a new action handler.
func NewRetellActionHandler(toolService *tools.Service) *RetellActionHandler {
	return &RetellActionHandler{toolService: toolService}
}

// SetupActionRoutes registers the action endpoint.
func (h *RetellActionHandler) SetupActionRoutes(router *mux.Router) {
	router.HandleFunc("/api/voice/retell/action", h.HandleAction).Methods("POST")
}

// HandleAction decodes the tool invocation and dispatches it. Unknown tools
// and invalid parameters return 400 with an error envelope.
func (h *RetellActionHandler) HandleAction(w http.ResponseWriter, r *http.Request) {
	var req actionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeActionError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.ToolName == "" {
		writeActionError(w, http.StatusBadRequest, "tool_name is required")
		return
	}

	result, err := h.toolService.Execute(r.Context(), req.ToolName, req.Parameters)
	if err != nil {
		switch {
		case errors.Is(err, tools.ErrUnknownTool), errors.Is(err, tools.ErrValidation):
			writeActionError(w, http.StatusBadRequest, err.Error())
		default:
			logger.Base().Error("tool execution failed",
				zap.String("tool", req.ToolName),
				zap.Error(err))
			writeActionError(w, http.StatusInternalServerError, "tool execution failed")
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func writeActionError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "error",
		"message": message,
	})
}
