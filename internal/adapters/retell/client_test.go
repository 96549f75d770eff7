package retell

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voiceflow-ai/voice-service/internal/config"
)

func TestCreateAgent(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"agent_id":   "agent_abc",
			"agent_name": "Restaurant Concierge",
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test")
	def := config.DefaultAgentDefinition("https://voiceflow.example.com")

	agent, err := client.CreateAgent(context.Background(), def)
	require.NoError(t, err)

	assert.Equal(t, "agent_abc", agent.AgentID)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "/create-agent", gotPath)
	assert.Equal(t, def.AgentName, gotBody["agent_name"])
	assert.NotEmpty(t, gotBody["tools"])
}

func TestCreateAgentRejectsEmptyID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test")
	_, err := client.CreateAgent(context.Background(), config.DefaultAgentDefinition("https://voiceflow.example.com"))
	assert.Error(t, err)
}

func TestUpdateAgent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/update-agent/agent_abc", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"agent_id": "agent_abc"})
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test")
	agent, err := client.UpdateAgent(context.Background(), "agent_abc", config.DefaultAgentDefinition("https://voiceflow.example.com"))
	require.NoError(t, err)
	assert.Equal(t, "agent_abc", agent.AgentID)
}

func TestPublishAgent(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test")
	require.NoError(t, client.PublishAgent(context.Background(), "agent_abc"))
	assert.Equal(t, "/publish-agent/agent_abc", gotPath)
}

func TestCreatePhoneNumber(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req CreatePhoneNumberRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "agent_abc", req.InboundAgentID)

		json.NewEncoder(w).Encode(map[string]string{
			"phone_number":     "+15550123456",
			"inbound_agent_id": req.InboundAgentID,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-test")
	number, err := client.CreatePhoneNumber(context.Background(), CreatePhoneNumberRequest{
		InboundAgentID:    "agent_abc",
		InboundWebhookURL: "https://voiceflow.example.com/api/voice/retell/webhook",
	})
	require.NoError(t, err)
	assert.Equal(t, "+15550123456", number.PhoneNumber)
}

func TestErrorResponsesSurfaceStatusAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": "invalid api key"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "sk-bad")
	err := client.PublishAgent(context.Background(), "agent_abc")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=401")
	assert.Contains(t, err.Error(), "invalid api key")
}
