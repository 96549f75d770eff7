// Package retell is a thin client for the Retell voice-agent platform API.
// It covers the surface the bootstrap flow needs: agent create/update,
// publish, and phone-number provisioning.
package retell

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/voiceflow-ai/voice-service/internal/config"
	"github.com/voiceflow-ai/voice-service/pkg/logger"
	"go.uber.org/zap"
)

// API is the vendor surface consumed by the provisioning flow. The concrete
// Client talks HTTP; tests substitute fakes.
type API interface {
	CreateAgent(ctx context.Context, def config.AgentDefinition) (*Agent, error)
	UpdateAgent(ctx context.Context, agentID string, def config.AgentDefinition) (*Agent, error)
	PublishAgent(ctx context.Context, agentID string) error
	CreatePhoneNumber(ctx context.Context, req CreatePhoneNumberRequest) (*PhoneNumber, error)
}

// Agent is the vendor's representation of an agent.
type Agent struct {
	AgentID   string `json:"agent_id"`
	AgentName string `json:"agent_name"`
	VoiceID   string `json:"voice_id"`
}

// PhoneNumber is the vendor's representation of a provisioned number.
type PhoneNumber struct {
	PhoneNumber    string `json:"phone_number"`
	InboundAgentID string `json:"inbound_agent_id"`
}

// CreatePhoneNumberRequest requests a new number bound to an agent and an
// inbound webhook.
type CreatePhoneNumberRequest struct {
	InboundAgentID    string `json:"inbound_agent_id"`
	AreaCode          string `json:"area_code,omitempty"`
	CountryCode       string `json:"country_code,omitempty"`
	InboundWebhookURL string `json:"inbound_webhook_url,omitempty"`
}

// Client handles communication with the Retell API.
type Client struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

// NewClient creates a new Retell API client.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// CreateAgent creates a new agent from the given definition.
func (c *Client) CreateAgent(ctx context.Context, def config.AgentDefinition) (*Agent, error) {
	var agent Agent
	if err := c.do(ctx, http.MethodPost, "/create-agent", def, &agent); err != nil {
		return nil, fmt.Errorf("failed to create agent: %w", err)
	}
	if agent.AgentID == "" {
		return nil, fmt.Errorf("create agent returned an empty agent id")
	}
	logger.Base().Info("agent created", zap.String("agent_id", agent.AgentID), zap.String("agent_name", agent.AgentName))
	return &agent, nil
}

// UpdateAgent updates an existing agent in place.
func (c *Client) UpdateAgent(ctx context.Context, agentID string, def config.AgentDefinition) (*Agent, error) {
	var agent Agent
	path := "/update-agent/" + agentID
	if err := c.do(ctx, http.MethodPatch, path, def, &agent); err != nil {
		return nil, fmt.Errorf("failed to update agent %s: %w", agentID, err)
	}
	if agent.AgentID == "" {
		agent.AgentID = agentID
	}
	logger.Base().Info("agent updated", zap.String("agent_id", agent.AgentID))
	return &agent, nil
}

// PublishAgent promotes the agent's current draft to live.
func (c *Client) PublishAgent(ctx context.Context, agentID string) error {
	if err := c.do(ctx, http.MethodPost, "/publish-agent/"+agentID, nil, nil); err != nil {
		return fmt.Errorf("failed to publish agent %s: %w", agentID, err)
	}
	logger.Base().Info("agent published", zap.String("agent_id", agentID))
	return nil
}

// CreatePhoneNumber acquires a number bound to the agent's inbound webhook.
func (c *Client) CreatePhoneNumber(ctx context.Context, req CreatePhoneNumberRequest) (*PhoneNumber, error) {
	var number PhoneNumber
	if err := c.do(ctx, http.MethodPost, "/create-phone-number", req, &number); err != nil {
		return nil, fmt.Errorf("failed to create phone number: %w", err)
	}
	if number.PhoneNumber == "" {
		return nil, fmt.Errorf("create phone number returned an empty number")
	}
	logger.Base().Info("phone number provisioned",
		zap.String("phone_number", number.PhoneNumber),
		zap.String("agent_id", number.InboundAgentID))
	return &number, nil
}

// do sends one authenticated JSON request and decodes the response into out
// when non-nil. Non-2xx responses become errors carrying status and body.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("retell API error: status=%d, body=%s", resp.StatusCode, string(bodyBytes))
	}

	if out != nil && len(bodyBytes) > 0 {
		if err := json.Unmarshal(bodyBytes, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
