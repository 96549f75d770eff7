// Package provision orchestrates one-time agent setup against the Retell
// API: ensuring an agent exists, publishing it, and binding a phone number.
// Provisioned identifiers are persisted to the local env file so repeated
// runs reuse them instead of creating duplicates.
package provision

import (
	"context"
	"fmt"

	"github.com/voiceflow-ai/voice-service/internal/adapters/retell"
	"github.com/voiceflow-ai/voice-service/internal/config"
	"github.com/voiceflow-ai/voice-service/pkg/logger"
	"go.uber.org/zap"
)

// Result reports what the bootstrap run ended up with.
type Result struct {
	AgentID      string
	AgentCreated bool
	Published    bool
	PhoneNumber  string
	NumberReused bool
}

// Service drives the provisioning sequence.
type Service struct {
	api     retell.API
	envFile *config.EnvFile
	def     config.AgentDefinition
	cfg     *config.ServiceConfig
}

// NewService creates a provisioning service bound to the given vendor API
// and env-file key store.
func NewService(api retell.API, envFile *config.EnvFile, cfg *config.ServiceConfig) *Service {
	return &Service{
		api:     api,
		envFile: envFile,
		def:     config.DefaultAgentDefinition(cfg.PublicBaseURL),
		cfg:     cfg,
	}
}

// EnsureAgent updates the stored agent when an id is already on file and
// falls back to creating a fresh one when the update fails or no id exists.
// Newly created agent ids are written back to the env file.
func (s *Service) EnsureAgent(ctx context.Context) (string, bool, error) {
	storedID, err := s.envFile.Get(config.EnvKeyAgentID)
	if err != nil {
		return "", false, fmt.Errorf("failed to read stored agent id: %w", err)
	}

	if storedID != "" {
		agent, err := s.api.UpdateAgent(ctx, storedID, s.def)
		if err == nil {
			return agent.AgentID, false, nil
		}
		logger.Base().Warn("stored agent could not be updated, creating a new one",
			zap.String("agent_id", storedID), zap.Error(err))
	}

	agent, err := s.api.CreateAgent(ctx, s.def)
	if err != nil {
		return "", false, fmt.Errorf("failed to create agent: %w", err)
	}
	if err := s.envFile.Set(config.EnvKeyAgentID, agent.AgentID); err != nil {
		return "", false, fmt.Errorf("failed to persist agent id: %w", err)
	}
	return agent.AgentID, true, nil
}

// Publish promotes the agent's draft configuration to live.
func (s *Service) Publish(ctx context.Context, agentID string) error {
	if agentID == "" {
		return fmt.Errorf("cannot publish without an agent id")
	}
	return s.api.PublishAgent(ctx, agentID)
}

// EnsureNumber returns the phone number on file when one exists, otherwise
// provisions a new number bound to the agent and records it.
func (s *Service) EnsureNumber(ctx context.Context, agentID string) (string, bool, error) {
	stored, err := s.envFile.Get(config.EnvKeyPhoneNumber)
	if err != nil {
		return "", false, fmt.Errorf("failed to read stored phone number: %w", err)
	}
	if stored != "" {
		logger.Base().Info("reusing stored phone number", zap.String("phone_number", stored))
		return stored, true, nil
	}

	number, err := s.api.CreatePhoneNumber(ctx, retell.CreatePhoneNumberRequest{
		InboundAgentID:    agentID,
		InboundWebhookURL: s.cfg.WebhookURL(),
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to provision phone number: %w", err)
	}
	if err := s.envFile.Set(config.EnvKeyPhoneNumber, number.PhoneNumber); err != nil {
		return "", false, fmt.Errorf("failed to persist phone number: %w", err)
	}
	return number.PhoneNumber, false, nil
}

// Bootstrap runs the full sequence: ensure agent, publish, ensure number.
// It stops at the first failure so partial progress stays on file.
func (s *Service) Bootstrap(ctx context.Context) (*Result, error) {
	res := &Result{}

	agentID, created, err := s.EnsureAgent(ctx)
	if err != nil {
		return nil, err
	}
	res.AgentID = agentID
	res.AgentCreated = created

	if err := s.Publish(ctx, agentID); err != nil {
		return res, fmt.Errorf("failed to publish agent: %w", err)
	}
	res.Published = true

	number, reused, err := s.EnsureNumber(ctx, agentID)
	if err != nil {
		return res, err
	}
	res.PhoneNumber = number
	res.NumberReused = reused

	logger.Base().Info("bootstrap complete",
		zap.String("agent_id", res.AgentID),
		zap.Bool("agent_created", res.AgentCreated),
		zap.String("phone_number", res.PhoneNumber),
		zap.Bool("number_reused", res.NumberReused))
	return res, nil
}
