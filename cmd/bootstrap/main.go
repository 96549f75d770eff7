// Command bootstrap provisions the voice agent against the Retell API:
// create or update the agent definition, publish it, and bind an inbound
// phone number. Agent id and number are persisted to the local env file so
// reruns reuse them.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/voiceflow-ai/voice-service/internal/adapters/retell"
	"github.com/voiceflow-ai/voice-service/internal/config"
	"github.com/voiceflow-ai/voice-service/internal/services/provision"
	"github.com/voiceflow-ai/voice-service/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Info: .env file not found or skipped: %v", err)
	}

	cfg := config.LoadServiceConfig()

	if _, err := logger.Init(os.Getenv("LOG_ENV")); err != nil {
		log.Printf("Failed to initialize zap logger, falling back to std log")
	}
	defer logger.Sync()

	if cfg.RetellAPIKey == "" {
		logger.Base().Fatal("RETELL_API_KEY is required")
	}

	// Provisioned identifiers are carried in the env file between runs, on
	// top of whatever the shell environment already has.
	if err := godotenv.Load(cfg.EnvFilePath); err != nil {
		logger.Base().Info("env file not found, it will be created",
			zap.String("path", cfg.EnvFilePath))
	}

	envFile, err := config.NewEnvFile(cfg.EnvFilePath)
	if err != nil {
		logger.Base().Fatal("failed to open env file", zap.Error(err))
	}

	client := retell.NewClient(cfg.RetellBaseURL, cfg.RetellAPIKey)
	svc := provision.NewService(client, envFile, cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	result, err := svc.Bootstrap(ctx)
	if err != nil {
		logger.Base().Fatal("bootstrap failed", zap.Error(err))
	}

	fmt.Printf("Agent: %s (created=%t)\n", result.AgentID, result.AgentCreated)
	fmt.Printf("Published: %t\n", result.Published)
	fmt.Printf("Phone number: %s (reused=%t)\n", result.PhoneNumber, result.NumberReused)
	fmt.Printf("Webhook URL: %s\n", cfg.WebhookURL())
}
