// Package handler wires HTTP endpoints to the webhook receiver and the tool
// dispatcher.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/voiceflow-ai/voice-service/internal/config"
	"github.com/voiceflow-ai/voice-service/internal/repository"
	"github.com/voiceflow-ai/voice-service/internal/services/tools"
	"github.com/voiceflow-ai/voice-service/pkg/logger"
	"github.com/voiceflow-ai/voice-service/pkg/redis"
	"go.uber.org/zap"
)

// HandlerManager manages all handlers and their initialization
type HandlerManager struct {
	config      *config.ServiceConfig
	repoManager repository.RepositoryManager

	webhookHandler *RetellWebhookHandler
	actionHandler  *RetellActionHandler
}

// NewHandlerManager creates and initializes all handlers and services
func NewHandlerManager(cfg *config.ServiceConfig) (*HandlerManager, error) {
	// Initialize database connection
	repoManager, err := repository.NewRepositoryManager()
	if err != nil {
		logger.Base().Error("failed to connect to database", zap.Error(err))
		return nil, err
	}

	// Redis is optional. Without it duplicate suppression falls back to
	// process memory.
	var deduper EventDeduper
	if cfg.RedisHost != "" {
		redisSvc, err := redis.NewRedisService(&redis.RedisConfig{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		if err != nil {
			logger.Base().Warn("failed to initialize redis, using in-memory dedup", zap.Error(err))
		} else {
			deduper = NewRedisDeduper(redisSvc)
			logger.Base().Info("redis dedup initialized",
				zap.String("host", cfg.RedisHost), zap.String("port", cfg.RedisPort))
		}
	}
	if deduper == nil {
		deduper = NewMemoryDeduper()
	}

	toolService := tools.NewService(repoManager, cfg.RestaurantID)

	return &HandlerManager{
		config:         cfg,
		repoManager:    repoManager,
		webhookHandler: NewRetellWebhookHandler(cfg.RetellWebhookSecret, cfg.RestaurantID, repoManager, deduper),
		actionHandler:  NewRetellActionHandler(toolService),
	}, nil
}

// SetupAllRoutes sets up all routes with middleware
func (hm *HandlerManager) SetupAllRoutes(router *mux.Router) {
	// Apply global middleware
	router.Use(CORSMiddleware)
	router.Use(GlobalLoggingMiddleware)
	router.Use(RateLimitMiddleware(hm.config.WebhookRateLimit, hm.config.WebhookRateBurst))

	hm.webhookHandler.SetupWebhookRoutes(router)
	hm.actionHandler.SetupActionRoutes(router)

	router.HandleFunc("/", hm.handleRoot).Methods("GET")
	router.HandleFunc("/health", hm.handleHealth).Methods("GET")

	logger.Base().Info("routes registered")
}

// RepoManager exposes the repository manager for shutdown.
func (hm *HandlerManager) RepoManager() repository.RepositoryManager {
	return hm.repoManager
}

// handleRoot serves the liveness message.
func (hm *HandlerManager) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"message": "VoiceFlow AI Backend API",
	})
}

// handleHealth reports service and database health.
func (hm *HandlerManager) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := "ok"
	code := http.StatusOK
	if err := hm.repoManager.Ping(r.Context()); err != nil {
		logger.Base().Error("health check failed", zap.Error(err))
		status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"status": status})
}
