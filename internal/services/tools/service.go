// Package tools implements the agent-facing tool dispatcher. Each tool call
// arriving on the action endpoint is validated against its payload type and
// routed to exactly one handler.
package tools

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/voiceflow-ai/voice-service/internal/config"
	"github.com/voiceflow-ai/voice-service/internal/domain"
	"github.com/voiceflow-ai/voice-service/internal/repository"
	"github.com/voiceflow-ai/voice-service/pkg/logger"
	"go.uber.org/zap"
)

// Sentinel errors the handler layer maps to HTTP status codes.
var (
	// ErrUnknownTool is returned when the tool name matches no handler.
	ErrUnknownTool = errors.New("unknown tool")
	// ErrValidation is returned when a payload fails validation. No side
	// effects have happened when it is returned.
	ErrValidation = errors.New("invalid parameters")
)

// Result is the envelope every tool handler returns.
type Result map[string]interface{}

// Service dispatches tool calls to their handlers.
type Service struct {
	repos        repository.RepositoryManager
	restaurantID int64
}

// NewService creates a tool dispatcher scoped to one restaurant.
func NewService(repos repository.RepositoryManager, restaurantID int64) *Service {
	return &Service{
		repos:        repos,
		restaurantID: restaurantID,
	}
}

// Execute routes one tool call. Unknown names return ErrUnknownTool and
// payloads that fail validation return ErrValidation, both before any
// database write.
func (s *Service) Execute(ctx context.Context, toolName string, params json.RawMessage) (Result, error) {
	logger.Base().Info("executing tool", zap.String("tool", toolName))

	switch toolName {
	case config.ToolGetMenu:
		return s.getMenu(ctx, params)
	case config.ToolCheckItemAvailability:
		return s.checkItemAvailability(ctx, params)
	case config.ToolCreateOrder:
		return s.createOrder(ctx, params)
	case config.ToolGetTimeslots:
		return s.getTimeslots(ctx, params)
	case config.ToolCreateReservation:
		return s.createReservation(ctx, params)
	case config.ToolCreateReminder:
		return s.createReminder(ctx, params)
	case config.ToolHandoverHuman:
		return s.handoverHuman(ctx, params)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTool, toolName)
	}
}

// decode unmarshals params into the payload and runs its validation.
func decode(params json.RawMessage, payload interface{ Validate() error }) error {
	if len(params) > 0 {
		if err := json.Unmarshal(params, payload); err != nil {
			return fmt.Errorf("%w: %v", ErrValidation, err)
		}
	}
	if err := payload.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}

func (s *Service) getMenu(ctx context.Context, params json.RawMessage) (Result, error) {
	var payload GetMenuPayload
	if err := decode(params, &payload); err != nil {
		return nil, err
	}

	items, err := s.repos.Menu().ListByRestaurant(ctx, s.restaurantID, payload.Tags)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	summaries := make([]MenuItemSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, MenuItemSummary{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Price:       item.Price,
			Category:    item.Category,
			Tags:        item.Tags,
			IsAvailable: item.IsAvailable,
			Is86d:       item.Is86d,
		})
	}
	return Result{"status": "success", "data": summaries}, nil
}

func (s *Service) checkItemAvailability(ctx context.Context, params json.RawMessage) (Result, error) {
	var payload CheckItemAvailabilityPayload
	if err := decode(params, &payload); err != nil {
		return nil, err
	}

	item, err := s.repos.Menu().GetByID(ctx, s.restaurantID, payload.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up menu item: %w", err)
	}
	if item == nil {
		return Result{"status": "success", "available": false, "message": "Item not found."}, nil
	}
	return Result{"status": "success", "available": item.CanFulfill()}, nil
}

func (s *Service) createOrder(ctx context.Context, params json.RawMessage) (Result, error) {
	var payload CreateOrderPayload
	if err := decode(params, &payload); err != nil {
		return nil, err
	}

	// Price every line from the menu before writing anything. Unknown
	// items reject the whole order.
	type pricedLine struct {
		line  OrderLine
		price float64
	}
	priced := make([]pricedLine, 0, len(payload.Items))
	total := 0.0
	for _, line := range payload.Items {
		item, err := s.repos.Menu().GetByID(ctx, s.restaurantID, line.ItemID)
		if err != nil {
			return nil, fmt.Errorf("failed to price order line: %w", err)
		}
		if item == nil {
			return nil, fmt.Errorf("%w: unknown menu item %s", ErrValidation, line.ItemID)
		}
		priced = append(priced, pricedLine{line: line, price: item.Price})
		total += item.Price * float64(line.Qty)
	}

	payLink, err := generatePayLink()
	if err != nil {
		return nil, fmt.Errorf("failed to generate pay link: %w", err)
	}

	order := &domain.Order{
		RestaurantID:  s.restaurantID,
		CustomerName:  payload.Customer.Name,
		CustomerPhone: payload.Customer.Phone,
		CustomerEmail: payload.Customer.Email,
		Status:        domain.OrderStatusPending,
		TotalAmount:   total,
		PayLink:       payLink,
	}

	// The order row and its lines commit or roll back together.
	err = s.repos.WithTx(ctx, func(ctx context.Context, repos repository.RepositoryManager) error {
		if err := repos.Order().Create(ctx, order); err != nil {
			return err
		}
		for _, pl := range priced {
			item := &domain.OrderItem{
				OrderID:      order.ID,
				MenuItemID:   pl.line.ItemID,
				Quantity:     pl.line.Qty,
				Notes:        pl.line.Notes,
				PriceAtOrder: pl.price,
			}
			if err := repos.Order().CreateItem(ctx, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	logger.Base().Info("order created",
		zap.String("order_id", order.ID),
		zap.Int("lines", len(priced)),
		zap.Float64("total_amount", total))
	return Result{"status": "success", "order_id": order.ID, "pay_link": payLink}, nil
}

func (s *Service) getTimeslots(ctx context.Context, params json.RawMessage) (Result, error) {
	var payload GetTimeslotsPayload
	if err := decode(params, &payload); err != nil {
		return nil, err
	}

	// Real slot computation needs operating hours and table inventory,
	// neither of which is modelled yet. TODO: derive slots from the
	// reservations table once capacity is stored per restaurant.
	available := []string{"18:00", "19:00", "20:00"}
	return Result{"status": "success", "data": available}, nil
}

func (s *Service) createReservation(ctx context.Context, params json.RawMessage) (Result, error) {
	var payload CreateReservationPayload
	if err := decode(params, &payload); err != nil {
		return nil, err
	}

	reservation := &domain.Reservation{
		RestaurantID:  s.restaurantID,
		CustomerName:  payload.Name,
		CustomerPhone: payload.Phone,
		DateTime:      payload.DateTime,
		PartySize:     payload.PartySize,
		Status:        domain.ReservationStatusPending,
	}
	if err := s.repos.Reservation().Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	return Result{"status": "success", "reservation_id": reservation.ID}, nil
}

func (s *Service) createReminder(ctx context.Context, params json.RawMessage) (Result, error) {
	var payload CreateReminderPayload
	if err := decode(params, &payload); err != nil {
		return nil, err
	}

	reminder := &domain.Reminder{
		RestaurantID: s.restaurantID,
		Assignee:     payload.Assignee,
		DueAt:        payload.DueAt,
		Payload:      domain.RawPayload(payload.Payload),
	}
	if err := s.repos.Reminder().Create(ctx, reminder); err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return Result{"status": "success", "reminder_id": reminder.ID}, nil
}

func (s *Service) handoverHuman(ctx context.Context, params json.RawMessage) (Result, error) {
	var payload HandoverHumanPayload
	if err := decode(params, &payload); err != nil {
		return nil, err
	}

	// Staff alerting is not wired up yet; the request is only logged here.
	// Call-level handover state is recorded by the webhook receiver when
	// the vendor emits handover.requested.
	logger.Base().Warn("handover to human requested",
		zap.Int64("restaurant_id", s.restaurantID),
		zap.String("reason", payload.Reason))
	return Result{"status": "success", "message": "Handover request logged."}, nil
}

// generatePayLink builds a placeholder payment link until real payment
// provider integration lands.
func generatePayLink() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "https://stripe.com/pay/" + hex.EncodeToString(buf), nil
}
