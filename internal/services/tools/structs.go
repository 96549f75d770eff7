package tools

import (
	"fmt"
	"time"

	"github.com/voiceflow-ai/voice-service/internal/config"
)

// GetMenuPayload filters the menu listing by tag containment.
type GetMenuPayload struct {
	Tags []string `json:"tags,omitempty"`
}

// Validate checks the payload. All fields are optional.
func (p *GetMenuPayload) Validate() error {
	return nil
}

// CheckItemAvailabilityPayload asks whether a quantity of an item can be
// fulfilled right now.
type CheckItemAvailabilityPayload struct {
	ItemID string `json:"item_id"`
	Qty    int    `json:"qty"`
}

// Validate checks required fields.
func (p *CheckItemAvailabilityPayload) Validate() error {
	if p.ItemID == "" {
		return fmt.Errorf("item_id is required")
	}
	if p.Qty <= 0 {
		return fmt.Errorf("qty must be positive")
	}
	return nil
}

// OrderLine is one requested line item within an order.
type OrderLine struct {
	ItemID string `json:"item_id"`
	Qty    int    `json:"qty"`
	Notes  string `json:"notes,omitempty"`
}

// OrderCustomer carries the caller's contact details.
type OrderCustomer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
}

// CreateOrderPayload holds the line items and customer for a takeaway order.
type CreateOrderPayload struct {
	Items    []OrderLine   `json:"items"`
	Customer OrderCustomer `json:"customer"`
}

// Validate checks required fields on the order and every line.
func (p *CreateOrderPayload) Validate() error {
	if len(p.Items) == 0 {
		return fmt.Errorf("items must not be empty")
	}
	for i, line := range p.Items {
		if line.ItemID == "" {
			return fmt.Errorf("items[%d].item_id is required", i)
		}
		if line.Qty <= 0 {
			return fmt.Errorf("items[%d].qty must be positive", i)
		}
	}
	if p.Customer.Name == "" {
		return fmt.Errorf("customer.name is required")
	}
	if p.Customer.Phone == "" {
		return fmt.Errorf("customer.phone is required")
	}
	return nil
}

// GetTimeslotsPayload asks for available reservation slots on a date.
type GetTimeslotsPayload struct {
	Date      string `json:"date"`
	PartySize int    `json:"party_size"`
}

// Validate checks required fields and the date format.
func (p *GetTimeslotsPayload) Validate() error {
	if p.Date == "" {
		return fmt.Errorf("date is required")
	}
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		return fmt.Errorf("date must be formatted as YYYY-MM-DD: %w", err)
	}
	if p.PartySize <= 0 {
		return fmt.Errorf("party_size must be positive")
	}
	return nil
}

// CreateReservationPayload books a table for a caller.
type CreateReservationPayload struct {
	DateTime  time.Time `json:"datetime"`
	PartySize int       `json:"party_size"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
}

// Validate checks required fields.
func (p *CreateReservationPayload) Validate() error {
	if p.DateTime.IsZero() {
		return fmt.Errorf("datetime is required")
	}
	if p.PartySize <= 0 {
		return fmt.Errorf("party_size must be positive")
	}
	if p.Name == "" {
		return fmt.Errorf("name is required")
	}
	if p.Phone == "" {
		return fmt.Errorf("phone is required")
	}
	return nil
}

// CreateReminderPayload schedules a task for a staff member. Only the chef
// role may be assigned.
type CreateReminderPayload struct {
	Assignee string                 `json:"assignee"`
	DueAt    time.Time              `json:"due_at"`
	Payload  map[string]interface{} `json:"payload"`
}

// Validate checks required fields and restricts the assignee role.
func (p *CreateReminderPayload) Validate() error {
	if p.Assignee != config.ReminderAssigneeChef {
		return fmt.Errorf("assignee must be %q", config.ReminderAssigneeChef)
	}
	if p.DueAt.IsZero() {
		return fmt.Errorf("due_at is required")
	}
	if p.Payload == nil {
		return fmt.Errorf("payload is required")
	}
	return nil
}

// HandoverHumanPayload signals that the caller should be transferred to
// staff.
type HandoverHumanPayload struct {
	Reason string `json:"reason"`
}

// Validate checks required fields.
func (p *HandoverHumanPayload) Validate() error {
	if p.Reason == "" {
		return fmt.Errorf("reason is required")
	}
	return nil
}

// MenuItemSummary is the agent-facing view of one menu item.
type MenuItemSummary struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	IsAvailable bool     `json:"is_available"`
	Is86d       bool     `json:"is_86d"`
}
