package config

// Tool names the voice agent may invoke against the action endpoint.
const (
	ToolGetMenu               = "get_menu"
	ToolCheckItemAvailability = "check_item_availability"
	ToolCreateOrder           = "create_order"
	ToolGetTimeslots          = "get_timeslots"
	ToolCreateReservation     = "create_reservation"
	ToolCreateReminder        = "create_reminder"
	ToolHandoverHuman         = "handover_human"
)

// ReminderAssigneeChef is the only assignee reminders may target.
const ReminderAssigneeChef = "chef"

// ToolDefinition describes one callable tool in the agent's schema.
type ToolDefinition struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description,omitempty"`
	Parameters  map[string]interface{} `json:"parameters"`
}

// AgentDefinition is the desired vendor-side agent configuration: prompt,
// tool schema and voice parameters.
type AgentDefinition struct {
	AgentName         string           `json:"agent_name"`
	VoiceID           string           `json:"voice_id"`
	VoiceSpeed        float64          `json:"voice_speed"`
	VoiceTemperature  float64          `json:"voice_temperature"`
	EnableBackchannel bool             `json:"enable_backchannel"`
	ReminderPrompt    string           `json:"reminder_prompt"`
	SystemPrompt      string           `json:"system_prompt"`
	LLMWebsocketURL   string           `json:"llm_websocket_url"`
	Tools             []ToolDefinition `json:"tools"`
}

const restaurantSystemPrompt = `
You are the friendly maître d' for {{RestaurantName}}. Greet callers, announce today's special if present, then ask: 'Would you like a reservation, a takeout order, or have a question about events?'
Rules:

Confirm items, sizes, quantities; never guess allergens.

Announce 86'd items immediately and offer alternatives.

For reservations, collect date/time/party size/name/phone; read back to confirm.

For event planning, capture date, party size, type (birthday/corporate), budget, contact; create a reminder to Chef to call within 24 hours.

Payments are via SMS/email link only—never collect card by phone.

If caller is stuck or requests staff, escalate with handover.
`

// DefaultAgentDefinition builds the restaurant agent configuration. The
// websocket URL is derived from the backend's public base URL.
func DefaultAgentDefinition(publicBaseURL string) AgentDefinition {
	return AgentDefinition{
		AgentName:         "VoiceFlow AI Restaurant Agent",
		VoiceID:           "11labs-Adrian",
		VoiceSpeed:        1.0,
		VoiceTemperature:  1.0,
		EnableBackchannel: true,
		ReminderPrompt:    "Just a reminder, I'm here to help with reservations, takeout orders, or any questions you have about our events. What can I do for you?",
		SystemPrompt:      restaurantSystemPrompt,
		LLMWebsocketURL:   websocketURL(publicBaseURL) + "/api/voice/retell/llm-websocket",
		Tools:             restaurantToolSchema(),
	}
}

// websocketURL rewrites an http(s) base URL to its ws(s) equivalent.
func websocketURL(base string) string {
	switch {
	case len(base) > 8 && base[:8] == "https://":
		return "wss://" + base[8:]
	case len(base) > 7 && base[:7] == "http://":
		return "ws://" + base[7:]
	default:
		return base
	}
}

func restaurantToolSchema() []ToolDefinition {
	return []ToolDefinition{
		{
			Name:        ToolGetMenu,
			Description: "List menu items",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"tags": map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
				},
			},
		},
		{
			Name: ToolCheckItemAvailability,
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"item_id": map[string]interface{}{"type": "string"},
					"qty":     map[string]interface{}{"type": "number"},
				},
				"required": []string{"item_id", "qty"},
			},
		},
		{
			Name: ToolCreateOrder,
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"items": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"item_id": map[string]interface{}{"type": "string"},
								"qty":     map[string]interface{}{"type": "integer"},
								"notes":   map[string]interface{}{"type": "string"},
							},
							"required": []string{"item_id", "qty"},
						},
					},
					"customer": map[string]interface{}{
						"type": "object",
						"properties": map[string]interface{}{
							"name":  map[string]interface{}{"type": "string"},
							"phone": map[string]interface{}{"type": "string"},
							"email": map[string]interface{}{"type": "string"},
						},
						"required": []string{"name", "phone"},
					},
				},
				"required": []string{"items", "customer"},
			},
		},
		{
			Name: ToolGetTimeslots,
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"date":       map[string]interface{}{"type": "string", "format": "date"},
					"party_size": map[string]interface{}{"type": "integer"},
				},
				"required": []string{"date", "party_size"},
			},
		},
		{
			Name: ToolCreateReservation,
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"datetime":   map[string]interface{}{"type": "string", "format": "date-time"},
					"party_size": map[string]interface{}{"type": "integer"},
					"name":       map[string]interface{}{"type": "string"},
					"phone":      map[string]interface{}{"type": "string"},
				},
				"required": []string{"datetime", "party_size", "name", "phone"},
			},
		},
		{
			Name: ToolCreateReminder,
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"assignee": map[string]interface{}{"type": "string", "enum": []string{ReminderAssigneeChef}},
					"due_at":   map[string]interface{}{"type": "string", "format": "date-time"},
					"payload":  map[string]interface{}{"type": "object"},
				},
				"required": []string{"assignee", "due_at", "payload"},
			},
		},
		{
			Name: ToolHandoverHuman,
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"reason": map[string]interface{}{"type": "string"},
				},
				"required": []string{"reason"},
			},
		},
	}
}
