package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultAgentDefinition(t *testing.T) {
	def := DefaultAgentDefinition("https://voiceflow.example.com")

	assert.NotEmpty(t, def.AgentName)
	assert.NotEmpty(t, def.SystemPrompt)
	assert.Equal(t, "wss://voiceflow.example.com/api/voice/retell/llm-websocket", def.LLMWebsocketURL)

	names := make([]string, 0, len(def.Tools))
	for _, tool := range def.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{
		ToolGetMenu,
		ToolCheckItemAvailability,
		ToolCreateOrder,
		ToolGetTimeslots,
		ToolCreateReservation,
		ToolCreateReminder,
		ToolHandoverHuman,
	}, names)
}

func TestWebsocketURL(t *testing.T) {
	testCases := []struct {
		base string
		want string
	}{
		{base: "https://voiceflow.example.com", want: "wss://voiceflow.example.com"},
		{base: "http://localhost:8080", want: "ws://localhost:8080"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, websocketURL(tc.base))
	}
}

func TestReminderToolRestrictsAssignee(t *testing.T) {
	def := DefaultAgentDefinition("https://voiceflow.example.com")

	var reminderTool *ToolDefinition
	for i := range def.Tools {
		if def.Tools[i].Name == ToolCreateReminder {
			reminderTool = &def.Tools[i]
			break
		}
	}
	require.NotNil(t, reminderTool)

	props, ok := reminderTool.Parameters["properties"].(map[string]interface{})
	require.True(t, ok)
	assignee, ok := props["assignee"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []string{ReminderAssigneeChef}, assignee["enum"])
}
