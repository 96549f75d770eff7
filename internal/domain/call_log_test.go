package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventType(t *testing.T) {
	testCases := []struct {
		name string
		want EventType
	}{
		{name: "call.started", want: EventCallStarted},
		{name: "transcript.delta", want: EventTranscriptDelta},
		{name: "call.ended", want: EventCallEnded},
		{name: "handover.requested", want: EventHandoverRequested},
		{name: "error", want: EventCallError},
		{name: "call.transferred", want: EventUnknown},
		{name: "", want: EventUnknown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ParseEventType(tc.name))
		})
	}
}

func TestMenuItemCanFulfill(t *testing.T) {
	testCases := []struct {
		name        string
		isAvailable bool
		is86d       bool
		want        bool
	}{
		{name: "available", isAvailable: true, is86d: false, want: true},
		{name: "86d overrides available flag", isAvailable: true, is86d: true, want: false},
		{name: "unavailable", isAvailable: false, is86d: false, want: false},
		{name: "unavailable and 86d", isAvailable: false, is86d: true, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			item := &MenuItem{IsAvailable: tc.isAvailable, Is86d: tc.is86d}
			assert.Equal(t, tc.want, item.CanFulfill())
		})
	}
}

func TestRawPayloadValueScan(t *testing.T) {
	payload := RawPayload{"event_name": "call.ended", "call_id": "call_1"}

	value, err := payload.Value()
	require.NoError(t, err)

	var scanned RawPayload
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, "call.ended", scanned["event_name"])
	assert.Equal(t, "call_1", scanned["call_id"])
}

func TestRawPayloadScanNil(t *testing.T) {
	var scanned RawPayload
	require.NoError(t, scanned.Scan(nil))
	assert.Empty(t, scanned)
}
