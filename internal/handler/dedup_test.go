package handler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryDeduperMarksFirstDeliveryOnly(t *testing.T) {
	d := NewMemoryDeduper()
	ctx := context.Background()

	assert.True(t, d.MarkProcessed(ctx, "call.started:call_1"))
	assert.False(t, d.MarkProcessed(ctx, "call.started:call_1"))

	// Different keys do not interfere.
	assert.True(t, d.MarkProcessed(ctx, "call.ended:call_1"))
	assert.True(t, d.MarkProcessed(ctx, "call.started:call_2"))
}
