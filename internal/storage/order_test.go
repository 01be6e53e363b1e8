package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransition(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{name: "pending to cancelled", from: StatusPending, to: StatusAdjustmentCancelled, want: true},
		{name: "pending to preparing", from: StatusPending, to: StatusPreparing, want: true},
		{name: "cancelled back to pending", from: StatusAdjustmentCancelled, to: StatusPending, want: true},
		{name: "cancelled straight to preparing", from: StatusAdjustmentCancelled, to: StatusPreparing, want: false},
		{name: "preparing is terminal", from: StatusPreparing, to: StatusPending, want: false},
		{name: "preparing never cancels", from: StatusPreparing, to: StatusAdjustmentCancelled, want: false},
		{name: "no self loop", from: StatusPending, to: StatusPending, want: false},
		{name: "unknown status", from: OrderStatus("shipped"), to: StatusPending, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestOrderStatus_Valid(t *testing.T) {
	assert.True(t, StatusPending.Valid())
	assert.True(t, StatusAdjustmentCancelled.Valid())
	assert.True(t, StatusPreparing.Valid())
	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("shipped").Valid())
}

func TestMaterialKind_CanSubstitute(t *testing.T) {
	assert.True(t, KindRaw.CanSubstitute())
	assert.True(t, KindSemi.CanSubstitute())
	assert.False(t, KindSub.CanSubstitute())
	assert.False(t, MaterialKind("").CanSubstitute())
}
