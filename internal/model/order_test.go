package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseOrderStatus(t *testing.T) {
	for _, st := range OrderStatuses {
		parsed, ok := ParseOrderStatus(string(st))
		assert.True(t, ok)
		assert.Equal(t, st, parsed)
	}

	_, ok := ParseOrderStatus("deleted")
	assert.False(t, ok)
}

func TestOrderStatusTransitions(t *testing.T) {
	assert.True(t, OrderStatusPending.CanTransitionTo(OrderStatusConfirmed))
	assert.True(t, OrderStatusConfirmed.CanTransitionTo(OrderStatusCompleted))
	assert.True(t, OrderStatusInProgress.CanTransitionTo(OrderStatusCancelled))

	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatusPending))
	assert.False(t, OrderStatusCompleted.CanTransitionTo(OrderStatusCancelled))
	assert.False(t, OrderStatusCancelled.CanTransitionTo(OrderStatusPending))
	assert.False(t, OrderStatusPending.CanTransitionTo(OrderStatus("unknown")))
}

func TestOrderStatusFlags(t *testing.T) {
	assert.True(t, OrderStatusPending.CanBeCancelled())
	assert.True(t, OrderStatusConfirmed.CanBeCancelled())
	assert.False(t, OrderStatusInProgress.CanBeCancelled())

	assert.True(t, OrderStatusCompleted.CanBeReviewed())
	assert.False(t, OrderStatusPending.CanBeReviewed())

	assert.True(t, OrderStatusInProgress.IsActive())
	assert.False(t, OrderStatusCancelled.IsActive())
}

func TestMaskedPhone(t *testing.T) {
	u := &User{Phone: "+7 (900) 123-45-67"}
	assert.Equal(t, "+7 (900) 123-4****", u.MaskedPhone())

	short := &User{Phone: "123"}
	assert.Equal(t, "123", short.MaskedPhone())
}

func TestSumPrices(t *testing.T) {
	cost, duration := SumPrices([]Service{
		{ID: 1, Price: 500, Duration: 30},
		{ID: 3, Price: 1200, Duration: 60},
	})
	assert.Equal(t, 1700, cost)
	assert.Equal(t, 90, duration)
}
