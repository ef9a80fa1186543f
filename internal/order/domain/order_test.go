package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusForwardChain(t *testing.T) {
	chain := []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusOutForDelivery, StatusDelivered}
	for i := 0; i < len(chain)-1; i++ {
		assert.True(t, chain[i].CanTransition(chain[i+1]), "%s -> %s", chain[i], chain[i+1])
	}

	assert.False(t, StatusPending.CanTransition(StatusPreparing), "no skipping")
	assert.False(t, StatusPreparing.CanTransition(StatusConfirmed), "no going back")
}

func TestCancelFromAnyNonTerminal(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusPreparing, StatusOutForDelivery} {
		assert.True(t, s.CanTransition(StatusCancelled), "cancel from %s", s)
	}
}

func TestTerminalStatesAreFrozen(t *testing.T) {
	for _, s := range []Status{StatusDelivered, StatusCancelled} {
		assert.True(t, s.Terminal())
		assert.False(t, s.CanTransition(StatusCancelled))
		assert.False(t, s.CanTransition(StatusConfirmed))
	}
}

func TestTransitionRecordsDeliveryTime(t *testing.T) {
	o := Order{ID: "o1", Status: StatusOutForDelivery}
	at := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	require.NoError(t, o.Transition(StatusDelivered, at))
	require.NotNil(t, o.ActualDeliveryTime)
	assert.Equal(t, at, *o.ActualDeliveryTime)

	err := o.Transition(StatusConfirmed, at)
	assert.Error(t, err)
}
