package lotto

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketAllocator_Allocate(t *testing.T) {
	t.Run("returns distinct-digit ticket", func(t *testing.T) {
		alloc := NewTicketAllocator(NewDigitStream(42), NewSilentLogger())

		id, err := alloc.Allocate(context.Background(), nil)
		require.NoError(t, err)
		assert.True(t, HasDistinctDigits(id))
	})

	t.Run("skips retired identifiers", func(t *testing.T) {
		// Shadow stream with the same seed predicts the allocator's draws
		shadow := NewDigitStream(42)
		retired := make(map[TicketID]struct{})
		for i := 0; i < 3; i++ {
			retired[TicketID(shadow.UniqueDigits())] = struct{}{}
		}
		expected := TicketID(shadow.UniqueDigits())
		for {
			if _, taken := retired[expected]; !taken {
				break
			}
			expected = TicketID(shadow.UniqueDigits())
		}

		alloc := NewTicketAllocator(NewDigitStream(42), NewSilentLogger())
		id, err := alloc.Allocate(context.Background(), retired)
		require.NoError(t, err)
		assert.Equal(t, expected, id)
		assert.NotContains(t, retired, id)
	})

	t.Run("cancelled context aborts", func(t *testing.T) {
		alloc := NewTicketAllocator(NewDigitStream(42), NewSilentLogger())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := alloc.Allocate(ctx, nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
