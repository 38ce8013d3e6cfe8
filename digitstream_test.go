package lotto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigitStream_Deterministic(t *testing.T) {
	t.Run("same seed produces same sequence", func(t *testing.T) {
		s1 := NewDigitStream(42)
		s2 := NewDigitStream(42)

		for i := 0; i < 50; i++ {
			assert.Equal(t, s1.Next(), s2.Next(), "sequence diverged at step %d", i)
		}
	})

	t.Run("same seed produces same derived values", func(t *testing.T) {
		s1 := NewDigitStream(7)
		s2 := NewDigitStream(7)

		for i := 0; i < 50; i++ {
			assert.Equal(t, s1.UniqueDigits(), s2.UniqueDigits())
		}
	})

	t.Run("different seeds diverge", func(t *testing.T) {
		s1 := NewDigitStream(1)
		s2 := NewDigitStream(2)

		assert.NotEqual(t, s1.Next(), s2.Next())
	})
}

func TestDigitStream_Recurrence(t *testing.T) {
	// One step of seed' = A*seed + C with seed 0 yields C
	s := NewDigitStream(0)
	assert.Equal(t, RandIncrement, s.Next())
}

func TestDigitStream_SeedRoundTrip(t *testing.T) {
	s1 := NewDigitStream(99)
	for i := 0; i < 10; i++ {
		s1.UniqueDigits()
	}

	// A stream restored from the persisted seed continues the sequence
	s2 := NewDigitStream(s1.Seed())
	for i := 0; i < 20; i++ {
		assert.Equal(t, s1.Next(), s2.Next())
	}
}

func TestDigitStream_UniqueDigits(t *testing.T) {
	t.Run("digits are pairwise distinct", func(t *testing.T) {
		s := NewDigitStream(12345)

		for i := 0; i < 1000; i++ {
			v := s.UniqueDigits()
			require.Less(t, v, uint32(1000000))
			assert.True(t, HasDistinctDigits(TicketID(v)), "value %d has repeated digits", v)
		}
	})

	t.Run("consecutive draws differ", func(t *testing.T) {
		s := NewDigitStream(1)

		seen := make(map[uint32]int)
		for i := 0; i < 100; i++ {
			seen[s.UniqueDigits()]++
		}
		// Collisions are possible but 100 identical draws are not
		assert.Greater(t, len(seen), 1)
	})
}

func TestNewDigitStreamFromEntropy(t *testing.T) {
	s := NewDigitStreamFromEntropy()
	require.NotNil(t, s)

	v := s.UniqueDigits()
	assert.True(t, HasDistinctDigits(TicketID(v)))
}
