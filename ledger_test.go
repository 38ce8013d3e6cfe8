package lotto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedger_RecordSale(t *testing.T) {
	t.Run("keeps purchase order", func(t *testing.T) {
		l := NewLedger()
		l.RecordSale("alice", 123456)
		l.RecordSale("bob", 234567)
		l.RecordSale("alice", 345678)

		sales := l.Sales()
		require.Len(t, sales, 3)
		assert.Equal(t, Sale{Owner: "alice", Ticket: 123456}, sales[0])
		assert.Equal(t, Sale{Owner: "bob", Ticket: 234567}, sales[1])
		assert.Equal(t, Sale{Owner: "alice", Ticket: 345678}, sales[2])
	})

	t.Run("repurchase overwrites latest ticket", func(t *testing.T) {
		l := NewLedger()
		l.RecordSale("alice", 123456)
		l.RecordSale("alice", 654321)

		id, ok := l.LatestTicket("alice")
		require.True(t, ok)
		assert.Equal(t, TicketID(654321), id)
		assert.Equal(t, 2, l.TicketCount())
	})

	t.Run("sales returns a copy", func(t *testing.T) {
		l := NewLedger()
		l.RecordSale("alice", 123456)

		sales := l.Sales()
		sales[0].Owner = "mallory"

		assert.Equal(t, AccountID("alice"), l.Sales()[0].Owner)
	})
}

func TestLedger_Window(t *testing.T) {
	l := NewLedger()

	_, active := l.StartTime()
	assert.False(t, active)

	l.OpenWindow(1000)
	start, active := l.StartTime()
	require.True(t, active)
	assert.Equal(t, uint64(1000), start)

	// Subsequent opens within the same round do not move the start
	l.OpenWindow(2000)
	start, _ = l.StartTime()
	assert.Equal(t, uint64(1000), start)
}

func TestLedger_DrawWinner(t *testing.T) {
	t.Run("empty round rejected without mutation", func(t *testing.T) {
		l := NewLedger()
		stream := NewDigitStream(1)
		before := stream.Seed()

		_, err := l.DrawWinner(stream, true)
		assert.ErrorIs(t, err, ErrNoTicketsSold)
		assert.Equal(t, before, stream.Seed(), "stream must not advance on a rejected draw")
		assert.Equal(t, 0, l.RetiredCount())
	})

	t.Run("winner comes from this round's sales", func(t *testing.T) {
		l := NewLedger()
		l.OpenWindow(10)
		l.RecordSale("alice", 123456)
		l.RecordSale("bob", 234567)
		l.RecordSale("carol", 345678)

		winner, err := l.DrawWinner(NewDigitStream(7), true)
		require.NoError(t, err)
		assert.Contains(t, []AccountID{"alice", "bob", "carol"}, winner.Owner)
	})

	t.Run("draw resets the round", func(t *testing.T) {
		l := NewLedger()
		l.OpenWindow(10)
		l.RecordSale("alice", 123456)
		l.RecordSale("bob", 234567)

		_, err := l.DrawWinner(NewDigitStream(7), true)
		require.NoError(t, err)

		assert.Equal(t, 0, l.TicketCount())
		_, active := l.StartTime()
		assert.False(t, active)
	})

	t.Run("retires all round tickets when enabled", func(t *testing.T) {
		l := NewLedger()
		l.OpenWindow(10)
		l.RecordSale("alice", 123456)
		l.RecordSale("bob", 234567)

		_, err := l.DrawWinner(NewDigitStream(7), true)
		require.NoError(t, err)

		assert.Equal(t, 2, l.RetiredCount())
		assert.True(t, l.IsRetired(123456))
		assert.True(t, l.IsRetired(234567))
	})

	t.Run("retirement disabled leaves tickets reusable", func(t *testing.T) {
		l := NewLedger()
		l.OpenWindow(10)
		l.RecordSale("alice", 123456)

		_, err := l.DrawWinner(NewDigitStream(7), false)
		require.NoError(t, err)

		assert.Equal(t, 0, l.RetiredCount())
	})

	t.Run("latest ticket survives the draw", func(t *testing.T) {
		l := NewLedger()
		l.OpenWindow(10)
		l.RecordSale("alice", 123456)

		_, err := l.DrawWinner(NewDigitStream(7), true)
		require.NoError(t, err)

		id, ok := l.LatestTicket("alice")
		require.True(t, ok)
		assert.Equal(t, TicketID(123456), id)
	})

	t.Run("deterministic winner for a fixed stream", func(t *testing.T) {
		build := func() *Ledger {
			l := NewLedger()
			l.OpenWindow(10)
			l.RecordSale("alice", 123456)
			l.RecordSale("bob", 234567)
			l.RecordSale("carol", 345678)
			return l
		}

		w1, err := build().DrawWinner(NewDigitStream(42), true)
		require.NoError(t, err)
		w2, err := build().DrawWinner(NewDigitStream(42), true)
		require.NoError(t, err)
		assert.Equal(t, w1, w2)
	})
}
