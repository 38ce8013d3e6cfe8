package lotto

import "context"

// AccountID identifies a purchasing principal. The value is opaque to the
// core; the host's identity source decides what it means.
type AccountID string

// TicketID is a 6-digit ticket identifier whose decimal digits are pairwise
// distinct. It is not a sequence number and carries no ownership information
// beyond the sale record it appears in.
type TicketID uint32

// Sale is one (owner, ticket) pair recorded at purchase time. A round keeps
// one Sale per purchase, in purchase order; the same owner may appear more
// than once with different tickets.
type Sale struct {
	Owner  AccountID `json:"owner"`
	Ticket TicketID  `json:"ticket"`
}

// LotteryOperator defines the operations the lottery core exposes to callers
type LotteryOperator interface {
	// Purchase records a ticket sale for owner if tendered covers the ticket price
	Purchase(ctx context.Context, owner AccountID, tendered uint64, now uint64) (TicketID, error)

	// PurchaseFromCaller resolves owner, tendered amount and timestamp from the
	// injected host collaborators, then behaves like Purchase
	PurchaseFromCaller(ctx context.Context) (TicketID, error)

	// Sales returns the current round's sale records in purchase order
	Sales(ctx context.Context) ([]Sale, error)

	// Draw selects the winning sale of the current round and resets the round
	Draw(ctx context.Context) (Sale, error)
}

// IdentitySource resolves the calling principal for the current operation.
// Supplied by the hosting environment; one call per operation, synchronous,
// no retries.
type IdentitySource interface {
	Caller(ctx context.Context) (AccountID, error)
}

// PaymentSource reports the amount tendered with the current operation,
// denominated in the same unit as the ticket price.
type PaymentSource interface {
	Tendered(ctx context.Context) (uint64, error)
}

// Clock reports the current timestamp for the current operation. The core
// never reads a wall clock of its own; all elapsed-time decisions use the
// host-supplied value.
type Clock interface {
	Now(ctx context.Context) (uint64, error)
}

// StateStore persists round snapshots across operations
type StateStore interface {
	// SaveRound persists a snapshot under the given key, replacing any previous one
	SaveRound(ctx context.Context, key string, snap *RoundSnapshot) error

	// LoadRound returns the snapshot stored under key, or (nil, nil) when absent
	LoadRound(ctx context.Context, key string) (*RoundSnapshot, error)

	// DeleteRound removes the snapshot stored under key
	DeleteRound(ctx context.Context, key string) error
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}
