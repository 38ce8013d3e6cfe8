package lotto

import (
	"context"
	"fmt"
	"sync"
)

// Lottery is the lifecycle controller for a single ticket lottery. It owns the
// ledger, the digit stream and the allocator, serializes all access behind the
// operator interface, and coordinates the optional host collaborators and
// state store.
//
// A lottery is Open when no round is active and Active from the first sale
// until the next draw.
type Lottery struct {
	mu sync.Mutex

	cfg    *RoundConfig
	ledger *Ledger
	stream *DigitStream
	alloc  *TicketAllocator
	logger Logger

	identity IdentitySource
	payment  PaymentSource
	clock    Clock

	store    StateStore
	storeKey string

	monitor *OperationMonitor
}

// Ensure Lottery implements the operator interface
var _ LotteryOperator = (*Lottery)(nil)

// New creates a lottery with the given ticket price and sale window duration,
// an entropy-seeded digit stream and the default logger.
func New(ticketPrice, duration uint64) (*Lottery, error) {
	cfg, err := NewRoundConfig(ticketPrice, duration)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(cfg)
}

// NewWithConfig creates a lottery from a round configuration
func NewWithConfig(cfg *RoundConfig) (*Lottery, error) {
	return NewWithLogger(cfg, &DefaultLogger{})
}

// NewWithLogger creates a lottery with a custom logger
func NewWithLogger(cfg *RoundConfig, logger Logger) (*Lottery, error) {
	if cfg == nil {
		cfg = DefaultRoundConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = &DefaultLogger{}
	}

	stream := NewDigitStreamFromEntropy()
	l := &Lottery{
		cfg:     cfg,
		ledger:  NewLedger(),
		stream:  stream,
		alloc:   NewTicketAllocator(stream, logger),
		logger:  logger,
		monitor: NewOperationMonitor(),
	}

	logger.Info("Lottery created: price=%d, duration=%d, enforce_window=%v, retire_on_draw=%v",
		cfg.TicketPrice, cfg.Duration, cfg.EnforceWindow, cfg.RetireOnDraw)
	return l, nil
}

// NewWithSeed creates a lottery whose digit stream starts from the given seed.
// Intended for deterministic hosts and tests.
func NewWithSeed(cfg *RoundConfig, seed uint32, logger Logger) (*Lottery, error) {
	l, err := NewWithLogger(cfg, logger)
	if err != nil {
		return nil, err
	}
	l.stream = NewDigitStream(seed)
	l.alloc = NewTicketAllocator(l.stream, l.logger)
	return l, nil
}

// WithCollaborators injects the host environment sources used by
// PurchaseFromCaller. Returns the lottery for chaining.
func (l *Lottery) WithCollaborators(identity IdentitySource, payment PaymentSource, clock Clock) *Lottery {
	l.identity = identity
	l.payment = payment
	l.clock = clock
	return l
}

// WithStateStore attaches a state store; every mutating operation persists a
// snapshot under key afterwards. Persistence is best effort: a failed save is
// logged and counted but never fails the operation that triggered it.
func (l *Lottery) WithStateStore(store StateStore, key string) *Lottery {
	l.store = store
	l.storeKey = key
	return l
}

// Monitor returns the lottery's operation monitor
func (l *Lottery) Monitor() *OperationMonitor { return l.monitor }

// Config returns the round configuration
func (l *Lottery) Config() *RoundConfig { return l.cfg }

// Purchase records a ticket sale for owner at host time now.
//
// The tendered amount must cover the ticket price exactly or more; excess is
// kept, not refunded. On the first sale of a round the sale window opens at
// now. Rejections leave the round completely unchanged.
func (l *Lottery) Purchase(ctx context.Context, owner AccountID, tendered uint64, now uint64) (TicketID, error) {
	if owner == "" {
		l.logger.Error("Purchase rejected: empty owner")
		l.monitor.RecordRejectedPurchase()
		return 0, fmt.Errorf("%w: owner must not be empty", ErrInvalidParameters)
	}

	return l.purchase(ctx, owner, tendered, now)
}

// PurchaseFromCaller resolves owner, tendered amount and timestamp from the
// injected collaborators, one call each, then records the sale like Purchase.
func (l *Lottery) PurchaseFromCaller(ctx context.Context) (TicketID, error) {
	if l.identity == nil || l.payment == nil || l.clock == nil {
		l.logger.Error("PurchaseFromCaller rejected: collaborators not injected")
		return 0, ErrMissingCollaborator
	}

	owner, err := l.identity.Caller(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve caller: %w", err)
	}
	if owner == "" {
		l.monitor.RecordRejectedPurchase()
		return 0, fmt.Errorf("%w: identity source returned empty owner", ErrInvalidParameters)
	}

	tendered, err := l.payment.Tendered(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve tendered amount: %w", err)
	}

	now, err := l.clock.Now(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to resolve timestamp: %w", err)
	}

	return l.purchase(ctx, owner, tendered, now)
}

func (l *Lottery) purchase(ctx context.Context, owner AccountID, tendered uint64, now uint64) (TicketID, error) {
	done := l.monitor.StartOperation()
	defer done()

	l.mu.Lock()
	defer l.mu.Unlock()

	if tendered < l.cfg.TicketPrice {
		l.logger.Debug("Purchase rejected: owner=%s, tendered=%d, price=%d",
			owner, tendered, l.cfg.TicketPrice)
		l.monitor.RecordRejectedPurchase()
		return 0, ErrInsufficientFunds
	}

	if l.cfg.EnforceWindow {
		if start, active := l.ledger.StartTime(); active && now >= start+l.cfg.Duration {
			l.logger.Debug("Purchase rejected: window expired, start=%d, now=%d, duration=%d",
				start, now, l.cfg.Duration)
			l.monitor.RecordRejectedPurchase()
			return 0, ErrWindowExpired
		}
	}

	// Allocate before opening the window: a cancelled allocation on the first
	// sale must not leave the window open over an empty round.
	id, err := l.alloc.Allocate(ctx, l.ledger.Retired())
	if err != nil {
		l.monitor.RecordRejectedPurchase()
		return 0, err
	}

	l.ledger.OpenWindow(now)
	l.ledger.RecordSale(owner, id)
	l.monitor.RecordAcceptedPurchase()

	l.logger.Info("Ticket sold: owner=%s, ticket=%06d, round_tickets=%d",
		owner, id, l.ledger.TicketCount())

	l.persist(ctx)
	return id, nil
}

// Sales returns the current round's sale records in purchase order
func (l *Lottery) Sales(ctx context.Context) ([]Sale, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.ledger.Sales(), nil
}

// LatestTicket returns the most recently issued ticket for owner, across
// rounds. The second return is false when owner has never bought a ticket.
func (l *Lottery) LatestTicket(ctx context.Context, owner AccountID) (TicketID, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	id, ok := l.ledger.LatestTicket(owner)
	return id, ok, nil
}

// Draw selects the current round's winning sale and resets the round. Fails
// with ErrNoTicketsSold, leaving all state untouched, when no tickets were
// sold.
func (l *Lottery) Draw(ctx context.Context) (Sale, error) {
	done := l.monitor.StartOperation()
	defer done()

	l.mu.Lock()
	defer l.mu.Unlock()

	winner, err := l.ledger.DrawWinner(l.stream, l.cfg.RetireOnDraw)
	if err != nil {
		l.logger.Debug("Draw rejected: %v", err)
		l.monitor.RecordEmptyDraw()
		return Sale{}, err
	}

	l.monitor.RecordDraw()
	l.logger.Info("Winner drawn: owner=%s, ticket=%06d, retired_total=%d",
		winner.Owner, winner.Ticket, l.ledger.RetiredCount())

	l.persist(ctx)
	return winner, nil
}

// State returns "active" when a round is in progress and "open" otherwise
func (l *Lottery) State() string {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, active := l.ledger.StartTime(); active {
		return "active"
	}
	return "open"
}

// TicketCount returns the number of tickets sold in the current round
func (l *Lottery) TicketCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.ledger.TicketCount()
}

// Snapshot captures the full lottery state for persistence
func (l *Lottery) Snapshot() *RoundSnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.snapshotLocked()
}

func (l *Lottery) snapshotLocked() *RoundSnapshot {
	return NewRoundSnapshot(l.cfg, l.ledger, l.stream)
}

// RestoreRound replaces the lottery state with the given snapshot. The digit
// stream resumes from the persisted seed so the pseudo-random sequence
// continues across reloads instead of restarting.
func (l *Lottery) RestoreRound(snap *RoundSnapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", ErrInvalidParameters)
	}
	if err := snap.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	// Price and duration come from the snapshot; policy flags are not
	// persisted and stay as configured on this instance.
	l.cfg = &RoundConfig{
		TicketPrice:   snap.TicketPrice,
		Duration:      snap.Duration,
		EnforceWindow: l.cfg.EnforceWindow,
		RetireOnDraw:  l.cfg.RetireOnDraw,
	}
	l.ledger = snap.Ledger()
	l.stream = NewDigitStream(snap.Seed)
	l.alloc = NewTicketAllocator(l.stream, l.logger)

	l.logger.Info("Round restored: tickets=%d, retired=%d",
		l.ledger.TicketCount(), l.ledger.RetiredCount())
	return nil
}

// LoadRound fetches the snapshot under the attached store key and restores it.
// A missing snapshot is not an error; the lottery keeps its current state.
func (l *Lottery) LoadRound(ctx context.Context) error {
	if l.store == nil {
		return fmt.Errorf("%w: no state store attached", ErrInvalidParameters)
	}

	snap, err := l.store.LoadRound(ctx, l.storeKey)
	if err != nil {
		return err
	}
	if snap == nil {
		l.logger.Debug("No persisted round under key %s", l.storeKey)
		return nil
	}
	return l.RestoreRound(snap)
}

// persist saves a snapshot when a store is attached. Best effort only.
// Called with mu held.
func (l *Lottery) persist(ctx context.Context) {
	if l.store == nil {
		return
	}
	if err := l.store.SaveRound(ctx, l.storeKey, l.snapshotLocked()); err != nil {
		l.logger.Error("Failed to persist round under key %s: %v", l.storeKey, err)
		l.monitor.RecordStoreError()
	}
}
