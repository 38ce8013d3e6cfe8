package lotto

// Ledger holds the mutable state of the current lottery round: the ordered
// sale records, the latest ticket per owner, the monotonic retired-identifier
// set and the sale window. The Ledger does not serialize access; the engine
// owning it does.
//
// Invariant: the sale window start is nil exactly when the sale list is
// empty. RecordSale and DrawWinner preserve it together with OpenWindow.
type Ledger struct {
	sales   []Sale
	latest  map[AccountID]TicketID
	retired map[TicketID]struct{}
	start   *uint64
}

// NewLedger creates an empty ledger with no active round
func NewLedger() *Ledger {
	return &Ledger{
		sales:   make([]Sale, 0),
		latest:  make(map[AccountID]TicketID),
		retired: make(map[TicketID]struct{}),
	}
}

// RecordSale appends (owner, id) to the round's sale records and overwrites
// the owner's latest-ticket entry. No error conditions; side effect only.
func (l *Ledger) RecordSale(owner AccountID, id TicketID) {
	l.sales = append(l.sales, Sale{Owner: owner, Ticket: id})
	l.latest[owner] = id
}

// Sales returns a copy of the current round's sale records in purchase order
func (l *Ledger) Sales() []Sale {
	out := make([]Sale, len(l.sales))
	copy(out, l.sales)
	return out
}

// TicketCount returns the number of tickets sold in the current round
func (l *Ledger) TicketCount() int { return len(l.sales) }

// LatestTicket returns the most recently issued ticket for owner.
// The index survives draws: it reflects the owner's last purchase ever,
// not the current round.
func (l *Ledger) LatestTicket(owner AccountID) (TicketID, bool) {
	id, ok := l.latest[owner]
	return id, ok
}

// IsRetired reports whether id must never be issued again
func (l *Ledger) IsRetired(id TicketID) bool {
	_, ok := l.retired[id]
	return ok
}

// RetiredCount returns the size of the retired-identifier set
func (l *Ledger) RetiredCount() int { return len(l.retired) }

// Retired exposes the retired set for allocation checks. The allocator only
// reads it; the map is shared, not copied, so lookups stay O(1) per attempt.
func (l *Ledger) Retired() map[TicketID]struct{} { return l.retired }

// StartTime returns the sale window start and whether a round is active
func (l *Ledger) StartTime() (uint64, bool) {
	if l.start == nil {
		return 0, false
	}
	return *l.start, true
}

// OpenWindow sets the sale window start to now if no round is active
func (l *Ledger) OpenWindow(now uint64) {
	if l.start == nil {
		t := now
		l.start = &t
	}
}

// DrawWinner selects the winning sale using an index derived from the stream,
// then resets the round: the sale list is cleared and the window closed. When
// retireOnDraw is set, every identifier sold this round joins the retired set
// first. Returns ErrNoTicketsSold, with no state mutated, when the round has
// no sales.
func (l *Ledger) DrawWinner(stream *DigitStream, retireOnDraw bool) (Sale, error) {
	if len(l.sales) == 0 {
		return Sale{}, ErrNoTicketsSold
	}

	i := int(stream.UniqueDigits() % uint32(len(l.sales)))
	winner := l.sales[i]

	if retireOnDraw {
		for _, s := range l.sales {
			l.retired[s.Ticket] = struct{}{}
		}
	}

	l.sales = make([]Sale, 0)
	l.start = nil
	return winner, nil
}
