package lotto

import "context"

// TicketAllocator issues fresh ticket identifiers by drawing distinct-digit
// values from a DigitStream and rejecting any value already retired.
type TicketAllocator struct {
	stream *DigitStream
	logger Logger
}

// NewTicketAllocator creates a new ticket allocator on the given stream
func NewTicketAllocator(stream *DigitStream, logger Logger) *TicketAllocator {
	if logger == nil {
		logger = &DefaultLogger{}
	}
	return &TicketAllocator{
		stream: stream,
		logger: logger,
	}
}

// Allocate returns a ticket identifier not present in retired.
//
// There is no upper bound on attempts: when nearly all distinct-digit values
// are retired this loop can run arbitrarily long. The caller-supplied context
// is the only escape; cancellation returns ctx.Err() with no identifier
// consumed from the caller's point of view (the stream still advances).
func (a *TicketAllocator) Allocate(ctx context.Context, retired map[TicketID]struct{}) (TicketID, error) {
	attempts := 0
	for {
		select {
		case <-ctx.Done():
			a.logger.Error("Allocate cancelled after %d attempts: %v", attempts, ctx.Err())
			return 0, ctx.Err()
		default:
		}

		id := TicketID(a.stream.UniqueDigits())
		attempts++
		if _, taken := retired[id]; !taken {
			if attempts > 1 {
				a.logger.Debug("Allocate resolved collision after %d attempts: ticket=%06d", attempts, id)
			}
			return id, nil
		}
	}
}
