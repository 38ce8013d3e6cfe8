package lotto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

// RoundSnapshot is the serialized form of a lottery's state: round parameters,
// the sale records and latest-ticket index, the retired set and the digit
// stream seed. Persisting the seed lets a restored lottery continue the
// pseudo-random sequence instead of replaying it from the initial seed.
type RoundSnapshot struct {
	TicketPrice uint64 `json:"ticket_price"`
	Duration    uint64 `json:"duration"`

	Start   *uint64                `json:"start,omitempty"`
	Sales   []Sale                 `json:"sales"`
	Latest  map[AccountID]TicketID `json:"latest"`
	Retired []TicketID             `json:"retired"`
	Seed    uint32                 `json:"seed"`

	SavedAt int64 `json:"saved_at"`
}

// NewRoundSnapshot captures the given config, ledger and stream state
func NewRoundSnapshot(cfg *RoundConfig, ledger *Ledger, stream *DigitStream) *RoundSnapshot {
	snap := &RoundSnapshot{
		TicketPrice: cfg.TicketPrice,
		Duration:    cfg.Duration,
		Sales:       ledger.Sales(),
		Latest:      make(map[AccountID]TicketID),
		Retired:     make([]TicketID, 0, ledger.RetiredCount()),
		Seed:        stream.Seed(),
		SavedAt:     time.Now().Unix(),
	}

	for owner, id := range ledger.latest {
		snap.Latest[owner] = id
	}

	for id := range ledger.Retired() {
		snap.Retired = append(snap.Retired, id)
	}
	sort.Slice(snap.Retired, func(i, j int) bool { return snap.Retired[i] < snap.Retired[j] })

	if start, active := ledger.StartTime(); active {
		t := start
		snap.Start = &t
	}

	return snap
}

// Validate checks the snapshot against the round invariants
func (rs *RoundSnapshot) Validate() error {
	if rs.TicketPrice == 0 {
		return fmt.Errorf("%w: zero ticket price", ErrStateCorrupted)
	}

	// The window start exists exactly when the round has sales
	if (rs.Start == nil) != (len(rs.Sales) == 0) {
		return fmt.Errorf("%w: sale window inconsistent with sale records", ErrStateCorrupted)
	}

	for _, s := range rs.Sales {
		if s.Owner == "" {
			return fmt.Errorf("%w: sale record with empty owner", ErrStateCorrupted)
		}
		if !HasDistinctDigits(s.Ticket) {
			return fmt.Errorf("%w: ticket %d has repeated digits", ErrStateCorrupted, s.Ticket)
		}
	}

	for _, id := range rs.Retired {
		if !HasDistinctDigits(id) {
			return fmt.Errorf("%w: retired ticket %d has repeated digits", ErrStateCorrupted, id)
		}
	}

	return nil
}

// Ledger rebuilds a ledger from the snapshot
func (rs *RoundSnapshot) Ledger() *Ledger {
	l := NewLedger()
	l.sales = append(l.sales, rs.Sales...)
	for owner, id := range rs.Latest {
		l.latest[owner] = id
	}
	for _, id := range rs.Retired {
		l.retired[id] = struct{}{}
	}
	if rs.Start != nil {
		t := *rs.Start
		l.start = &t
	}
	return l
}

// RedisStateStore implements StateStore on Redis with retry and size limits
type RedisStateStore struct {
	client        *redis.Client
	logger        Logger
	retryAttempts int
	retryInterval time.Duration
}

var _ StateStore = (*RedisStateStore)(nil)

// NewRedisStateStore creates a Redis-backed state store
func NewRedisStateStore(client *redis.Client, logger Logger) *RedisStateStore {
	if logger == nil {
		logger = &DefaultLogger{}
	}
	return &RedisStateStore{
		client:        client,
		logger:        logger,
		retryAttempts: DefaultStoreRetryAttempts,
		retryInterval: DefaultStoreRetryInterval,
	}
}

// SaveRound persists the snapshot under key, replacing any previous one
func (s *RedisStateStore) SaveRound(ctx context.Context, key string, snap *RoundSnapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: nil snapshot", ErrInvalidParameters)
	}
	if err := snap.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to serialize round snapshot: %w", err)
	}
	if len(data) > MaxSnapshotSize {
		return fmt.Errorf("round snapshot too large: %d bytes exceeds limit of %d", len(data), MaxSnapshotSize)
	}

	redisKey := RoundKeyPrefix + key
	err = s.executeWithRetry(ctx, func() error {
		return s.client.Set(ctx, redisKey, data, 0).Err()
	})
	if err != nil {
		s.logger.Error("Failed to save round %s: %v", key, err)
		return fmt.Errorf("%w: %v", ErrRedisConnectionFailed, err)
	}

	s.logger.Debug("Round saved: key=%s, size=%d bytes", key, len(data))
	return nil
}

// LoadRound returns the snapshot stored under key, or (nil, nil) when absent
func (s *RedisStateStore) LoadRound(ctx context.Context, key string) (*RoundSnapshot, error) {
	redisKey := RoundKeyPrefix + key

	var data string
	err := s.executeWithRetry(ctx, func() error {
		var getErr error
		data, getErr = s.client.Get(ctx, redisKey).Result()
		return getErr
	})
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		s.logger.Error("Failed to load round %s: %v", key, err)
		return nil, fmt.Errorf("%w: %v", ErrRedisConnectionFailed, err)
	}

	snap := &RoundSnapshot{}
	if err := json.Unmarshal([]byte(data), snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStateCorrupted, err)
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}

	s.logger.Debug("Round loaded: key=%s, tickets=%d", key, len(snap.Sales))
	return snap, nil
}

// DeleteRound removes the snapshot stored under key
func (s *RedisStateStore) DeleteRound(ctx context.Context, key string) error {
	redisKey := RoundKeyPrefix + key

	err := s.executeWithRetry(ctx, func() error {
		return s.client.Del(ctx, redisKey).Err()
	})
	if err != nil {
		s.logger.Error("Failed to delete round %s: %v", key, err)
		return fmt.Errorf("%w: %v", ErrRedisConnectionFailed, err)
	}
	return nil
}

// executeWithRetry runs operation with exponential backoff on retriable errors
func (s *RedisStateStore) executeWithRetry(ctx context.Context, operation func() error) error {
	var lastErr error

	for attempt := 0; attempt < s.retryAttempts; attempt++ {
		if attempt > 0 {
			delay := s.retryInterval * time.Duration(1<<(attempt-1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			s.logger.Debug("Retrying store operation, attempt %d/%d", attempt+1, s.retryAttempts)
		}

		lastErr = operation()
		if lastErr == nil {
			return nil
		}
		if !isRetriableRedisError(lastErr) {
			return lastErr
		}
	}

	return lastErr
}

// isRetriableRedisError reports whether the error is worth retrying
func isRetriableRedisError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, redis.Nil) {
		return false
	}

	msg := strings.ToLower(err.Error())
	retriable := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"i/o timeout",
		"broken pipe",
		"network is unreachable",
		"loading",
		"readonly",
	}
	for _, s := range retriable {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
