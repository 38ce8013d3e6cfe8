package lotto

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// DigitStream is a deterministic pseudo-random number stream based on a
// linear-congruential recurrence: seed' = RandMultiplier*seed + RandIncrement
// (mod 2^32). The seed is explicit state owned by the stream and guarded by a
// mutex; it is never package-global, so two streams never share a sequence.
//
// The stream is NOT cryptographically secure and is not meant to be: the
// recurrence and constants are part of the lottery's contract. Hosts that
// want an unpredictable starting point should construct the stream with
// NewDigitStreamFromEntropy.
type DigitStream struct {
	mu   sync.Mutex
	seed uint32
}

// NewDigitStream creates a stream starting from the given seed. Two streams
// created with the same seed produce identical sequences.
func NewDigitStream(seed uint32) *DigitStream {
	return &DigitStream{seed: seed}
}

// NewDigitStreamFromEntropy creates a stream seeded from crypto/rand.
// If entropy is unavailable it falls back to a time-based seed.
func NewDigitStreamFromEntropy() *DigitStream {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return &DigitStream{seed: uint32(time.Now().UnixNano())}
	}
	return &DigitStream{seed: binary.BigEndian.Uint32(buf[:])}
}

// Next advances the recurrence and returns the new seed value.
func (s *DigitStream) Next() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seed = RandMultiplier*s.seed + RandIncrement
	return s.seed
}

// Seed returns the current seed so it can be persisted with a round snapshot.
// Restoring a stream from a persisted seed continues the sequence instead of
// resetting it on process reload.
func (s *DigitStream) Seed() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.seed
}

// UniqueDigits derives a value with TicketDigits pairwise-distinct decimal
// digits. Each digit starts as a raw draw reduced modulo 10 and is linearly
// probed forward, (d+1) mod 10, until it has not been used within this
// derivation; digits accumulate as num = num*10 + d.
//
// The result is NOT uniformly distributed over 6-digit values: probing skews
// digits toward unoccupied slots, and a leading 0 shortens the decimal form.
func (s *DigitStream) UniqueDigits() uint32 {
	var num uint32
	var used [10]bool

	for i := 0; i < TicketDigits; i++ {
		digit := s.Next() % 10
		for used[digit] {
			digit = (digit + 1) % 10
		}
		used[digit] = true
		num = num*10 + digit
	}

	return num
}
