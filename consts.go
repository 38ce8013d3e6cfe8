package lotto

import "time"

const (
	// RandMultiplier is the multiplier A of the linear-congruential recurrence
	RandMultiplier uint32 = 1664525

	// RandIncrement is the increment C of the linear-congruential recurrence
	RandIncrement uint32 = 1013904223

	// TicketDigits is the number of decimal digits in a ticket identifier
	TicketDigits = 6

	// DefaultTicketPrice is the default ticket price in the smallest currency unit
	DefaultTicketPrice uint64 = 100

	// DefaultRoundDuration is the default sale window duration in host time units
	DefaultRoundDuration uint64 = 100
)

const (
	// RoundKeyPrefix is the prefix for Redis round snapshot keys
	RoundKeyPrefix = "lotto:round:"

	// DefaultStoreRetryAttempts is the default number of retry attempts for store operations
	DefaultStoreRetryAttempts = 3

	// DefaultStoreRetryInterval is the base delay between store retry attempts
	DefaultStoreRetryInterval = 100 * time.Millisecond

	// MaxSnapshotSize is the maximum allowed size for a serialized round snapshot (1MB)
	MaxSnapshotSize = 1 * 1024 * 1024
)

const (
	// DefaultCircuitBreakerName is the default name for the circuit breaker
	DefaultCircuitBreakerName = "lotto-engine"

	// DefaultCircuitBreakerMaxRequests is the default max requests in half-open state
	DefaultCircuitBreakerMaxRequests = 3

	// DefaultCircuitBreakerInterval is the default counting interval
	DefaultCircuitBreakerInterval = 60 * time.Second

	// DefaultCircuitBreakerTimeout is the default open-state timeout
	DefaultCircuitBreakerTimeout = 30 * time.Second

	// DefaultCircuitBreakerFailureRatio is the default failure ratio threshold
	DefaultCircuitBreakerFailureRatio = 0.6

	// DefaultCircuitBreakerMinRequests is the default minimum request count before tripping
	DefaultCircuitBreakerMinRequests = 3

	// DefaultCircuitBreakerOnStateChange is the default state change logging switch
	DefaultCircuitBreakerOnStateChange = true
)

const (
	DefaultRedisAddr         = "localhost:6379"
	DefaultRedisPassword     = ""
	DefaultRedisDB           = 0
	DefaultRedisPoolSize     = 50
	DefaultRedisMinIdleConns = 10
	DefaultRedisMaxRetries   = 3
	DefaultRedisDialTimeout  = 5 * time.Second
	DefaultRedisReadTimeout  = 3 * time.Second
	DefaultRedisWriteTimeout = 3 * time.Second
	DefaultRedisPoolTimeout  = 4 * time.Second
)
