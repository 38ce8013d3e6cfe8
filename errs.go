package lotto

import "errors"

// Error codes and messages for the ticket lottery
var (
	// ErrInsufficientFunds indicates the tendered amount is below the ticket price
	ErrInsufficientFunds = errors.New("LOTTERY_001: insufficient funds: tendered amount below ticket price")

	// ErrNoTicketsSold indicates a draw was attempted with zero tickets sold
	ErrNoTicketsSold = errors.New("LOTTERY_002: no tickets sold in current round")

	// ErrWindowExpired indicates the sale window has elapsed for this round
	ErrWindowExpired = errors.New("LOTTERY_003: sale window expired")

	// ErrInvalidParameters indicates parameter validation failure
	ErrInvalidParameters = errors.New("LOTTERY_004: parameter validation failed")

	// ErrInvalidTicketPrice indicates an invalid ticket price configuration
	ErrInvalidTicketPrice = errors.New("LOTTERY_005: invalid ticket price: must be greater than 0")

	// ErrInvalidDuration indicates an invalid sale window duration configuration
	ErrInvalidDuration = errors.New("LOTTERY_006: invalid duration: must be greater than 0 when window enforcement is enabled")

	// ErrRedisConnectionFailed indicates Redis connection failure
	ErrRedisConnectionFailed = errors.New("LOTTERY_007: Redis connection failed")

	// ErrStateCorrupted indicates the persisted round state is corrupted or violates invariants
	ErrStateCorrupted = errors.New("LOTTERY_008: round state corrupted: invalid snapshot data")

	// ErrCircuitBreakerOpen indicates the circuit breaker is rejecting operations
	ErrCircuitBreakerOpen = errors.New("LOTTERY_009: circuit breaker is open")

	// ErrMissingCollaborator indicates a required host collaborator was not injected
	ErrMissingCollaborator = errors.New("LOTTERY_010: missing collaborator: identity, payment and clock sources are required")
)

// IsDomainError reports whether err is one of the recoverable business errors
// a caller is expected to handle on its own. Infrastructure errors such as
// ErrRedisConnectionFailed are not domain errors.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrNoTicketsSold) ||
		errors.Is(err, ErrWindowExpired)
}
