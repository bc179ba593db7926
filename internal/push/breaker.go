package push

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrCircuitOpen is returned when the gateway circuit breaker is open.
var ErrCircuitOpen = errors.New("push gateway circuit breaker is open")

// BreakerState is the state of the gateway circuit breaker.
type BreakerState = gobreaker.State

// BreakerConfig holds configuration for the gateway circuit breaker.
type BreakerConfig struct {
	// Name identifies the breaker for logging/metrics.
	Name string

	// MaxRequests is the maximum number of requests allowed in half-open
	// state. Default: 1
	MaxRequests uint32

	// Timeout is the period of open state before switching to half-open.
	// Default: 60 seconds
	Timeout time.Duration

	// ReadyToTrip determines when to trip the breaker. If nil, trips at a
	// 50% failure rate with 5+ requests.
	ReadyToTrip func(counts gobreaker.Counts) bool

	// OnStateChange is called when the breaker state changes.
	OnStateChange func(name string, from BreakerState, to BreakerState)
}

// DefaultBreakerConfig returns a sensible default configuration.
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:        name,
		MaxRequests: 1,
		Timeout:     60 * time.Second,
		ReadyToTrip: defaultReadyToTrip,
	}
}

func defaultReadyToTrip(counts gobreaker.Counts) bool {
	failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
	return counts.Requests >= 5 && failureRatio >= 0.5
}

// BreakerGateway wraps a Gateway with a circuit breaker so that a
// persistently failing push service sheds calls instead of stalling every
// dispatch. It performs no retries.
type BreakerGateway struct {
	gateway Gateway
	breaker *gobreaker.CircuitBreaker[struct{}]
}

// NewBreakerGateway wraps the given gateway with a circuit breaker.
func NewBreakerGateway(gateway Gateway, cfg BreakerConfig) *BreakerGateway {
	if cfg.MaxRequests == 0 {
		cfg.MaxRequests = 1
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.ReadyToTrip == nil {
		cfg.ReadyToTrip = defaultReadyToTrip
	}

	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Timeout:     cfg.Timeout,
		ReadyToTrip: cfg.ReadyToTrip,
	}
	if cfg.OnStateChange != nil {
		settings.OnStateChange = cfg.OnStateChange
	}

	return &BreakerGateway{
		gateway: gateway,
		breaker: gobreaker.NewCircuitBreaker[struct{}](settings),
	}
}

// Send delivers through the wrapped gateway unless the breaker is open.
func (g *BreakerGateway) Send(ctx context.Context, deviceToken string, n Notification) error {
	_, err := g.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, g.gateway.Send(ctx, deviceToken, n)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return ErrCircuitOpen
		}
		return err
	}
	return nil
}

// State returns the current state of the circuit breaker.
func (g *BreakerGateway) State() BreakerState {
	return g.breaker.State()
}

// Ensure BreakerGateway implements the gateway interface.
var _ Gateway = (*BreakerGateway)(nil)
