package rgbmon

import (
	"time"

	"github.com/sony/gobreaker/v2"
)

// CircuitBreaker guards wire exchanges against a persistently failing
// server. Implemented by gobreaker.CircuitBreaker[[]byte].
type CircuitBreaker interface {
	Execute(req func() ([]byte, error)) ([]byte, error)
}

// NewCircuitBreakerConfig returns a factory for Config.NewCircuitBreaker.
// The breaker opens once at least three requests in the rolling interval
// failed at a 60% ratio, and admits maxRequests probes after timeout.
func NewCircuitBreakerConfig(maxRequests uint32, interval, timeout time.Duration) func(endpoint string) CircuitBreaker {
	return func(endpoint string) CircuitBreaker {
		settings := gobreaker.Settings{
			Name:        endpoint,
			MaxRequests: maxRequests,
			Interval:    interval,
			Timeout:     timeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
		}
		return gobreaker.NewCircuitBreaker[[]byte](settings)
	}
}
