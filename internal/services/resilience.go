package services

import (
	"time"

	"github.com/sony/gobreaker"

	"finanzas/internal/logger"
)

// newStoreBreaker trips after a majority of recent store writes fail so a
// down store fails saves fast instead of tying up debounce goroutines.
// Saves are never retried.
func newStoreBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,                // half-open: allow one probe
		Interval:    30 * time.Second, // closed: reset counters every 30s
		Timeout:     10 * time.Second, // open -> half-open after 10s
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Named("persistence").Warnw("circuit breaker state changed",
				"breaker", name, "from", from.String(), "to", to.String())
		},
	})
}
