// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Breaker state values exported by epgtrans_breaker_state.
const (
	BreakerClosed   = 0
	BreakerHalfOpen = 1
	BreakerOpen     = 2
)

// Series exist only for breakers that were constructed, so a run with the
// breaker disabled exports none.
var (
	breakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "epgtrans_breaker_state",
		Help: "Breaker state per guarded backend (0 closed, 1 half-open, 2 open)",
	}, []string{"backend"})

	breakerOpened = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "epgtrans_breaker_opened_total",
		Help: "Times the breaker opened, by the state it left",
	}, []string{"backend", "from"})
)

// SetBreakerState records the current state of the breaker guarding backend.
func SetBreakerState(backend string, state int) {
	breakerState.WithLabelValues(backend).Set(float64(state))
}

// RecordBreakerOpened counts a transition to open from the given state.
func RecordBreakerOpened(backend, from string) {
	breakerOpened.WithLabelValues(backend, from).Inc()
}
