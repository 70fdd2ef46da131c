// Package metrics defines the agent's Prometheus collectors.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewGatewayRetriesTotal returns a Prometheus counter for the number of retried backend reads
func NewGatewayRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gateway_retries_total",
		Help: "Total number of retry attempts performed by the backend gateway",
	})
}

// NewBackendUnauthorizedTotal returns a Prometheus counter for 401 answers that cleared the stored token
func NewBackendUnauthorizedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "backend_unauthorized_total",
		Help: "Total number of backend responses that rejected the access token",
	})
}

// NewStoreOperationsTotal returns a counter vector of store operations by kind and result
func NewStoreOperationsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_operations_total",
		Help: "Total number of delivery store operations by kind and result",
	}, []string{"kind", "result"})
}

// StoreOperations records finished store operations.
type StoreOperations struct {
	vec *prometheus.CounterVec
}

// NewStoreOperations wraps vec, which must carry the kind and result labels.
func NewStoreOperations(vec *prometheus.CounterVec) *StoreOperations {
	return &StoreOperations{vec: vec}
}

// Observe counts one operation of kind. A nil receiver is a no-op.
func (s *StoreOperations) Observe(kind string, err error) {
	if s == nil || s.vec == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.vec.WithLabelValues(kind, result).Inc()
}

// Register registers c with reg. If an equal collector is already
// registered, the existing one is returned instead.
func Register[C prometheus.Collector](reg prometheus.Registerer, name string, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		var zero C
		return zero, fmt.Errorf("register %s: %w", name, err)
	}
	return c, nil
}
