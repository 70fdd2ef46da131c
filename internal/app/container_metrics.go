package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"field-delivery-sync/internal/http/middleware"
	"field-delivery-sync/internal/metrics"
)

type metricsOut struct {
	dig.Out

	RateLimitExceededTotal   prometheus.Counter `name:"rate_limit_exceeded_total"`
	GatewayRetriesTotal      prometheus.Counter `name:"gateway_retries_total"`
	BackendUnauthorizedTotal prometheus.Counter `name:"backend_unauthorized_total"`
	StoreOperations          *metrics.StoreOperations
	HTTP                     *middleware.HTTPMetrics
}

func provideMetrics(reg prometheus.Registerer) (metricsOut, error) {
	rl, err := metrics.Register(reg, "rate_limit_exceeded_total", metrics.NewRateLimitExceededTotal())
	if err != nil {
		return metricsOut{}, err
	}
	retries, err := metrics.Register(reg, "gateway_retries_total", metrics.NewGatewayRetriesTotal())
	if err != nil {
		return metricsOut{}, err
	}
	unauthorized, err := metrics.Register(reg, "backend_unauthorized_total", metrics.NewBackendUnauthorizedTotal())
	if err != nil {
		return metricsOut{}, err
	}
	ops, err := metrics.Register(reg, "store_operations_total", metrics.NewStoreOperationsTotal())
	if err != nil {
		return metricsOut{}, err
	}
	httpMetrics, err := middleware.NewHTTPMetrics(reg)
	if err != nil {
		return metricsOut{}, err
	}
	return metricsOut{
		RateLimitExceededTotal:   rl,
		GatewayRetriesTotal:      retries,
		BackendUnauthorizedTotal: unauthorized,
		StoreOperations:          metrics.NewStoreOperations(ops),
		HTTP:                     httpMetrics,
	}, nil
}
