package backend

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"field-delivery-sync/internal/domain"
	"field-delivery-sync/internal/logx"
)

// RetryConfig describes how RetryingAPI retries reads.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// RetryingAPI retries idempotent reads on throttling, 5xx and network
// errors. Mutations and auth calls go straight to the wrapped API.
type RetryingAPI struct {
	API
	logger  logx.Logger
	retries counter
	cfg     RetryConfig
}

// NewRetryingAPI wraps next. It returns nil when next is nil.
func NewRetryingAPI(next API, logger logx.Logger, retries counter, cfg RetryConfig) *RetryingAPI {
	if next == nil {
		return nil
	}
	logger = logx.OrNop(logger)
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	return &RetryingAPI{API: next, logger: logger, retries: retries, cfg: cfg}
}

// ListDeliveries retries API.ListDeliveries.
func (g *RetryingAPI) ListDeliveries(ctx context.Context) ([]Delivery, error) {
	return retry(ctx, g, "ListDeliveries", g.API.ListDeliveries)
}

// GetDelivery retries API.GetDelivery.
func (g *RetryingAPI) GetDelivery(ctx context.Context, id int64) (*Delivery, error) {
	return retry(ctx, g, "GetDelivery", func(ctx context.Context) (*Delivery, error) {
		return g.API.GetDelivery(ctx, id)
	})
}

func (g *RetryingAPI) TransportModels(ctx context.Context) ([]domain.TransportModel, error) {
	return retry(ctx, g, "TransportModels", g.API.TransportModels)
}

func (g *RetryingAPI) PackageTypes(ctx context.Context) ([]domain.PackageType, error) {
	return retry(ctx, g, "PackageTypes", g.API.PackageTypes)
}

func (g *RetryingAPI) ServiceCategories(ctx context.Context) ([]domain.ServiceCategory, error) {
	return retry(ctx, g, "ServiceCategories", g.API.ServiceCategories)
}

func (g *RetryingAPI) Services(ctx context.Context) ([]domain.Service, error) {
	return retry(ctx, g, "Services", g.API.Services)
}

func (g *RetryingAPI) DeliveryStatuses(ctx context.Context) ([]domain.DeliveryStatus, error) {
	return retry(ctx, g, "DeliveryStatuses", g.API.DeliveryStatuses)
}

func (g *RetryingAPI) TechnicalConditions(ctx context.Context) ([]domain.TechnicalCondition, error) {
	return retry(ctx, g, "TechnicalConditions", g.API.TechnicalConditions)
}

func (g *RetryingAPI) CargoTypes(ctx context.Context) ([]domain.CargoType, error) {
	return retry(ctx, g, "CargoTypes", g.API.CargoTypes)
}

func (g *RetryingAPI) Locations(ctx context.Context) ([]domain.Location, error) {
	return retry(ctx, g, "Locations", g.API.Locations)
}

func retry[T any](ctx context.Context, g *RetryingAPI, method string, call func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 1; attempt <= g.cfg.MaxAttempts; attempt++ {
		v, err := call(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == g.cfg.MaxAttempts || !isRetryable(err) {
			break
		}

		delay := backoff(g.cfg.BaseDelay, g.cfg.MaxDelay, attempt)
		if g.retries != nil {
			g.retries.Inc()
		}
		g.logger.Warn("backend retry",
			logx.String("method", method),
			logx.Int("attempt", attempt),
			logx.Duration("delay", delay),
			logx.Err(err),
		)
		if !sleepWithContext(ctx, delay) {
			break
		}
	}
	return zero, lastErr
}

func isRetryable(err error) bool {
	switch StatusCode(err) {
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	case 0:
	default:
		return false
	}
	var ne net.Error
	return errors.As(err, &ne)
}

func backoff(base, max time.Duration, attempt int) time.Duration {
	d := base << (attempt - 1)
	if d > max {
		return max
	}
	return d
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
