package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/dig"

	"field-delivery-sync/internal/config"
	"field-delivery-sync/internal/export"
	"field-delivery-sync/internal/gateway/backend"
	"field-delivery-sync/internal/http/handlers"
	"field-delivery-sync/internal/http/middleware"
	"field-delivery-sync/internal/http/middleware/ratelimit"
	"field-delivery-sync/internal/http/pprofserver"
	"field-delivery-sync/internal/http/router"
	"field-delivery-sync/internal/logx"
	"field-delivery-sync/internal/service/reference"
	"field-delivery-sync/internal/service/store"
)

// newRateLimiter returns the per-IP token bucket, or a limiter that lets
// everything through when RATE_LIMIT_ENABLED=false.
func newRateLimiter(cfg *config.Config) ratelimit.Limiter {
	rl := cfg.RateLimit
	if !rl.Enabled {
		return ratelimit.NopLimiter{}
	}
	return ratelimit.NewTokenBucketLimiter(ratelimit.RealClock{}, ratelimit.Config{
		Rate:       rl.Rate,
		Burst:      rl.Burst,
		TTL:        rl.TTL,
		MaxBuckets: rl.MaxBuckets,
	})
}

type rateLimitIn struct {
	dig.In

	Logger  logx.Logger
	Counter prometheus.Counter `name:"rate_limit_exceeded_total"`
	Limiter ratelimit.Limiter
}

type routerIn struct {
	dig.In

	Config      *config.Config
	Logger      logx.Logger
	Base        *handlers.Handlers
	Deliveries  *handlers.DeliveryHandler
	Auth        *handlers.AuthHandler
	Reference   *handlers.ReferenceHandler
	Callbacks   *handlers.CallbackHandler
	RateLimit   *ratelimit.Middleware
	HTTPMetrics *middleware.HTTPMetrics
	Gatherer    prometheus.Gatherer
}

// routeTimeout leaves the store room to report its own deadline.
func routeTimeout(cfg *config.Config) time.Duration {
	return cfg.Store.OperationTimeout + 5*time.Second
}

func provideRouter(in routerIn) http.Handler {
	return router.New(router.Handlers{
		Base:       in.Base,
		Deliveries: in.Deliveries,
		Auth:       in.Auth,
		Reference:  in.Reference,
		Callbacks:  in.Callbacks,
	}, router.Options{
		Observability: middleware.Observability(in.Logger, in.HTTPMetrics),
		RateLimit:     in.RateLimit.Handler(),
		Metrics:       promhttp.HandlerFor(in.Gatherer, promhttp.HandlerOpts{}),
		Timeout:       routeTimeout(in.Config),
	})
}

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      routeTimeout(cfg) + 5*time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	pprofProvider := func(cfg *config.Config, logger logx.Logger) pprofOut {
		return pprofOut{Server: pprofserver.New(pprofserver.Config{
			Addr: cfg.Pprof.Addr,
			User: cfg.Pprof.User,
			Pass: cfg.Pprof.Pass,
		}, logger)}
	}
	return provideAll(container,
		handlers.New,
		func(s *store.Store, gen *export.Generator, logger logx.Logger) *handlers.DeliveryHandler {
			return handlers.NewDeliveryHandler(s, gen, logger)
		},
		func(api backend.API, s *store.Store, logger logx.Logger) *handlers.AuthHandler {
			return handlers.NewAuthHandler(api, s, logger)
		},
		func(refs *reference.Service, logger logx.Logger) *handlers.ReferenceHandler {
			return handlers.NewReferenceHandler(refs, logger)
		},
		func(s *store.Store, logger logx.Logger) *handlers.CallbackHandler {
			return handlers.NewCallbackHandler(s, logger)
		},
		newRateLimiter,
		func(in rateLimitIn) *ratelimit.Middleware {
			return ratelimit.New(in.Logger, in.Counter, in.Limiter)
		},
		provideRouter,
		serverProvider,
		pprofProvider,
	)
}
