// Package router assembles the local agent API.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"field-delivery-sync/internal/http/handlers"
)

const defaultTimeout = 35 * time.Second

// Handlers groups the route handlers.
type Handlers struct {
	Base       *handlers.Handlers
	Deliveries *handlers.DeliveryHandler
	Auth       *handlers.AuthHandler
	Reference  *handlers.ReferenceHandler
	Callbacks  *handlers.CallbackHandler
}

// Options are the optional router parts. Nil middlewares are skipped.
type Options struct {
	Observability func(http.Handler) http.Handler
	RateLimit     func(http.Handler) http.Handler
	Metrics       http.Handler
	// Timeout bounds API requests. It should exceed the store operation
	// timeout so that the store reports its own deadline first.
	Timeout time.Duration
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(h Handlers, opts Options) http.Handler {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if opts.Observability != nil {
		r.Use(opts.Observability)
	}

	r.Get("/ping", h.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.Base.HealthcheckHead))
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	r.NotFound(h.Base.NotFound)
	r.MethodNotAllowed(h.Base.MethodNotAllowed)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(opts.Timeout))
		if opts.RateLimit != nil {
			r.Use(opts.RateLimit)
		}

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			r.Get("/status", h.Auth.Status)
		})

		r.Route("/deliveries", func(r chi.Router) {
			r.Get("/", h.Deliveries.List)
			r.Post("/", h.Deliveries.Create)
			r.Post("/reload", h.Deliveries.Reload)
			r.Get("/watch", h.Deliveries.Watch)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Deliveries.Get)
				r.Put("/", h.Deliveries.Update)
				r.Delete("/", h.Deliveries.Delete)
				r.Post("/process", h.Deliveries.Process)
				r.Post("/unprocess", h.Deliveries.Unprocess)
			})
		})
		r.Get("/export.xlsx", h.Deliveries.Export)

		r.Get("/reference/service-groups", h.Reference.ServiceGroups)
		r.Get("/reference/{kind}", h.Reference.List)

		r.Route("/callbacks/{key}", func(r chi.Router) {
			r.Put("/", h.Callbacks.Put)
			r.Get("/", h.Callbacks.Get)
			r.Delete("/", h.Callbacks.Delete)
		})
		r.Route("/draft", func(r chi.Router) {
			r.Put("/", h.Callbacks.PutDraft)
			r.Get("/", h.Callbacks.GetDraft)
			r.Delete("/", h.Callbacks.DeleteDraft)
			r.Post("/pickers", h.Callbacks.ApplyPickers)
		})
		r.Put("/pickers/{picker}", h.Callbacks.PutPicker)
	})

	return r
}
