// Package pprofserver runs the profiling listener next to the agent API.
package pprofserver

import (
	"crypto/subtle"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"field-delivery-sync/internal/logx"
)

// Config stores pprof server settings. An empty Addr disables the listener.
type Config struct {
	Addr string
	User string
	Pass string
}

// Handler returns the /debug/pprof routes guarded by authOrLocalOnly.
func Handler(cfg Config, logger logx.Logger) http.Handler {
	logger = logx.OrNop(logger)
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler { return authOrLocalOnly(next, cfg, logger) })
	r.Mount("/debug", middleware.Profiler())
	return r
}

// New returns the pprof server, or nil when cfg.Addr is empty.
func New(cfg Config, logger logx.Logger) *http.Server {
	if cfg.Addr == "" {
		return nil
	}
	return &http.Server{
		Addr:              cfg.Addr,
		Handler:           Handler(cfg, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

func authOrLocalOnly(next http.Handler, cfg Config, logger logx.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isLoopback(r.RemoteAddr) {
			next.ServeHTTP(w, r)
			return
		}
		u, p, ok := r.BasicAuth()
		if cfg.User == "" || cfg.Pass == "" || !ok || !secureEq(u, cfg.User) || !secureEq(p, cfg.Pass) {
			logger.Warn("pprof access denied", logx.String("remote_addr", r.RemoteAddr))
			w.Header().Set("WWW-Authenticate", `Basic realm="pprof"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func secureEq(u, s string) bool {
	if len(u) != len(s) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(u), []byte(s)) == 1
}

func isLoopback(remoteAddr string) bool {
	host := remoteAddr
	if h, _, err := net.SplitHostPort(remoteAddr); err == nil {
		host = h
	}
	ip := net.ParseIP(strings.TrimSpace(host))
	return ip != nil && ip.IsLoopback()
}
