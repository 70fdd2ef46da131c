package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/dig"

	"field-delivery-sync/internal/logx"
	"field-delivery-sync/internal/service/store"
	"field-delivery-sync/internal/transport/kafka"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the agent from a built container.
type Runner struct {
	runFn  func(*dig.Container) error
	fatalf func(string, ...interface{})
}

// NewRunner returns a Runner that serves until the container context ends.
func NewRunner() *Runner {
	return &Runner{runFn: run, fatalf: log.Fatalf}
}

// MustRun starts the agent using the provided DI container
func MustRun(container *dig.Container) {
	NewRunner().MustRun(container)
}

// MustRun runs the agent and reports how it stopped.
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}
	logger := loggerFrom(container)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		_ = logger.Sync()
		fatalf := r.fatalf
		if fatalf == nil {
			fatalf = log.Fatalf
		}
		fatalf("run error: %v", err)
	}
	_ = logger.Sync()
}

func loggerFrom(container *dig.Container) logx.Logger {
	logger := logx.Nop()
	_ = container.Invoke(func(l logx.Logger) { logger = l })
	return logger
}

type runIn struct {
	dig.In

	Ctx       context.Context
	Logger    logx.Logger
	Server    *http.Server
	Pprof     *http.Server     `name:"pprof_server" optional:"true"`
	Store     *store.Store     `optional:"true"`
	Publisher *kafka.Publisher `optional:"true"`
	Pool      *pgxpool.Pool    `optional:"true"`
}

func run(container *dig.Container) error {
	return container.Invoke(func(in runIn) error {
		errCh := make(chan error, 2)
		startServer(in.Server, in.Logger, "agent", errCh)
		if in.Pprof != nil {
			startServer(in.Pprof, in.Logger, "pprof", errCh)
		}
		if in.Store != nil {
			go initializeStore(in.Ctx, in.Store, in.Logger)
		}

		var runErr error
		select {
		case <-in.Ctx.Done():
			in.Logger.Info("shutting down fieldops-agent")
			runErr = in.Ctx.Err()
		case runErr = <-errCh:
		}

		gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
		if in.Pprof != nil {
			gracefulShutdown(in.Pprof, in.Logger, shutdownTimeout)
		}
		closeResources(in.Publisher, in.Pool, in.Logger)
		return runErr
	})
}

func startServer(server *http.Server, logger logx.Logger, name string, errCh chan<- error) {
	go func() {
		logger.Info("listening", logx.String("server", name), logx.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
}

// initializeStore performs the startup load. A failure only leaves the
// store empty; the front end can reload later.
func initializeStore(ctx context.Context, s *store.Store, logger logx.Logger) {
	if err := s.Initialize(ctx); err != nil {
		logger.Warn("initial delivery load failed", logx.Err(err))
	}
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.Err(err))
	}
}

type resourcesIn struct {
	dig.In

	Logger    logx.Logger      `optional:"true"`
	Publisher *kafka.Publisher `optional:"true"`
	Pool      *pgxpool.Pool    `optional:"true"`
}

// Close releases what the container opened, for callers that do not go
// through MustRun.
func Close(container *dig.Container) {
	_ = container.Invoke(func(in resourcesIn) {
		logger := logx.OrNop(in.Logger)
		closeResources(in.Publisher, in.Pool, logger)
		_ = logger.Sync()
	})
}

func closeResources(pub *kafka.Publisher, pool *pgxpool.Pool, logger logx.Logger) {
	if err := pub.Close(); err != nil {
		logger.Warn("kafka publisher close error", logx.Err(err))
	}
	if pool != nil {
		pool.Close()
	}
}
