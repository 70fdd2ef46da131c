package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"field-delivery-sync/internal/logx"
	"field-delivery-sync/internal/repository"
)

var newPool = repository.NewPool

const dbAttemptTimeout = 3 * time.Second

// connectDbWithRetry waits for Postgres to come up, which matters when the
// agent and the database start together.
func connectDbWithRetry(ctx context.Context, logger logx.Logger, dsn string, attempts int, delay time.Duration) (*pgxpool.Pool, error) {
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		pool, err := tryConnect(ctx, dsn)
		if err == nil {
			logger.Info("db connected", logx.Int("attempt", attempt))
			return pool, nil
		}
		lastErr = err
		logger.Warn("db connect failed",
			logx.Int("attempt", attempt),
			logx.Int("retries", attempts),
			logx.Err(err),
		)
		if attempt == attempts {
			break
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	return nil, fmt.Errorf("db connect failed after %d attempts: %w", attempts, lastErr)
}

func tryConnect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, dbAttemptTimeout)
	defer cancel()
	return newPool(attemptCtx, dsn)
}
