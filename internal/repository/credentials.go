package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// CredentialRepo keeps credentials in the credentials table. It lets several
// agents on a shared terminal use one login.
type CredentialRepo struct {
	db *pgxpool.Pool
}

// NewCredentialRepo creates a new CredentialRepo.
func NewCredentialRepo(db *pgxpool.Pool) *CredentialRepo {
	return &CredentialRepo{db: db}
}

// Get returns the value stored under key, or "" when there is none.
func (r *CredentialRepo) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRow(ctx, `SELECT value FROM credentials WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if IsNotFound(err) {
			return "", nil
		}
		return "", fmt.Errorf("select credential: %w", err)
	}
	return value, nil
}

// Set upserts value under key.
func (r *CredentialRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO credentials (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`, key, value)
	if err != nil {
		return fmt.Errorf("upsert credential: %w", err)
	}
	return nil
}

// Remove deletes key.
func (r *CredentialRepo) Remove(ctx context.Context, key string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM credentials WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	return nil
}
