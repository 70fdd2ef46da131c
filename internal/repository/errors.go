package repository

import (
	"errors"

	"github.com/jackc/pgx/v5"
)

// IsNotFound reports whether err means the query matched no rows.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
