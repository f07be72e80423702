package store

import (
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Store wraps the pgx pool. All SQL lives here; callers get models and the
// sentinel errors from errors.go.
type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// itoa keeps dynamically built placeholder lists readable.
func itoa(n int) string { return strconv.Itoa(n) }
