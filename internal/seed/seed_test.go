package seed_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"booking-calendar-api/internal/seed"
	"booking-calendar-api/internal/store"
)

func setup(t *testing.T) *store.Store {
	t.Helper()
	_ = godotenv.Load("../../.env")
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	pool, err := pgxpool.New(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("db: %v", err)
	}
	t.Cleanup(pool.Close)
	return store.New(pool)
}

func TestRunIsIdempotent(t *testing.T) {
	st := setup(t)
	ctx := context.Background()

	first, err := seed.Run(ctx, st)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if !first.Skipped {
		if first.Clients == 0 || first.Types == 0 || first.Appointments == 0 {
			t.Errorf("fresh seed should insert rows, got %+v", first)
		}
	}

	// a populated database is left alone
	second, err := seed.Run(ctx, st)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !second.Skipped {
		t.Error("second run should be skipped")
	}
	if second.Clients != 0 || second.Appointments != 0 {
		t.Errorf("skipped run should insert nothing, got %+v", second)
	}
}
