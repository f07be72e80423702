package handler

import (
	"log/slog"
	"time"

	"booking-calendar-api/internal/auth"
	"booking-calendar-api/internal/cache"
	"booking-calendar-api/internal/config"
	"booking-calendar-api/internal/store"
)

// Handler carries the store handle explicitly; there is no ambient global
// connection anywhere in the package.
type Handler struct {
	store  *store.Store
	cache  *cache.ScheduleCache
	logger *slog.Logger

	secret         string
	tokenTTL       time.Duration
	passwordHash   string
	cascadeHistory bool
}

func New(st *store.Store, sc *cache.ScheduleCache, logger *slog.Logger, cfg *config.Config) (*Handler, error) {
	// hash once at startup so the login path only ever compares
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return nil, err
	}
	return &Handler{
		store:          st,
		cache:          sc,
		logger:         logger,
		secret:         cfg.JWTSecret,
		tokenTTL:       cfg.TokenTTL,
		passwordHash:   hash,
		cascadeHistory: cfg.CascadeHistory,
	}, nil
}
