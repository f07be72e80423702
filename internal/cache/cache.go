package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"booking-calendar-api/internal/model"
)

// ScheduleCache keeps rendered daily schedules in Redis. It is optional: a
// nil *ScheduleCache is a no-op, and Redis failures fall open to the store.
//
// Appointment writes invalidate the days they touch. Client edits do not:
// the joined client name and phone in a cached day may lag by up to the TTL.
type ScheduleCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func New(addr string, ttl time.Duration, logger *slog.Logger) *ScheduleCache {
	if addr == "" {
		return nil
	}
	return &ScheduleCache{
		rdb:    redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
		logger: logger,
	}
}

func key(date string) string { return "schedule:" + date }

func (c *ScheduleCache) GetDay(ctx context.Context, date string) ([]model.AppointmentDetail, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.rdb.Get(ctx, key(date)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("schedule cache get failed", "err", err)
		}
		return nil, false
	}
	var items []model.AppointmentDetail
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (c *ScheduleCache) SetDay(ctx context.Context, date string, items []model.AppointmentDetail) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key(date), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("schedule cache set failed", "err", err)
	}
}

// InvalidateDay drops the cached schedule after a write touching that date.
func (c *ScheduleCache) InvalidateDay(ctx context.Context, date string) {
	if c == nil || date == "" {
		return
	}
	if err := c.rdb.Del(ctx, key(date)).Err(); err != nil {
		c.logger.Warn("schedule cache invalidate failed", "err", err)
	}
}
