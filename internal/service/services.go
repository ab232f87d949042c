package service

import (
	"github.com/kirinyoku/tix-client/internal/repository/memory"
	redisrepo "github.com/kirinyoku/tix-client/internal/repository/redis"
	"github.com/kirinyoku/tix-client/internal/service/auth"
	"github.com/kirinyoku/tix-client/internal/service/booking"
	"github.com/kirinyoku/tix-client/internal/service/catalog"
)

type Services struct {
	Auth    *auth.Service
	Booking *booking.Service
	Catalog *catalog.Service
}

type Config struct {
	Auth    auth.Config
	Booking booking.Config
	Catalog catalog.Config
}

// NewServices wires the stub backend. cache is required (redisrepo.New(nil) for a
// cache that never hits); events and limiter may be nil.
func NewServices(
	store *memory.Store,
	cache *redisrepo.Cache,
	events *redisrepo.BookingEvents,
	limiter *redisrepo.SlidingWindowLimiter,
	cfg Config,
) *Services {
	return &Services{
		Auth:    auth.New(store, limiter, cfg.Auth),
		Booking: booking.New(store, cache, events, cfg.Booking),
		Catalog: catalog.New(store, cache, cfg.Catalog),
	}
}
