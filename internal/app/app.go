package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirinyoku/tix-client/internal/config"
	"github.com/kirinyoku/tix-client/internal/mockdata"
	"github.com/kirinyoku/tix-client/internal/redis"
	"github.com/kirinyoku/tix-client/internal/repository/memory"
	redisrepo "github.com/kirinyoku/tix-client/internal/repository/redis"
	"github.com/kirinyoku/tix-client/internal/service"
	"github.com/kirinyoku/tix-client/internal/service/auth"
	httpgin "github.com/kirinyoku/tix-client/internal/transport/http/gin"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// App is the development stub backend the client talks to.
type App struct {
	cfg        *config.Config
	logger     *slog.Logger
	rdb        *goredis.Client
	events     *redisrepo.BookingEvents
	httpServer *http.Server
}

func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx := context.Background()

	rdb, err := redis.New(ctx, cfg.Redis)
	switch {
	case errors.Is(err, redis.ErrDisabled):
		logger.Info("redis disabled, running without cache, rate limiting and idempotency")
	case err != nil:
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize repositories
	store := memory.NewStore()
	cache := redisrepo.New(rdb)

	var (
		events  *redisrepo.BookingEvents
		limiter *redisrepo.SlidingWindowLimiter
		idem    *redisrepo.IdempotencyStore
	)
	if rdb != nil {
		events = redisrepo.NewBookingEvents(rdb)
		limiter = redisrepo.NewSlidingWindowLimiter(rdb, "login", 10, time.Minute)
		idem = redisrepo.NewIdempotencyStore(rdb, 2*time.Hour)
	}

	// Initialize services
	services := service.NewServices(store, cache, events, limiter, service.Config{
		Auth: auth.Config{
			Secret:   cfg.Auth.JWTSecret,
			TokenTTL: cfg.Auth.JWTTTL,
		},
	})

	if err := services.Auth.Seed(ctx, mockdata.Accounts()); err != nil {
		return nil, fmt.Errorf("failed to seed accounts: %w", err)
	}

	// Initialize Gin router
	router := httpgin.NewRouter(services, idem, logger)

	return &App{
		cfg:    cfg,
		logger: logger,
		rdb:    rdb,
		events: events,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", cfg.Stub.Host, cfg.Stub.Port),
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func (a *App) Handler() http.Handler {
	return a.httpServer.Handler
}

func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)

	// Start HTTP server
	g.Go(func() error {
		a.logger.Info("stub backend listening", "host", a.cfg.Stub.Host, "port", a.cfg.Stub.Port)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
		return nil
	})

	if a.events != nil {
		g.Go(func() error {
			err := a.events.Subscribe(gCtx, func(_ context.Context, ev redisrepo.BookingCreated) {
				a.logger.Info("booking created",
					"booking_id", ev.BookingID,
					"showtime_id", ev.ShowtimeID,
					"seats", ev.SeatIDs,
					"total", ev.TotalPrice.String(),
				)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	}

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		a.logger.Info("shutting down HTTP server")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err := a.httpServer.Shutdown(ctx)
		if a.rdb != nil {
			_ = a.rdb.Close()
		}
		return err
	})

	return g.Wait()
}
