package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/kirinyoku/tix-client/internal/repository"
	"github.com/kirinyoku/tix-client/internal/repository/memory"
	redisrepo "github.com/kirinyoku/tix-client/internal/repository/redis"
)

type Config struct {
	MoviesTTL   time.Duration
	CinemasTTL  time.Duration
	ScreenTTL   time.Duration
	BankInfoTTL time.Duration
}

// Service serves catalog reads through the read-through cache.
type Service struct {
	store *memory.Store
	cache *redisrepo.Cache
	cfg   Config
}

func New(store *memory.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.MoviesTTL <= 0 {
		cfg.MoviesTTL = 60 * time.Second
	}

	if cfg.CinemasTTL <= 0 {
		cfg.CinemasTTL = 5 * time.Minute
	}

	if cfg.ScreenTTL <= 0 {
		cfg.ScreenTTL = 5 * time.Minute
	}

	if cfg.BankInfoTTL <= 0 {
		cfg.BankInfoTTL = 10 * time.Minute
	}

	return &Service{
		store: store,
		cache: cache,
		cfg:   cfg,
	}
}

func (s *Service) ListMovies(ctx context.Context) ([]domain.MovieDTO, error) {
	const op = "service.catalog.ListMovies"

	movies, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyMovies(), s.cfg.MoviesTTL,
		s.store.Catalog().ListMovies,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return movies, nil
}

// GetMovie returns catalog.ErrMovieNotFound for an unknown id.
func (s *Service) GetMovie(ctx context.Context, id int64) (*domain.MovieDTO, error) {
	const op = "service.catalog.GetMovie"

	movie, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyMovie(id), s.cfg.MoviesTTL,
		func(ctx context.Context) (domain.MovieDTO, error) {
			m, err := s.store.Catalog().GetMovie(ctx, id)
			if errors.Is(err, repository.ErrNotFound) {
				return domain.MovieDTO{}, ErrMovieNotFound
			}
			if err != nil {
				return domain.MovieDTO{}, err
			}
			return *m, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &movie, nil
}

func (s *Service) ListCinemas(ctx context.Context) ([]domain.CinemaDTO, error) {
	const op = "service.catalog.ListCinemas"

	cinemas, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyCinemas(), s.cfg.CinemasTTL,
		s.store.Catalog().ListCinemas,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return cinemas, nil
}

// GetScreen returns catalog.ErrScreenNotFound for an unknown id.
func (s *Service) GetScreen(ctx context.Context, id int64) (*domain.ScreenDTO, error) {
	const op = "service.catalog.GetScreen"

	screen, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyScreen(id), s.cfg.ScreenTTL,
		func(ctx context.Context) (domain.ScreenDTO, error) {
			sc, err := s.store.Catalog().GetScreen(ctx, id)
			if errors.Is(err, repository.ErrNotFound) {
				return domain.ScreenDTO{}, ErrScreenNotFound
			}
			if err != nil {
				return domain.ScreenDTO{}, err
			}
			return *sc, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &screen, nil
}

func (s *Service) GetBankInfo(ctx context.Context) (*domain.BankInfoDTO, error) {
	const op = "service.catalog.GetBankInfo"

	bank, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyBankInfo(), s.cfg.BankInfoTTL,
		func(ctx context.Context) (domain.BankInfoDTO, error) {
			b, err := s.store.Catalog().GetBankInfo(ctx)
			if err != nil {
				return domain.BankInfoDTO{}, err
			}
			return *b, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &bank, nil
}
