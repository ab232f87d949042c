package memory

import (
	"context"
	"fmt"
	"slices"

	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/kirinyoku/tix-client/internal/repository"
	"github.com/samber/lo"
)

type CatalogRepo struct {
	store *Store
	tx    *Tx
}

func (r *CatalogRepo) With(tx *Tx) *CatalogRepo {
	cp := *r
	cp.tx = tx
	return &cp
}

func (r *CatalogRepo) ListMovies(ctx context.Context) ([]domain.MovieDTO, error) {
	var out []domain.MovieDTO
	err := within(ctx, r.store, r.tx, func(tx *Tx) error {
		out = slices.Clone(tx.s.movies)
		return nil
	})
	return out, err
}

func (r *CatalogRepo) GetMovie(ctx context.Context, id int64) (*domain.MovieDTO, error) {
	const op = "memory.CatalogRepo.GetMovie"

	var out domain.MovieDTO
	err := within(ctx, r.store, r.tx, func(tx *Tx) error {
		m, ok := lo.Find(tx.s.movies, func(m domain.MovieDTO) bool { return m.ID == id })
		if !ok {
			return repository.ErrNotFound
		}
		out = m
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (r *CatalogRepo) ListCinemas(ctx context.Context) ([]domain.CinemaDTO, error) {
	var out []domain.CinemaDTO
	err := within(ctx, r.store, r.tx, func(tx *Tx) error {
		out = slices.Clone(tx.s.cinemas)
		return nil
	})
	return out, err
}

func (r *CatalogRepo) GetScreen(ctx context.Context, id int64) (*domain.ScreenDTO, error) {
	const op = "memory.CatalogRepo.GetScreen"

	var out domain.ScreenDTO
	err := within(ctx, r.store, r.tx, func(tx *Tx) error {
		s, ok := lo.Find(tx.s.screens, func(s domain.ScreenDTO) bool { return s.ID == id })
		if !ok {
			return repository.ErrNotFound
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (r *CatalogRepo) GetShowtime(ctx context.Context, id int64) (*domain.ShowtimeDTO, error) {
	const op = "memory.CatalogRepo.GetShowtime"

	var out domain.ShowtimeDTO
	err := within(ctx, r.store, r.tx, func(tx *Tx) error {
		s, ok := lo.Find(tx.s.showtimes, func(s domain.ShowtimeDTO) bool { return s.ID == id })
		if !ok {
			return repository.ErrNotFound
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

func (r *CatalogRepo) GetBankInfo(ctx context.Context) (*domain.BankInfoDTO, error) {
	var out domain.BankInfoDTO
	err := within(ctx, r.store, r.tx, func(tx *Tx) error {
		out = tx.s.bank
		return nil
	})
	return &out, err
}
