package mockdata

import (
	"context"
	"errors"
	"fmt"

	"github.com/kirinyoku/tix-client/internal/api"
	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/samber/lo"
)

var ErrNotFound = errors.New("not found")

// Catalog serves the fixtures through api.CatalogAPI.
type Catalog struct{}

var _ api.CatalogAPI = Catalog{}

func (Catalog) ListMovies(ctx context.Context) ([]domain.MovieDTO, error) {
	return Movies(), nil
}

func (Catalog) GetMovie(ctx context.Context, id int64) (*domain.MovieDTO, error) {
	const op = "mockdata.Catalog.GetMovie"

	m, ok := lo.Find(Movies(), func(m domain.MovieDTO) bool { return m.ID == id })
	if !ok {
		return nil, fmt.Errorf("%s: movie %d: %w", op, id, ErrNotFound)
	}

	return &m, nil
}

func (Catalog) ListCinemas(ctx context.Context) ([]domain.CinemaDTO, error) {
	return Cinemas(), nil
}

func (Catalog) GetScreen(ctx context.Context, id int64) (*domain.ScreenDTO, error) {
	const op = "mockdata.Catalog.GetScreen"

	s, ok := lo.Find(Screens(), func(s domain.ScreenDTO) bool { return s.ID == id })
	if !ok {
		return nil, fmt.Errorf("%s: screen %d: %w", op, id, ErrNotFound)
	}

	return &s, nil
}

func (Catalog) GetBankInfo(ctx context.Context) (*domain.BankInfoDTO, error) {
	b := BankInfo()
	return &b, nil
}
