package api

import (
	"context"

	"github.com/kirinyoku/tix-client/internal/domain"
)

// BookingAPI creates bookings. A nil response with a nil error means the server
// accepted the booking without a body.
type BookingAPI interface {
	CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.BookingResponseDTO, error)
}

// AuthAPI returns the server verdict as an AuthResponse. The error is reserved for
// transport and unexpected status failures.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*domain.AuthResponse, error)
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
	CurrentUser() (*domain.UserInfo, bool)
}

type CatalogAPI interface {
	ListMovies(ctx context.Context) ([]domain.MovieDTO, error)
	GetMovie(ctx context.Context, id int64) (*domain.MovieDTO, error)
	ListCinemas(ctx context.Context) ([]domain.CinemaDTO, error)
	GetScreen(ctx context.Context, id int64) (*domain.ScreenDTO, error)
	GetBankInfo(ctx context.Context) (*domain.BankInfoDTO, error)
}

var (
	_ BookingAPI = (*Client)(nil)
	_ AuthAPI    = (*Client)(nil)
	_ CatalogAPI = (*Client)(nil)
)
