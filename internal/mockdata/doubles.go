package mockdata

import (
	"context"

	"github.com/kirinyoku/tix-client/internal/api"
	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/kirinyoku/tix-client/internal/navigation"
	"github.com/stretchr/testify/mock"
)

type AuthAPI struct {
	mock.Mock
}

var _ api.AuthAPI = (*AuthAPI)(nil)

func (m *AuthAPI) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	args := m.Called(ctx, email, password)
	resp, _ := args.Get(0).(*domain.AuthResponse)
	return resp, args.Error(1)
}

func (m *AuthAPI) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*domain.AuthResponse)
	return resp, args.Error(1)
}

func (m *AuthAPI) CurrentUser() (*domain.UserInfo, bool) {
	args := m.Called()
	u, _ := args.Get(0).(*domain.UserInfo)
	return u, args.Bool(1)
}

type BookingAPI struct {
	mock.Mock
}

var _ api.BookingAPI = (*BookingAPI)(nil)

func (m *BookingAPI) CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.BookingResponseDTO, error) {
	args := m.Called(ctx, booking)
	resp, _ := args.Get(0).(*domain.BookingResponseDTO)
	return resp, args.Error(1)
}

// Navigator records every destination it was asked to open.
type Navigator struct {
	mock.Mock
}

var _ navigation.Navigator = (*Navigator)(nil)

func (m *Navigator) Navigate(dest navigation.Destination) error {
	return m.Called(dest).Error(0)
}
