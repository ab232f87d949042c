// Package navigation maps authenticated roles to screens and switches between them.
package navigation

import (
	"errors"
	"fmt"
	"sync"

	"github.com/kirinyoku/tix-client/internal/domain"
)

// Destination is a screen path.
type Destination string

const (
	Login            Destination = "/auth/login"
	Register         Destination = "/auth/register"
	AdminDashboard   Destination = "/admin/dashboard"
	ManagerDashboard Destination = "/manager/dashboard"
	CustomerHome     Destination = "/customer/home"
	CustomerPayment  Destination = "/customer/payment"
)

var ErrUnknownDestination = errors.New("unknown destination")

// DestinationFor returns the landing screen for role. Roles outside the known
// set land on the customer home.
func DestinationFor(role domain.Role) Destination {
	switch role {
	case domain.RoleAdmin:
		return AdminDashboard
	case domain.RoleCinemaManager:
		return ManagerDashboard
	default:
		return CustomerHome
	}
}

type Navigator interface {
	Navigate(dest Destination) error
}

// Screen is whatever opens a destination. It runs on the UI loop.
type Screen func() error

// Router is a Navigator over a fixed table of screens.
type Router struct {
	mu      sync.Mutex
	screens map[Destination]Screen
	current Destination
}

func NewRouter() *Router {
	return &Router{screens: make(map[Destination]Screen)}
}

func (r *Router) Register(dest Destination, screen Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.screens[dest] = screen
}

func (r *Router) Navigate(dest Destination) error {
	const op = "navigation.Navigate"

	r.mu.Lock()
	screen, ok := r.screens[dest]
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%s: %w: %s", op, ErrUnknownDestination, dest)
	}

	if err := screen(); err != nil {
		return fmt.Errorf("%s: %s: %w", op, dest, err)
	}

	r.mu.Lock()
	r.current = dest
	r.mu.Unlock()

	return nil
}

func (r *Router) Current() Destination {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.current
}
