// Package memory is the stub backend's storage: the fixture catalog plus the users
// and bookings created while it runs. Nothing survives a restart.
package memory

import (
	"context"
	"sync"

	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/kirinyoku/tix-client/internal/mockdata"
)

type Store struct {
	mu sync.Mutex

	movies    []domain.MovieDTO
	cinemas   []domain.CinemaDTO
	screens   []domain.ScreenDTO
	showtimes []domain.ShowtimeDTO
	bank      domain.BankInfoDTO

	users      map[int64]UserRecord
	nextUserID int64

	bookings      map[int64]BookingRecord
	nextBookingID int64
	// showtime -> seat -> booking
	booked map[int64]map[int64]int64
}

func NewStore() *Store {
	return &Store{
		movies:    mockdata.Movies(),
		cinemas:   mockdata.Cinemas(),
		screens:   mockdata.Screens(),
		showtimes: mockdata.Showtimes(),
		bank:      mockdata.BankInfo(),
		users:     make(map[int64]UserRecord),
		bookings:  make(map[int64]BookingRecord),
		booked:    make(map[int64]map[int64]int64),
	}
}

// Tx is exclusive access to the store. Writes made through it are undone if the
// function passed to RunTx returns an error.
type Tx struct {
	s    *Store
	undo []func()
}

func (tx *Tx) onRollback(fn func()) {
	tx.undo = append(tx.undo, fn)
}

func (tx *Tx) rollback() {
	for i := len(tx.undo) - 1; i >= 0; i-- {
		tx.undo[i]()
	}
	tx.undo = nil
}

func (s *Store) RunTx(ctx context.Context, fn func(ctx context.Context, tx *Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &Tx{s: s}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}

	return nil
}

func (s *Store) Catalog() *CatalogRepo  { return &CatalogRepo{store: s} }
func (s *Store) Users() *UserRepo       { return &UserRepo{store: s} }
func (s *Store) Bookings() *BookingRepo { return &BookingRepo{store: s} }

// within runs fn in tx when one is bound, otherwise in a fresh transaction.
func within(ctx context.Context, s *Store, tx *Tx, fn func(tx *Tx) error) error {
	if tx != nil {
		return fn(tx)
	}

	return s.RunTx(ctx, func(_ context.Context, tx *Tx) error {
		return fn(tx)
	})
}
