package memory

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/kirinyoku/tix-client/internal/codec"
	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/kirinyoku/tix-client/internal/repository"
	"github.com/samber/lo"
)

type BookingRecord struct {
	ID              int64
	Booking         domain.Booking
	TransferContent string
	PaymentDeadline codec.LocalDateTime
	CreatedAt       time.Time
}

type BookingRepo struct {
	store *Store
	tx    *Tx
}

func (r *BookingRepo) With(tx *Tx) *BookingRepo {
	cp := *r
	cp.tx = tx
	return &cp
}

// Insert reserves the booking's seats for its showtime and stores it. build is
// called with the new id to fill in the fields that depend on it.
//
// Returns:
//   - BookingRecord: the stored record.
//   - error: repository.ErrSeatsUnavailable if any seat is already booked.
func (r *BookingRepo) Insert(
	ctx context.Context,
	b domain.Booking,
	build func(id int64) BookingRecord,
) (BookingRecord, error) {
	const op = "memory.BookingRepo.Insert"

	var rec BookingRecord
	err := within(ctx, r.store, r.tx, func(tx *Tx) error {
		s := tx.s

		seats := s.booked[b.ShowtimeID]
		taken := lo.Filter(b.SeatIDs(), func(id int64, _ int) bool {
			_, ok := seats[id]
			return ok
		})
		if len(taken) > 0 {
			return fmt.Errorf("%w: %v", repository.ErrSeatsUnavailable, taken)
		}

		s.nextBookingID++
		id := s.nextBookingID
		rec = build(id)
		rec.ID = id
		rec.Booking = b
		s.bookings[id] = rec

		if seats == nil {
			seats = make(map[int64]int64)
			s.booked[b.ShowtimeID] = seats
		}
		for _, seatID := range b.SeatIDs() {
			seats[seatID] = id
		}

		tx.onRollback(func() {
			for _, seatID := range b.SeatIDs() {
				delete(seats, seatID)
			}
			delete(s.bookings, id)
			s.nextBookingID--
		})

		return nil
	})
	if err != nil {
		return BookingRecord{}, fmt.Errorf("%s: %w", op, err)
	}

	return rec, nil
}

func (r *BookingRepo) Get(ctx context.Context, id int64) (*BookingRecord, error) {
	const op = "memory.BookingRepo.Get"

	var out BookingRecord
	err := within(ctx, r.store, r.tx, func(tx *Tx) error {
		b, ok := tx.s.bookings[id]
		if !ok {
			return repository.ErrNotFound
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// BookedSeats lists the seat ids taken for a showtime, ascending.
func (r *BookingRepo) BookedSeats(ctx context.Context, showtimeID int64) ([]int64, error) {
	var out []int64
	err := within(ctx, r.store, r.tx, func(tx *Tx) error {
		out = lo.Keys(tx.s.booked[showtimeID])
		slices.Sort(out)
		return nil
	})
	if out == nil {
		out = []int64{}
	}
	return out, err
}
