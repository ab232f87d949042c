package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kirinyoku/tix-client/internal/codec"
	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/kirinyoku/tix-client/internal/repository"
	"github.com/kirinyoku/tix-client/internal/repository/memory"
	redisrepo "github.com/kirinyoku/tix-client/internal/repository/redis"
	"github.com/kirinyoku/tix-client/internal/uow"
	"github.com/samber/lo"
)

type Config struct {
	// PaymentWindow is how long a new booking waits for the bank transfer.
	PaymentWindow  time.Duration
	TransferPrefix string
	BookedSeatsTTL time.Duration
}

type Service struct {
	store  *memory.Store
	cache  *redisrepo.Cache
	events *redisrepo.BookingEvents
	uow    *uow.UoW
	cfg    Config
	now    func() time.Time
}

func New(store *memory.Store, cache *redisrepo.Cache, events *redisrepo.BookingEvents, cfg Config) *Service {
	if cfg.PaymentWindow <= 0 {
		cfg.PaymentWindow = 15 * time.Minute
	}

	if cfg.TransferPrefix == "" {
		cfg.TransferPrefix = "TIX"
	}

	if cfg.BookedSeatsTTL <= 0 {
		cfg.BookedSeatsTTL = 10 * time.Second
	}

	return &Service{
		store:  store,
		cache:  cache,
		events: events,
		uow:    uow.NewUoW(store),
		cfg:    cfg,
		now:    time.Now,
	}
}

// Create books the selected seats for a showtime.
//
// Parameters:
//   - ctx: request-scoped context.
//   - b: the booking as sent by the client; totals must match its selections.
//
// Returns:
//   - *domain.BookingResponseDTO: the stored booking with its transfer details.
//   - error: booking.ErrNoSeats, ErrShowtimeNotFound, ErrShowtimeMismatch or
//     ErrInvalidSeat for a malformed request.
//   - error: booking.ErrTotalMismatch if a total differs from the selection.
//   - error: booking.ErrSeatsUnavailable if a seat is already booked.
func (s *Service) Create(ctx context.Context, b domain.Booking) (*domain.BookingResponseDTO, error) {
	const op = "service.booking.Create"

	if len(b.Seats) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrNoSeats)
	}

	if ids := b.SeatIDs(); len(lo.Uniq(ids)) != len(ids) {
		return nil, fmt.Errorf("%s: %w: duplicate seat", op, ErrInvalidSeat)
	}

	if err := checkTotals(b); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var rec memory.BookingRecord

	err := s.uow.Do(ctx, func(ctx context.Context, tx *memory.Tx, after func(uow.AfterCommit)) error {
		showtime, err := s.store.Catalog().With(tx).GetShowtime(ctx, b.ShowtimeID)
		if errors.Is(err, repository.ErrNotFound) {
			return ErrShowtimeNotFound
		}
		if err != nil {
			return err
		}

		if b.MovieID != showtime.MovieID || b.ScreenID != showtime.ScreenID {
			return ErrShowtimeMismatch
		}

		screen, err := s.store.Catalog().With(tx).GetScreen(ctx, showtime.ScreenID)
		if err != nil {
			return err
		}

		if b.CinemaID != screen.CinemaID {
			return ErrShowtimeMismatch
		}

		if bad := invalidSeats(*screen, b.SeatIDs()); len(bad) > 0 {
			return fmt.Errorf("%w: %v", ErrInvalidSeat, bad)
		}

		now := s.now()
		rec, err = s.store.Bookings().With(tx).Insert(ctx, b, func(id int64) memory.BookingRecord {
			return memory.BookingRecord{
				TransferContent: fmt.Sprintf("%s%d", s.cfg.TransferPrefix, id),
				PaymentDeadline: codec.LocalDateTimeOf(now.Add(s.cfg.PaymentWindow)),
				CreatedAt:       now,
			}
		})
		if errors.Is(err, repository.ErrSeatsUnavailable) {
			taken, _ := s.store.Bookings().With(tx).BookedSeats(ctx, b.ShowtimeID)
			return &SeatsUnavailableError{SeatIDs: lo.Intersect(taken, b.SeatIDs())}
		}
		if err != nil {
			return err
		}

		after(func(ctx context.Context) {
			_ = s.cache.InvalidateShowtime(ctx, b.ShowtimeID)
			if s.events != nil {
				_ = s.events.PublishBookingCreated(ctx, redisrepo.BookingCreated{
					BookingID:  rec.ID,
					ShowtimeID: b.ShowtimeID,
					SeatIDs:    b.SeatIDs(),
					TotalPrice: b.TotalPrice,
				})
			}
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return toResponse(rec), nil
}

// BookedSeats lists taken seat ids for a showtime, served from cache when possible.
func (s *Service) BookedSeats(ctx context.Context, showtimeID int64) ([]int64, error) {
	const op = "service.booking.BookedSeats"

	if _, err := s.store.Catalog().GetShowtime(ctx, showtimeID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrShowtimeNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	seats, err := redisrepo.GetOrSetJSON(ctx, s.cache, redisrepo.KeyBookedSeats(showtimeID), s.cfg.BookedSeatsTTL,
		func(ctx context.Context) ([]int64, error) {
			return s.store.Bookings().BookedSeats(ctx, showtimeID)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return seats, nil
}

func checkTotals(b domain.Booking) error {
	want := b
	want.ComputeTotals()

	switch {
	case !b.SeatTotalPrice.Equal(want.SeatTotalPrice):
		return &TotalMismatchError{Field: "seatTotalPrice", Sent: b.SeatTotalPrice, Computed: want.SeatTotalPrice}
	case !b.ComboTotalPrice.Equal(want.ComboTotalPrice):
		return &TotalMismatchError{Field: "comboTotalPrice", Sent: b.ComboTotalPrice, Computed: want.ComboTotalPrice}
	case !b.TotalPrice.Equal(want.TotalPrice):
		return &TotalMismatchError{Field: "totalPrice", Sent: b.TotalPrice, Computed: want.TotalPrice}
	}

	return nil
}

// invalidSeats returns the ids that do not address a seat of screen. Seat ids are
// screen.ID*1000 + row-major index + 1.
func invalidSeats(screen domain.ScreenDTO, ids []int64) []int64 {
	return lo.Filter(ids, func(id int64, _ int) bool {
		idx := id - screen.ID*1000
		return idx < 1 || idx > int64(screen.TotalSeats)
	})
}

func toResponse(rec memory.BookingRecord) *domain.BookingResponseDTO {
	b := rec.Booking
	return &domain.BookingResponseDTO{
		BookingID:       rec.ID,
		TransferContent: rec.TransferContent,
		PaymentDeadline: rec.PaymentDeadline,
		MovieID:         b.MovieID,
		CinemaID:        b.CinemaID,
		ScreenID:        b.ScreenID,
		ShowtimeID:      b.ShowtimeID,
		CustomerID:      b.CustomerID,
		SeatTotalPrice:  b.SeatTotalPrice,
		ComboTotalPrice: b.ComboTotalPrice,
		TotalPrice:      b.TotalPrice,
	}
}
