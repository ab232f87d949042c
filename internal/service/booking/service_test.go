package booking

import (
	"context"
	"testing"
	"time"

	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/kirinyoku/tix-client/internal/mockdata"
	"github.com/kirinyoku/tix-client/internal/repository/memory"
	redisrepo "github.com/kirinyoku/tix-client/internal/repository/redis"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService() *Service {
	s := New(memory.NewStore(), redisrepo.New(nil), nil, Config{})
	s.now = func() time.Time { return time.Date(2025, time.March, 1, 19, 30, 0, 0, time.UTC) }
	return s
}

// showtime 11 plays movie 1 on screen 1 (cinema 1, 8x10).
func request(seats ...int64) domain.Booking {
	b := domain.Booking{CustomerID: 4, MovieID: 1, CinemaID: 1, ScreenID: 1, ShowtimeID: 11}
	for _, id := range seats {
		b.Seats = append(b.Seats, domain.SeatSelection{SeatID: id, Price: mockdata.SeatPrice})
	}
	b.ComputeTotals()
	return b
}

func TestCreate(t *testing.T) {
	s := newService()

	resp, err := s.Create(context.Background(), request(1021, 1022))
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.BookingID)
	assert.Equal(t, "TIX1", resp.TransferContent)
	assert.Equal(t, "2025-03-01T19:45:00", resp.PaymentDeadline.String())
	assert.True(t, decimal.NewFromInt(170000).Equal(resp.TotalPrice))

	seats, err := s.BookedSeats(context.Background(), 11)
	require.NoError(t, err)
	assert.Equal(t, []int64{1021, 1022}, seats)
}

func TestCreate_SeatsAlreadyTaken(t *testing.T) {
	s := newService()
	ctx := context.Background()

	_, err := s.Create(ctx, request(1021))
	require.NoError(t, err)

	_, err = s.Create(ctx, request(1022, 1021))
	require.ErrorIs(t, err, ErrSeatsUnavailable)

	var unavailable *SeatsUnavailableError
	require.ErrorAs(t, err, &unavailable)
	assert.Equal(t, []int64{1021}, unavailable.SeatIDs)

	// the failed booking must not hold 1022
	_, err = s.Create(ctx, request(1022))
	assert.NoError(t, err)
}

func TestCreate_Rejects(t *testing.T) {
	tests := []struct {
		name string
		b    func() domain.Booking
		want error
	}{
		{name: "no seats", b: func() domain.Booking { return request() }, want: ErrNoSeats},
		{name: "duplicate seat", b: func() domain.Booking { return request(1021, 1021) }, want: ErrInvalidSeat},
		{name: "seat of another screen", b: func() domain.Booking { return request(2001) }, want: ErrInvalidSeat},
		{name: "seat past the last one", b: func() domain.Booking { return request(1081) }, want: ErrInvalidSeat},
		{
			name: "unknown showtime",
			b: func() domain.Booking {
				b := request(1021)
				b.ShowtimeID = 99
				return b
			},
			want: ErrShowtimeNotFound,
		},
		{
			name: "wrong movie",
			b: func() domain.Booking {
				b := request(1021)
				b.MovieID = 2
				return b
			},
			want: ErrShowtimeMismatch,
		},
		{
			name: "wrong cinema",
			b: func() domain.Booking {
				b := request(1021)
				b.CinemaID = 2
				return b
			},
			want: ErrShowtimeMismatch,
		},
		{
			name: "tampered total",
			b: func() domain.Booking {
				b := request(1021)
				b.TotalPrice = decimal.NewFromInt(1000)
				return b
			},
			want: ErrTotalMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newService().Create(context.Background(), tt.b())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBookedSeats_UnknownShowtime(t *testing.T) {
	_, err := newService().BookedSeats(context.Background(), 99)
	assert.ErrorIs(t, err, ErrShowtimeNotFound)
}
