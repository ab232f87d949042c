package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/kirinyoku/tix-client/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func booking(showtime int64, seats ...int64) domain.Booking {
	b := domain.Booking{ShowtimeID: showtime}
	for _, id := range seats {
		b.Seats = append(b.Seats, domain.SeatSelection{SeatID: id, Price: decimal.NewFromInt(85000)})
	}
	return b
}

func TestBookingRepo_InsertAndConflict(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	rec, err := s.Bookings().Insert(ctx, booking(11, 1001, 1002), func(id int64) BookingRecord {
		return BookingRecord{TransferContent: "TIX"}
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID)

	_, err = s.Bookings().Insert(ctx, booking(11, 1002, 1003), func(id int64) BookingRecord { return BookingRecord{} })
	assert.ErrorIs(t, err, repository.ErrSeatsUnavailable)
	assert.Contains(t, err.Error(), "1002")

	// same seat, other showtime
	_, err = s.Bookings().Insert(ctx, booking(12, 1002), func(id int64) BookingRecord { return BookingRecord{} })
	require.NoError(t, err)

	seats, err := s.Bookings().BookedSeats(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, []int64{1001, 1002}, seats)

	seats, err = s.Bookings().BookedSeats(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, seats)
}

func TestRunTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	boom := errors.New("boom")

	err := s.RunTx(ctx, func(ctx context.Context, tx *Tx) error {
		if _, err := s.Bookings().With(tx).Insert(ctx, booking(11, 1001), func(int64) BookingRecord { return BookingRecord{} }); err != nil {
			return err
		}
		if _, err := s.Users().With(tx).Create(ctx, UserRecord{User: domain.UserInfo{Email: "a@b.vn", Username: "abcd"}}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	seats, _ := s.Bookings().BookedSeats(ctx, 11)
	assert.Empty(t, seats)

	_, err = s.Users().GetByEmail(ctx, "a@b.vn")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	rec, err := s.Bookings().Insert(ctx, booking(11, 1001), func(int64) BookingRecord { return BookingRecord{} })
	require.NoError(t, err)
	assert.Equal(t, int64(1), rec.ID)
}

func TestUserRepo_Unique(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	id, err := s.Users().Create(ctx, UserRecord{User: domain.UserInfo{Email: "an@tix.vn", Username: "anhnguyen", Token: "x"}})
	require.NoError(t, err)

	got, err := s.Users().GetByEmail(ctx, "AN@tix.vn")
	require.NoError(t, err)
	assert.Equal(t, id, got.User.ID)
	assert.Empty(t, got.User.Token)

	_, err = s.Users().Create(ctx, UserRecord{User: domain.UserInfo{Email: "other@tix.vn", Username: "AnhNguyen"}})
	assert.ErrorIs(t, err, repository.ErrConflict)
}

func TestCatalogRepo(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	st, err := s.Catalog().GetShowtime(ctx, 11)
	require.NoError(t, err)
	assert.Equal(t, int64(1), st.ScreenID)

	_, err = s.Catalog().GetMovie(ctx, 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
