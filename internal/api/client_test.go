package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kirinyoku/tix-client/internal/config"
	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, url string, cfg config.APIConfig) *Client {
	t.Helper()
	cfg.BaseURL = url
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(NewHTTPClient(cfg), cfg, logger)
}

func sampleBooking() *domain.Booking {
	b := &domain.Booking{
		CustomerID: 4,
		MovieID:    1,
		CinemaID:   1,
		ScreenID:   2,
		ShowtimeID: 11,
		Seats: []domain.SeatSelection{
			{SeatID: 31, Label: "C1", Price: decimal.NewFromInt(85000)},
		},
	}
	b.ComputeTotals()
	return b
}

func TestCreateBooking_AcceptedStatuses(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusCreated} {
		t.Run(strconv.Itoa(status), func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/api/bookings", r.URL.Path)
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

				body, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, `{"customerId":4,"movieId":1,"cinemaId":1,"screenId":2,"showtimeId":11,
					"seats":[{"seatId":31,"seatLabel":"C1","price":85000}],"combos":null,
					"seatTotalPrice":85000,"comboTotalPrice":0,"totalPrice":85000}`, string(body))

				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"bookingId":77,"transferContent":"TIX77","paymentDeadline":"2025-03-01T19:45:00","totalPrice":85000}`))
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL, config.APIConfig{})
			resp, err := c.CreateBooking(context.Background(), sampleBooking())

			require.NoError(t, err)
			require.NotNil(t, resp)
			assert.Equal(t, int64(77), resp.BookingID)
			assert.Equal(t, "TIX77", resp.TransferContent)
			assert.Equal(t, "2025-03-01T19:45:00", resp.PaymentDeadline.String())
			assert.True(t, decimal.NewFromInt(85000).Equal(resp.TotalPrice))
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		})
	}
}

func TestCreateBooking_EmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, config.APIConfig{})
	resp, err := c.CreateBooking(context.Background(), sampleBooking())

	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestCreateBooking_RejectedStatuses(t *testing.T) {
	cases := []struct {
		status int
		body   string
	}{
		{status: http.StatusBadRequest, body: `{"error":"seat C1 already taken"}`},
		{status: http.StatusNotFound, body: "showtime not found"},
		{status: http.StatusInternalServerError, body: "boom"},
		{status: http.StatusAccepted, body: "queued"},
	}

	for _, tc := range cases {
		t.Run(strconv.Itoa(tc.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := newTestClient(t, srv.URL, config.APIConfig{})
			resp, err := c.CreateBooking(context.Background(), sampleBooking())

			assert.Nil(t, resp)
			require.ErrorIs(t, err, ErrOperationFailed)
			assert.Contains(t, err.Error(), strconv.Itoa(tc.status))
			assert.Contains(t, err.Error(), tc.body)

			var opErr *OperationFailedError
			require.ErrorAs(t, err, &opErr)
			assert.Equal(t, tc.status, opErr.Status)
			assert.Equal(t, tc.body, opErr.Body)
		})
	}
}

func TestCreateBooking_NilBookingMakesNoCall(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, config.APIConfig{})
	resp, err := c.CreateBooking(context.Background(), nil)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestCreateBooking_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url, config.APIConfig{})
	_, err := c.CreateBooking(context.Background(), sampleBooking())

	assert.ErrorIs(t, err, ErrTransportFailure)
	assert.NotErrorIs(t, err, ErrOperationFailed)
}

func TestCreateBooking_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := newTestClient(t, srv.URL, config.APIConfig{Timeout: 50 * time.Millisecond})
	_, err := c.CreateBooking(context.Background(), sampleBooking())

	assert.ErrorIs(t, err, ErrTransportFailure)
}

func TestLogin_StoresUserAndSendsToken(t *testing.T) {
	var sawToken atomic.Value
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"email":"an@cinema.vn","password":"secret1"}`, string(body))
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","user":{"id":5,"username":"an","role":"ADMIN","token":"tkn"}}`))
	})
	mux.HandleFunc("/api/bookings", func(w http.ResponseWriter, r *http.Request) {
		sawToken.Store(r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusCreated)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv.URL, config.APIConfig{})

	_, ok := c.CurrentUser()
	assert.False(t, ok)

	resp, err := c.Login(context.Background(), "an@cinema.vn", "secret1")
	require.NoError(t, err)
	assert.True(t, resp.Success)

	u, ok := c.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, domain.RoleAdmin, u.Role)

	_, err = c.CreateBooking(context.Background(), sampleBooking())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tkn", sawToken.Load())

	c.Logout()
	_, ok = c.CurrentUser()
	assert.False(t, ok)
}

func TestLogin_RejectionKeepsServerMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"success":false,"message":"Email hoặc mật khẩu không đúng"}`))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, config.APIConfig{})
	resp, err := c.Login(context.Background(), "an@cinema.vn", "wrong1")

	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "Email hoặc mật khẩu không đúng", resp.Message)

	_, ok := c.CurrentUser()
	assert.False(t, ok)
}

func TestRegister_ServerErrorIsOperationFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, config.APIConfig{})
	_, err := c.Register(context.Background(), domain.RegisterRequest{Username: "anan"})

	require.ErrorIs(t, err, ErrOperationFailed)
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "upstream down")
}

func TestCatalog_Get(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/movies", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":1,"title":"Mai","release_date":"2024-02-10","created_at":"2024-01-01T00:00:00"}]`))
	})
	mux.HandleFunc("/api/movies/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"title":"Mai","release_date":"2024-02-10","created_at":"2024-01-01T00:00:00"}`))
	})
	mux.HandleFunc("/api/screens/2", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":2,"cinema_id":1,"row_count":8,"column_count":10,"total_seats":80}`))
	})
	mux.HandleFunc("/api/cinemas", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newTestClient(t, srv.URL, config.APIConfig{})
	ctx := context.Background()

	movies, err := c.ListMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Mai", movies[0].Title)

	movie, err := c.GetMovie(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-10", movie.ReleaseDate.String())

	screen, err := c.GetScreen(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 80, screen.TotalSeats)

	_, err = c.ListCinemas(ctx)
	assert.ErrorIs(t, err, ErrOperationFailed)
	assert.Contains(t, err.Error(), "maintenance")
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestClient(t, srv.URL, config.APIConfig{Breaker: true})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := c.CreateBooking(ctx, sampleBooking())
		require.ErrorIs(t, err, ErrOperationFailed)
	}

	_, err := c.CreateBooking(ctx, sampleBooking())
	assert.ErrorIs(t, err, ErrTransportFailure)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}
