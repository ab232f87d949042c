package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/kirinyoku/tix-client/internal/codec"
	"github.com/kirinyoku/tix-client/internal/config"
	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/sony/gobreaker"
)

const (
	bookingsPath = "/api/bookings"
	loginPath    = "/api/auth/login"
	registerPath = "/api/auth/register"
	moviesPath   = "/api/movies"
	cinemasPath  = "/api/cinemas"
	screensPath  = "/api/screens"
	bankInfoPath = "/api/bank-info"
)

// Client talks to the booking backend. It is safe for concurrent use; the only
// mutable state is the user stored by a successful Login.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger

	mu   sync.RWMutex
	user *domain.UserInfo
}

func New(httpClient *http.Client, cfg config.APIConfig, logger *slog.Logger) *Client {
	c := &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    httpClient,
		logger:  logger,
	}

	if cfg.Breaker {
		c.breaker = newBreaker("booking-api")
	}

	return c
}

// CreateBooking posts the booking and accepts 200 or 201. Any other status yields an
// *OperationFailedError carrying the status and raw body.
func (c *Client) CreateBooking(ctx context.Context, booking *domain.Booking) (*domain.BookingResponseDTO, error) {
	const op = "create booking"

	if booking == nil {
		return nil, fmt.Errorf("%s: booking is nil: %w", op, ErrInvalidArgument)
	}

	var out domain.BookingResponseDTO
	decoded, err := c.do(ctx, op, http.MethodPost, bookingsPath, booking, &out, http.StatusOK, http.StatusCreated)
	if err != nil {
		return nil, err
	}

	if !decoded {
		return nil, nil
	}

	return &out, nil
}

// Login stores the returned user on success so later calls carry its token.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.AuthResponse, error) {
	resp, err := c.authenticate(ctx, "login", loginPath, domain.LoginRequest{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	if resp.Success && resp.User != nil {
		c.setUser(resp.User)
	}

	return resp, nil
}

func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	return c.authenticate(ctx, "register", registerPath, req)
}

// CurrentUser returns a copy of the user stored by the last successful Login.
func (c *Client) CurrentUser() (*domain.UserInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.user == nil {
		return nil, false
	}

	u := *c.user
	return &u, true
}

func (c *Client) Logout() {
	c.setUser(nil)
}

func (c *Client) ListMovies(ctx context.Context) ([]domain.MovieDTO, error) {
	var out []domain.MovieDTO
	if _, err := c.do(ctx, "list movies", http.MethodGet, moviesPath, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetMovie(ctx context.Context, id int64) (*domain.MovieDTO, error) {
	var out domain.MovieDTO
	if _, err := c.do(ctx, "get movie", http.MethodGet, moviesPath+"/"+strconv.FormatInt(id, 10), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListCinemas(ctx context.Context) ([]domain.CinemaDTO, error) {
	var out []domain.CinemaDTO
	if _, err := c.do(ctx, "list cinemas", http.MethodGet, cinemasPath, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetScreen(ctx context.Context, id int64) (*domain.ScreenDTO, error) {
	var out domain.ScreenDTO
	if _, err := c.do(ctx, "get screen", http.MethodGet, screensPath+"/"+strconv.FormatInt(id, 10), nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetBankInfo(ctx context.Context) (*domain.BankInfoDTO, error) {
	var out domain.BankInfoDTO
	if _, err := c.do(ctx, "get bank info", http.MethodGet, bankInfoPath, nil, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// authenticate posts credentials. The auth endpoints answer rejections with a non-2xx
// status and an AuthResponse body; that body is returned as a failed AuthResponse so
// the caller shows the server message rather than the raw status line.
func (c *Client) authenticate(ctx context.Context, op, path string, in any) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	_, err := c.do(ctx, op, http.MethodPost, path, in, &out, http.StatusOK, http.StatusCreated)

	var opErr *OperationFailedError
	if errors.As(err, &opErr) && opErr.Status < http.StatusInternalServerError {
		var rejected domain.AuthResponse
		if codec.Unmarshal([]byte(opErr.Body), &rejected) == nil && rejected.Message != "" {
			rejected.Success = false
			rejected.User = nil
			return &rejected, nil
		}
	}

	if err != nil {
		return nil, err
	}

	return &out, nil
}

type rawResponse struct {
	status int
	body   []byte
}

var errServerStatus = errors.New("server error status")

// do sends one request and reports whether a body was decoded into out.
func (c *Client) do(
	ctx context.Context,
	op, method, path string,
	in, out any,
	accepted ...int,
) (bool, error) {
	var body io.Reader
	if in != nil {
		b, err := codec.Marshal(in)
		if err != nil {
			return false, fmt.Errorf("%s: %w: %w", op, ErrInvalidArgument, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return false, fmt.Errorf("%s: %w: %w", op, ErrInvalidArgument, err)
	}

	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if u, ok := c.CurrentUser(); ok && u.Token != "" {
		req.Header.Set("Authorization", "Bearer "+u.Token)
	}

	raw, err := c.execute(req)
	if err != nil {
		c.logger.Warn("api call failed", "op", op, "request_id", reqID, "error", err)
		return false, &TransportError{Op: op, Err: err}
	}

	c.logger.Debug("api call", "op", op, "method", method, "path", path, "status", raw.status, "request_id", reqID)

	if !slices.Contains(accepted, raw.status) {
		return false, &OperationFailedError{Op: op, Status: raw.status, Body: string(raw.body)}
	}

	if out == nil || len(bytes.TrimSpace(raw.body)) == 0 {
		return false, nil
	}

	if err := codec.Unmarshal(raw.body, out); err != nil {
		return false, fmt.Errorf("%s: decode response: %w", op, err)
	}

	return true, nil
}

func (c *Client) execute(req *http.Request) (*rawResponse, error) {
	if c.breaker == nil {
		return c.roundTrip(req)
	}

	res, err := c.breaker.Execute(func() (any, error) {
		raw, err := c.roundTrip(req)
		if err != nil {
			return nil, err
		}
		if raw.status >= http.StatusInternalServerError {
			return raw, errServerStatus
		}
		return raw, nil
	})
	if errors.Is(err, errServerStatus) {
		return res.(*rawResponse), nil
	}
	if err != nil {
		return nil, err
	}

	return res.(*rawResponse), nil
}

func (c *Client) roundTrip(req *http.Request) (*rawResponse, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return &rawResponse{status: resp.StatusCode, body: b}, nil
}

func (c *Client) setUser(u *domain.UserInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if u == nil {
		c.user = nil
		return
	}

	cp := *u
	c.user = &cp
}
