package httpgin

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kirinyoku/tix-client/internal/codec"
	"github.com/kirinyoku/tix-client/internal/domain"
	redisrepo "github.com/kirinyoku/tix-client/internal/repository/redis"
	"github.com/kirinyoku/tix-client/internal/service"
	"github.com/kirinyoku/tix-client/internal/service/auth"
	"github.com/kirinyoku/tix-client/internal/service/booking"
	"github.com/kirinyoku/tix-client/internal/service/catalog"
)

// NewRouter builds the stub backend. idem may be nil, which disables
// Idempotency-Key handling on bookings.
func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.POST("/auth/login", handleLogin(svcs))
		api.POST("/auth/register", handleRegister(svcs))

		api.GET("/movies", handleListMovies(svcs))
		api.GET("/movies/:id", handleGetMovie(svcs))
		api.GET("/cinemas", handleListCinemas(svcs))
		api.GET("/screens/:id", handleGetScreen(svcs))
		api.GET("/bank-info", handleGetBankInfo(svcs))
		api.GET("/showtimes/:id/booked-seats", handleBookedSeats(svcs))

		api.POST("/bookings", BearerAuth(svcs.Auth), handleCreateBooking(svcs, idem))
	}

	return r
}

func handleLogin(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.LoginRequest
		if err := bindJSON(c, &req); err != nil {
			c.JSON(http.StatusBadRequest, domain.AuthResponse{Message: msgMalformedRequest})
			return
		}

		user, err := svcs.Auth.Login(c.Request.Context(), req, "ip:"+c.ClientIP())
		if err != nil {
			var limited *auth.RateLimitedError
			switch {
			case errors.As(err, &limited):
				c.Header("Retry-After", strconv.Itoa(int(limited.RetryAfter.Round(time.Second).Seconds())))
				c.JSON(http.StatusTooManyRequests, domain.AuthResponse{Message: msgTooManyAttempts})
			case errors.Is(err, auth.ErrInvalidCredentials):
				c.JSON(http.StatusUnauthorized, domain.AuthResponse{Message: msgBadCredentials})
			default:
				respondErr(c, err)
			}
			return
		}

		c.JSON(http.StatusOK, domain.AuthResponse{Success: true, Message: msgLoginOK, User: user})
	}
}

func handleRegister(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.RegisterRequest
		if err := bindJSON(c, &req); err != nil {
			c.JSON(http.StatusBadRequest, domain.AuthResponse{Message: msgMalformedRequest})
			return
		}

		if req.Username == "" || req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, domain.AuthResponse{Message: msgMalformedRequest})
			return
		}

		user, err := svcs.Auth.Register(c.Request.Context(), req)
		if err != nil {
			if errors.Is(err, auth.ErrAccountExists) {
				c.JSON(http.StatusConflict, domain.AuthResponse{Message: msgAccountExists})
				return
			}
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, domain.AuthResponse{Success: true, Message: msgRegisterOK, User: user})
	}
}

func handleListMovies(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		movies, err := svcs.Catalog.ListMovies(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, movies, "public, max-age=60")
	}
}

func handleGetMovie(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		movie, err := svcs.Catalog.GetMovie(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, movie, "public, max-age=60")
	}
}

func handleListCinemas(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		cinemas, err := svcs.Catalog.ListCinemas(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, cinemas, "public, max-age=300")
	}
}

func handleGetScreen(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		screen, err := svcs.Catalog.GetScreen(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, screen, "public, max-age=300")
	}
}

func handleGetBankInfo(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		bank, err := svcs.Catalog.GetBankInfo(c.Request.Context())
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, bank, "public, max-age=600")
	}
}

func handleBookedSeats(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseInt64Param(c, "id")
		if !ok {
			return
		}
		seats, err := svcs.Booking.BookedSeats(c.Request.Context(), id)
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, bookedSeatsResponse{ShowtimeID: id, SeatIDs: seats}, "no-cache")
	}
}

// handleCreateBooking answers 201 with the booking. With an Idempotency-Key a
// repeated request gets the first response back instead of a second booking.
func handleCreateBooking(svcs *service.Services, idem *redisrepo.IdempotencyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req domain.Booking
		if err := bindJSON(c, &req); err != nil {
			badRequest(c, err.Error())
			return
		}

		if uid := c.GetInt64(ctxUserID); uid != 0 {
			if req.CustomerID == 0 {
				req.CustomerID = uid
			} else if req.CustomerID != uid {
				c.JSON(http.StatusForbidden, ErrorResponse{Error: "customerId does not match token"})
				return
			}
		}

		ctx := c.Request.Context()
		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))

		var storageKey string
		if idem != nil && idemKey != "" {
			storageKey = redisrepo.KeyIdemBooking(req.CustomerID, idemKey)

			if replayed := replayIdempotent(c, idem, storageKey, idemKey); replayed {
				return
			}

			locked, err := idem.AcquireLock(ctx, storageKey, 60*time.Second)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if replayed := replayIdempotent(c, idem, storageKey, idemKey); replayed {
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(http.StatusConflict, ErrorResponse{Error: "idempotency key in progress"})
				return
			}
		}

		resp, err := svcs.Booking.Create(ctx, req)
		if err != nil {
			if storageKey != "" {
				_ = idem.Release(context.WithoutCancel(ctx), storageKey)
			}
			respondErr(c, err)
			return
		}

		b, err := codec.Marshal(resp)
		if err != nil {
			respondErr(c, err)
			return
		}

		if storageKey != "" {
			_ = idem.SaveResult(context.WithoutCancel(ctx), storageKey, b)
			c.Header("Idempotency-Key", idemKey)
		}

		c.Data(http.StatusCreated, "application/json; charset=utf-8", b)
	}
}

func replayIdempotent(c *gin.Context, idem *redisrepo.IdempotencyStore, storageKey, idemKey string) bool {
	payload, ok, _ := idem.GetResult(c.Request.Context(), storageKey)
	if !ok {
		return false
	}

	c.Header("Idempotency-Key", idemKey)
	c.Data(http.StatusCreated, "application/json; charset=utf-8", payload)
	return true
}

// --- Helpers ---

// bindJSON decodes the body with the shared codec so LocalDateTime and money
// fields parse the same way the client writes them.
func bindJSON(c *gin.Context, v any) error {
	return codec.Decode(c.Request.Body, v)
}

func parseInt64Param(c *gin.Context, name string) (int64, bool) {
	v, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	switch {
	// catalog service
	case errors.Is(err, catalog.ErrMovieNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "movie not found"})
	case errors.Is(err, catalog.ErrScreenNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "screen not found"})
	// booking service
	case errors.Is(err, booking.ErrShowtimeNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "showtime not found"})
	case errors.Is(err, booking.ErrSeatsUnavailable):
		var unavailable *booking.SeatsUnavailableError
		if errors.As(err, &unavailable) {
			c.JSON(http.StatusConflict, ErrorResponse{Error: unavailable.Error()})
			return
		}
		c.JSON(http.StatusConflict, ErrorResponse{Error: "seats unavailable"})
	case errors.Is(err, booking.ErrNoSeats),
		errors.Is(err, booking.ErrInvalidSeat),
		errors.Is(err, booking.ErrShowtimeMismatch):
		badRequest(c, err.Error())
	case errors.Is(err, booking.ErrTotalMismatch):
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
