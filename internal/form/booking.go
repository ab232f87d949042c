package form

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kirinyoku/tix-client/internal/api"
	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/kirinyoku/tix-client/internal/navigation"
	"github.com/kirinyoku/tix-client/internal/ui"
)

// BookingController confirms a seat selection and, once the server accepts it,
// opens the payment screen with the transfer details.
type BookingController struct {
	loop     *ui.Loop
	bookings api.BookingAPI
	nav      navigation.Navigator
	logger   *slog.Logger
	sub      submission
	last     *domain.BookingResponseDTO
}

func NewBookingController(loop *ui.Loop, bookings api.BookingAPI, nav navigation.Navigator, view View, logger *slog.Logger) *BookingController {
	return &BookingController{
		loop:     loop,
		bookings: bookings,
		nav:      nav,
		logger:   logger.With("form", "booking"),
		sub:      newSubmission(view, labelBooking),
	}
}

// Submit must be called on the loop. Totals are recomputed from the selection
// before the request leaves.
func (c *BookingController) Submit(ctx context.Context, booking *domain.Booking) <-chan struct{} {
	if booking == nil || len(booking.Seats) == 0 {
		c.sub.invalid(&ValidationError{Field: "seats", Message: msgNoSeats})
		return closed()
	}

	req := *booking
	req.ComputeTotals()
	c.sub.begin()

	return ui.Submit(ctx, c.loop,
		func(ctx context.Context) (*domain.BookingResponseDTO, error) {
			return c.bookings.CreateBooking(ctx, &req)
		},
		func(resp *domain.BookingResponseDTO) {
			c.last = resp
			c.logger.Info("booking created", "seats", req.SeatIDs(), "total", req.TotalPrice.String())
			c.sub.succeed(bookingMessage(resp))
			c.sub.navigate(c.nav, navigation.CustomerPayment, c.logger)
		},
		func(err error) {
			c.logger.Warn("booking failed", "error", err)
			c.sub.fail(err.Error())
		},
	)
}

func (c *BookingController) State() State { return c.sub.state }

// Last is the most recent accepted booking, nil if none or if the server sent no body.
func (c *BookingController) Last() *domain.BookingResponseDTO { return c.last }

func bookingMessage(resp *domain.BookingResponseDTO) string {
	if resp == nil {
		return msgBookingSuccess
	}

	msg := fmt.Sprintf("%s Nội dung chuyển khoản: %s.", msgBookingSuccess, resp.TransferContent)
	if !resp.PaymentDeadline.IsZero() {
		msg += fmt.Sprintf(" Hạn thanh toán: %s.", resp.PaymentDeadline.In(time.UTC).Format(deadlineLayout))
	}

	return msg
}
