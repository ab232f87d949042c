package booking

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrNoSeats          = errors.New("no seats selected")
	ErrShowtimeNotFound = errors.New("showtime not found")
	ErrShowtimeMismatch = errors.New("booking does not match showtime")
	ErrInvalidSeat      = errors.New("seat does not exist on this screen")
	ErrSeatsUnavailable = errors.New("some seats are unavailable")
	ErrTotalMismatch    = errors.New("totals do not match selection")
)

type SeatsUnavailableError struct {
	SeatIDs []int64
}

func (e *SeatsUnavailableError) Error() string {
	return fmt.Sprintf("seats already booked: %v", e.SeatIDs)
}

func (e *SeatsUnavailableError) Is(target error) bool {
	return target == ErrSeatsUnavailable
}

type TotalMismatchError struct {
	Field    string
	Sent     decimal.Decimal
	Computed decimal.Decimal
}

func (e *TotalMismatchError) Error() string {
	return fmt.Sprintf("%s is %s, expected %s", e.Field, e.Sent, e.Computed)
}

func (e *TotalMismatchError) Is(target error) bool {
	return target == ErrTotalMismatch
}
