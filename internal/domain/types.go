package domain

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type SeatSelection struct {
	SeatID int64           `json:"seatId"`
	Label  string          `json:"seatLabel"`
	Price  decimal.Decimal `json:"price"`
}

type ComboSelection struct {
	ComboID   int64           `json:"comboId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
}

func (c ComboSelection) Subtotal() decimal.Decimal {
	return c.UnitPrice.Mul(decimal.NewFromInt(int64(c.Quantity)))
}

// Booking is the request body of POST /api/bookings.
type Booking struct {
	CustomerID      int64            `json:"customerId"`
	MovieID         int64            `json:"movieId"`
	CinemaID        int64            `json:"cinemaId"`
	ScreenID        int64            `json:"screenId"`
	ShowtimeID      int64            `json:"showtimeId"`
	Seats           []SeatSelection  `json:"seats"`
	Combos          []ComboSelection `json:"combos"`
	SeatTotalPrice  decimal.Decimal  `json:"seatTotalPrice"`
	ComboTotalPrice decimal.Decimal  `json:"comboTotalPrice"`
	TotalPrice      decimal.Decimal  `json:"totalPrice"`
}

// ComputeTotals fills the three price fields from the selections.
func (b *Booking) ComputeTotals() {
	b.SeatTotalPrice = lo.Reduce(b.Seats, func(acc decimal.Decimal, s SeatSelection, _ int) decimal.Decimal {
		return acc.Add(s.Price)
	}, decimal.Zero)

	b.ComboTotalPrice = lo.Reduce(b.Combos, func(acc decimal.Decimal, c ComboSelection, _ int) decimal.Decimal {
		return acc.Add(c.Subtotal())
	}, decimal.Zero)

	b.TotalPrice = b.SeatTotalPrice.Add(b.ComboTotalPrice)
}

func (b *Booking) SeatIDs() []int64 {
	return lo.Map(b.Seats, func(s SeatSelection, _ int) int64 { return s.SeatID })
}

type UserInfo struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phoneNumber"`
	Role     Role   `json:"role"`
	Token    string `json:"token,omitempty"`
}

// AuthResponse is the wire shape of the login and register endpoints.
// User is only meaningful when Success is true, Message only when it is false.
type AuthResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	User    *UserInfo `json:"user,omitempty"`
}

// Result collapses the response into either the user or an *AuthRejectedError
// carrying the server message verbatim.
func (r AuthResponse) Result() (*UserInfo, error) {
	if !r.Success {
		return nil, &AuthRejectedError{Message: r.Message}
	}

	if r.User == nil {
		return nil, &AuthRejectedError{Message: r.Message}
	}

	return r.User, nil
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phoneNumber"`
	Password string `json:"password"`
}
