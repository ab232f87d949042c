package domain

import (
	"net/url"
	"strings"

	"github.com/kirinyoku/tix-client/internal/codec"
	"github.com/shopspring/decimal"
)

type BankInfoDTO struct {
	BankName      string `json:"bank_name"`
	AccountHolder string `json:"bank_account_holder"`
	AccountNumber string `json:"bank_account_number"`
	Branch        string `json:"bank_branch"`
	QRTemplate    string `json:"bank_qr_template"`
}

// QRURL expands the {amount} and {content} placeholders of the QR template.
func (b BankInfoDTO) QRURL(amount decimal.Decimal, transferContent string) string {
	r := strings.NewReplacer(
		"{amount}", amount.StringFixed(0),
		"{content}", url.QueryEscape(transferContent),
		"{account}", b.AccountNumber,
	)
	return r.Replace(b.QRTemplate)
}

type CinemaDTO struct {
	ID        int64               `json:"id"`
	Name      string              `json:"name"`
	Address   string              `json:"address"`
	City      string              `json:"city"`
	LogoURL   string              `json:"logo_url"`
	CreatedAt codec.LocalDateTime `json:"created_at"`
}

type CustomerDTO struct {
	ID          int64  `json:"id"`
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
}

type MovieDTO struct {
	ID                   int64               `json:"id"`
	Title                string              `json:"title"`
	Description          string              `json:"description"`
	Duration             int                 `json:"duration"`
	PosterURL            string              `json:"poster_url"`
	ReleaseDate          codec.LocalDate     `json:"release_date"`
	Language             string              `json:"language"`
	AgeRating            string              `json:"age_rating"`
	AgeRatingDescription string              `json:"age_rating_description"`
	AverageRating        float64             `json:"average_rating"`
	TotalRatings         int                 `json:"total_ratings"`
	TrailerURL           string              `json:"trailer_url"`
	FiveStar             int                 `json:"five_star"`
	FourStar             int                 `json:"four_star"`
	ThreeStar            int                 `json:"three_star"`
	TwoStar              int                 `json:"two_star"`
	OneStar              int                 `json:"one_star"`
	CreatedAt            codec.LocalDateTime `json:"created_at"`
}

// StarShare returns the fraction of ratings with the given number of stars (1..5).
func (m MovieDTO) StarShare(stars int) float64 {
	if m.TotalRatings == 0 {
		return 0
	}

	var n int
	switch stars {
	case 5:
		n = m.FiveStar
	case 4:
		n = m.FourStar
	case 3:
		n = m.ThreeStar
	case 2:
		n = m.TwoStar
	case 1:
		n = m.OneStar
	}

	return float64(n) / float64(m.TotalRatings)
}

type ScreenDTO struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	CinemaID      int64  `json:"cinema_id"`
	RowCount      int    `json:"row_count"`
	ColumnCount   int    `json:"column_count"`
	TotalSeats    int    `json:"total_seats"`
	CinemaName    string `json:"cinema_name"`
	CinemaAddress string `json:"cinema_address"`
	CinemaCity    string `json:"cinema_city"`
	CinemaLogoURL string `json:"cinema_logo_url"`
}

type BookingResponseDTO struct {
	BookingID       int64               `json:"bookingId"`
	TransferContent string              `json:"transferContent"`
	PaymentDeadline codec.LocalDateTime `json:"paymentDeadline"`
	MovieID         int64               `json:"movieId"`
	CinemaID        int64               `json:"cinemaId"`
	ScreenID        int64               `json:"screenId"`
	ShowtimeID      int64               `json:"showtimeId"`
	CustomerID      int64               `json:"customerId"`
	SeatTotalPrice  decimal.Decimal     `json:"seatTotalPrice"`
	ComboTotalPrice decimal.Decimal     `json:"comboTotalPrice"`
	TotalPrice      decimal.Decimal     `json:"totalPrice"`
}

type ShowtimeDTO struct {
	ID        int64               `json:"id"`
	MovieID   int64               `json:"movie_id"`
	ScreenID  int64               `json:"screen_id"`
	StartTime codec.LocalDateTime `json:"start_time"`
}
