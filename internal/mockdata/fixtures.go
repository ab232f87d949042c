// Package mockdata holds a small fixed catalog and test doubles for the API interfaces.
// The stub backend seeds itself from the same fixtures.
package mockdata

import (
	"strconv"
	"time"

	"github.com/kirinyoku/tix-client/internal/codec"
	"github.com/kirinyoku/tix-client/internal/domain"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

var created = codec.NewLocalDateTime(2024, time.January, 1, 9, 0, 0, 0)

func Movies() []domain.MovieDTO {
	return []domain.MovieDTO{
		{
			ID:                   1,
			Title:                "Mai",
			Description:          "Câu chuyện về Mai, một người phụ nữ làm nghề massage và những biến cố trong cuộc đời cô.",
			Duration:             131,
			PosterURL:            "https://cdn.tix.local/posters/mai.jpg",
			ReleaseDate:          codec.NewLocalDate(2024, time.February, 10),
			Language:             "Tiếng Việt",
			AgeRating:            "T18",
			AgeRatingDescription: "Phim dành cho khán giả từ đủ 18 tuổi trở lên",
			AverageRating:        4.3,
			TotalRatings:         200,
			TrailerURL:           "https://cdn.tix.local/trailers/mai.mp4",
			FiveStar:             120,
			FourStar:             40,
			ThreeStar:            20,
			TwoStar:              12,
			OneStar:              8,
			CreatedAt:            created,
		},
		{
			ID:                   2,
			Title:                "Lật Mặt 7: Một Điều Ước",
			Description:          "Bà Hai và năm người con, mỗi người một hoàn cảnh.",
			Duration:             138,
			PosterURL:            "https://cdn.tix.local/posters/lat-mat-7.jpg",
			ReleaseDate:          codec.NewLocalDate(2024, time.April, 26),
			Language:             "Tiếng Việt",
			AgeRating:            "K",
			AgeRatingDescription: "Phim dành cho khán giả dưới 13 tuổi với điều kiện xem cùng cha, mẹ",
			AverageRating:        4.6,
			TotalRatings:         150,
			TrailerURL:           "https://cdn.tix.local/trailers/lat-mat-7.mp4",
			FiveStar:             110,
			FourStar:             25,
			ThreeStar:            10,
			TwoStar:              3,
			OneStar:              2,
			CreatedAt:            created,
		},
		{
			ID:                   3,
			Title:                "Dune: Part Two",
			Description:          "Paul Atreides hợp lực cùng Chani và người Fremen.",
			Duration:             166,
			PosterURL:            "https://cdn.tix.local/posters/dune-2.jpg",
			ReleaseDate:          codec.NewLocalDate(2024, time.March, 1),
			Language:             "Tiếng Anh - Phụ đề Tiếng Việt",
			AgeRating:            "T13",
			AgeRatingDescription: "Phim dành cho khán giả từ đủ 13 tuổi trở lên",
			CreatedAt:            created,
		},
	}
}

func Cinemas() []domain.CinemaDTO {
	return []domain.CinemaDTO{
		{ID: 1, Name: "Tix Landmark", Address: "720A Điện Biên Phủ, Bình Thạnh", City: "Hồ Chí Minh", LogoURL: "https://cdn.tix.local/logos/landmark.png", CreatedAt: created},
		{ID: 2, Name: "Tix Hà Đông", Address: "10 Trần Phú, Hà Đông", City: "Hà Nội", LogoURL: "https://cdn.tix.local/logos/ha-dong.png", CreatedAt: created},
	}
}

func Screens() []domain.ScreenDTO {
	cinemas := lo.KeyBy(Cinemas(), func(c domain.CinemaDTO) int64 { return c.ID })

	screens := []domain.ScreenDTO{
		{ID: 1, Name: "Phòng 1", CinemaID: 1, RowCount: 8, ColumnCount: 10},
		{ID: 2, Name: "Phòng 2 - IMAX", CinemaID: 1, RowCount: 10, ColumnCount: 14},
		{ID: 3, Name: "Phòng 1", CinemaID: 2, RowCount: 6, ColumnCount: 8},
	}

	for i := range screens {
		s := &screens[i]
		c := cinemas[s.CinemaID]
		s.TotalSeats = s.RowCount * s.ColumnCount
		s.CinemaName = c.Name
		s.CinemaAddress = c.Address
		s.CinemaCity = c.City
		s.CinemaLogoURL = c.LogoURL
	}

	return screens
}

func BankInfo() domain.BankInfoDTO {
	return domain.BankInfoDTO{
		BankName:      "Vietcombank",
		AccountHolder: "CONG TY TIX",
		AccountNumber: "0071000123456",
		Branch:        "Chi nhánh Tân Định",
		QRTemplate:    "https://img.vietqr.io/image/VCB-{account}-compact.png?amount={amount}&addInfo={content}",
	}
}

// SeatPrice is the flat price the fixtures charge for any seat.
var SeatPrice = decimal.NewFromInt(85000)

// SeatLabel names the seat at row/col (both zero based), e.g. "C1" for row 2, col 0.
func SeatLabel(row, col int) string {
	return string(rune('A'+row)) + strconv.Itoa(col+1)
}

// SeatID numbers seats row-major within a screen.
func SeatID(screen domain.ScreenDTO, row, col int) int64 {
	return screen.ID*1000 + int64(row*screen.ColumnCount+col) + 1
}

func Showtimes() []domain.ShowtimeDTO {
	return []domain.ShowtimeDTO{
		{ID: 11, MovieID: 1, ScreenID: 1, StartTime: codec.NewLocalDateTime(2025, time.March, 1, 19, 30, 0, 0)},
		{ID: 12, MovieID: 1, ScreenID: 2, StartTime: codec.NewLocalDateTime(2025, time.March, 1, 21, 0, 0, 0)},
		{ID: 21, MovieID: 2, ScreenID: 3, StartTime: codec.NewLocalDateTime(2025, time.March, 2, 18, 15, 0, 0)},
		{ID: 31, MovieID: 3, ScreenID: 2, StartTime: codec.NewLocalDateTime(2025, time.March, 2, 20, 0, 0, 0)},
	}
}

// Account is a seeded login for the stub backend.
type Account struct {
	User     domain.UserInfo
	Password string
}

func Accounts() []Account {
	return []Account{
		{
			User:     domain.UserInfo{Username: "admin", FullName: "Quản trị viên", Email: "admin@tix.vn", Phone: "0900000001", Role: domain.RoleAdmin},
			Password: "admin123",
		},
		{
			User:     domain.UserInfo{Username: "manager", FullName: "Trần Thị Bình", Email: "manager@tix.vn", Phone: "0900000002", Role: domain.RoleCinemaManager},
			Password: "manager123",
		},
		{
			User:     domain.UserInfo{Username: "anhnguyen", FullName: "Nguyễn Văn An", Email: "an@tix.vn", Phone: "0901234567", Role: domain.RoleCustomer},
			Password: "customer123",
		},
	}
}
