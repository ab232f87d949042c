package httpgin

type ErrorResponse struct {
	Error string `json:"error"`
}

const (
	msgLoginOK          = "Đăng nhập thành công"
	msgRegisterOK       = "Đăng ký thành công"
	msgBadCredentials   = "Email hoặc mật khẩu không đúng"
	msgAccountExists    = "Email hoặc tên đăng nhập đã được sử dụng"
	msgTooManyAttempts  = "Bạn đã thử quá nhiều lần, vui lòng thử lại sau"
	msgMalformedRequest = "Dữ liệu không hợp lệ"
)

type bookedSeatsResponse struct {
	ShowtimeID int64   `json:"showtimeId"`
	SeatIDs    []int64 `json:"seatIds"`
}
