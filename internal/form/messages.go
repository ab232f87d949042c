package form

const (
	msgLoginRequired    = "Vui lòng nhập email và mật khẩu"
	msgRegisterRequired = "Vui lòng điền đầy đủ thông tin"
	msgInvalidEmail     = "Email không hợp lệ"
	msgUsernameTooShort = "Tên đăng nhập phải có ít nhất 4 ký tự"
	msgPasswordTooShort = "Mật khẩu phải có ít nhất 6 ký tự"
	msgPasswordMismatch = "Mật khẩu xác nhận không khớp"
	msgNoSeats          = "Vui lòng chọn ít nhất một ghế"

	msgConnecting = "Đang kết nối..."

	labelLoggingIn   = "Đang đăng nhập..."
	labelRegistering = "Đang đăng ký..."
	labelBooking     = "Đang đặt vé..."

	msgLoginSuccess    = "Đăng nhập thành công!"
	msgRegisterSuccess = "Đăng ký thành công! Đang chuyển đến trang đăng nhập..."
	msgBookingSuccess  = "Đặt vé thành công!"
	msgNavigation      = "Không thể mở màn hình"

	deadlineLayout = "15:04 02/01/2006"
)
