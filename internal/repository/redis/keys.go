package redis

import "fmt"

const ns = "tix:v1"

func KeyMovies() string { return ns + ":catalog:movies" }

func KeyMovie(id int64) string { return fmt.Sprintf("%s:catalog:movie:%d", ns, id) }

func KeyCinemas() string { return ns + ":catalog:cinemas" }

func KeyScreen(id int64) string { return fmt.Sprintf("%s:catalog:screen:%d", ns, id) }

func KeyBankInfo() string { return ns + ":catalog:bank" }

func KeyBookedSeats(showtimeID int64) string {
	return fmt.Sprintf("%s:showtime:%d:booked", ns, showtimeID)
}

func KeyIdemBooking(customerID int64, idemKey string) string {
	return fmt.Sprintf("%s:idem:bookings:%d:%s", ns, customerID, idemKey)
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

func ChannelBookingCreated() string {
	return ns + ":bookings:created"
}
