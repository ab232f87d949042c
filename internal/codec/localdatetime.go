package codec

import (
	"fmt"
	"time"
)

// LocalDateTime is a calendar date and wall-clock time without a zone or offset.
// On the wire it is an ISO-8601 local date-time such as "2025-03-01T19:30:00".
type LocalDateTime struct {
	t time.Time
}

const (
	localDateTimeLayout = "2006-01-02T15:04:05.999999999"
	localMinuteLayout   = "2006-01-02T15:04"
)

func NewLocalDateTime(year int, month time.Month, day, hour, min, sec, nsec int) LocalDateTime {
	return LocalDateTime{t: time.Date(year, month, day, hour, min, sec, nsec, time.UTC)}
}

// LocalDateTimeOf keeps the wall clock of t and drops its location.
func LocalDateTimeOf(t time.Time) LocalDateTime {
	return NewLocalDateTime(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond())
}

// ParseLocalDateTime accepts "yyyy-MM-ddTHH:mm", "yyyy-MM-ddTHH:mm:ss" and an optional
// fraction of up to nine digits.
func ParseLocalDateTime(s string) (LocalDateTime, error) {
	const op = "codec.ParseLocalDateTime"

	t, err := time.ParseInLocation(localDateTimeLayout, s, time.UTC)
	if err == nil {
		return LocalDateTime{t: t}, nil
	}

	if t, err2 := time.ParseInLocation(localMinuteLayout, s, time.UTC); err2 == nil {
		return LocalDateTime{t: t}, nil
	}

	return LocalDateTime{}, fmt.Errorf("%s: %q: %w", op, s, err)
}

// String formats seconds always and the fraction only when it is non-zero.
func (d LocalDateTime) String() string {
	return d.t.Format(localDateTimeLayout)
}

func (d LocalDateTime) IsZero() bool { return d.t.IsZero() }

func (d LocalDateTime) Equal(o LocalDateTime) bool { return d.t.Equal(o.t) }

func (d LocalDateTime) Before(o LocalDateTime) bool { return d.t.Before(o.t) }

func (d LocalDateTime) After(o LocalDateTime) bool { return d.t.After(o.t) }

// In interprets the wall clock in loc.
func (d LocalDateTime) In(loc *time.Location) time.Time {
	return time.Date(d.t.Year(), d.t.Month(), d.t.Day(), d.t.Hour(), d.t.Minute(), d.t.Second(), d.t.Nanosecond(), loc)
}

func (d LocalDateTime) Add(dur time.Duration) LocalDateTime {
	return LocalDateTime{t: d.t.Add(dur)}
}

func (d LocalDateTime) MarshalText() ([]byte, error) {
	if y := d.t.Year(); y < 1 || y > 9999 {
		return nil, fmt.Errorf("codec.LocalDateTime: year %d outside [1,9999]", y)
	}

	return []byte(d.String()), nil
}

func (d *LocalDateTime) UnmarshalText(b []byte) error {
	v, err := ParseLocalDateTime(string(b))
	if err != nil {
		return err
	}

	*d = v
	return nil
}

// LocalDate is a calendar date without a zone, encoded as "2006-01-02".
type LocalDate struct {
	t time.Time
}

const localDateLayout = "2006-01-02"

func NewLocalDate(year int, month time.Month, day int) LocalDate {
	return LocalDate{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseLocalDate(s string) (LocalDate, error) {
	t, err := time.ParseInLocation(localDateLayout, s, time.UTC)
	if err != nil {
		return LocalDate{}, fmt.Errorf("codec.ParseLocalDate: %q: %w", s, err)
	}

	return LocalDate{t: t}, nil
}

func (d LocalDate) String() string { return d.t.Format(localDateLayout) }

func (d LocalDate) Year() int { return d.t.Year() }

func (d LocalDate) Equal(o LocalDate) bool { return d.t.Equal(o.t) }

func (d LocalDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *LocalDate) UnmarshalText(b []byte) error {
	v, err := ParseLocalDate(string(b))
	if err != nil {
		return err
	}

	*d = v
	return nil
}
