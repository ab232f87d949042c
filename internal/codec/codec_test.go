package codec

import (
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDateTime_Format(t *testing.T) {
	cases := []struct {
		name string
		in   LocalDateTime
		want string
	}{
		{name: "whole seconds", in: NewLocalDateTime(2025, time.March, 1, 19, 30, 0, 0), want: "2025-03-01T19:30:00"},
		{name: "millis", in: NewLocalDateTime(2025, time.March, 1, 19, 30, 5, 120_000_000), want: "2025-03-01T19:30:05.12"},
		{name: "nanos", in: NewLocalDateTime(1999, time.December, 31, 23, 59, 59, 1), want: "1999-12-31T23:59:59.000000001"},
		{name: "year one", in: NewLocalDateTime(1, time.January, 1, 0, 0, 0, 0), want: "0001-01-01T00:00:00"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.in.String())
		})
	}
}

func TestParseLocalDateTime(t *testing.T) {
	cases := []struct {
		in      string
		want    LocalDateTime
		wantErr bool
	}{
		{in: "2025-03-01T19:30", want: NewLocalDateTime(2025, time.March, 1, 19, 30, 0, 0)},
		{in: "2025-03-01T19:30:15", want: NewLocalDateTime(2025, time.March, 1, 19, 30, 15, 0)},
		{in: "2025-03-01T19:30:15.500", want: NewLocalDateTime(2025, time.March, 1, 19, 30, 15, 500_000_000)},
		{in: "2025-03-01 19:30:15", wantErr: true},
		{in: "2025-03-01T19:30:15Z", wantErr: true},
		{in: "2025-03-01T19:30:15+07:00", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseLocalDateTime(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s got %s", tc.want, got)
		})
	}
}

func TestLocalDateTime_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 2000; i++ {
		x := NewLocalDateTime(
			rng.Intn(9999)+1,
			time.Month(rng.Intn(12)+1),
			rng.Intn(28)+1,
			rng.Intn(24),
			rng.Intn(60),
			rng.Intn(60),
			rng.Intn(1_000_000_000),
		)

		b, err := x.MarshalText()
		require.NoError(t, err)

		var y LocalDateTime
		require.NoError(t, y.UnmarshalText(b))
		require.Equal(t, x, y, "round trip of %s", b)
	}
}

func TestLocalDateTime_RejectsOutOfRangeYear(t *testing.T) {
	for _, year := range []int{0, -1, 10000} {
		_, err := NewLocalDateTime(year, time.January, 1, 0, 0, 0, 0).MarshalText()
		assert.Error(t, err, "year %d", year)
	}

	_, err := NewLocalDateTime(1, time.January, 1, 0, 0, 0, 0).MarshalText()
	assert.NoError(t, err)
}

func TestLocalDateTimeOf_DropsLocation(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)
	src := time.Date(2025, time.May, 4, 21, 15, 0, 0, loc)

	got := LocalDateTimeOf(src)

	assert.Equal(t, "2025-05-04T21:15:00", got.String())
	assert.True(t, src.Equal(got.In(loc)))
}

type deadlineDoc struct {
	Deadline LocalDateTime   `json:"paymentDeadline"`
	Total    decimal.Decimal `json:"totalPrice"`
	Note     string
}

func TestMarshal_WireShape(t *testing.T) {
	doc := deadlineDoc{
		Deadline: NewLocalDateTime(2025, time.March, 1, 19, 45, 0, 0),
		Total:    decimal.RequireFromString("185000.50"),
		Note:     "n",
	}

	b, err := Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"paymentDeadline":"2025-03-01T19:45:00","totalPrice":185000.5,"Note":"n"}`, string(b))

	var back deadlineDoc
	require.NoError(t, Unmarshal(b, &back))
	assert.True(t, doc.Deadline.Equal(back.Deadline))
	assert.True(t, doc.Total.Equal(back.Total))
	assert.Equal(t, "n", back.Note)
}

func TestUnmarshal_BadDate(t *testing.T) {
	var doc deadlineDoc
	err := Unmarshal([]byte(`{"paymentDeadline":"yesterday"}`), &doc)
	assert.ErrorContains(t, err, "codec.Unmarshal")
}
