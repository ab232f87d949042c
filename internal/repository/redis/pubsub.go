package redis

import (
	"context"
	"time"

	"github.com/kirinyoku/tix-client/internal/codec"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

// BookingCreated is published after a booking commits.
type BookingCreated struct {
	BookingID  int64           `json:"booking_id"`
	ShowtimeID int64           `json:"showtime_id"`
	SeatIDs    []int64         `json:"seat_ids"`
	TotalPrice decimal.Decimal `json:"total_price"`
	TsUnix     int64           `json:"ts_unix"`
}

type BookingEvents struct {
	rdb     *redis.Client
	channel string
}

func NewBookingEvents(rdb *redis.Client) *BookingEvents {
	return &BookingEvents{
		rdb:     rdb,
		channel: ChannelBookingCreated(),
	}
}

func (p *BookingEvents) PublishBookingCreated(ctx context.Context, ev BookingCreated) error {
	if ev.TsUnix == 0 {
		ev.TsUnix = time.Now().Unix()
	}

	b, err := codec.Marshal(ev)
	if err != nil {
		return err
	}

	return p.rdb.Publish(ctx, p.channel, b).Err()
}

// Subscribe calls handler for every well-formed event until ctx is done.
func (p *BookingEvents) Subscribe(ctx context.Context, handler func(ctx context.Context, ev BookingCreated)) error {
	sub := p.rdb.Subscribe(ctx, p.channel)
	defer sub.Close()

	ch := sub.Channel(redis.WithChannelSize(256))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return nil
			}
			var ev BookingCreated
			if err := codec.Unmarshal([]byte(m.Payload), &ev); err == nil && ev.BookingID != 0 {
				handler(ctx, ev)
			}
		}
	}
}
