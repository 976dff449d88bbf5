package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/google/uuid"
	redis "github.com/go-redis/redis/v8"
)

const redisChannel = "tripmate:changes"

// Bridge replicates change events across instances through redis pub/sub.
// Local events are published to a shared channel; remote events are injected
// into the local hub. Events carry the originating instance ID so a bridge
// never re-delivers its own.
type Bridge struct {
	hub    *Hub
	rdb    *redis.Client
	origin string
}

// NewBridge connects a hub to redis at the given address
func NewBridge(hub *Hub, addr string) *Bridge {
	return &Bridge{
		hub: hub,
		rdb: redis.NewClient(&redis.Options{
			Addr: addr,
		}),
		origin: uuid.NewString(),
	}
}

// Publish delivers the event locally and replicates it to other instances
func (b *Bridge) Publish(e Event) {
	e.Origin = b.origin
	b.hub.Publish(e)

	payload, err := json.Marshal(e)
	if err != nil {
		slog.Error("failed to encode change event", "error", err)
		return
	}
	if err := b.rdb.Publish(context.Background(), redisChannel, payload).Err(); err != nil {
		slog.Error("failed to publish change event to redis", "error", err)
	}
}

// Run relays remote events into the local hub until ctx is cancelled
func (b *Bridge) Run(ctx context.Context) {
	sub := b.rdb.Subscribe(ctx, redisChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var e Event
			if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
				slog.Error("failed to decode change event from redis", "error", err)
				continue
			}
			if e.Origin == b.origin {
				continue
			}
			b.hub.Publish(e)
		}
	}
}

// Close releases the redis connection
func (b *Bridge) Close() error {
	return b.rdb.Close()
}
