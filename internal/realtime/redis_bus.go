package realtime

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"team-hub.backend/pkg/logger"
)

// ChangeChannel is the pub/sub channel all row-change events ride on.
const ChangeChannel = "teamhub.changes"

// RedisBus implements Bus on a Redis pub/sub channel. All server instances
// publishing to the same Redis see each other's changes, so clients
// connected to different instances still converge.
type RedisBus struct {
	client *redis.Client
}

func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

func (b *RedisBus) Publish(ctx context.Context, ev ChangeEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, ChangeChannel, payload).Err()
}

func (b *RedisBus) Subscribe(ctx context.Context) (<-chan ChangeEvent, func(), error) {
	sub := b.client.Subscribe(ctx, ChangeChannel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, err
	}

	out := make(chan ChangeEvent, 64)
	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			var ev ChangeEvent
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				logger.Warn(ctx, "dropping malformed change event", zap.Error(err))
				continue
			}
			select {
			case out <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	cancel := func() { _ = sub.Close() }
	return out, cancel, nil
}
