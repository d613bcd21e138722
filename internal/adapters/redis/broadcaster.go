package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"agora/internal/core/realtime"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const channelPrefix = "realtime:"

// BroadcasterRedis رویدادهای بلادرنگ را روی کانال‌های pub/sub ردیس منتشر می‌کند
type BroadcasterRedis struct {
	Client *redis.Client
	Logger *zap.Logger
}

func NewBroadcasterRedis(client *redis.Client, logger *zap.Logger) *BroadcasterRedis {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BroadcasterRedis{
		Client: client,
		Logger: logger,
	}
}

// ChannelFor returns the pub/sub channel subscribers of op listen on.
func ChannelFor(op realtime.Op) string {
	return channelPrefix + string(op)
}

func (b *BroadcasterRedis) Broadcast(ctx context.Context, ev realtime.Event) error {
	if !ev.Op.Valid() {
		return fmt.Errorf("unknown realtime op %q", ev.Op)
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", ev.Op, err)
	}

	channel := ChannelFor(ev.Op)
	receivers, err := b.Client.Publish(ctx, channel, payload).Result()
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", channel, err)
	}
	b.Logger.Debug("📣 Published event", zap.String("channel", channel), zap.Int64("receivers", receivers))
	return nil
}
