package realtime

import (
	"context"

	"agora/internal/core/realtime"
)

type Broadcaster interface {
	Broadcast(ctx context.Context, ev realtime.Event) error
}
