package notify

import (
	"context"
	"errors"
)

// ErrNoEndpoint is returned when the target advertises no notification endpoint.
var ErrNoEndpoint = errors.New("no notification endpoint discovered")

// LinkNotifier به مالک یک لینک اطلاع می‌دهد که source به target اشاره کرده است
type LinkNotifier interface {
	Notify(ctx context.Context, source, target string) error
}
