package events

import (
	"context"

	"github.com/kintai-hq/kintai-backend-go/internal/domain/event"
)

// NoopBus discards all events. Used when no broker is configured and in
// tests.
type NoopBus struct{}

func NewNoopBus() NoopBus {
	return NoopBus{}
}

func (NoopBus) Publish(ctx context.Context, ev event.Event) {}
