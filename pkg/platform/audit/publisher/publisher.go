package publisher

import (
	"context"
	"time"

	"github.com/google/uuid"

	"cleanroom/pkg/platform/audit"
)

// Publisher stamps events and appends them to a sink. It is the single
// entry point domain code uses to emit audit events, so tests can swap the
// sink without touching emitters.
type Publisher struct {
	sink audit.Sink
}

func New(sink audit.Sink) *Publisher {
	return &Publisher{sink: sink}
}

// Emit fills in the event ID and timestamp when absent, then appends.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	return p.sink.Append(ctx, event)
}
