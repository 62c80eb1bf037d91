package worker

import (
	"context"
	"errors"
	"log/slog"

	"cleanroom/pkg/platform/audit"
)

// Queue is a buffered sink that decouples emitters from the persistence
// sink. Append never blocks: when the buffer is full the event is dropped
// and the caller gets an error to surface as a warning.
type Queue struct {
	ch chan audit.Event
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 1024
	}
	return &Queue{ch: make(chan audit.Event, size)}
}

func (q *Queue) Append(_ context.Context, event audit.Event) error {
	select {
	case q.ch <- event:
		return nil
	default:
		return errors.New("audit queue full, event dropped")
	}
}

// Events exposes the inbox side for a Worker.
func (q *Queue) Events() <-chan audit.Event {
	return q.ch
}

// Worker drains audit events from a channel and persists them. Append
// failures are logged and dropped rather than propagated: the audit trail is
// best-effort and must never stall producers.
type Worker struct {
	sink   audit.Sink
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func New(sink audit.Sink, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	return &Worker{sink: sink, inbox: inbox, logger: logger}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.sink.Append(ctx, event); err != nil {
				w.logger.WarnContext(ctx, "audit append failed",
					"action", event.Action,
					"record_id", event.RecordID,
					"error", err,
				)
			}
		}
	}
}
