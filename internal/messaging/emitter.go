package messaging

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Emitter fans one event out to the notification publisher and the audit
// sink. Delivery is best-effort: a transition that already committed must not
// be rolled back because a notification failed, so errors are logged and
// swallowed.
type Emitter struct {
	publisher Publisher
	sink      Sink
}

func NewEmitter(publisher Publisher, sink Sink) *Emitter {
	return &Emitter{publisher: publisher, sink: sink}
}

// Emit publishes a lifecycle event. data must be JSON-marshalable.
func (e *Emitter) Emit(ctx context.Context, kind, key, actor string, data any) {
	payload, err := json.Marshal(data)
	if err != nil {
		slog.ErrorContext(ctx, "marshal event payload", "kind", kind, "key", key, "error", err)
		return
	}

	env := Envelope{
		EventID:    uuid.New().String(),
		Key:        key,
		Kind:       kind,
		Actor:      actor,
		OccurredAt: time.Now().UTC(),
		Data:       payload,
	}

	if e.publisher != nil {
		if err := e.publisher.Publish(ctx, env); err != nil {
			slog.ErrorContext(ctx, "publish event", "kind", kind, "key", key, "error", err)
		}
	}
	if e.sink != nil {
		if err := e.sink.Index(ctx, env); err != nil {
			slog.ErrorContext(ctx, "index event", "kind", kind, "key", key, "error", err)
		}
	}
}
