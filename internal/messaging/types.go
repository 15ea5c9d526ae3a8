// Package messaging defines the envelope and ports for outbound lifecycle
// events: Kafka for notification fan-out, the sink for the searchable audit
// trail.
package messaging

import (
	"context"
	"encoding/json"
	"time"
)

// Envelope wraps one lifecycle event.
type Envelope struct {
	EventID    string          `json:"event_id"`
	Key        string          `json:"key"`  // partition key, usually the order or listing id
	Kind       string          `json:"kind"` // e.g. "order.confirmed", "dispute.escalated"
	Actor      string          `json:"actor"`
	OccurredAt time.Time       `json:"occurred_at"`
	Data       json.RawMessage `json:"data,omitempty"`
}

// Publisher delivers envelopes to the notification pipeline.
type Publisher interface {
	Publish(ctx context.Context, env Envelope) error
	Close() error
}

// Sink indexes envelopes into the audit/search store.
type Sink interface {
	Index(ctx context.Context, env Envelope) error
}

// SystemActor marks deadline-driven transitions applied by the sweep rather
// than a user.
const SystemActor = "system"
