// Package events publishes change notifications after a transaction commits.
package events

import (
	"context"
	"strconv"
	"time"
)

// Type names a change notification.
type Type string

const (
	ProductRecomputed     Type = "product.recomputed"
	CartReconciled        Type = "cart.reconciled"
	OrderTotalsRecomputed Type = "order.totals_recomputed"
)

// Event is a single change notification. Key is the id of the aggregate the
// event is about and becomes the message key.
type Event struct {
	Type       Type      `json:"type"`
	Key        string    `json:"key"`
	Payload    any       `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// New builds an event stamped with the current time.
func New(t Type, key string, payload any) Event {
	return Event{Type: t, Key: key, Payload: payload, OccurredAt: time.Now().UTC()}
}

// ID formats a numeric aggregate id as an event key.
func ID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Publisher delivers events to downstream consumers. Publishing happens
// after commit; a failure never undoes committed state.
type Publisher interface {
	Publish(ctx context.Context, events ...Event) error
	Close() error
}

type nopPublisher struct{}

// NewNopPublisher returns a Publisher that discards every event.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, ...Event) error { return nil }
func (nopPublisher) Close() error                            { return nil }
