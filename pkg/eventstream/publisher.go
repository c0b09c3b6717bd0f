// Package eventstream defines the interface for publishing ingestion
// lifecycle events to downstream consumers.
package eventstream

import (
	"context"
	"errors"
)

// ErrNilEvent is returned when a nil event is published.
var ErrNilEvent = errors.New("event must not be nil")

// Publisher emits document lifecycle events.
type Publisher interface {
	// PublishDocument emits a DocumentIngested event.
	PublishDocument(ctx context.Context, event *DocumentIngestedEvent) error

	// Close flushes and releases the publisher.
	Close() error
}
