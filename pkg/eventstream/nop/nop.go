// Package nop provides a publisher that discards events. It is the default
// when no broker is configured.
package nop

import (
	"context"

	"github.com/rashtram/billrag/pkg/eventstream"
)

// Publisher discards every event.
type Publisher struct{}

// NewPublisher creates a discarding publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

func (p *Publisher) PublishDocument(_ context.Context, event *eventstream.DocumentIngestedEvent) error {
	if event == nil {
		return eventstream.ErrNilEvent
	}
	return nil
}

func (p *Publisher) Close() error {
	return nil
}

var _ eventstream.Publisher = (*Publisher)(nil)
