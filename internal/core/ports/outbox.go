package ports

import (
	"context"
	"time"
)

// OutboxMessage is a serialized domain event waiting to be published.
type OutboxMessage struct {
	ID          string
	EventName   string
	AggregateID string
	Payload     []byte
	OccurredAt  time.Time
	Attempts    int
}

// OutboxRepository gives access to unpublished messages. Messages are
// written by the unit of work on commit, never by application code.
type OutboxRepository interface {
	// FetchPending locks up to limit unsent messages, oldest first. Rows
	// locked by another relay are skipped.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)

	MarkSent(ctx context.Context, ids []string, sentAt time.Time) error

	// MarkFailed increments the attempt counter and stores the last error.
	MarkFailed(ctx context.Context, ids []string, cause error) error
}

// EventPublisher delivers outbox messages to the message broker.
type EventPublisher interface {
	Publish(ctx context.Context, messages []OutboxMessage) error
}
