package commands

import (
	"context"
	"time"

	"pizzeria/internal/core/ports"
)

// RelayOutboxCommandHandler moves committed domain events to the broker.
// Rows stay locked while publishing, so concurrent relays split the backlog.
// A failed publish marks the batch with the error and leaves it pending.
type RelayOutboxCommandHandler struct {
	uowFactory OutboxUoWFactory
	publisher  ports.EventPublisher
	clock      ports.Clock
	timeout    time.Duration
}

func NewRelayOutboxCommandHandler(
	uowFactory OutboxUoWFactory,
	publisher ports.EventPublisher,
	clock ports.Clock,
	timeout time.Duration,
) RelayOutboxCommandHandler {
	return RelayOutboxCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		clock:      clock,
		timeout:    storageTimeout(timeout),
	}
}

// Handle returns the number of published messages.
func (h RelayOutboxCommandHandler) Handle(ctx context.Context, cmd RelayOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OutboxRepository()
	messages, err := repo.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, uow.Commit(ctx)
	}

	ids := make([]string, 0, len(messages))
	for _, m := range messages {
		ids = append(ids, m.ID)
	}

	if publishErr := h.publisher.Publish(ctx, messages); publishErr != nil {
		if err = repo.MarkFailed(ctx, ids, publishErr); err != nil {
			return 0, err
		}
		if err = uow.Commit(ctx); err != nil {
			return 0, err
		}
		return 0, publishErr
	}

	if err = repo.MarkSent(ctx, ids, h.clock.Now()); err != nil {
		return 0, err
	}
	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}
	return len(messages), nil
}
