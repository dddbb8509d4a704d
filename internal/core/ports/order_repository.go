// Package ports defines the contracts between the pizzeria core and its
// infrastructure: repositories, the unit of work, the idempotency store,
// the event publisher and the clock.
package ports

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
)

// OrderFilter narrows List. Zero values mean "no restriction".
type OrderFilter struct {
	// Statuses keeps orders in any of the given statuses.
	Statuses []order.Status
	// PlacedFrom is inclusive.
	PlacedFrom *time.Time
	// PlacedTo is exclusive.
	PlacedTo *time.Time
}

// OrderRepository persists order aggregates together with their lines and
// status history entries. All failures other than a missing order are returned as
// *errs.PersistenceError.
type OrderRepository interface {
	// Add stores a new order and its lines. Under a unit of work both are
	// written in the same transaction.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the mutable part of an order (status, estimated ready time).
	// Returns *errs.ObjectNotFoundError when the order does not exist.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns the order with its lines or *errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate is Get with a row lock held until the transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// List returns matching orders newest first; orders placed at the same
	// instant are ordered by id.
	List(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// AddStatusChange appends an entry to the order's status history.
	AddStatusChange(ctx context.Context, change order.StatusChange) error
}
