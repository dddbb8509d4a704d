package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/kernel"
)

// Reservation is the outcome of IdempotencyStore.Reserve.
type Reservation struct {
	// Acquired is true when the caller owns the key and must Complete or Release it.
	Acquired bool
	// OrderID is set when an earlier request with the key already succeeded.
	OrderID *kernel.UUID
}

// InProgress reports that another request holds the key.
func (r Reservation) InProgress() bool {
	return !r.Acquired && r.OrderID == nil
}

// IdempotencyStore deduplicates order submissions carrying a client key.
type IdempotencyStore interface {
	Reserve(ctx context.Context, key string) (Reservation, error)
	Complete(ctx context.Context, key string, orderID kernel.UUID) error
	Release(ctx context.Context, key string) error
}
