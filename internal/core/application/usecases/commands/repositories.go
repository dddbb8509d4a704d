// Package commands contains the operations that change pizzeria state.
// Every handler validates its command before touching storage, runs inside
// one unit of work and bounds storage calls with a timeout.
package commands

import (
	"context"
	"time"

	"pizzeria/internal/core/ports"
)

// DefaultStorageTimeout bounds a handler's storage work when none is configured.
const DefaultStorageTimeout = 5 * time.Second

// Unit of Work interfaces narrowed to what each handler needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CustomerRepoFactory interface {
		CustomerRepository() ports.CustomerRepository
	}

	CatalogRepoFactory interface {
		CatalogRepository() ports.CatalogRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// PlaceOrderUoW spans catalog lookups, the customer upsert and the order
	// insert of one submission.
	PlaceOrderUoW interface {
		TxManager
		CatalogRepoFactory
		CustomerRepoFactory
		OrderRepoFactory
	}

	PlaceOrderUoWFactory interface {
		Create() PlaceOrderUoW
	}

	// OrderUoW manages transactions for order-only operations.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	CatalogUoW interface {
		TxManager
		CatalogRepoFactory
	}

	CatalogUoWFactory interface {
		Create() CatalogUoW
	}

	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

func storageTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultStorageTimeout
	}
	return d
}
