// Package queries contains read operations for retrieving pizzeria state.
// Queries never modify storage; each one bounds its reads with a timeout.
package queries

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
)

// DefaultReadTimeout bounds a query's storage reads when none is configured.
const DefaultReadTimeout = 5 * time.Second

// OrderReader is the read side of ports.OrderRepository.
type OrderReader interface {
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
	List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error)
}

// CatalogReader is the read side of ports.CatalogRepository.
type CatalogReader interface {
	Get(ctx context.Context, id string) (*catalog.Item, error)
	List(ctx context.Context, filter ports.CatalogFilter) ([]*catalog.Item, error)
}

func readTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultReadTimeout
	}
	return d
}
