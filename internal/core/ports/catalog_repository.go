package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/catalog"
)

// CatalogFilter narrows catalog listings.
type CatalogFilter struct {
	Category      *catalog.Category
	AvailableOnly bool
	// Query matches name or description, case-insensitive.
	Query string
}

// CatalogRepository is the catalog store. Items are listed by id.
type CatalogRepository interface {
	List(ctx context.Context, filter CatalogFilter) ([]*catalog.Item, error)

	// Get returns *errs.ObjectNotFoundError for an unknown id.
	Get(ctx context.Context, id string) (*catalog.Item, error)

	// Upsert creates or replaces an item and reports whether it was created.
	Upsert(ctx context.Context, item *catalog.Item) (bool, error)

	// Delete reports whether an item was removed.
	Delete(ctx context.Context, id string) (bool, error)
}
