package queries

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/catalog"
)

type ListCatalogItemsQueryHandler struct {
	catalog CatalogReader
	timeout time.Duration
}

func NewListCatalogItemsQueryHandler(reader CatalogReader, timeout time.Duration) ListCatalogItemsQueryHandler {
	return ListCatalogItemsQueryHandler{catalog: reader, timeout: readTimeout(timeout)}
}

// Handle returns items ordered by id.
func (h ListCatalogItemsQueryHandler) Handle(ctx context.Context, query ListCatalogItemsQuery) ([]*catalog.Item, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	items, err := h.catalog.List(ctx, query.Filter())
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*catalog.Item{}
	}
	return items, nil
}

type GetCatalogItemQueryHandler struct {
	catalog CatalogReader
	timeout time.Duration
}

func NewGetCatalogItemQueryHandler(reader CatalogReader, timeout time.Duration) GetCatalogItemQueryHandler {
	return GetCatalogItemQueryHandler{catalog: reader, timeout: readTimeout(timeout)}
}

func (h GetCatalogItemQueryHandler) Handle(ctx context.Context, query GetCatalogItemQuery) (*catalog.Item, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	return h.catalog.Get(ctx, query.ID())
}
