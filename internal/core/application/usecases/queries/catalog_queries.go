package queries

import (
	"errors"
	"strings"

	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	ErrListCatalogItemsQueryIsNotConstructed = errors.New(
		"ListCatalogItemsQuery must be created via NewListCatalogItemsQuery constructor",
	)
	ErrGetCatalogItemQueryIsNotConstructed = errors.New(
		"GetCatalogItemQuery must be created via NewGetCatalogItemQuery constructor",
	)
)

// ListCatalogItemsQuery lists the menu, optionally narrowed by category,
// availability and a free-text match on name or description.
type ListCatalogItemsQuery struct {
	filter ports.CatalogFilter
	guard  guard.ConstructorGuard
}

func NewListCatalogItemsQuery(filter ports.CatalogFilter) (ListCatalogItemsQuery, error) {
	if filter.Category != nil {
		if err := filter.Category.Validate(); err != nil {
			return ListCatalogItemsQuery{}, err
		}
		category := *filter.Category
		filter.Category = &category
	}
	filter.Query = strings.TrimSpace(filter.Query)
	return ListCatalogItemsQuery{filter: filter, guard: guard.NewConstructorGuard()}, nil
}

func (q ListCatalogItemsQuery) Validate() error {
	return q.guard.Validate(ErrListCatalogItemsQueryIsNotConstructed)
}

func (q ListCatalogItemsQuery) Filter() ports.CatalogFilter {
	return q.filter
}

type GetCatalogItemQuery struct {
	id    string
	guard guard.ConstructorGuard
}

func NewGetCatalogItemQuery(id string) (GetCatalogItemQuery, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return GetCatalogItemQuery{}, errs.NewValueIsRequiredError("catalog item id")
	}
	if len(id) > catalog.MaxIDLength {
		return GetCatalogItemQuery{}, errs.NewValueIsOutOfRangeError("catalog item id length", len(id), 1, catalog.MaxIDLength)
	}
	return GetCatalogItemQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCatalogItemQuery) Validate() error {
	return q.guard.Validate(ErrGetCatalogItemQueryIsNotConstructed)
}

func (q GetCatalogItemQuery) ID() string {
	return q.id
}
