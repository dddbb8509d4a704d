package commands

import (
	"errors"

	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/pkg/guard"
)

var ErrUpsertCatalogItemCommandIsNotConstructed = errors.New(
	"UpsertCatalogItemCommand must be created via NewUpsertCatalogItemCommand constructor",
)

// UpsertCatalogItemCommand creates a catalog item or replaces its attributes.
type UpsertCatalogItemCommand struct { //nolint:recvcheck //using for validation
	id      string
	details catalog.Details

	guard guard.ConstructorGuard
}

// NewUpsertCatalogItemCommand validates the item the same way catalog.NewItem does.
func NewUpsertCatalogItemCommand(id string, details catalog.Details) (UpsertCatalogItemCommand, error) {
	item, err := catalog.NewItem(id, details)
	if err != nil {
		return UpsertCatalogItemCommand{}, err
	}
	return UpsertCatalogItemCommand{
		id:      item.ID(),
		details: item.Details(),
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c UpsertCatalogItemCommand) Validate() error {
	return c.guard.Validate(ErrUpsertCatalogItemCommandIsNotConstructed)
}

func (c UpsertCatalogItemCommand) ID() string {
	return c.id
}

func (c UpsertCatalogItemCommand) Details() catalog.Details {
	return c.details
}
