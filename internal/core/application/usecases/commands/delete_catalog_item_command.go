package commands

import (
	"errors"
	"strings"

	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrDeleteCatalogItemCommandIsNotConstructed = errors.New(
	"DeleteCatalogItemCommand must be created via NewDeleteCatalogItemCommand constructor",
)

// DeleteCatalogItemCommand removes an item from the menu.
type DeleteCatalogItemCommand struct { //nolint:recvcheck //using for validation
	id    string
	guard guard.ConstructorGuard
}

func NewDeleteCatalogItemCommand(id string) (DeleteCatalogItemCommand, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return DeleteCatalogItemCommand{}, errs.NewValueIsRequiredError("catalog item id")
	}
	return DeleteCatalogItemCommand{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (c DeleteCatalogItemCommand) Validate() error {
	return c.guard.Validate(ErrDeleteCatalogItemCommandIsNotConstructed)
}

func (c DeleteCatalogItemCommand) ID() string {
	return c.id
}
