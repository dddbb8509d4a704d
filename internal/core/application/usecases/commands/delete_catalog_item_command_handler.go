package commands

import (
	"context"
	"time"

	"pizzeria/internal/pkg/errs"
)

type DeleteCatalogItemCommandHandler struct {
	uowFactory CatalogUoWFactory
	timeout    time.Duration
}

func NewDeleteCatalogItemCommandHandler(uowFactory CatalogUoWFactory, timeout time.Duration) DeleteCatalogItemCommandHandler {
	return DeleteCatalogItemCommandHandler{uowFactory: uowFactory, timeout: storageTimeout(timeout)}
}

// Handle returns *errs.ObjectNotFoundError when the item does not exist.
func (h DeleteCatalogItemCommandHandler) Handle(ctx context.Context, cmd DeleteCatalogItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deleted, err := uow.CatalogRepository().Delete(ctx, cmd.ID())
	if err != nil {
		return err
	}
	if !deleted {
		return errs.NewObjectNotFoundError("catalog item", cmd.ID())
	}

	return uow.Commit(ctx)
}
