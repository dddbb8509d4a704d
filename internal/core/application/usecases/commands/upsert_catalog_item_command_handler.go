package commands

import (
	"context"
	"errors"
	"time"

	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/pkg/errs"
)

// UpsertCatalogItemCommandHandler writes catalog items. Existing orders are
// unaffected since their lines hold snapshots.
type UpsertCatalogItemCommandHandler struct {
	uowFactory CatalogUoWFactory
	timeout    time.Duration
}

func NewUpsertCatalogItemCommandHandler(uowFactory CatalogUoWFactory, timeout time.Duration) UpsertCatalogItemCommandHandler {
	return UpsertCatalogItemCommandHandler{uowFactory: uowFactory, timeout: storageTimeout(timeout)}
}

// Handle returns the stored item and whether it was created.
func (h UpsertCatalogItemCommandHandler) Handle(
	ctx context.Context,
	cmd UpsertCatalogItemCommand,
) (*catalog.Item, bool, error) {
	if err := cmd.Validate(); err != nil {
		return nil, false, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, false, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.CatalogRepository()
	item, err := repo.Get(ctx, cmd.ID())
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		if item, err = catalog.NewItem(cmd.ID(), cmd.Details()); err != nil {
			return nil, false, err
		}
	case err != nil:
		return nil, false, err
	default:
		if err = item.Revise(cmd.Details()); err != nil {
			return nil, false, err
		}
	}

	created, err := repo.Upsert(ctx, item)
	if err != nil {
		return nil, false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, false, err
	}
	return item, created, nil
}
