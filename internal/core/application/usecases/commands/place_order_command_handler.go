package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
)

// PlaceOrderResult is the placed order. Replayed is true when the
// idempotency key matched an earlier successful submission.
type PlaceOrderResult struct {
	Order    *order.Order
	Replayed bool
}

// PlaceOrderCommandHandler places orders. Catalog snapshots, the customer
// upsert, the order with its lines and the initial status history entry are
// written in one transaction; on any error nothing is stored.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory, idempotencyStore, clock, 5*time.Second, logger)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(result.Order.ID(), result.Order.Total())
type PlaceOrderCommandHandler struct {
	uowFactory  PlaceOrderUoWFactory
	idempotency ports.IdempotencyStore
	clock       ports.Clock
	timeout     time.Duration
	logger      *slog.Logger
}

// NewPlaceOrderCommandHandler creates the handler. idempotency may be nil, in
// which case idempotency keys are ignored.
func NewPlaceOrderCommandHandler(
	uowFactory PlaceOrderUoWFactory,
	idempotency ports.IdempotencyStore,
	clock ports.Clock,
	timeout time.Duration,
	logger *slog.Logger,
) PlaceOrderCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return PlaceOrderCommandHandler{
		uowFactory:  uowFactory,
		idempotency: idempotency,
		clock:       clock,
		timeout:     storageTimeout(timeout),
		logger:      logger.With("component", "place_order"),
	}
}

func (h PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (PlaceOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return PlaceOrderResult{}, err
	}

	key := cmd.IdempotencyKey()
	if key == "" || h.idempotency == nil {
		placed, err := h.place(ctx, cmd)
		if err != nil {
			return PlaceOrderResult{}, err
		}
		return PlaceOrderResult{Order: placed}, nil
	}

	reservation, err := h.reserve(ctx, key)
	if err != nil {
		return PlaceOrderResult{}, err
	}
	if reservation.OrderID != nil {
		existing, getErr := h.get(ctx, *reservation.OrderID)
		if getErr != nil {
			return PlaceOrderResult{}, getErr
		}
		return PlaceOrderResult{Order: existing, Replayed: true}, nil
	}
	if reservation.InProgress() {
		return PlaceOrderResult{}, errs.ErrRequestInProgress
	}

	placed, err := h.place(ctx, cmd)
	if err != nil {
		if releaseErr := h.release(ctx, key); releaseErr != nil {
			h.logger.WarnContext(ctx, "failed to release idempotency key", "key", key, "error", releaseErr)
		}
		return PlaceOrderResult{}, err
	}

	// The order is committed at this point; a retry with the same key stays
	// blocked until the reservation expires.
	if err = h.complete(ctx, key, placed.ID()); err != nil {
		h.logger.WarnContext(ctx, "failed to complete idempotency key",
			"key", key, "order_id", placed.ID().String(), "error", err)
	}
	return PlaceOrderResult{Order: placed}, nil
}

// Idempotency calls get their own storage deadline; a store that ignores
// it still surfaces expiry as a PersistenceError.
func (h PlaceOrderCommandHandler) reserve(ctx context.Context, key string) (ports.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	reservation, err := h.idempotency.Reserve(ctx, key)
	if err == nil && reservation.InProgress() && ctx.Err() != nil {
		return ports.Reservation{}, boundedStorageError("idempotency.reserve", ctx.Err())
	}
	return reservation, boundedStorageError("idempotency.reserve", err)
}

func (h PlaceOrderCommandHandler) complete(ctx context.Context, key string, orderID kernel.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return boundedStorageError("idempotency.complete", h.idempotency.Complete(ctx, key, orderID))
}

func (h PlaceOrderCommandHandler) release(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()
	return boundedStorageError("idempotency.release", h.idempotency.Release(ctx, key))
}

func boundedStorageError(operation string, err error) error {
	if err == nil || errors.Is(err, errs.ErrPersistence) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return errs.NewPersistenceError(operation, err)
	}
	return err
}

func (h PlaceOrderCommandHandler) place(ctx context.Context, cmd PlaceOrderCommand) (*order.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	lines, err := h.snapshotLines(ctx, uow.CatalogRepository(), cmd.Items())
	if err != nil {
		return nil, err
	}

	now := h.clock.Now()
	candidate, err := customer.NewCustomer(kernel.NewUUID(), cmd.Contact(), now)
	if err != nil {
		return nil, err
	}

	customerRepo := uow.CustomerRepository()
	stored, err := customerRepo.UpsertByPhone(ctx, candidate)
	if err != nil {
		return nil, err
	}
	stored.RecordOrder()
	if err = customerRepo.Update(ctx, stored); err != nil {
		return nil, err
	}

	customerID := stored.ID()
	placed, err := order.NewOrder(kernel.NewUUID(), order.Draft{
		CustomerID:      &customerID,
		Lines:           lines,
		DeliveryType:    cmd.DeliveryType(),
		DeliveryAddress: cmd.DeliveryAddress(),
		Notes:           cmd.Notes(),
		PaymentMethod:   cmd.PaymentMethod(),
	}, now)
	if err != nil {
		return nil, err
	}

	orderRepo := uow.OrderRepository()
	if err = orderRepo.Add(ctx, placed); err != nil {
		return nil, err
	}
	if err = orderRepo.AddStatusChange(ctx, order.StatusChange{
		OrderID: placed.ID(),
		From:    order.Unknown,
		To:      placed.Status(),
		At:      now,
	}); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}
	return placed, nil
}

func (h PlaceOrderCommandHandler) snapshotLines(
	ctx context.Context,
	catalogRepo ports.CatalogRepository,
	items []OrderItem,
) ([]order.Line, error) {
	lines := make([]order.Line, 0, len(items))
	for _, item := range items {
		ci, err := catalogRepo.Get(ctx, item.CatalogItemID)
		if err != nil {
			return nil, err
		}
		if !ci.IsAvailable() {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				"catalog item",
				fmt.Errorf("%s is not available", ci.ID()),
			)
		}
		line, err := order.NewLine(ci.ID(), ci.Name(), ci.Price(), ci.PreparationTime(), item.Quantity)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (h PlaceOrderCommandHandler) get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	return h.uowFactory.Create().OrderRepository().Get(ctx, id)
}
