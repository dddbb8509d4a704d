package commands

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/keylock"
)

// ChangeOrderStatusResult is the order after the change. Changed is false
// when the order already was in the requested status.
type ChangeOrderStatusResult struct {
	Order   *order.Order
	Changed bool
}

// ChangeOrderStatusCommandHandler applies lifecycle transitions. Changes to
// one order are serialised by an in-process key lock and a row lock, so two
// concurrent requests never both read the same starting status.
type ChangeOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	locks      *keylock.KeyLock
	clock      ports.Clock
	timeout    time.Duration
}

func NewChangeOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	locks *keylock.KeyLock,
	clock ports.Clock,
	timeout time.Duration,
) ChangeOrderStatusCommandHandler {
	if locks == nil {
		locks = keylock.New()
	}
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		locks:      locks,
		clock:      clock,
		timeout:    storageTimeout(timeout),
	}
}

// Handle returns *errs.ObjectNotFoundError for an unknown order and
// *errs.InvalidTransitionError when the lifecycle forbids the change; in both
// cases nothing is written.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
) (ChangeOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	unlock, err := h.locks.Lock(ctx, cmd.OrderID().String())
	if err != nil {
		return ChangeOrderStatusResult{}, errs.NewPersistenceError("lock order", err)
	}
	defer unlock()

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}

	change, err := o.ChangeStatus(cmd.Status(), h.clock.Now())
	if err != nil {
		return ChangeOrderStatusResult{}, err
	}
	if !change.Changed() {
		return ChangeOrderStatusResult{Order: o}, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return ChangeOrderStatusResult{}, err
	}
	if err = orderRepo.AddStatusChange(ctx, change); err != nil {
		return ChangeOrderStatusResult{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return ChangeOrderStatusResult{}, err
	}

	return ChangeOrderStatusResult{Order: o, Changed: true}, nil
}
