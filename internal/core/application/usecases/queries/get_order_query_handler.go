package queries

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/order"
)

type GetOrderQueryHandler struct {
	orders  OrderReader
	timeout time.Duration
}

func NewGetOrderQueryHandler(orders OrderReader, timeout time.Duration) GetOrderQueryHandler {
	return GetOrderQueryHandler{orders: orders, timeout: readTimeout(timeout)}
}

// Handle returns *errs.ObjectNotFoundError for an unknown order.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	return h.orders.Get(ctx, query.OrderID())
}
