package queries

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
)

// ListOrdersQueryHandler resolves a ListOrdersQuery into a repository filter.
// "Today" is the calendar day of loc, not of UTC.
type ListOrdersQueryHandler struct {
	orders  OrderReader
	clock   ports.Clock
	loc     *time.Location
	timeout time.Duration
}

func NewListOrdersQueryHandler(
	orders OrderReader,
	clock ports.Clock,
	loc *time.Location,
	timeout time.Duration,
) ListOrdersQueryHandler {
	if loc == nil {
		loc = time.Local
	}
	return ListOrdersQueryHandler{orders: orders, clock: clock, loc: loc, timeout: readTimeout(timeout)}
}

// Handle never returns a nil slice on success. Repeated calls without
// intervening writes return the same orders in the same order.
func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]*order.Order, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	orders, err := h.orders.List(ctx, h.filter(query))
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []*order.Order{}
	}
	return orders, nil
}

func (h ListOrdersQueryHandler) filter(query ListOrdersQuery) ports.OrderFilter {
	switch query.Mode() {
	case ByStatus:
		return ports.OrderFilter{Statuses: []order.Status{query.Status()}}
	case Active:
		return ports.OrderFilter{Statuses: order.ActiveStatuses()}
	case Today:
		from, to := services.LocalDay(h.clock.Now(), h.loc)
		return ports.OrderFilter{PlacedFrom: &from, PlacedTo: &to}
	default:
		return ports.OrderFilter{}
	}
}
