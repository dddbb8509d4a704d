package queries

import (
	"errors"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/guard"
)

var ErrListOrdersQueryIsNotConstructed = errors.New(
	"ListOrdersQuery must be created via NewListOrdersByStatusQuery, NewListActiveOrdersQuery " +
		"or NewListTodayOrdersQuery constructor",
)

// ListMode selects which orders ListOrdersQuery returns.
type ListMode int

const (
	UnknownListMode ListMode = iota
	// ByStatus lists orders currently in one status.
	ByStatus
	// Active lists orders in a non-terminal status.
	Active
	// Today lists orders placed during the current local calendar day.
	Today
)

func (m ListMode) String() string {
	switch m {
	case ByStatus:
		return "by_status"
	case Active:
		return "active"
	case Today:
		return "today"
	default:
		return "unknown"
	}
}

// ListOrdersQuery lists orders newest first.
//
// Example:
//
//	query, err := NewListOrdersByStatusQuery(order.Baking)
//	if err != nil {
//	    return err
//	}
//	baking, err := handler.Handle(ctx, query)
type ListOrdersQuery struct {
	mode   ListMode
	status order.Status
	guard  guard.ConstructorGuard
}

func NewListOrdersByStatusQuery(status order.Status) (ListOrdersQuery, error) {
	if err := status.Validate(); err != nil {
		return ListOrdersQuery{}, err
	}
	return ListOrdersQuery{mode: ByStatus, status: status, guard: guard.NewConstructorGuard()}, nil
}

func NewListActiveOrdersQuery() ListOrdersQuery {
	return ListOrdersQuery{mode: Active, guard: guard.NewConstructorGuard()}
}

func NewListTodayOrdersQuery() ListOrdersQuery {
	return ListOrdersQuery{mode: Today, guard: guard.NewConstructorGuard()}
}

func (q ListOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
}

func (q ListOrdersQuery) Mode() ListMode {
	return q.mode
}

// Status is meaningful only in ByStatus mode.
func (q ListOrdersQuery) Status() order.Status {
	return q.status
}
