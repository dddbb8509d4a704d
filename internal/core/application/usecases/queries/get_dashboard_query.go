package queries

import (
	"context"
	"errors"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/guard"

	"golang.org/x/sync/errgroup"
)

var ErrGetDashboardQueryIsNotConstructed = errors.New(
	"GetDashboardQuery must be created via NewGetDashboardQuery constructor",
)

// GetDashboardQuery combines current statistics with the active order queue.
type GetDashboardQuery struct {
	statistics GetStatisticsQuery
	guard      guard.ConstructorGuard
}

func NewGetDashboardQuery(popularLimit int) (GetDashboardQuery, error) {
	statistics, err := NewGetStatisticsQuery(popularLimit)
	if err != nil {
		return GetDashboardQuery{}, err
	}
	return GetDashboardQuery{statistics: statistics, guard: guard.NewConstructorGuard()}, nil
}

func (q GetDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetDashboardQueryIsNotConstructed)
}

type GetDashboardQueryResponse struct {
	Statistics   GetStatisticsQueryResponse
	ActiveOrders []*order.Order
}

// GetDashboardQueryHandler runs the statistics and active orders reads
// concurrently; the first failure cancels the other.
type GetDashboardQueryHandler struct {
	statistics GetStatisticsQueryHandler
	orders     ListOrdersQueryHandler
}

func NewGetDashboardQueryHandler(
	statistics GetStatisticsQueryHandler,
	orders ListOrdersQueryHandler,
) GetDashboardQueryHandler {
	return GetDashboardQueryHandler{statistics: statistics, orders: orders}
}

func (h GetDashboardQueryHandler) Handle(
	ctx context.Context,
	query GetDashboardQuery,
) (GetDashboardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDashboardQueryResponse{}, err
	}

	var resp GetDashboardQueryResponse
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := h.statistics.Handle(gctx, query.statistics)
		if err != nil {
			return err
		}
		resp.Statistics = stats
		return nil
	})

	g.Go(func() error {
		active, err := h.orders.Handle(gctx, NewListActiveOrdersQuery())
		if err != nil {
			return err
		}
		resp.ActiveOrders = active
		return nil
	})

	if err := g.Wait(); err != nil {
		return GetDashboardQueryResponse{}, err
	}
	return resp, nil
}
