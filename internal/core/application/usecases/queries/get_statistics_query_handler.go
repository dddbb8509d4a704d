package queries

import (
	"context"
	"time"

	"pizzeria/internal/core/domain/services"
	"pizzeria/internal/core/ports"
)

// GetStatisticsQueryResponse is the derived statistics together with the
// requested number of popular items.
type GetStatisticsQueryResponse struct {
	Statistics   services.Statistics
	PopularItems []services.ItemPopularity
}

// GetStatisticsQueryHandler loads every order and hands them to the
// aggregator. Nothing is cached; each call reflects committed state.
type GetStatisticsQueryHandler struct {
	orders     OrderReader
	aggregator services.StatisticsAggregator
	clock      ports.Clock
	timeout    time.Duration
}

func NewGetStatisticsQueryHandler(
	orders OrderReader,
	aggregator services.StatisticsAggregator,
	clock ports.Clock,
	timeout time.Duration,
) GetStatisticsQueryHandler {
	return GetStatisticsQueryHandler{
		orders:     orders,
		aggregator: aggregator,
		clock:      clock,
		timeout:    readTimeout(timeout),
	}
}

func (h GetStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetStatisticsQuery,
) (GetStatisticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStatisticsQueryResponse{}, err
	}

	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	orders, err := h.orders.List(ctx, ports.OrderFilter{})
	if err != nil {
		return GetStatisticsQueryResponse{}, err
	}

	stats := h.aggregator.Aggregate(orders, h.clock.Now())
	return GetStatisticsQueryResponse{
		Statistics:   stats,
		PopularItems: stats.PopularItems(query.PopularLimit()),
	}, nil
}
