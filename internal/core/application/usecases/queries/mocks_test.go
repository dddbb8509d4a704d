package queries_test

import (
	"context"
	"testing"
	"time"

	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var almaty = time.FixedZone("Asia/Almaty", 5*60*60)

// 23:30 local on May 1st is already May 1st 18:30 UTC.
var fixedNow = time.Date(2025, 5, 1, 23, 30, 0, 0, almaty)

var fixedClock = ports.ClockFunc(func() time.Time { return fixedNow })

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderReader) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockCatalogReader struct{ mock.Mock }

func (m *MockCatalogReader) Get(ctx context.Context, id string) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(*catalog.Item)
	return item, args.Error(1)
}

func (m *MockCatalogReader) List(ctx context.Context, filter ports.CatalogFilter) ([]*catalog.Item, error) {
	args := m.Called(ctx, filter)
	items, _ := args.Get(0).([]*catalog.Item)
	return items, args.Error(1)
}

func money(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromInt(amount)
	require.NoError(t, err)
	return m
}

func newOrder(t *testing.T, status order.Status, placedAt time.Time, itemIDs ...string) *order.Order {
	t.Helper()
	lines := make([]order.Line, 0, len(itemIDs))
	for _, id := range itemIDs {
		l, err := order.NewLine(id, id+" pizza", money(t, 2500), 20*time.Minute, 1)
		require.NoError(t, err)
		lines = append(lines, l)
	}
	o, err := order.RestoreOrder(order.Snapshot{
		ID:           kernel.NewUUID(),
		Lines:        lines,
		Status:       status,
		PlacedAt:     placedAt,
		DeliveryType: order.Pickup,
	})
	require.NoError(t, err)
	return o
}
