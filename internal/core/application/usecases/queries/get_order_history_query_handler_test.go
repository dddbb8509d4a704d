package queries_test

import (
	"testing"
	"time"

	postgres_adapter "pizzeria/internal/adapters/out/postgres"
	"pizzeria/internal/adapters/out/postgres/orderrepo"
	"pizzeria/internal/core/application/usecases/queries"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOrderHistoryQueryHandler(t *testing.T) {
	ctx := t.Context()
	db, err := postgres_adapter.Open(postgres_adapter.DBConfig{
		Driver:     postgres_adapter.DriverSQLite,
		SQLitePath: ":memory:",
	})
	require.NoError(t, err)
	require.NoError(t, postgres_adapter.Migrate(db))

	placedAt := fixedNow.Add(-time.Hour)
	o := newOrder(t, order.Pending, placedAt, "P001")
	repo := orderrepo.NewGormOrderRepository(db, nil)
	require.NoError(t, repo.Add(ctx, o))

	changes := []order.StatusChange{
		{OrderID: o.ID(), From: order.Unknown, To: order.Pending, At: placedAt},
		{OrderID: o.ID(), From: order.Pending, To: order.Confirmed, At: placedAt.Add(5 * time.Minute)},
		{OrderID: o.ID(), From: order.Confirmed, To: order.Cancelled, At: placedAt.Add(9 * time.Minute)},
	}
	for _, change := range changes {
		require.NoError(t, repo.AddStatusChange(ctx, change))
	}

	handler := queries.NewGetOrderHistoryQueryHandler(db, time.Second)

	t.Run("entries oldest first", func(t *testing.T) {
		query, queryErr := queries.NewGetOrderHistoryQuery(o.ID())
		require.NoError(t, queryErr)

		history, handleErr := handler.Handle(ctx, query)

		require.NoError(t, handleErr)
		require.Len(t, history, 3)
		for i, change := range changes {
			assert.Equal(t, change.From, history[i].From)
			assert.Equal(t, change.To, history[i].To)
			assert.True(t, change.At.Equal(history[i].ChangedAt), "entry %d", i)
		}
	})

	t.Run("order without history", func(t *testing.T) {
		quiet := newOrder(t, order.Pending, placedAt, "P002")
		require.NoError(t, repo.Add(ctx, quiet))
		query, queryErr := queries.NewGetOrderHistoryQuery(quiet.ID())
		require.NoError(t, queryErr)

		history, handleErr := handler.Handle(ctx, query)

		require.NoError(t, handleErr)
		assert.Empty(t, history)
		assert.NotNil(t, history)
	})

	t.Run("unknown order", func(t *testing.T) {
		query, queryErr := queries.NewGetOrderHistoryQuery(kernel.NewUUID())
		require.NoError(t, queryErr)

		_, handleErr := handler.Handle(ctx, query)

		require.ErrorIs(t, handleErr, errs.ErrObjectNotFound)
	})

	t.Run("query not constructed", func(t *testing.T) {
		_, handleErr := handler.Handle(ctx, queries.GetOrderHistoryQuery{})

		require.ErrorIs(t, handleErr, queries.ErrGetOrderHistoryQueryIsNotConstructed)
	})
}
