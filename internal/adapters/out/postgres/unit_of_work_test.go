package postgres_test

import (
	"errors"
	"testing"
	"time"

	postgres_adapter "pizzeria/internal/adapters/out/postgres"
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGormUnitOfWork_CommitAndRollbackRequireTransaction(t *testing.T) {
	db := openSQLite(t)
	uow := postgres_adapter.NewGormUnitOfWorkFactory(db).Create()

	require.ErrorIs(t, uow.Commit(t.Context()), errs.ErrPersistence)
	require.ErrorIs(t, uow.Rollback(t.Context()), gorm.ErrInvalidTransaction)

	require.NoError(t, uow.Begin(t.Context()))
	require.NoError(t, uow.Begin(t.Context()))
	require.NoError(t, uow.Commit(t.Context()))
	require.Error(t, uow.Rollback(t.Context()))
}

func TestGormUnitOfWork_CommitWritesDomainEventsToOutbox(t *testing.T) {
	ctx := t.Context()
	db := openSQLite(t)
	factory := postgres_adapter.NewGormUnitOfWorkFactory(db)
	o := newTestOrder(t)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.Commit(ctx))

	_, err := o.ChangeStatus(order.Confirmed, testNow.Add(time.Minute))
	require.NoError(t, err)
	uow = factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Update(ctx, o))
	require.NoError(t, uow.Commit(ctx))

	uow = factory.Create()
	require.NoError(t, uow.Begin(ctx))
	pending, err := uow.OutboxRepository().FetchPending(ctx, 10)
	require.NoError(t, err)
	require.NoError(t, uow.Commit(ctx))

	require.Len(t, pending, 2)
	assert.Equal(t, order.OrderPlacedEventName, pending[0].EventName)
	assert.Equal(t, order.OrderStatusChangedEventName, pending[1].EventName)
	assert.Equal(t, o.ID().String(), pending[1].AggregateID)
	assert.JSONEq(t,
		`{"order_id":"`+o.ID().String()+`","from":"PENDING","to":"CONFIRMED","changed_at":"2025-05-01T12:01:00Z"}`,
		string(pending[1].Payload))
}

func TestGormUnitOfWork_RollbackDiscardsEvents(t *testing.T) {
	ctx := t.Context()
	db := openSQLite(t)
	uow := postgres_adapter.NewGormUnitOfWorkFactory(db).Create()

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, newTestOrder(t)))
	require.NoError(t, uow.Rollback(ctx))

	assert.Zero(t, countRows(t, db, "orders"))
	assert.Zero(t, countRows(t, db, "outbox_messages"))
}

func TestPlaceOrder_LineInsertFailureLeavesNothingBehind(t *testing.T) {
	ctx := t.Context()
	db := openSQLite(t)
	seedCatalog(t, db)

	err := db.Callback().Create().Before("gorm:create").Register("test:fail_order_lines", func(tx *gorm.DB) {
		if tx.Statement.Table == "order_lines" {
			_ = tx.AddError(errors.New("simulated line insert failure"))
		}
	})
	require.NoError(t, err)

	handler := commands.NewPlaceOrderCommandHandler(
		placeOrderFactory{factory: postgres_adapter.NewGormUnitOfWorkFactory(db)},
		nil, testClock, time.Second, nil,
	)

	_, err = handler.Handle(ctx, placeOrderCommand(t, "Dana", commands.OrderItem{CatalogItemID: "P001", Quantity: 2}))

	require.ErrorIs(t, err, errs.ErrPersistence)
	assert.Contains(t, err.Error(), "simulated line insert failure")
	for _, table := range []string{"orders", "order_lines", "order_status_history", "customers", "outbox_messages"} {
		assert.Zero(t, countRows(t, db, table), table)
	}
}

func TestPlaceOrder_EndToEndOnSQLite(t *testing.T) {
	ctx := t.Context()
	db := openSQLite(t)
	seedCatalog(t, db)
	factory := postgres_adapter.NewGormUnitOfWorkFactory(db)

	place := commands.NewPlaceOrderCommandHandler(placeOrderFactory{factory: factory}, nil, testClock, time.Second, nil)
	first, err := place.Handle(ctx, placeOrderCommand(t, "Dana",
		commands.OrderItem{CatalogItemID: "P001", Quantity: 1},
		commands.OrderItem{CatalogItemID: "P002", Quantity: 1},
	))
	require.NoError(t, err)
	second, err := place.Handle(ctx, placeOrderCommand(t, "Dana K.", commands.OrderItem{CatalogItemID: "P001", Quantity: 2}))
	require.NoError(t, err)

	assert.Equal(t, "5500", first.Order.Total().String())
	assert.Equal(t, testNow.Add(35*time.Minute), first.Order.EstimatedReadyAt())
	assert.Equal(t, "5000", second.Order.Total().String())

	// one customer per phone, carrying the latest name
	assert.EqualValues(t, 1, countRows(t, db, "customers"))
	stored, err := factory.Create().CustomerRepository().GetByPhone(ctx, "+7 701 123 45 67")
	require.NoError(t, err)
	assert.Equal(t, "Dana K.", stored.Name())
	assert.Equal(t, 2, stored.LifetimeOrders())
	assert.True(t, first.Order.CustomerID().IsEqual(stored.ID()))
	assert.True(t, second.Order.CustomerID().IsEqual(stored.ID()))

	change := commands.NewChangeOrderStatusCommandHandler(orderFactory{factory: factory}, nil, testClock, time.Second)
	for _, target := range []order.Status{order.Confirmed, order.Baking, order.Ready, order.Completed} {
		cmd, cmdErr := commands.NewChangeOrderStatusCommand(first.Order.ID(), target)
		require.NoError(t, cmdErr)
		_, err = change.Handle(ctx, cmd)
		require.NoError(t, err)
	}

	cmd, err := commands.NewChangeOrderStatusCommand(first.Order.ID(), order.Preparing)
	require.NoError(t, err)
	_, err = change.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	reloaded, err := factory.Create().OrderRepository().Get(ctx, first.Order.ID())
	require.NoError(t, err)
	assert.Equal(t, order.Completed, reloaded.Status())
	require.Len(t, reloaded.Lines(), 2)
	assert.Equal(t, "P001", reloaded.Lines()[0].CatalogItemID())
	assert.Equal(t, "P002", reloaded.Lines()[1].CatalogItemID())

	assert.EqualValues(t, 6, countRows(t, db, "order_status_history"))
	assert.EqualValues(t, 6, countRows(t, db, "outbox_messages"))
}
