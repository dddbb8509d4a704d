package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "pizzeria/internal/adapters/out/postgres"
	"pizzeria/internal/adapters/out/postgres/catalogrepo"
	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

var testClock = ports.ClockFunc(func() time.Time { return testNow })

type placeOrderFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f placeOrderFactory) Create() commands.PlaceOrderUoW {
	return f.factory.Create()
}

type orderFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f orderFactory) Create() commands.OrderUoW {
	return f.factory.Create()
}

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := postgres_adapter.Open(postgres_adapter.DBConfig{
		Driver:     postgres_adapter.DriverSQLite,
		SQLitePath: ":memory:",
	})
	require.NoError(t, err)
	require.NoError(t, postgres_adapter.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	repo := catalogrepo.NewGormCatalogRepository(db)
	for _, seed := range []struct {
		id    string
		name  string
		price int64
		prep  time.Duration
	}{
		{id: "P001", name: "Margherita", price: 2500, prep: 20 * time.Minute},
		{id: "P002", name: "Pepperoni", price: 3000, prep: 35 * time.Minute},
	} {
		price, err := kernel.MoneyFromInt(seed.price)
		require.NoError(t, err)
		item, err := catalog.NewItem(seed.id, catalog.Details{
			Name:            seed.name,
			Size:            catalog.Medium,
			Price:           price,
			PreparationTime: seed.prep,
			Category:        catalog.Classic,
			Available:       true,
		})
		require.NoError(t, err)
		_, err = repo.Upsert(context.Background(), item)
		require.NoError(t, err)
	}
}

func placeOrderCommand(t *testing.T, name string, items ...commands.OrderItem) commands.PlaceOrderCommand {
	t.Helper()
	cmd, err := commands.NewPlaceOrderCommand(commands.PlaceOrderParams{
		Customer:      customer.Contact{Name: name, Phone: "+77011234567"},
		Items:         items,
		DeliveryType:  order.Pickup,
		PaymentMethod: order.Card,
	})
	require.NoError(t, err)
	return cmd
}

func newTestOrder(t *testing.T) *order.Order {
	t.Helper()
	price, err := kernel.MoneyFromInt(2500)
	require.NoError(t, err)
	line, err := order.NewLine("P001", "Margherita", price, 20*time.Minute, 2)
	require.NoError(t, err)
	o, err := order.NewOrder(kernel.NewUUID(), order.Draft{
		Lines:         []order.Line{line},
		DeliveryType:  order.Pickup,
		PaymentMethod: order.Cash,
	}, testNow)
	require.NoError(t, err)
	return o
}

func countRows(t *testing.T, db *gorm.DB, table string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Table(table).Count(&n).Error)
	return n
}
