package order_test

import (
	"testing"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placedAt = time.Date(2025, 5, 1, 18, 30, 0, 0, time.UTC)

func money(t *testing.T, amount int64) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromInt(amount)
	require.NoError(t, err)
	return m
}

func line(t *testing.T, id string, price int64, prepMinutes int, qty int) order.Line {
	t.Helper()
	l, err := order.NewLine(id, id+" pizza", money(t, price), time.Duration(prepMinutes)*time.Minute, qty)
	require.NoError(t, err)
	return l
}

func pickupDraft(lines ...order.Line) order.Draft {
	return order.Draft{Lines: lines, DeliveryType: order.Pickup, PaymentMethod: order.Cash}
}

func TestNewOrder(t *testing.T) {
	t.Run("two margheritas cost 5000 and take 20 minutes", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), pickupDraft(line(t, "P001", 2500, 20, 2)), placedAt)

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.Equal(t, "5000", o.Total().String())
		assert.Equal(t, 20*time.Minute, o.MaxPreparationTime())
		assert.Equal(t, 2, o.ItemCount())
		assert.Equal(t, order.Pending, o.Status())
		assert.Equal(t, placedAt.Add(20*time.Minute), o.EstimatedReadyAt())
	})

	t.Run("mixed lines sum totals and take the longest preparation", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), pickupDraft(
			line(t, "P001", 2500, 20, 1),
			line(t, "P002", 3000, 35, 1),
		), placedAt)

		require.NoError(t, err)
		assert.Equal(t, "5500", o.Total().String())
		assert.Equal(t, 35*time.Minute, o.MaxPreparationTime())
		assert.Equal(t, placedAt.Add(35*time.Minute), o.EstimatedReadyAt())
	})

	t.Run("creates a pending payment for the total", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), order.Draft{
			Lines:         []order.Line{line(t, "P001", 2500, 20, 3)},
			DeliveryType:  order.Pickup,
			PaymentMethod: order.Card,
		}, placedAt)

		require.NoError(t, err)
		p := o.Payment()
		assert.Len(t, p.ID(), 8)
		assert.Equal(t, order.Card, p.Method())
		assert.Equal(t, order.PaymentPending, p.Status())
		assert.True(t, p.Amount().IsEqual(o.Total()))
		assert.Nil(t, p.CompletedAt())
	})

	t.Run("rejects empty cart", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), pickupDraft(), placedAt)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "order lines")
	})

	t.Run("rejects delivery without address", func(t *testing.T) {
		d := pickupDraft(line(t, "P001", 2500, 20, 1))
		d.DeliveryType = order.Delivery
		d.DeliveryAddress = "   "

		_, err := order.NewOrder(kernel.NewUUID(), d, placedAt)

		require.Error(t, err)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "delivery address")
	})

	t.Run("drops address of pickup order", func(t *testing.T) {
		d := pickupDraft(line(t, "P001", 2500, 20, 1))
		d.DeliveryAddress = "Abay 10"

		o, err := order.NewOrder(kernel.NewUUID(), d, placedAt)

		require.NoError(t, err)
		assert.Empty(t, o.DeliveryAddress())
	})

	t.Run("rejects unknown payment method and delivery type", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), order.Draft{
			Lines: []order.Line{line(t, "P001", 2500, 20, 1)},
		}, placedAt)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "delivery type")
	})

	t.Run("rejects lines built without constructor", func(t *testing.T) {
		_, err := order.NewOrder(kernel.NewUUID(), pickupDraft(order.Line{}), placedAt)

		require.ErrorIs(t, err, order.ErrLineIsNotConstructed)
	})

	t.Run("records OrderPlaced once", func(t *testing.T) {
		customerID := kernel.NewUUID()
		d := pickupDraft(line(t, "P001", 2500, 20, 2))
		d.CustomerID = &customerID

		o, err := order.NewOrder(kernel.NewUUID(), d, placedAt)
		require.NoError(t, err)

		events := o.PullEvents()
		require.Len(t, events, 1)
		placed, ok := events[0].(order.OrderPlaced)
		require.True(t, ok)
		assert.Equal(t, order.OrderPlacedEventName, placed.EventName())
		assert.True(t, placed.AggregateID().IsEqual(o.ID()))
		assert.True(t, placed.CustomerID.IsEqual(customerID))
		assert.Equal(t, "5000", placed.Total.String())
		assert.Empty(t, o.PullEvents())
	})
}

func TestNewLine_MissingUnitPrice(t *testing.T) {
	_, err := order.NewLine("P001", "Margherita", kernel.Money{}, 20*time.Minute, 1)

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "value is required: unit price")
}

func TestOrder_Lines_AreCopied(t *testing.T) {
	lines := []order.Line{line(t, "P001", 2500, 20, 1)}
	o, err := order.NewOrder(kernel.NewUUID(), pickupDraft(lines...), placedAt)
	require.NoError(t, err)

	lines[0] = line(t, "P999", 1, 1, 9)
	got := o.Lines()
	got[0] = line(t, "P888", 1, 1, 9)

	assert.Equal(t, "P001", o.Lines()[0].CatalogItemID())
	assert.Equal(t, "2500", o.Total().String())
}

func TestOrder_ChangeStatus(t *testing.T) {
	newPickup := func(t *testing.T) *order.Order {
		o, err := order.NewOrder(kernel.NewUUID(), pickupDraft(line(t, "P001", 2500, 20, 1)), placedAt)
		require.NoError(t, err)
		o.PullEvents()
		return o
	}

	t.Run("walks the pickup lifecycle", func(t *testing.T) {
		o := newPickup(t)
		for _, s := range []order.Status{order.Confirmed, order.Preparing, order.Baking, order.Ready, order.Completed} {
			change, err := o.ChangeStatus(s, placedAt.Add(time.Minute))
			require.NoError(t, err)
			assert.True(t, change.Changed())
			assert.Equal(t, s, o.Status())
		}
		assert.Len(t, o.PullEvents(), 5)
	})

	t.Run("same status is a no-op without event", func(t *testing.T) {
		o := newPickup(t)

		change, err := o.ChangeStatus(order.Pending, placedAt)

		require.NoError(t, err)
		assert.False(t, change.Changed())
		assert.Empty(t, o.PullEvents())
	})

	t.Run("backward move fails and leaves order unchanged", func(t *testing.T) {
		o := newPickup(t)
		_, err := o.ChangeStatus(order.Baking, placedAt)
		require.NoError(t, err)

		_, err = o.ChangeStatus(order.Confirmed, placedAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Baking, o.Status())
	})

	t.Run("pickup order cannot be delivering", func(t *testing.T) {
		o := newPickup(t)

		_, err := o.ChangeStatus(order.Delivering, placedAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Pending, o.Status())
	})

	t.Run("terminal states are final", func(t *testing.T) {
		o := newPickup(t)
		_, err := o.ChangeStatus(order.Cancelled, placedAt)
		require.NoError(t, err)

		_, err = o.ChangeStatus(order.Completed, placedAt)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.Equal(t, order.Cancelled, o.Status())
	})

	t.Run("invalid target is a validation error", func(t *testing.T) {
		o := newPickup(t)

		_, err := o.ChangeStatus(order.Unknown, placedAt)

		assert.True(t, errs.IsValidation(err))
	})

	t.Run("delivery order reaches delivering", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), order.Draft{
			Lines:           []order.Line{line(t, "P001", 2500, 20, 1)},
			DeliveryType:    order.Delivery,
			DeliveryAddress: "Abay 10",
			PaymentMethod:   order.Online,
		}, placedAt)
		require.NoError(t, err)

		_, err = o.ChangeStatus(order.Delivering, placedAt)

		require.NoError(t, err)
		assert.Equal(t, "Abay 10", o.DeliveryAddress())
	})
}

func TestRestoreOrder(t *testing.T) {
	payment, err := order.RestorePayment("AB12CD34", order.Cash, money(t, 5000), order.PaymentPending, nil)
	require.NoError(t, err)
	id := kernel.NewUUID()

	o, err := order.RestoreOrder(order.Snapshot{
		ID:               id,
		Lines:            []order.Line{line(t, "P001", 2500, 20, 2)},
		Status:           order.Baking,
		PlacedAt:         placedAt,
		EstimatedReadyAt: placedAt.Add(20 * time.Minute),
		Payment:          payment,
		DeliveryType:     order.Pickup,
	})

	require.NoError(t, err)
	assert.True(t, o.ID().IsEqual(id))
	assert.Equal(t, order.Baking, o.Status())
	assert.Equal(t, "AB12CD34", o.Payment().ID())
	assert.Empty(t, o.PullEvents())

	_, err = order.RestoreOrder(order.Snapshot{ID: id, Lines: o.Lines(), DeliveryType: order.Pickup})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")
}

func TestOrder_Validate(t *testing.T) {
	var o order.Order
	assert.Equal(t, order.ErrOrderIsNotConstructed, o.Validate())
}
