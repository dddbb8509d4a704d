package commands_test

import (
	"strings"
	"testing"

	"pizzeria/internal/core/application/usecases/commands"
	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPlaceOrderParams() commands.PlaceOrderParams {
	return commands.PlaceOrderParams{
		Customer:      customer.Contact{Name: "Dana", Phone: "+7 701 123 45 67"},
		Items:         []commands.OrderItem{{CatalogItemID: "P001", Quantity: 2}},
		DeliveryType:  order.Pickup,
		PaymentMethod: order.Cash,
	}
}

func TestNewPlaceOrderCommand_ValidInput(t *testing.T) {
	p := validPlaceOrderParams()
	p.Notes = "  no onions "
	p.IdempotencyKey = " key-1 "

	cmd, err := commands.NewPlaceOrderCommand(p)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "+77011234567", cmd.Contact().Phone)
	assert.Equal(t, "no onions", cmd.Notes())
	assert.Equal(t, "key-1", cmd.IdempotencyKey())
	assert.Equal(t, []commands.OrderItem{{CatalogItemID: "P001", Quantity: 2}}, cmd.Items())
}

func TestNewPlaceOrderCommand_EmptyCart(t *testing.T) {
	p := validPlaceOrderParams()
	p.Items = nil

	_, err := commands.NewPlaceOrderCommand(p)

	require.ErrorIs(t, err, order.ErrEmptyOrder)
	assert.True(t, errs.IsValidation(err))
}

func TestNewPlaceOrderCommand_DeliveryWithoutAddress(t *testing.T) {
	p := validPlaceOrderParams()
	p.DeliveryType = order.Delivery

	_, err := commands.NewPlaceOrderCommand(p)

	require.ErrorIs(t, err, order.ErrDeliveryAddressRequired)
}

func TestNewPlaceOrderCommand_InvalidItems(t *testing.T) {
	p := validPlaceOrderParams()
	p.Items = []commands.OrderItem{{CatalogItemID: "", Quantity: 1}, {CatalogItemID: "P002", Quantity: 0}}

	_, err := commands.NewPlaceOrderCommand(p)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "items[0].catalog item id")
	assert.Contains(t, err.Error(), "items[1].quantity")
}

func TestNewPlaceOrderCommand_MissingContactAndPayment(t *testing.T) {
	p := validPlaceOrderParams()
	p.Customer = customer.Contact{}
	p.PaymentMethod = order.UnknownPaymentMethod

	_, err := commands.NewPlaceOrderCommand(p)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer name")
	assert.Contains(t, err.Error(), "customer phone")
	assert.Contains(t, err.Error(), "payment method")
}

func TestNewPlaceOrderCommand_IdempotencyKeyTooLong(t *testing.T) {
	p := validPlaceOrderParams()
	p.IdempotencyKey = strings.Repeat("k", commands.MaxIdempotencyKeyLength+1)

	_, err := commands.NewPlaceOrderCommand(p)

	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
