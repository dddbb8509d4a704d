package customer_test

import (
	"testing"
	"time"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer(t *testing.T) {
	now := time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC)

	t.Run("should create customer with normalized phone", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := customer.NewCustomer(id, customer.Contact{
			Name:    " Aigerim ",
			Phone:   "+7 (701) 123-45-67",
			Email:   "a@example.com",
			Address: "Abay 10",
		}, now)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(id))
		assert.Equal(t, "Aigerim", c.Name())
		assert.Equal(t, "+77011234567", c.Phone())
		assert.Equal(t, 0, c.LoyaltyPoints())
		assert.Equal(t, 0, c.LifetimeOrders())
		assert.Equal(t, now, c.RegisteredAt())
	})

	t.Run("should require name and phone", func(t *testing.T) {
		c, err := customer.NewCustomer(kernel.NewUUID(), customer.Contact{Phone: "  "}, now)

		require.Error(t, err)
		assert.Nil(t, c)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "customer name")
		assert.Contains(t, err.Error(), "customer phone")
	})

	t.Run("should reject zero id", func(t *testing.T) {
		_, err := customer.NewCustomer(kernel.UUID{}, customer.Contact{Name: "A", Phone: "1"}, now)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}

func TestRestoreCustomer(t *testing.T) {
	contact := customer.Contact{Name: "Dana", Phone: "555"}

	c, err := customer.RestoreCustomer(kernel.NewUUID(), contact, time.Now(), 40, 3)
	require.NoError(t, err)
	assert.Equal(t, 40, c.LoyaltyPoints())
	assert.Equal(t, 3, c.LifetimeOrders())

	c.RecordOrder()
	assert.Equal(t, 4, c.LifetimeOrders())

	_, err = customer.RestoreCustomer(kernel.NewUUID(), contact, time.Now(), -1, 0)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCustomer_Validate(t *testing.T) {
	var c customer.Customer
	assert.Equal(t, customer.ErrCustomerIsNotConstructed, c.Validate())

	var nilCustomer *customer.Customer
	assert.Equal(t, customer.ErrCustomerIsNotConstructed, nilCustomer.Validate())
}
