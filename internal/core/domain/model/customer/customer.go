// Package customer holds the Customer aggregate. Customers are identified
// externally by phone number; placing an order upserts the customer by phone.
package customer

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var ErrCustomerIsNotConstructed = errors.New("Customer must be created via NewCustomer or RestoreCustomer")

// Customer is a pizzeria client. Phone is the natural key and unique across
// customers. Every order refreshes the name; email and address are replaced
// only when the order supplies them.
type Customer struct {
	id             kernel.UUID
	name           string
	phone          string
	email          string
	address        string
	registeredAt   time.Time
	loyaltyPoints  int
	lifetimeOrders int

	guard guard.ConstructorGuard
}

// Contact is the customer-supplied part of an order submission.
type Contact struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// NewCustomer registers a customer with zero loyalty points and no orders.
func NewCustomer(id kernel.UUID, contact Contact, registeredAt time.Time) (*Customer, error) {
	c := &Customer{
		registeredAt: registeredAt,
		guard:        guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		c.setID(id),
		c.setContact(contact),
	); err != nil {
		return nil, err
	}
	return c, nil
}

// RestoreCustomer rebuilds a customer from storage.
func RestoreCustomer(
	id kernel.UUID,
	contact Contact,
	registeredAt time.Time,
	loyaltyPoints int,
	lifetimeOrders int,
) (*Customer, error) {
	c, err := NewCustomer(id, contact, registeredAt)
	if err != nil {
		return nil, err
	}
	if loyaltyPoints < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("loyalty points", fmt.Errorf("%d is negative", loyaltyPoints))
	}
	if lifetimeOrders < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("lifetime orders", fmt.Errorf("%d is negative", lifetimeOrders))
	}
	c.loyaltyPoints = loyaltyPoints
	c.lifetimeOrders = lifetimeOrders
	return c, nil
}

func (c *Customer) Validate() error {
	if c == nil {
		return ErrCustomerIsNotConstructed
	}
	return c.guard.Validate(ErrCustomerIsNotConstructed)
}

func (c *Customer) ID() kernel.UUID {
	return c.id
}

func (c *Customer) Name() string {
	return c.name
}

func (c *Customer) Phone() string {
	return c.phone
}

func (c *Customer) Email() string {
	return c.email
}

func (c *Customer) Address() string {
	return c.address
}

func (c *Customer) RegisteredAt() time.Time {
	return c.registeredAt
}

func (c *Customer) LoyaltyPoints() int {
	return c.loyaltyPoints
}

func (c *Customer) LifetimeOrders() int {
	return c.lifetimeOrders
}

// RecordOrder increments the lifetime order count.
func (c *Customer) RecordOrder() {
	c.lifetimeOrders++
}

// NormalizePhone strips surrounding whitespace and inner spaces, dashes and
// parentheses so "+7 (701) 123-45-67" and "+77011234567" collide.
func NormalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')', '\t':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))
}

func (c *Customer) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Customer) setContact(contact Contact) error {
	name := strings.TrimSpace(contact.Name)
	phone := NormalizePhone(contact.Phone)

	var nameErr, phoneErr error
	if name == "" {
		nameErr = errs.NewValueIsRequiredError("customer name")
	}
	if phone == "" {
		phoneErr = errs.NewValueIsRequiredError("customer phone")
	}
	if err := errors.Join(nameErr, phoneErr); err != nil {
		return err
	}

	c.name = name
	c.phone = phone
	c.email = strings.TrimSpace(contact.Email)
	c.address = strings.TrimSpace(contact.Address)
	return nil
}
