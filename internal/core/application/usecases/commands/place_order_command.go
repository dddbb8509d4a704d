package commands

import (
	"errors"
	"fmt"
	"strings"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

// MaxIdempotencyKeyLength bounds client-supplied idempotency keys.
const MaxIdempotencyKeyLength = 128

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// OrderItem is one requested catalog item and quantity.
type OrderItem struct {
	CatalogItemID string
	Quantity      int
}

// PlaceOrderParams is the raw order submission.
type PlaceOrderParams struct {
	Customer        customer.Contact
	Items           []OrderItem
	DeliveryType    order.DeliveryType
	DeliveryAddress string
	Notes           string
	PaymentMethod   order.PaymentMethod
	// IdempotencyKey is optional; a repeated key returns the first order.
	IdempotencyKey string
}

// PlaceOrderCommand is a validated order submission. Everything that can be
// checked without storage is checked by NewPlaceOrderCommand.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommand(PlaceOrderParams{
//	    Customer:      customer.Contact{Name: "Dana", Phone: "+77011234567"},
//	    Items:         []OrderItem{{CatalogItemID: "P001", Quantity: 2}},
//	    DeliveryType:  order.Pickup,
//	    PaymentMethod: order.Cash,
//	})
//	if err != nil {
//	    return err // validation error, nothing was stored
//	}
//	result, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	contact         customer.Contact
	items           []OrderItem
	deliveryType    order.DeliveryType
	deliveryAddress string
	notes           string
	paymentMethod   order.PaymentMethod
	idempotencyKey  string

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the submission and returns every violation joined.
func NewPlaceOrderCommand(p PlaceOrderParams) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		notes: strings.TrimSpace(p.Notes),
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setContact(p.Customer),
		cmd.setItems(p.Items),
		cmd.setDelivery(p.DeliveryType, p.DeliveryAddress),
		cmd.setPaymentMethod(p.PaymentMethod),
		cmd.setIdempotencyKey(p.IdempotencyKey),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) Contact() customer.Contact {
	return c.contact
}

// Items returns a copy of the requested items.
func (c PlaceOrderCommand) Items() []OrderItem {
	return append([]OrderItem(nil), c.items...)
}

func (c PlaceOrderCommand) DeliveryType() order.DeliveryType {
	return c.deliveryType
}

func (c PlaceOrderCommand) DeliveryAddress() string {
	return c.deliveryAddress
}

func (c PlaceOrderCommand) Notes() string {
	return c.notes
}

func (c PlaceOrderCommand) PaymentMethod() order.PaymentMethod {
	return c.paymentMethod
}

func (c PlaceOrderCommand) IdempotencyKey() string {
	return c.idempotencyKey
}

func (c *PlaceOrderCommand) setContact(contact customer.Contact) error {
	contact.Name = strings.TrimSpace(contact.Name)
	contact.Phone = customer.NormalizePhone(contact.Phone)

	var nameErr, phoneErr error
	if contact.Name == "" {
		nameErr = errs.NewValueIsRequiredError("customer name")
	}
	if contact.Phone == "" {
		phoneErr = errs.NewValueIsRequiredError("customer phone")
	}
	if err := errors.Join(nameErr, phoneErr); err != nil {
		return err
	}

	c.contact = contact
	return nil
}

func (c *PlaceOrderCommand) setItems(items []OrderItem) error {
	if len(items) == 0 {
		return order.ErrEmptyOrder
	}

	var itemErrs []error
	cleaned := make([]OrderItem, 0, len(items))
	for i, item := range items {
		item.CatalogItemID = strings.TrimSpace(item.CatalogItemID)
		if item.CatalogItemID == "" {
			itemErrs = append(itemErrs, errs.NewValueIsRequiredError(fmt.Sprintf("items[%d].catalog item id", i)))
		}
		if item.Quantity < 1 {
			itemErrs = append(itemErrs, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("items[%d].quantity", i),
				fmt.Errorf("%d is not greater than 0", item.Quantity),
			))
		}
		cleaned = append(cleaned, item)
	}
	if err := errors.Join(itemErrs...); err != nil {
		return err
	}

	c.items = cleaned
	return nil
}

func (c *PlaceOrderCommand) setDelivery(deliveryType order.DeliveryType, address string) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}
	address = strings.TrimSpace(address)
	if deliveryType == order.Delivery && address == "" {
		return order.ErrDeliveryAddressRequired
	}

	c.deliveryType = deliveryType
	c.deliveryAddress = address
	return nil
}

func (c *PlaceOrderCommand) setPaymentMethod(method order.PaymentMethod) error {
	if err := method.Validate(); err != nil {
		return err
	}
	c.paymentMethod = method
	return nil
}

func (c *PlaceOrderCommand) setIdempotencyKey(key string) error {
	key = strings.TrimSpace(key)
	if len(key) > MaxIdempotencyKeyLength {
		return errs.NewValueIsOutOfRangeError("idempotency key length", len(key), 0, MaxIdempotencyKeyLength)
	}
	c.idempotencyKey = key
	return nil
}
