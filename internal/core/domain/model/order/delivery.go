package order

import (
	"fmt"

	"pizzeria/internal/pkg/errs"
)

// DeliveryType tells whether the customer collects the order or it is driven out.
type DeliveryType int

const (
	UnknownDeliveryType DeliveryType = iota
	Pickup
	Delivery
)

func (d DeliveryType) Validate() error {
	if d != Pickup && d != Delivery {
		return errs.NewValueIsInvalidErrorWithCause("delivery type", fmt.Errorf("%d is not a valid delivery type", d))
	}
	return nil
}

func (d DeliveryType) String() string {
	switch d {
	case Pickup:
		return "PICKUP"
	case Delivery:
		return "DELIVERY"
	default:
		return "UNKNOWN"
	}
}

func ParseDeliveryType(s string) (DeliveryType, error) {
	switch s {
	case "PICKUP":
		return Pickup, nil
	case "DELIVERY":
		return Delivery, nil
	}
	return UnknownDeliveryType, errs.NewValueIsInvalidErrorWithCause(
		"delivery type",
		fmt.Errorf("%q is not a valid delivery type", s),
	)
}
