package order

import (
	"fmt"

	"pizzeria/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
//	Pending ─> Confirmed ─> Preparing ─> Baking ─> Ready ─> Delivering ─> Completed
//	   └──────────┴────────────┴───────────┴─────────┴──────────┴──────> Cancelled
//
// Transitions only move forward; stages may be skipped. Completed and
// Cancelled are terminal. Delivering is reserved for delivery orders.
type Status int

const (
	// Unknown (0) catches uninitialised values.
	Unknown Status = iota
	Pending
	Confirmed
	Preparing
	Baking
	Ready
	Delivering
	Completed
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Pending:    "PENDING",
		Confirmed:  "CONFIRMED",
		Preparing:  "PREPARING",
		Baking:     "BAKING",
		Ready:      "READY",
		Delivering: "DELIVERING",
		Completed:  "COMPLETED",
		Cancelled:  "CANCELLED",
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{Pending, Confirmed, Preparing, Baking, Ready, Delivering, Completed, Cancelled}
}

// ActiveStatuses lists the non-terminal statuses.
func ActiveStatuses() []Status {
	return []Status{Pending, Confirmed, Preparing, Baking, Ready, Delivering}
}

func (s Status) Validate() error {
	if s < Pending || s > Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ParseStatus maps a machine name such as "BAKING" to a Status.
func ParseStatus(s string) (Status, error) {
	for _, st := range Statuses() {
		if st.String() == s {
			return st, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// ValidateTransition checks that an order of the given delivery type may move
// from s to target. Moving to the current status is always allowed.
//
// Returns:
//   - nil when the change is allowed or is a no-op
//   - a validation error when target is not a valid status
//   - *errs.InvalidTransitionError when the lifecycle forbids the change
func (s Status) ValidateTransition(target Status, deliveryType DeliveryType) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	if s == target {
		return nil
	}
	if s.IsTerminal() {
		return errs.NewInvalidTransitionErrorWithCause(s.String(), target.String(), fmt.Errorf("%s is terminal", s))
	}
	if target == Cancelled {
		return nil
	}
	if target == Delivering && deliveryType != Delivery {
		return errs.NewInvalidTransitionErrorWithCause(
			s.String(), target.String(),
			fmt.Errorf("%s orders are not delivered", deliveryType),
		)
	}
	if target < s {
		return errs.NewInvalidTransitionError(s.String(), target.String())
	}
	return nil
}
