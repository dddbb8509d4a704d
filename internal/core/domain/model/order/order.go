package order

import (
	"errors"
	"slices"
	"strings"
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"
	"pizzeria/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrEmptyOrder is returned for an order without lines.
	ErrEmptyOrder = errs.NewValueIsRequiredError("order lines")

	// ErrDeliveryAddressRequired is returned for a delivery order without address.
	ErrDeliveryAddressRequired = errs.NewValueIsRequiredError("delivery address")
)

// Order is the aggregate root of the order lifecycle.
//
// Invariants:
//   - at least one line, every line with positive quantity
//   - a delivery address is present iff the order is a delivery
//   - the total is derived from lines and never stored on the aggregate
//   - only status and estimated-ready time change after creation
type Order struct {
	id               kernel.UUID
	customerID       *kernel.UUID
	lines            []Line
	status           Status
	placedAt         time.Time
	estimatedReadyAt time.Time
	payment          Payment
	notes            string
	deliveryType     DeliveryType
	deliveryAddress  string

	events []DomainEvent
	guard  guard.ConstructorGuard
}

// Draft is the validated input of NewOrder.
type Draft struct {
	CustomerID      *kernel.UUID
	Lines           []Line
	DeliveryType    DeliveryType
	DeliveryAddress string
	Notes           string
	PaymentMethod   PaymentMethod
}

// NewOrder places an order in Pending status. The estimated ready time is
// placedAt plus the longest line preparation time, and a pending payment is
// created for the order total. An OrderPlaced event is recorded.
//
// Example:
//
//	o, err := order.NewOrder(kernel.NewUUID(), order.Draft{
//	    Lines:         []order.Line{line},
//	    DeliveryType:  order.Pickup,
//	    PaymentMethod: order.Cash,
//	}, time.Now())
func NewOrder(id kernel.UUID, draft Draft, placedAt time.Time) (*Order, error) {
	o := &Order{
		status:   Pending,
		placedAt: placedAt,
		notes:    strings.TrimSpace(draft.Notes),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(draft.CustomerID),
		o.setLines(draft.Lines),
		o.setDelivery(draft.DeliveryType, draft.DeliveryAddress),
	); err != nil {
		return nil, err
	}

	payment, err := newPayment(draft.PaymentMethod, o.Total())
	if err != nil {
		return nil, err
	}
	o.payment = payment
	o.estimatedReadyAt = placedAt.Add(o.MaxPreparationTime())

	o.record(OrderPlaced{
		OrderID:      o.id,
		CustomerID:   o.customerID,
		Total:        o.Total(),
		ItemCount:    o.ItemCount(),
		DeliveryType: o.deliveryType,
		PlacedAt:     placedAt,
	})
	return o, nil
}

// Snapshot is the persisted state of an order.
type Snapshot struct {
	ID               kernel.UUID
	CustomerID       *kernel.UUID
	Lines            []Line
	Status           Status
	PlacedAt         time.Time
	EstimatedReadyAt time.Time
	Payment          Payment
	Notes            string
	DeliveryType     DeliveryType
	DeliveryAddress  string
}

// RestoreOrder rebuilds an order from storage without recording events.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		placedAt:         s.PlacedAt,
		estimatedReadyAt: s.EstimatedReadyAt,
		payment:          s.Payment,
		notes:            s.Notes,
		guard:            guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomerID(s.CustomerID),
		o.setLines(s.Lines),
		o.setDelivery(s.DeliveryType, s.DeliveryAddress),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = s.Status
	return o, nil
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

// CustomerID is nil for anonymous orders.
func (o *Order) CustomerID() *kernel.UUID {
	return o.customerID
}

// Lines returns a copy of the order lines.
func (o *Order) Lines() []Line {
	return slices.Clone(o.lines)
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) PlacedAt() time.Time {
	return o.placedAt
}

func (o *Order) EstimatedReadyAt() time.Time {
	return o.estimatedReadyAt
}

func (o *Order) Payment() Payment {
	return o.payment
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) DeliveryType() DeliveryType {
	return o.deliveryType
}

// DeliveryAddress is empty for pickup orders.
func (o *Order) DeliveryAddress() string {
	return o.deliveryAddress
}

// Total is the exact sum of line totals.
func (o *Order) Total() kernel.Money {
	total := kernel.ZeroMoney()
	for _, l := range o.lines {
		total = total.Add(l.Total())
	}
	return total
}

// MaxPreparationTime is the longest line preparation time, 0 without lines.
// Lines are assumed to be prepared in parallel.
func (o *Order) MaxPreparationTime() time.Duration {
	var maxPrep time.Duration
	for _, l := range o.lines {
		maxPrep = max(maxPrep, l.PreparationTime())
	}
	return maxPrep
}

// ItemCount is the sum of line quantities.
func (o *Order) ItemCount() int {
	n := 0
	for _, l := range o.lines {
		n += l.Quantity()
	}
	return n
}

// StatusChange describes the outcome of ChangeStatus.
type StatusChange struct {
	OrderID kernel.UUID
	From    Status
	To      Status
	At      time.Time
}

// Changed is false when the order already was in the requested status.
func (c StatusChange) Changed() bool {
	return c.From != c.To
}

// ChangeStatus moves the order to target. Requesting the current status is a
// no-op. On error the order is unchanged.
//
// Returns:
//   - validation error when target is not a valid status
//   - *errs.InvalidTransitionError when the lifecycle forbids the change
func (o *Order) ChangeStatus(target Status, at time.Time) (StatusChange, error) {
	if err := o.status.ValidateTransition(target, o.deliveryType); err != nil {
		return StatusChange{}, err
	}

	change := StatusChange{OrderID: o.id, From: o.status, To: target, At: at}
	if !change.Changed() {
		return change, nil
	}

	o.status = target
	o.record(OrderStatusChanged{OrderID: o.id, From: change.From, To: target, ChangedAt: at})
	return change, nil
}

// PullEvents returns the recorded events and clears them.
func (o *Order) PullEvents() []DomainEvent {
	events := o.events
	o.events = nil
	return events
}

func (o *Order) record(e DomainEvent) {
	o.events = append(o.events, e)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return err
	}
	cp := *id
	o.customerID = &cp
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrEmptyOrder
	}
	for _, l := range lines {
		if err := l.Validate(); err != nil {
			return err
		}
	}
	o.lines = slices.Clone(lines)
	return nil
}

// setDelivery drops an address given for a pickup order.
func (o *Order) setDelivery(deliveryType DeliveryType, address string) error {
	if err := deliveryType.Validate(); err != nil {
		return err
	}
	address = strings.TrimSpace(address)
	if deliveryType == Delivery && address == "" {
		return ErrDeliveryAddressRequired
	}
	if deliveryType == Pickup {
		address = ""
	}
	o.deliveryType = deliveryType
	o.deliveryAddress = address
	return nil
}
