package order

import (
	"time"

	"pizzeria/internal/core/domain/model/kernel"
)

// DomainEvent is something that happened to an order. Events are collected
// on the aggregate and drained by the unit of work when it commits.
type DomainEvent interface {
	EventName() string
	AggregateID() kernel.UUID
	OccurredAt() time.Time
}

const (
	OrderPlacedEventName        = "order.placed"
	OrderStatusChangedEventName = "order.status_changed"
)

// OrderPlaced is recorded once by NewOrder.
type OrderPlaced struct {
	OrderID      kernel.UUID
	CustomerID   *kernel.UUID
	Total        kernel.Money
	ItemCount    int
	DeliveryType DeliveryType
	PlacedAt     time.Time
}

func (e OrderPlaced) EventName() string { return OrderPlacedEventName }
func (e OrderPlaced) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderPlaced) OccurredAt() time.Time { return e.PlacedAt }

// OrderStatusChanged is recorded for every applied status change.
type OrderStatusChanged struct {
	OrderID   kernel.UUID
	From      Status
	To        Status
	ChangedAt time.Time
}

func (e OrderStatusChanged) EventName() string { return OrderStatusChangedEventName }
func (e OrderStatusChanged) AggregateID() kernel.UUID { return e.OrderID }
func (e OrderStatusChanged) OccurredAt() time.Time { return e.ChangedAt }
