// Package outboxrepo stores domain events in the outbox_messages table until
// the relay publishes them.
package outboxrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"

	"github.com/oklog/ulid/v2"
)

// OutboxMessageDTO ids are ULIDs, so ordering by id follows creation order
// within one process.
type OutboxMessageDTO struct {
	ID          string     `gorm:"type:varchar(26);primaryKey"`
	EventName   string     `gorm:"type:varchar(64);not null"`
	AggregateID string     `gorm:"type:varchar(36);not null;index"`
	Payload     string     `gorm:"type:text;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	SentAt      *time.Time `gorm:"index"`
	Attempts    int        `gorm:"not null;default:0"`
	LastError   string     `gorm:"type:text"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

type orderPlacedPayload struct {
	OrderID      string    `json:"order_id"`
	CustomerID   *string   `json:"customer_id,omitempty"`
	Total        string    `json:"total"`
	ItemCount    int       `json:"item_count"`
	DeliveryType string    `json:"delivery_type"`
	PlacedAt     time.Time `json:"placed_at"`
}

type orderStatusChangedPayload struct {
	OrderID   string    `json:"order_id"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	ChangedAt time.Time `json:"changed_at"`
}

// NewMessage serialises a domain event into an unsent outbox row.
func NewMessage(event order.DomainEvent) (OutboxMessageDTO, error) {
	var payload any
	switch e := event.(type) {
	case order.OrderPlaced:
		p := orderPlacedPayload{
			OrderID:      e.OrderID.String(),
			Total:        e.Total.String(),
			ItemCount:    e.ItemCount,
			DeliveryType: e.DeliveryType.String(),
			PlacedAt:     e.PlacedAt.UTC(),
		}
		if e.CustomerID != nil {
			id := e.CustomerID.String()
			p.CustomerID = &id
		}
		payload = p
	case order.OrderStatusChanged:
		payload = orderStatusChangedPayload{
			OrderID:   e.OrderID.String(),
			From:      e.From.String(),
			To:        e.To.String(),
			ChangedAt: e.ChangedAt.UTC(),
		}
	default:
		return OutboxMessageDTO{}, fmt.Errorf("unsupported domain event %T", event)
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return OutboxMessageDTO{}, fmt.Errorf("marshal %s: %w", event.EventName(), err)
	}

	return OutboxMessageDTO{
		ID:          ulid.Make().String(),
		EventName:   event.EventName(),
		AggregateID: event.AggregateID().String(),
		Payload:     string(raw),
		OccurredAt:  event.OccurredAt().UTC(),
	}, nil
}

func toPort(dto OutboxMessageDTO) ports.OutboxMessage {
	return ports.OutboxMessage{
		ID:          dto.ID,
		EventName:   dto.EventName,
		AggregateID: dto.AggregateID,
		Payload:     []byte(dto.Payload),
		OccurredAt:  dto.OccurredAt,
		Attempts:    dto.Attempts,
	}
}
