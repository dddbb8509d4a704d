// Package orderrepo maps order aggregates to the orders, order_lines and
// order_status_history tables.
package orderrepo

import (
	"time"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is one row of the orders table. Statuses and enums are stored by
// machine name so the table stays readable without the code.
type OrderDTO struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey"`
	CustomerID       *uuid.UUID     `gorm:"type:uuid;index"`
	Status           string         `gorm:"type:varchar(16);not null;index"`
	PlacedAt         time.Time      `gorm:"not null;index"`
	EstimatedReadyAt time.Time      `gorm:"not null"`
	Notes            string         `gorm:"type:text"`
	DeliveryType     string         `gorm:"type:varchar(16);not null"`
	DeliveryAddress  string         `gorm:"type:varchar(500)"`
	Payment          PaymentDTO     `gorm:"embedded;embeddedPrefix:payment_"`
	Lines            []OrderLineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

type PaymentDTO struct {
	ID          string          `gorm:"type:varchar(16)"`
	Method      string          `gorm:"type:varchar(16)"`
	Amount      decimal.Decimal `gorm:"type:numeric"`
	Status      string          `gorm:"type:varchar(16)"`
	CompletedAt *time.Time
}

// OrderLineDTO keeps the catalog snapshot taken when the order was placed.
type OrderLineDTO struct {
	ID              uint            `gorm:"primaryKey;autoIncrement"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Position        int             `gorm:"not null"`
	CatalogItemID   string          `gorm:"type:varchar(32);not null;index"`
	Name            string          `gorm:"type:varchar(255);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:numeric;not null"`
	PrepTimeSeconds int64           `gorm:"not null"`
	Quantity        int             `gorm:"not null"`
}

func (OrderLineDTO) TableName() string {
	return "order_lines"
}

// StatusHistoryDTO is one applied status change. FromStatus is NULL for the
// entry written at placement.
type StatusHistoryDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;not null;index"`
	FromStatus *string   `gorm:"type:varchar(16)"`
	ToStatus   string    `gorm:"type:varchar(16);not null"`
	ChangedAt  time.Time `gorm:"not null"`
}

func (StatusHistoryDTO) TableName() string {
	return "order_status_history"
}

func fromDomain(aggregate *order.Order) OrderDTO {
	var customerID *uuid.UUID
	if id := aggregate.CustomerID(); id != nil {
		raw := id.Bytes()
		customerID = &raw
	}

	orderID := aggregate.ID().Bytes()
	lines := make([]OrderLineDTO, 0, len(aggregate.Lines()))
	for i, l := range aggregate.Lines() {
		lines = append(lines, OrderLineDTO{
			OrderID:         orderID,
			Position:        i,
			CatalogItemID:   l.CatalogItemID(),
			Name:            l.Name(),
			UnitPrice:       l.UnitPrice().Amount(),
			PrepTimeSeconds: int64(l.PreparationTime() / time.Second),
			Quantity:        l.Quantity(),
		})
	}

	p := aggregate.Payment()
	return OrderDTO{
		ID:               orderID,
		CustomerID:       customerID,
		Status:           aggregate.Status().String(),
		PlacedAt:         aggregate.PlacedAt().UTC(),
		EstimatedReadyAt: aggregate.EstimatedReadyAt().UTC(),
		Notes:            aggregate.Notes(),
		DeliveryType:     aggregate.DeliveryType().String(),
		DeliveryAddress:  aggregate.DeliveryAddress(),
		Payment: PaymentDTO{
			ID:          p.ID(),
			Method:      p.Method().String(),
			Amount:      p.Amount().Amount(),
			Status:      p.Status().String(),
			CompletedAt: p.CompletedAt(),
		},
		Lines: lines,
	}
}

func historyFromDomain(change order.StatusChange) StatusHistoryDTO {
	dto := StatusHistoryDTO{
		OrderID:   change.OrderID.Bytes(),
		ToStatus:  change.To.String(),
		ChangedAt: change.At.UTC(),
	}
	if change.From != order.Unknown {
		from := change.From.String()
		dto.FromStatus = &from
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var customerID *kernel.UUID
	if dto.CustomerID != nil {
		cID, customerErr := kernel.UUIDFromBytes(dto.CustomerID[:])
		if customerErr != nil {
			return nil, customerErr
		}
		customerID = &cID
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	for _, l := range dto.Lines {
		line, lineErr := lineToDomain(l)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}
	deliveryType, err := order.ParseDeliveryType(dto.DeliveryType)
	if err != nil {
		return nil, err
	}
	payment, err := paymentToDomain(dto.Payment)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:               id,
		CustomerID:       customerID,
		Lines:            lines,
		Status:           status,
		PlacedAt:         dto.PlacedAt,
		EstimatedReadyAt: dto.EstimatedReadyAt,
		Payment:          payment,
		Notes:            dto.Notes,
		DeliveryType:     deliveryType,
		DeliveryAddress:  dto.DeliveryAddress,
	})
}

func lineToDomain(dto OrderLineDTO) (order.Line, error) {
	price, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Line{}, err
	}
	return order.NewLine(
		dto.CatalogItemID,
		dto.Name,
		price,
		time.Duration(dto.PrepTimeSeconds)*time.Second,
		dto.Quantity,
	)
}

func paymentToDomain(dto PaymentDTO) (order.Payment, error) {
	method, err := order.ParsePaymentMethod(dto.Method)
	if err != nil {
		return order.Payment{}, err
	}
	status, err := order.ParsePaymentStatus(dto.Status)
	if err != nil {
		return order.Payment{}, err
	}
	amount, err := kernel.NewMoney(dto.Amount)
	if err != nil {
		return order.Payment{}, err
	}
	return order.RestorePayment(dto.ID, method, amount, status, dto.CompletedAt)
}
