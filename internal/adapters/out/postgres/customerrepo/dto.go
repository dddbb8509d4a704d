// Package customerrepo persists customers in the customers table, keyed by
// a unique phone number.
package customerrepo

import (
	"time"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type CustomerDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Phone          string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	Email          string    `gorm:"type:varchar(255)"`
	Address        string    `gorm:"type:varchar(500)"`
	RegisteredAt   time.Time `gorm:"not null"`
	LoyaltyPoints  int       `gorm:"not null;default:0"`
	LifetimeOrders int       `gorm:"not null;default:0"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

func fromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:             c.ID().Bytes(),
		Name:           c.Name(),
		Phone:          c.Phone(),
		Email:          c.Email(),
		Address:        c.Address(),
		RegisteredAt:   c.RegisteredAt().UTC(),
		LoyaltyPoints:  c.LoyaltyPoints(),
		LifetimeOrders: c.LifetimeOrders(),
	}
}

func toDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return customer.RestoreCustomer(
		id,
		customer.Contact{
			Name:    dto.Name,
			Phone:   dto.Phone,
			Email:   dto.Email,
			Address: dto.Address,
		},
		dto.RegisteredAt,
		dto.LoyaltyPoints,
		dto.LifetimeOrders,
	)
}
