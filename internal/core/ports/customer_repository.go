package ports

import (
	"context"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
)

// CustomerRepository persists customers keyed by phone.
type CustomerRepository interface {
	// UpsertByPhone inserts the customer or, when the phone is already taken,
	// refreshes the stored name, plus email and address when c carries them
	// (blank values keep what is stored). It returns the stored customer,
	// whose id may differ from the argument's. Concurrent calls for one phone
	// never create two customers.
	UpsertByPhone(ctx context.Context, c *customer.Customer) (*customer.Customer, error)

	// Update persists the lifetime counters of an existing customer.
	Update(ctx context.Context, c *customer.Customer) error

	Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)

	GetByPhone(ctx context.Context, phone string) (*customer.Customer, error)
}
