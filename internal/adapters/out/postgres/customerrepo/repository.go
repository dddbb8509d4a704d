package customerrepo

import (
	"context"
	"errors"

	"pizzeria/internal/core/domain/model/customer"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// UpsertByPhone relies on the unique phone index: INSERT ... ON CONFLICT (phone)
// DO UPDATE, then a re-read of the canonical row. Empty email or address on the
// incoming customer keep the stored values.
func (r *GormCustomerRepository) UpsertByPhone(ctx context.Context, c *customer.Customer) (*customer.Customer, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	updates := []string{"name"}
	if c.Email() != "" {
		updates = append(updates, "email")
	}
	if c.Address() != "" {
		updates = append(updates, "address")
	}

	dto := fromDomain(c)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "phone"}},
			DoUpdates: clause.AssignmentColumns(updates),
		}).
		Create(&dto).Error
	if err != nil {
		return nil, errs.NewPersistenceError("customers.upsert", err)
	}

	return r.GetByPhone(ctx, c.Phone())
}

// Update persists contact details and counters.
func (r *GormCustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := fromDomain(c)
	result := r.db.WithContext(ctx).
		Model(&CustomerDTO{}).
		Where("id = ?", dto.ID.String()).
		Updates(map[string]any{
			"name":            dto.Name,
			"email":           dto.Email,
			"address":         dto.Address,
			"loyalty_points":  dto.LoyaltyPoints,
			"lifetime_orders": dto.LifetimeOrders,
		})
	if result.Error != nil {
		return errs.NewPersistenceError("customers.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("customer", c.ID().String())
	}
	return nil
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.first(ctx, id.String(), "id = ?", id.String())
}

func (r *GormCustomerRepository) GetByPhone(ctx context.Context, phone string) (*customer.Customer, error) {
	phone = customer.NormalizePhone(phone)
	if phone == "" {
		return nil, errs.NewValueIsRequiredError("customer phone")
	}
	return r.first(ctx, phone, "phone = ?", phone)
}

func (r *GormCustomerRepository) first(ctx context.Context, key string, query string, args ...any) (*customer.Customer, error) {
	var dto CustomerDTO
	if err := r.db.WithContext(ctx).Where(query, args...).First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("customer", key)
		}
		return nil, errs.NewPersistenceError("customers.get", err)
	}
	return toDomain(dto)
}
