package orderrepo

import (
	"context"
	"errors"

	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/domain/model/order"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects stored aggregates so the unit of work can drain
// their domain events on commit.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates the repository. tracker may be nil for
// read-only use outside a unit of work.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order row, then its lines. Callers needing both or
// neither run it inside a unit of work.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)
	if err := db.Omit(clause.Associations).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("orders.add", err)
	}
	if err := db.Create(&dto.Lines).Error; err != nil {
		return errs.NewPersistenceError("orders.add_lines", err)
	}

	r.track(aggregate)
	return nil
}

// Update writes the mutable columns only; lines never change after placement.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID.String()).
		Updates(map[string]any{
			"status":             dto.Status,
			"estimated_ready_at": dto.EstimatedReadyAt,
		})
	if result.Error != nil {
		return errs.NewPersistenceError("orders.update", result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	r.track(aggregate)
	return nil
}

func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(id, r.db.WithContext(ctx))
}

// GetForUpdate locks the order row with SELECT ... FOR UPDATE. SQLite has
// no row locks; the clause is dropped there and the database lock serialises writers.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(id, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}))
}

func (r *GormOrderRepository) List(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	query := r.db.WithContext(ctx).Preload("Lines", orderedLines)

	if len(filter.Statuses) > 0 {
		names := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			names = append(names, s.String())
		}
		query = query.Where("status IN ?", names)
	}
	if filter.PlacedFrom != nil {
		query = query.Where("placed_at >= ?", filter.PlacedFrom.UTC())
	}
	if filter.PlacedTo != nil {
		query = query.Where("placed_at < ?", filter.PlacedTo.UTC())
	}

	var dtos []OrderDTO
	if err := query.Order("placed_at DESC").Order("id DESC").Find(&dtos).Error; err != nil {
		return nil, errs.NewPersistenceError("orders.list", err)
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

func (r *GormOrderRepository) AddStatusChange(ctx context.Context, change order.StatusChange) error {
	if err := errors.Join(change.OrderID.Validate(), change.To.Validate()); err != nil {
		return err
	}

	dto := historyFromDomain(change)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewPersistenceError("orders.add_status_change", err)
	}
	return nil
}

func (r *GormOrderRepository) get(id kernel.UUID, db *gorm.DB) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := db.Preload("Lines", orderedLines).First(&dto, "id = ?", id.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, errs.NewPersistenceError("orders.get", err)
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) track(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}

func orderedLines(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
