package catalogrepo

import (
	"context"
	"errors"
	"strings"

	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormCatalogRepository implements ports.CatalogRepository using GORM.
type GormCatalogRepository struct {
	db *gorm.DB
}

func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

func (r *GormCatalogRepository) List(ctx context.Context, filter ports.CatalogFilter) ([]*catalog.Item, error) {
	query := r.db.WithContext(ctx).Model(&CatalogItemDTO{})

	if filter.Category != nil {
		query = query.Where("category = ?", filter.Category.String())
	}
	if filter.AvailableOnly {
		query = query.Where("available = ?", true)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		pattern := "%" + strings.ToLower(q) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	var dtos []CatalogItemDTO
	if err := query.Order("id").Find(&dtos).Error; err != nil {
		return nil, errs.NewPersistenceError("catalog.list", err)
	}

	items := make([]*catalog.Item, 0, len(dtos))
	for _, dto := range dtos {
		item, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *GormCatalogRepository) Get(ctx context.Context, id string) (*catalog.Item, error) {
	var dto CatalogItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("catalog item", id)
		}
		return nil, errs.NewPersistenceError("catalog.get", err)
	}
	return toDomain(dto)
}

// Upsert updates the row in place and inserts it when nothing matched.
func (r *GormCatalogRepository) Upsert(ctx context.Context, item *catalog.Item) (bool, error) {
	if err := item.Validate(); err != nil {
		return false, err
	}

	dto := fromDomain(item)
	db := r.db.WithContext(ctx)

	result := db.Model(&CatalogItemDTO{}).
		Where("id = ?", dto.ID).
		Select("name", "description", "ingredients", "size", "price", "prep_time_seconds", "category", "available").
		Updates(&dto)
	if result.Error != nil {
		return false, errs.NewPersistenceError("catalog.update", result.Error)
	}
	if result.RowsAffected > 0 {
		return false, nil
	}

	if err := db.Create(&dto).Error; err != nil {
		return false, errs.NewPersistenceError("catalog.insert", err)
	}
	return true, nil
}

func (r *GormCatalogRepository) Delete(ctx context.Context, id string) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&CatalogItemDTO{}, "id = ?", id)
	if result.Error != nil {
		return false, errs.NewPersistenceError("catalog.delete", result.Error)
	}
	return result.RowsAffected > 0, nil
}
