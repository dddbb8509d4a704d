// Package catalogrepo persists the menu in the catalog_items table.
package catalogrepo

import (
	"time"

	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type CatalogItemDTO struct {
	ID              string          `gorm:"type:varchar(32);primaryKey"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Description     string          `gorm:"type:text"`
	Ingredients     []string        `gorm:"type:text;serializer:json"`
	Size            string          `gorm:"type:varchar(16);not null"`
	Price           decimal.Decimal `gorm:"type:numeric;not null"`
	PrepTimeSeconds int64           `gorm:"not null"`
	Category        string          `gorm:"type:varchar(16);not null;index"`
	Available       bool            `gorm:"not null;index"`
	UpdatedAt       time.Time
}

func (CatalogItemDTO) TableName() string {
	return "catalog_items"
}

func fromDomain(item *catalog.Item) CatalogItemDTO {
	return CatalogItemDTO{
		ID:              item.ID(),
		Name:            item.Name(),
		Description:     item.Description(),
		Ingredients:     item.Ingredients(),
		Size:            item.Size().String(),
		Price:           item.Price().Amount(),
		PrepTimeSeconds: int64(item.PreparationTime() / time.Second),
		Category:        item.Category().String(),
		Available:       item.IsAvailable(),
	}
}

func toDomain(dto CatalogItemDTO) (*catalog.Item, error) {
	size, err := catalog.ParseSize(dto.Size)
	if err != nil {
		return nil, err
	}
	category, err := catalog.ParseCategory(dto.Category)
	if err != nil {
		return nil, err
	}
	price, err := kernel.NewMoney(dto.Price)
	if err != nil {
		return nil, err
	}
	return catalog.NewItem(dto.ID, catalog.Details{
		Name:            dto.Name,
		Description:     dto.Description,
		Ingredients:     dto.Ingredients,
		Size:            size,
		Price:           price,
		PreparationTime: time.Duration(dto.PrepTimeSeconds) * time.Second,
		Category:        category,
		Available:       dto.Available,
	})
}
