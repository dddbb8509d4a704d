package catalog_test

import (
	"testing"
	"time"

	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func margherita(t *testing.T) catalog.Details {
	t.Helper()
	price, err := kernel.MoneyFromInt(2500)
	require.NoError(t, err)
	return catalog.Details{
		Name:            "Margherita",
		Description:     "Tomato, mozzarella, basil",
		Ingredients:     []string{"tomato", " mozzarella ", "", "basil"},
		Size:            catalog.Medium,
		Price:           price,
		PreparationTime: 20 * time.Minute,
		Category:        catalog.Classic,
		Available:       true,
	}
}

func TestNewItem(t *testing.T) {
	t.Run("should create item with trimmed ingredients", func(t *testing.T) {
		item, err := catalog.NewItem(" P001 ", margherita(t))

		require.NoError(t, err)
		require.NoError(t, item.Validate())
		assert.Equal(t, "P001", item.ID())
		assert.Equal(t, []string{"tomato", "mozzarella", "basil"}, item.Ingredients())
		assert.Equal(t, 30, item.Size().Diameter())
		assert.Equal(t, "2500", item.Price().String())
		assert.True(t, item.IsAvailable())
	})

	t.Run("should join every violation", func(t *testing.T) {
		item, err := catalog.NewItem("", catalog.Details{})

		require.Error(t, err)
		assert.Nil(t, item)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "catalog item id")
		assert.Contains(t, err.Error(), "name")
		assert.Contains(t, err.Error(), "size")
		assert.Contains(t, err.Error(), "Money must be created")
		assert.Contains(t, err.Error(), "preparation time")
		assert.Contains(t, err.Error(), "category")
	})

	t.Run("missing price is a required value", func(t *testing.T) {
		details := margherita(t)
		details.Price = kernel.Money{}

		_, err := catalog.NewItem("P001", details)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.True(t, errs.IsValidation(err))
		assert.Contains(t, err.Error(), "value is required: price (cause: Money must be created")
	})

	t.Run("should reject overlong id", func(t *testing.T) {
		long := make([]byte, catalog.MaxIDLength+1)
		for i := range long {
			long[i] = 'x'
		}

		_, err := catalog.NewItem(string(long), margherita(t))

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var item catalog.Item

		assert.Equal(t, catalog.ErrItemIsNotConstructed, item.Validate())
	})
}

func TestItem_Revise(t *testing.T) {
	item, err := catalog.NewItem("P001", margherita(t))
	require.NoError(t, err)

	t.Run("should replace attributes", func(t *testing.T) {
		d := margherita(t)
		d.Available = false
		d.Size = catalog.XXL

		require.NoError(t, item.Revise(d))

		assert.False(t, item.IsAvailable())
		assert.Equal(t, catalog.XXL, item.Size())
		assert.Equal(t, "P001", item.ID())
	})

	t.Run("should leave item unchanged on error", func(t *testing.T) {
		before := item.Details()
		d := margherita(t)
		d.PreparationTime = 0
		d.Name = "Broken"

		require.Error(t, item.Revise(d))

		assert.Equal(t, before, item.Details())
	})
}

func TestSizeAndCategory(t *testing.T) {
	diameters := map[catalog.Size]int{catalog.Small: 25, catalog.Medium: 30, catalog.Large: 35, catalog.XXL: 40}
	for size, d := range diameters {
		parsed, err := catalog.ParseSize(size.String())
		require.NoError(t, err)
		assert.Equal(t, size, parsed)
		assert.Equal(t, d, size.Diameter())
	}

	for _, c := range catalog.Categories() {
		parsed, err := catalog.ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, parsed)
	}

	_, err := catalog.ParseSize("HUGE")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	_, err = catalog.ParseCategory("")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "UNKNOWN", catalog.Size(99).String())
	assert.Error(t, catalog.UnknownCategory.Validate())
}
