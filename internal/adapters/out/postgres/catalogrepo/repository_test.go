package catalogrepo_test

import (
	"testing"
	"time"

	postgres_adapter "pizzeria/internal/adapters/out/postgres"
	"pizzeria/internal/adapters/out/postgres/catalogrepo"
	"pizzeria/internal/core/domain/model/catalog"
	"pizzeria/internal/core/domain/model/kernel"
	"pizzeria/internal/core/ports"
	"pizzeria/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRepository(t *testing.T) *catalogrepo.GormCatalogRepository {
	t.Helper()
	db, err := postgres_adapter.Open(postgres_adapter.DBConfig{
		Driver:     postgres_adapter.DriverSQLite,
		SQLitePath: ":memory:",
	})
	require.NoError(t, err)
	require.NoError(t, postgres_adapter.Migrate(db))
	return catalogrepo.NewGormCatalogRepository(db)
}

func item(t *testing.T, id, name string, category catalog.Category, available bool) *catalog.Item {
	t.Helper()
	price, err := kernel.MoneyFromString("2490.50")
	require.NoError(t, err)
	it, err := catalog.NewItem(id, catalog.Details{
		Name:            name,
		Description:     name + " with extra cheese",
		Ingredients:     []string{"dough", "cheese"},
		Size:            catalog.Large,
		Price:           price,
		PreparationTime: 25 * time.Minute,
		Category:        category,
		Available:       available,
	})
	require.NoError(t, err)
	return it
}

func TestGormCatalogRepository_UpsertAndGet(t *testing.T) {
	ctx := t.Context()
	repo := newRepository(t)
	original := item(t, "P001", "Margherita", catalog.Classic, true)

	created, err := repo.Upsert(ctx, original)
	require.NoError(t, err)
	assert.True(t, created)

	stored, err := repo.Get(ctx, "P001")
	require.NoError(t, err)
	assert.Equal(t, "Margherita", stored.Name())
	assert.Equal(t, "Margherita with extra cheese", stored.Description())
	assert.Equal(t, []string{"dough", "cheese"}, stored.Ingredients())
	assert.Equal(t, catalog.Large, stored.Size())
	assert.True(t, original.Price().IsEqual(stored.Price()))
	assert.Equal(t, "2490.5", stored.Price().String())
	assert.Equal(t, 25*time.Minute, stored.PreparationTime())
	assert.Equal(t, catalog.Classic, stored.Category())
	assert.True(t, stored.IsAvailable())

	details := stored.Details()
	details.Available = false
	details.Ingredients = nil
	require.NoError(t, stored.Revise(details))
	created, err = repo.Upsert(ctx, stored)
	require.NoError(t, err)
	assert.False(t, created)

	revised, err := repo.Get(ctx, "P001")
	require.NoError(t, err)
	assert.False(t, revised.IsAvailable())
	assert.Empty(t, revised.Ingredients())
}

func TestGormCatalogRepository_GetUnknown(t *testing.T) {
	_, err := newRepository(t).Get(t.Context(), "nope")

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestGormCatalogRepository_List(t *testing.T) {
	ctx := t.Context()
	repo := newRepository(t)
	for _, it := range []*catalog.Item{
		item(t, "P003", "Veggie Garden", catalog.Vegetarian, true),
		item(t, "P001", "Margherita", catalog.Classic, true),
		item(t, "P002", "Pepperoni", catalog.Classic, false),
	} {
		_, err := repo.Upsert(ctx, it)
		require.NoError(t, err)
	}

	ids := func(items []*catalog.Item) []string {
		out := make([]string, 0, len(items))
		for _, it := range items {
			out = append(out, it.ID())
		}
		return out
	}
	classic := catalog.Classic

	tests := []struct {
		name     string
		filter   ports.CatalogFilter
		expected []string
	}{
		{name: "everything by id", filter: ports.CatalogFilter{}, expected: []string{"P001", "P002", "P003"}},
		{name: "category", filter: ports.CatalogFilter{Category: &classic}, expected: []string{"P001", "P002"}},
		{name: "available only", filter: ports.CatalogFilter{AvailableOnly: true}, expected: []string{"P001", "P003"}},
		{name: "query is case insensitive", filter: ports.CatalogFilter{Query: "PEPPER"}, expected: []string{"P002"}},
		{name: "query matches description", filter: ports.CatalogFilter{Query: "extra cheese"}, expected: []string{"P001", "P002", "P003"}},
		{name: "no match", filter: ports.CatalogFilter{Query: "pineapple"}, expected: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, ids(items))
		})
	}
}

func TestGormCatalogRepository_Delete(t *testing.T) {
	ctx := t.Context()
	repo := newRepository(t)
	_, err := repo.Upsert(ctx, item(t, "P001", "Margherita", catalog.Classic, true))
	require.NoError(t, err)

	deleted, err := repo.Delete(ctx, "P001")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, "P001")
	require.NoError(t, err)
	assert.False(t, deleted)
}
