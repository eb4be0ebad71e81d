package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogDomain "github.com/allisson/catalog/internal/catalog/domain"
)

func TestSeeder_Seed(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_EmptyCatalog", func(t *testing.T) {
		store := newFakeStore()
		categories := fakeCategories{store: store}
		materials := fakeMaterials{store: store}
		tx := &fakeTxManager{}
		codec := newTestCodec(t)
		products := NewProductUseCase(tx, store, categories, materials, &fakeStatistics{}, codec, nil, nil)

		result, err := NewSeeder(tx, categories, materials, products).Seed(ctx)
		require.NoError(t, err)

		assert.Equal(t, &SeedResult{Categories: 3, Materials: 3, Products: 5}, result)

		page, err := products.List(ctx, catalogDomain.ProductFilter{SKU: "d443"}, 1, 10)
		require.NoError(t, err)
		require.Len(t, page.Products, 1)
		assert.Equal(t, "Product1", page.Products[0].Name)
		assert.Equal(t, []int64{1, 2}, page.Products[0].MaterialIDs)
		assert.Equal(t, 1, page.Products[0].MediaCount)

		for _, record := range mustListSKUs(t, store) {
			assert.NotContains(t, record.EncryptedSKU, "f2821c0c88c19a99918d4")
		}
	})

	t.Run("Success_SkipsWhenCategoriesExist", func(t *testing.T) {
		store := newFakeStore()
		categories := fakeCategories{store: store}
		require.NoError(t, categories.Create(ctx, &catalogDomain.Category{Name: "existing"}))
		materials := fakeMaterials{store: store}
		tx := &fakeTxManager{}
		products := NewProductUseCase(tx, store, categories, materials, &fakeStatistics{}, newTestCodec(t), nil, nil)

		result, err := NewSeeder(tx, categories, materials, products).Seed(ctx)
		require.NoError(t, err)
		assert.True(t, result.Skipped)
		assert.Empty(t, store.products)
	})
}

func mustListSKUs(t *testing.T, store *fakeStore) []catalogDomain.SKURecord {
	t.Helper()
	records, err := store.ListSKUs(context.Background())
	require.NoError(t, err)
	return records
}

func TestCategoryAndMaterialUseCase_List(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	categories := fakeCategories{store: store}
	materials := fakeMaterials{store: store}
	require.NoError(t, categories.Create(ctx, &catalogDomain.Category{Name: "Shoes"}))
	require.NoError(t, materials.Create(ctx, &catalogDomain.Material{Name: "Leather"}))

	gotCategories, err := NewCategoryUseCase(categories).List(ctx)
	require.NoError(t, err)
	require.Len(t, gotCategories, 1)
	assert.Equal(t, "Shoes", gotCategories[0].Name)

	gotMaterials, err := NewMaterialUseCase(materials).List(ctx)
	require.NoError(t, err)
	require.Len(t, gotMaterials, 1)
	assert.Equal(t, "Leather", gotMaterials[0].Name)
}
