package services

import (
	"context"
	"testing"

	"techshop/models"
	"techshop/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorefront_FallsBackWhileCatalogEmpty(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t, repositories.NewMemoryStore())
	storefront := NewStorefront(catalog, models.DemoProducts)

	assert.True(t, storefront.UsingFallback())
	assert.Equal(t, ids(models.DemoProducts), ids(storefront.Products()))
	p, ok := storefront.Product(1)
	require.True(t, ok)
	assert.Equal(t, "AMD Ryzen 5 5600X", p.Name)

	added, err := catalog.AddProduct(ctx, validInput("Custom CPU", 10))
	require.NoError(t, err)

	assert.False(t, storefront.UsingFallback())
	assert.Equal(t, []int64{added.ID}, ids(storefront.Products()))
	_, ok = storefront.Product(1)
	assert.False(t, ok)
}

func TestStorefront_Options(t *testing.T) {
	ctx := context.Background()
	catalog := newTestCatalog(t, repositories.NewMemoryStore())
	storefront := NewStorefront(catalog, nil)

	_, err := catalog.ImportProducts(ctx, []models.Product{
		{Name: "Fan", Category: "Cooling", Brand: "Noctua", Price: 20},
		{Name: "Case", Category: "Case", Brand: "Fractal", Price: 90},
		{Name: "CPU", Category: "Processor", Brand: "AMD", Price: 200},
	})
	require.NoError(t, err)

	categories := storefront.Categories()
	assert.Equal(t, models.FilterAll, categories[0])
	assert.Equal(t, models.SuggestedCategories, categories[1:len(models.SuggestedCategories)+1])
	assert.Equal(t, []string{"Case", "Cooling"}, categories[len(models.SuggestedCategories)+1:])

	brands := storefront.Brands()
	assert.Equal(t, []string{"Fractal", "Noctua"}, brands[len(models.SuggestedBrands)+1:])
}
