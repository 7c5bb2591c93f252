package tests

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopapi/pkg/domain/model"
	"shopapi/pkg/domain/service"
	"shopapi/pkg/domain/store"
)

func setupProducts(t *testing.T) (service.ProductService, *store.ProductStore, *mockEventDispatcher) {
	t.Helper()
	products := store.NewProductStore()
	dispatcher := &mockEventDispatcher{}
	productService := service.NewProductService(products, dispatcher)
	return productService, products, dispatcher
}

func int64Ptr(v int64) *int64 { return &v }

// seedCatalog inserts six products with strictly increasing creation times so
// the newest-first ordering of search results is deterministic.
func seedCatalog(t *testing.T, productService service.ProductService) {
	t.Helper()
	fixtures := []model.NewProduct{
		{Name: "iPhone 15", Description: "Latest Apple smartphone", Price: 1000, Quantity: 50, Category: "Electronics"},
		{Name: "Samsung Galaxy S24", Description: "Android flagship smartphone", Price: 900, Quantity: 30, Category: "Electronics"},
		{Name: "JavaScript Guide", Description: "Learn modern JavaScript", Price: 30, Quantity: 100, Category: "Books"},
		{Name: "Advanced TypeScript", Description: "Deep dive into TypeScript", Price: 35, Quantity: 80, Category: "Books"},
		{Name: "The Great Gatsby", Description: "Classic American novel", Price: 20, Quantity: 60, Category: "Books"},
		{Name: "Coffee Maker", Description: "Automatic drip coffee maker", Price: 200, Quantity: 25, Category: "Home"},
	}
	for _, f := range fixtures {
		_, err := productService.CreateProduct(f)
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond)
	}
}

func TestCreateProduct(t *testing.T) {
	productService, products, dispatcher := setupProducts(t)

	product, err := productService.CreateProduct(model.NewProduct{
		Name:        "Coffee Maker",
		Description: "Automatic drip coffee maker",
		Price:       200,
		Quantity:    25,
		Category:    "Home",
	})

	require.NoError(t, err)
	require.NotNil(t, product)
	assert.Equal(t, uuid.Version(4), product.ID.Version())
	assert.Equal(t, "Coffee Maker", product.Name)
	assert.Equal(t, int64(200), product.Price)
	assert.Equal(t, 25, product.Quantity)
	assert.Equal(t, product.CreatedAt, product.UpdatedAt)
	assert.Equal(t, 1, products.Len())

	require.Len(t, dispatcher.events, 1)
	event, ok := dispatcher.events[0].(model.ProductCreated)
	require.True(t, ok)
	assert.Equal(t, product.ID, event.ProductID)
	assert.Equal(t, "Home", event.Category)
}

func TestGetProduct(t *testing.T) {
	productService, _, _ := setupProducts(t)

	created, err := productService.CreateProduct(model.NewProduct{
		Name: "iPhone 15", Description: "Latest Apple smartphone",
		Price: 1000, Quantity: 50, Category: "Electronics",
	})
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		got, err := productService.GetProduct(created.ID)
		require.NoError(t, err)
		assert.Equal(t, *created, *got)
	})

	t.Run("Fail on unknown id", func(t *testing.T) {
		_, err := productService.GetProduct(uuid.New())
		assert.ErrorIs(t, err, model.ErrProductNotFound)
		assert.ErrorIs(t, err, model.ErrNotFound)
	})
}

func TestSearchProducts(t *testing.T) {
	productService, _, _ := setupProducts(t)
	seedCatalog(t, productService)

	t.Run("No filters returns everything newest first", func(t *testing.T) {
		page, err := productService.SearchProducts(service.SearchProductsQuery{Page: 1, PageSize: 10})
		require.NoError(t, err)
		require.Len(t, page.Products, 6)
		assert.Equal(t, 6, page.TotalCount)
		assert.Equal(t, "Coffee Maker", page.Products[0].Name)
		assert.Equal(t, "iPhone 15", page.Products[5].Name)
	})

	t.Run("Case-insensitive substring over name and description", func(t *testing.T) {
		page, err := productService.SearchProducts(service.SearchProductsQuery{
			Query: "SMARTPHONE", Page: 1, PageSize: 10,
		})
		require.NoError(t, err)
		require.Len(t, page.Products, 2)
		assert.Equal(t, "Samsung Galaxy S24", page.Products[0].Name)
		assert.Equal(t, "iPhone 15", page.Products[1].Name)
	})

	t.Run("Category is an exact match", func(t *testing.T) {
		page, err := productService.SearchProducts(service.SearchProductsQuery{
			Category: "Books", Page: 1, PageSize: 10,
		})
		require.NoError(t, err)
		require.Len(t, page.Products, 3)
		for _, p := range page.Products {
			assert.Equal(t, "Books", p.Category)
		}
	})

	t.Run("Price range bounds are inclusive", func(t *testing.T) {
		page, err := productService.SearchProducts(service.SearchProductsQuery{
			MinPrice: int64Ptr(30), MaxPrice: int64Ptr(200), Page: 1, PageSize: 10,
		})
		require.NoError(t, err)
		require.Len(t, page.Products, 3)
		for _, p := range page.Products {
			assert.GreaterOrEqual(t, p.Price, int64(30))
			assert.LessOrEqual(t, p.Price, int64(200))
		}
	})

	t.Run("Filters combine with AND", func(t *testing.T) {
		page, err := productService.SearchProducts(service.SearchProductsQuery{
			Query: "smartphone", Category: "Electronics", MinPrice: int64Ptr(950),
			Page: 1, PageSize: 10,
		})
		require.NoError(t, err)
		require.Len(t, page.Products, 1)
		assert.Equal(t, "iPhone 15", page.Products[0].Name)
	})

	t.Run("Pagination slices the sorted result", func(t *testing.T) {
		page, err := productService.SearchProducts(service.SearchProductsQuery{Page: 2, PageSize: 2})
		require.NoError(t, err)
		require.Len(t, page.Products, 2)
		assert.Equal(t, 6, page.TotalCount)
		assert.Equal(t, 2, page.Page)
		assert.Equal(t, 2, page.PageSize)
		assert.Equal(t, "Advanced TypeScript", page.Products[0].Name)
		assert.Equal(t, "JavaScript Guide", page.Products[1].Name)
	})

	t.Run("Page past the end is empty, not an error", func(t *testing.T) {
		page, err := productService.SearchProducts(service.SearchProductsQuery{Page: 4, PageSize: 2})
		require.NoError(t, err)
		assert.Empty(t, page.Products)
		assert.Equal(t, 6, page.TotalCount)
	})

	t.Run("No matches is empty", func(t *testing.T) {
		page, err := productService.SearchProducts(service.SearchProductsQuery{
			Query: "NonExistentXYZ", Page: 1, PageSize: 10,
		})
		require.NoError(t, err)
		assert.Empty(t, page.Products)
		assert.Equal(t, 0, page.TotalCount)
	})
}
