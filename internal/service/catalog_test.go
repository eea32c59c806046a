package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/zest/product-api/internal/models"
	"github.com/zest/product-api/internal/repo"
)

func newTestCatalogService(t *testing.T) *CatalogService {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Item{}))

	return &CatalogService{Repo: &repo.GormRepo{DB: db}}
}

func TestCatalogService_CreateProduct(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	product, err := svc.CreateProduct(ctx, "Keyboard", "admin@x.com")
	require.NoError(t, err)
	assert.NotZero(t, product.ID)
	assert.Equal(t, "Keyboard", product.ProductName)
	assert.Equal(t, "admin@x.com", product.CreatedBy)
}

func TestCatalogService_CreateProduct_DefaultsActor(t *testing.T) {
	svc := newTestCatalogService(t)

	product, err := svc.CreateProduct(context.Background(), "Mouse", "")
	require.NoError(t, err)
	assert.Equal(t, "system", product.CreatedBy)
}

func TestCatalogService_CreateProduct_EmptyName(t *testing.T) {
	svc := newTestCatalogService(t)

	_, err := svc.CreateProduct(context.Background(), "   ", "admin@x.com")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCatalogService_UpdateProduct(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, "Keyboard", "admin@x.com")
	require.NoError(t, err)

	updated, err := svc.UpdateProduct(ctx, created.ID, "Mechanical Keyboard", "editor@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Mechanical Keyboard", updated.ProductName)
	assert.Equal(t, "editor@x.com", updated.ModifiedBy)
	assert.Equal(t, "admin@x.com", updated.CreatedBy)
}

func TestCatalogService_UpdateProduct_NotFound(t *testing.T) {
	svc := newTestCatalogService(t)

	_, err := svc.UpdateProduct(context.Background(), 9999, "Ghost", "editor@x.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCatalogService_DeleteProduct(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, "Keyboard", "admin@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))

	_, err = svc.GetProduct(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, svc.DeleteProduct(ctx, created.ID), gorm.ErrRecordNotFound)
}

func TestCatalogService_ListProducts_PaginationAndFilter(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		_, err := svc.CreateProduct(ctx, fmt.Sprintf("Widget %02d", i), "seed")
		require.NoError(t, err)
	}
	_, err := svc.CreateProduct(ctx, "Gadget", "seed")
	require.NoError(t, err)

	page, err := svc.ListProducts(ctx, "", 0, 10, "id", "asc")
	require.NoError(t, err)
	assert.Len(t, page.Content, 10)
	assert.EqualValues(t, 13, page.TotalElements)
	assert.EqualValues(t, 2, page.TotalPages)
	assert.False(t, page.Last)

	page, err = svc.ListProducts(ctx, "", 1, 10, "id", "asc")
	require.NoError(t, err)
	assert.Len(t, page.Content, 3)
	assert.True(t, page.Last)

	page, err = svc.ListProducts(ctx, "widget", 0, 20, "id", "asc")
	require.NoError(t, err)
	assert.Len(t, page.Content, 12)

	page, err = svc.ListProducts(ctx, "", 0, 20, "productName", "desc")
	require.NoError(t, err)
	require.NotEmpty(t, page.Content)
	assert.Equal(t, "Widget 12", page.Content[0].ProductName)
}

func TestCatalogService_ListProducts_InvalidSort(t *testing.T) {
	svc := newTestCatalogService(t)

	_, err := svc.ListProducts(context.Background(), "", 0, 10, "password_hash", "asc")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCatalogService_ListItems(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, "Keyboard", "admin@x.com")
	require.NoError(t, err)

	require.NoError(t, svc.Repo.DB.Create(&models.Item{ProductID: created.ID, Quantity: 5}).Error)
	require.NoError(t, svc.Repo.DB.Create(&models.Item{ProductID: created.ID, Quantity: 7}).Error)

	items, err := svc.ListItems(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.ListItems(ctx, 9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestCatalogService_Search_Disabled(t *testing.T) {
	svc := newTestCatalogService(t)

	assert.False(t, svc.SearchEnabled())
	_, err := svc.SearchProducts(context.Background(), "widget", 0, 10)
	assert.Error(t, err)
}
