package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog-ingest/app/models"
	"github.com/shashiranjanraj/catalog-ingest/app/repositories"
)

func newResolver(t *testing.T) (*Resolver, *Executor) {
	db := newCatalog(t)
	products := repositories.NewProductRepository(db)
	return NewResolver(products, repositories.NewLookupRepository(db)), NewExecutor(products)
}

func TestClassifyProducts_Partition(t *testing.T) {
	r, exec := newResolver(t)
	ctx := context.Background()

	rows, err := exec.InsertProducts(ctx, []models.Product{{URL: "http://x/known", Title: "k"}})
	require.NoError(t, err)

	batch := []Record{
		{ProductID: StringID("1"), ProductURL: "http://x/new"},
		{ProductID: StringID("2"), ProductURL: "http://x/known"},
		{ProductID: StringID("3"), ProductURL: "http://x/other"},
		{ProductID: StringID("4"), ProductURL: "http://x/new"},
	}
	c, err := r.ClassifyProducts(ctx, batch)
	require.NoError(t, err)

	require.Len(t, c.Inserts, 2)
	assert.Equal(t, StringID("1"), c.Inserts[0].ProductID)
	assert.Equal(t, StringID("3"), c.Inserts[1].ProductID)

	require.Len(t, c.Updates, 2)
	assert.Equal(t, StringID("2"), c.Updates[0].ProductID)
	assert.Equal(t, rows[0].ID, c.Updates[0].CatalogID)
	assert.Equal(t, -1, c.Updates[0].pendingInsert)
	assert.Equal(t, StringID("4"), c.Updates[1].ProductID)
	assert.Zero(t, c.Updates[1].CatalogID)
	assert.Equal(t, 0, c.Updates[1].pendingInsert)
}

func TestClassifyProducts_URLCaseInsensitive(t *testing.T) {
	r, exec := newResolver(t)
	ctx := context.Background()

	rows, err := exec.InsertProducts(ctx, []models.Product{{URL: "http://Shop.example/P/1", Title: "k"}})
	require.NoError(t, err)

	c, err := r.ClassifyProducts(ctx, []Record{
		{ProductID: StringID("1"), ProductURL: "http://shop.example/p/1"},
		{ProductID: StringID("2"), ProductURL: "http://x/New"},
		{ProductID: StringID("3"), ProductURL: "HTTP://X/NEW"},
	})
	require.NoError(t, err)

	require.Len(t, c.Inserts, 1)
	assert.Equal(t, StringID("2"), c.Inserts[0].ProductID)
	require.Len(t, c.Updates, 2)
	assert.Equal(t, rows[0].ID, c.Updates[0].CatalogID)
	assert.Equal(t, 0, c.Updates[1].pendingInsert)
}

func TestResolveBrands_CreatesOnlyMissing(t *testing.T) {
	r, _ := newResolver(t)
	ctx := context.Background()

	ids, created, err := r.ResolveBrands(ctx, []string{"Nike", "adidas"})
	require.NoError(t, err)
	assert.Equal(t, 2, created)
	assert.Len(t, ids, 2)

	again, created, err := r.ResolveBrands(ctx, []string{"NIKE", " Adidas ", "puma", ""})
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.Equal(t, ids["nike"], again["nike"])
	assert.Equal(t, ids["adidas"], again["adidas"])
	assert.NotZero(t, again["puma"])
}

func TestEnsureCategoriesAndColors(t *testing.T) {
	r, _ := newResolver(t)
	ctx := context.Background()

	n, err := r.EnsureCategories(ctx, []string{"Tops", "tops", "Shirts"})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = r.EnsureCategories(ctx, []string{"TOPS"})
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = r.EnsureColors(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, n)
}
