package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/catalog-ingest/app/models"
	"github.com/shashiranjanraj/catalog-ingest/app/repositories"
)

func TestNewProductRow(t *testing.T) {
	rec := Record{
		ProductID:   StringID("sku-9"),
		ProductURL:  "http://x/9",
		ProductName: "Jacket",
		BrandName:   "Acme",
		Gender:      "Womén",
		Category:    strPtr("Outerwear"),
		RetailerID:  2,
	}
	row := NewProductRow(rec, map[string]uint{"acme": 7}, GenderIDs)

	assert.Equal(t, "Jacket", row.Title)
	assert.Equal(t, "sku-9", row.OriginalProductID)
	assert.Equal(t, uint(7), *row.BrandID)
	assert.Equal(t, GenderIDs[GenderFemale], *row.GenderID)
	assert.False(t, row.ToDelete)
	assert.Nil(t, row.Category)

	rec.BrandName = ""
	rec.Gender = " "
	row = NewProductRow(rec, map[string]uint{"acme": 7}, GenderIDs)
	assert.Nil(t, row.BrandID)
	assert.Nil(t, row.GenderID)
}

func TestUpdateProducts_MissingRow(t *testing.T) {
	db := newCatalog(t)
	exec := NewExecutor(repositories.NewProductRepository(db))

	err := exec.UpdateProducts(context.Background(), []UpdateCandidate{{
		Record:    Record{ProductID: StringID("x"), ProductURL: "http://x/gone"},
		CatalogID: 999,
	}}, nil, GenderIDs)
	require.Error(t, err)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestUpdateProducts_KeepsCategoryWhenAbsent(t *testing.T) {
	db := newCatalog(t)
	exec := NewExecutor(repositories.NewProductRepository(db))
	ctx := context.Background()

	rows, err := exec.InsertProducts(ctx, []models.Product{{
		URL:         "http://x/1",
		Title:       "old",
		Category:    strPtr("Tops"),
		SubCategory: strPtr("Tees"),
		ToDelete:    true,
	}})
	require.NoError(t, err)

	err = exec.UpdateProducts(ctx, []UpdateCandidate{{
		Record:    Record{ProductID: StringID("1"), ProductURL: "http://x/1", ProductName: "new", SubCategory: strPtr("Polos")},
		CatalogID: rows[0].ID,
	}}, nil, GenderIDs)
	require.NoError(t, err)

	var p models.Product
	require.NoError(t, db.First(&p, rows[0].ID).Error)
	assert.Equal(t, "new", p.Title)
	assert.Equal(t, "Tops", *p.Category)
	assert.Equal(t, "Polos", *p.SubCategory)
	assert.False(t, p.ToDelete)
}
