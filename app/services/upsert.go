package services

import (
	"context"

	"github.com/shashiranjanraj/catalog-ingest/app/models"
	"github.com/shashiranjanraj/catalog-ingest/app/repositories"
)

// Executor writes product rows. It never commits; the caller owns the
// transaction its repository is bound to.
type Executor struct {
	products *repositories.ProductRepository
}

func NewExecutor(products *repositories.ProductRepository) *Executor {
	return &Executor{products: products}
}

// NewProductRow maps an insert candidate to a catalog row. Category fields
// are left unset on insert.
func NewProductRow(rec Record, brandIDs map[string]uint, genderIDs map[Gender]uint) models.Product {
	return models.Product{
		Title:             rec.ProductName,
		Description:       rec.Description,
		URL:               rec.ProductURL,
		BrandID:           brandID(rec.BrandName, brandIDs),
		GenderID:          genderID(rec.Gender, genderIDs),
		RetailerID:        rec.RetailerID,
		OriginalProductID: rec.ProductID.String(),
		ToDelete:          false,
	}
}

// InsertProducts creates rows in one batch. The i-th returned row is the
// i-th input with its generated id.
func (e *Executor) InsertProducts(ctx context.Context, rows []models.Product) ([]models.Product, error) {
	if err := e.products.CreateBatch(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateProducts overwrites each target row from its record and clears the
// delete flag. Category fields are only touched when the record has them.
func (e *Executor) UpdateProducts(ctx context.Context, updates []UpdateCandidate, brandIDs map[string]uint, genderIDs map[Gender]uint) error {
	for _, u := range updates {
		p, err := e.products.FindByID(ctx, u.CatalogID)
		if err != nil {
			return err
		}

		p.Title = u.ProductName
		p.Description = u.Description
		p.URL = u.ProductURL
		p.BrandID = brandID(u.BrandName, brandIDs)
		p.GenderID = genderID(u.Gender, genderIDs)
		p.ToDelete = false
		if u.Category != nil {
			p.Category = u.Category
		}
		if u.SubCategory != nil {
			p.SubCategory = u.SubCategory
		}

		if err := e.products.Save(ctx, &p); err != nil {
			return err
		}
	}
	return nil
}

func brandID(name string, ids map[string]uint) *uint {
	k := lookupKey(name)
	if k == "" {
		return nil
	}
	id, ok := ids[k]
	if !ok {
		return nil
	}
	return &id
}

func genderID(raw string, ids map[Gender]uint) *uint {
	g, ok := NormalizeGender(raw)
	if !ok {
		return nil
	}
	id, ok := ids[g]
	if !ok {
		return nil
	}
	return &id
}
