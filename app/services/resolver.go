package services

import (
	"context"

	"github.com/shashiranjanraj/catalog-ingest/app/repositories"
)

// Classification partitions a batch by whether each record's url is known.
// Every record lands in exactly one of the two slices, in batch order.
type Classification struct {
	Inserts []InsertCandidate
	Updates []UpdateCandidate
}

// Resolver decides what already exists in the catalog and creates missing
// lookup rows. It works on whatever handle its repositories are bound to,
// normally the batch transaction.
type Resolver struct {
	products *repositories.ProductRepository
	lookups  *repositories.LookupRepository
}

func NewResolver(products *repositories.ProductRepository, lookups *repositories.LookupRepository) *Resolver {
	return &Resolver{products: products, lookups: lookups}
}

// ClassifyProducts looks up every url of the batch in one query, ignoring
// case. A url seen twice in the batch but absent from the catalog is inserted
// once; the later occurrences update the row the first one creates.
func (r *Resolver) ClassifyProducts(ctx context.Context, batch []Record) (Classification, error) {
	urls := make([]string, 0, len(batch))
	seen := make(map[string]struct{}, len(batch))
	for _, rec := range batch {
		k := repositories.URLKey(rec.ProductURL)
		if _, ok := seen[k]; !ok {
			seen[k] = struct{}{}
			urls = append(urls, k)
		}
	}

	existing, err := r.products.IDsByURL(ctx, urls)
	if err != nil {
		return Classification{}, err
	}

	var c Classification
	firstInsert := make(map[string]int)
	for _, rec := range batch {
		k := repositories.URLKey(rec.ProductURL)
		if id, ok := existing[k]; ok {
			c.Updates = append(c.Updates, UpdateCandidate{Record: rec, CatalogID: id, pendingInsert: -1})
			continue
		}
		if idx, ok := firstInsert[k]; ok {
			c.Updates = append(c.Updates, UpdateCandidate{Record: rec, pendingInsert: idx})
			continue
		}
		firstInsert[k] = len(c.Inserts)
		c.Inserts = append(c.Inserts, InsertCandidate{Record: rec})
	}
	return c, nil
}

// ResolveBrands returns lowercased brand name -> id for every name, creating
// the missing ones in one batch. created counts the new rows.
func (r *Resolver) ResolveBrands(ctx context.Context, names []string) (ids map[string]uint, created int, err error) {
	return r.resolve(ctx, repositories.KindBrand, names)
}

// EnsureCategories creates the categories that do not exist yet.
func (r *Resolver) EnsureCategories(ctx context.Context, names []string) (created int, err error) {
	_, created, err = r.resolve(ctx, repositories.KindCategory, names)
	return created, err
}

// EnsureColors creates the colors that do not exist yet.
func (r *Resolver) EnsureColors(ctx context.Context, names []string) (created int, err error) {
	_, created, err = r.resolve(ctx, repositories.KindColor, names)
	return created, err
}

func (r *Resolver) resolve(ctx context.Context, kind repositories.LookupKind, names []string) (map[string]uint, int, error) {
	set := nameSet{}
	set.add(names...)
	keys := set.sorted()

	ids, err := r.lookups.FindByNames(ctx, kind, keys)
	if err != nil {
		return nil, 0, err
	}

	var missing []string
	for _, k := range keys {
		if _, ok := ids[k]; !ok {
			missing = append(missing, k)
		}
	}

	createdIDs, err := r.lookups.CreateNames(ctx, kind, missing)
	if err != nil {
		return nil, 0, err
	}
	for k, id := range createdIDs {
		ids[k] = id
	}
	return ids, len(missing), nil
}
