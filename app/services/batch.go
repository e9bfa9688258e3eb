package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog-ingest/app/models"
	"github.com/shashiranjanraj/catalog-ingest/app/repositories"
	"github.com/shashiranjanraj/catalog-ingest/pkg/logger"
	"github.com/shashiranjanraj/catalog-ingest/pkg/metrics"
)

// State is a step of batch reconciliation.
type State string

const (
	StateReceived        State = "received"
	StateClassified      State = "classified"
	StateLookupsResolved State = "lookups_resolved"
	StatePersisted       State = "persisted"
	StateCommitted       State = "committed"
	StateFailed          State = "failed"
)

// BatchError reports a rolled back batch. Stage is the last state the batch
// reached before the failure.
type BatchError struct {
	BatchID string
	Stage   State
	Err     error
}

// Error returns the catalog message unchanged.
func (e *BatchError) Error() string { return e.Err.Error() }

func (e *BatchError) Unwrap() error { return e.Err }

// Outcome is a committed batch.
type Outcome struct {
	BatchID           string
	Results           []ProcessedRecord
	Inserted          int
	Updated           int
	BrandsCreated     int
	CategoriesCreated int
	ColorsCreated     int
}

// BatchService reconciles batches against the catalog, one transaction each.
type BatchService struct {
	db       *gorm.DB
	products *repositories.ProductRepository
	lookups  *repositories.LookupRepository
}

func NewBatchService(db *gorm.DB) *BatchService {
	return &BatchService{
		db:       db,
		products: repositories.NewProductRepository(db),
		lookups:  repositories.NewLookupRepository(db),
	}
}

// ProcessBatch classifies records, resolves their lookups and writes the
// products. Either everything commits or nothing does. Results list the
// inserts first, then the updates, each in batch order.
func (s *BatchService) ProcessBatch(ctx context.Context, records []Record) (*Outcome, error) {
	start := time.Now()
	out := &Outcome{BatchID: uuid.NewString()}
	log := logger.WithCtx(ctx).With("batch_id", out.BatchID)

	state := StateReceived
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resolver := NewResolver(s.products.WithTx(tx), s.lookups.WithTx(tx))
		exec := NewExecutor(s.products.WithTx(tx))

		c, err := resolver.ClassifyProducts(ctx, records)
		if err != nil {
			return err
		}
		state = StateClassified
		log.Debug("batch classified", "inserts", len(c.Inserts), "updates", len(c.Updates))

		names := collectNames(c)
		if out.CategoriesCreated, err = resolver.EnsureCategories(ctx, names.categories.sorted()); err != nil {
			return err
		}
		brandIDs, created, err := resolver.ResolveBrands(ctx, names.brands.sorted())
		if err != nil {
			return err
		}
		out.BrandsCreated = created
		if out.ColorsCreated, err = resolver.EnsureColors(ctx, names.colors.sorted()); err != nil {
			return err
		}
		genderIDs := make(map[Gender]uint, len(names.genders))
		for g := range names.genders {
			genderIDs[g] = GenderIDs[g]
		}
		state = StateLookupsResolved

		if len(c.Inserts) > 0 {
			rows := make([]models.Product, len(c.Inserts))
			for i, in := range c.Inserts {
				rows[i] = NewProductRow(in.Record, brandIDs, genderIDs)
			}
			inserted, err := exec.InsertProducts(ctx, rows)
			if err != nil {
				return err
			}
			for i := range c.Inserts {
				c.Inserts[i].CatalogID = inserted[i].ID
			}
		}
		for i, u := range c.Updates {
			if u.pendingInsert >= 0 {
				c.Updates[i].CatalogID = c.Inserts[u.pendingInsert].CatalogID
			}
		}
		if len(c.Updates) > 0 {
			if err := exec.UpdateProducts(ctx, c.Updates, brandIDs, genderIDs); err != nil {
				return err
			}
		}
		state = StatePersisted

		out.Inserted, out.Updated = len(c.Inserts), len(c.Updates)
		out.Results = results(c)
		return nil
	})
	if err != nil {
		metrics.ObserveBatch(string(StateFailed), string(state), start)
		log.Error("batch rolled back", "stage", state, "error", err)
		return nil, &BatchError{BatchID: out.BatchID, Stage: state, Err: err}
	}

	metrics.ObserveBatch(string(StateCommitted), "", start)
	metrics.RecordsProcessed.WithLabelValues(ActionInsert).Add(float64(out.Inserted))
	metrics.RecordsProcessed.WithLabelValues(ActionUpdate).Add(float64(out.Updated))
	metrics.LookupsCreated.WithLabelValues(string(repositories.KindBrand)).Add(float64(out.BrandsCreated))
	metrics.LookupsCreated.WithLabelValues(string(repositories.KindCategory)).Add(float64(out.CategoriesCreated))
	metrics.LookupsCreated.WithLabelValues(string(repositories.KindColor)).Add(float64(out.ColorsCreated))

	log.Info("batch committed",
		"inserted", out.Inserted,
		"updated", out.Updated,
		"brands_created", out.BrandsCreated,
		"categories_created", out.CategoriesCreated,
		"colors_created", out.ColorsCreated,
		"duration", time.Since(start),
	)
	return out, nil
}

type batchNames struct {
	brands     nameSet
	categories nameSet
	colors     nameSet
	genders    map[Gender]struct{}
}

// collectNames gathers lookup names over both partitions.
func collectNames(c Classification) batchNames {
	n := batchNames{
		brands:     nameSet{},
		categories: nameSet{},
		colors:     nameSet{},
		genders:    map[Gender]struct{}{},
	}
	add := func(r Record) {
		n.brands.add(r.BrandName)
		n.categories.add(r.CategoryNames()...)
		n.colors.add(r.ColorNames()...)
		if g, ok := NormalizeGender(r.Gender); ok {
			n.genders[g] = struct{}{}
		}
	}
	for _, in := range c.Inserts {
		add(in.Record)
	}
	for _, u := range c.Updates {
		add(u.Record)
	}
	return n
}

func results(c Classification) []ProcessedRecord {
	out := make([]ProcessedRecord, 0, len(c.Inserts)+len(c.Updates))
	for _, in := range c.Inserts {
		out = append(out, ProcessedRecord{
			Record:            in.Record,
			Action:            ActionInsert,
			ID:                in.CatalogID,
			OriginalProductID: in.ProductID.String(),
		})
	}
	for _, u := range c.Updates {
		out = append(out, ProcessedRecord{
			Record:            u.Record,
			Action:            ActionUpdate,
			ID:                u.CatalogID,
			OriginalProductID: u.ProductID.String(),
		})
	}
	return out
}
