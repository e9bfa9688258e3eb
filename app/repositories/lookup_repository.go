package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog-ingest/app/models"
	"github.com/shashiranjanraj/catalog-ingest/pkg/metrics"
)

// LookupKind names one of the lazily created lookup tables.
type LookupKind string

const (
	KindBrand    LookupKind = "brand"
	KindCategory LookupKind = "category"
	KindColor    LookupKind = "color"
)

func (k LookupKind) model() (interface{}, error) {
	switch k {
	case KindBrand:
		return &models.Brand{}, nil
	case KindCategory:
		return &models.ProductCategory{}, nil
	case KindColor:
		return &models.Color{}, nil
	}
	return nil, fmt.Errorf("unknown lookup kind %q", string(k))
}

// LookupRepository reads and creates brand, category and color rows by name.
type LookupRepository struct {
	db *gorm.DB
}

func NewLookupRepository(db *gorm.DB) *LookupRepository {
	return &LookupRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *LookupRepository) WithTx(tx *gorm.DB) *LookupRepository {
	return &LookupRepository{db: tx}
}

// FindByNames returns lowercased name -> id for the names that exist,
// comparing case-insensitively. names must already be lowercased.
func (r *LookupRepository) FindByNames(ctx context.Context, kind LookupKind, names []string) (map[string]uint, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	out := make(map[string]uint, len(names))
	if len(names) == 0 {
		return out, nil
	}

	model, err := kind.model()
	if err != nil {
		return nil, err
	}

	var rows []struct {
		ID   uint
		Name string
	}
	err = r.db.WithContext(ctx).
		Model(model).
		Select("id, name").
		Where("LOWER(name) IN ?", names).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find %s rows: %w", kind, err)
	}

	for _, row := range rows {
		out[strings.ToLower(row.Name)] = row.ID
	}
	return out, nil
}

// CreateNames inserts one row per name in a single batch and returns
// name -> generated id.
func (r *LookupRepository) CreateNames(ctx context.Context, kind LookupKind, names []string) (map[string]uint, error) {
	defer metrics.ObserveDBQuery("insert", time.Now())

	out := make(map[string]uint, len(names))
	if len(names) == 0 {
		return out, nil
	}

	db := r.db.WithContext(ctx)
	var err error
	switch kind {
	case KindBrand:
		rows := make([]models.Brand, len(names))
		for i, n := range names {
			rows[i].Name = n
		}
		if err = db.CreateInBatches(&rows, insertChunk).Error; err == nil {
			for _, row := range rows {
				out[row.Name] = row.ID
			}
		}
	case KindCategory:
		rows := make([]models.ProductCategory, len(names))
		for i, n := range names {
			rows[i].Name = n
		}
		if err = db.CreateInBatches(&rows, insertChunk).Error; err == nil {
			for _, row := range rows {
				out[row.Name] = row.ID
			}
		}
	case KindColor:
		rows := make([]models.Color, len(names))
		for i, n := range names {
			rows[i].Name = n
		}
		if err = db.CreateInBatches(&rows, insertChunk).Error; err == nil {
			for _, row := range rows {
				out[row.Name] = row.ID
			}
		}
	default:
		_, err = kind.model()
		return nil, err
	}

	if err != nil {
		return nil, fmt.Errorf("create %s rows: %w", kind, err)
	}
	return out, nil
}
