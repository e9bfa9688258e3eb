package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/catalog-ingest/app/models"
	"github.com/shashiranjanraj/catalog-ingest/pkg/metrics"
)

// ErrProductNotFound is returned when an update targets a vanished row.
var ErrProductNotFound = errors.New("product not found")

// insertChunk bounds the rows per INSERT statement; drivers cap bind params.
const insertChunk = 500

// ProductRepository handles database operations for Product.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// WithTx returns a repository bound to tx.
func (r *ProductRepository) WithTx(tx *gorm.DB) *ProductRepository {
	return &ProductRepository{db: tx}
}

// IDsByURL returns lowercased url -> product id for every url already in the
// catalog. Urls match case-insensitively. When a url is present more than
// once the oldest row wins.
func (r *ProductRepository) IDsByURL(ctx context.Context, urls []string) (map[string]uint, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	out := make(map[string]uint, len(urls))
	if len(urls) == 0 {
		return out, nil
	}

	keys := make([]string, len(urls))
	for i, u := range urls {
		keys[i] = URLKey(u)
	}

	var rows []struct {
		ID  uint
		URL string
	}
	err := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Select("id, url").
		Where("LOWER(url) IN ?", keys).
		Order("id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("find products by url: %w", err)
	}

	for _, row := range rows {
		k := URLKey(row.URL)
		if _, seen := out[k]; !seen {
			out[k] = row.ID
		}
	}
	return out, nil
}

// CreateBatch inserts rows in order and fills in their generated ids.
func (r *ProductRepository) CreateBatch(ctx context.Context, rows []models.Product) error {
	defer metrics.ObserveDBQuery("insert", time.Now())

	if len(rows) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(&rows, insertChunk).Error; err != nil {
		return fmt.Errorf("create products: %w", err)
	}
	return nil
}

// FindByID looks up a product by primary key.
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (models.Product, error) {
	defer metrics.ObserveDBQuery("select", time.Now())

	var p models.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return p, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
	}
	return p, err
}

// Save persists every column of an existing product.
func (r *ProductRepository) Save(ctx context.Context, p *models.Product) error {
	defer metrics.ObserveDBQuery("update", time.Now())

	if err := r.db.WithContext(ctx).Save(p).Error; err != nil {
		return fmt.Errorf("update product %d: %w", p.ID, err)
	}
	return nil
}

// URLKey is the form a product url is matched by.
func URLKey(u string) string { return strings.ToLower(strings.TrimSpace(u)) }
