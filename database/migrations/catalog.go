package migrations

import (
	"github.com/shashiranjanraj/catalog-ingest/app/models"
	"github.com/shashiranjanraj/catalog-ingest/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20240301000000_create_lookup_tables", &CreateLookupTables{})
	migration.Register("20240301000001_create_product_table", &CreateProductTable{})
	migration.Register("20240301000002_create_product_link_tables", &CreateProductLinkTables{})
}

// -------- 0001: brand, gender, productcategory, color --------

type CreateLookupTables struct{}

func (m *CreateLookupTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Brand{}, &models.Gender{}, &models.ProductCategory{}, &models.Color{})
}

func (m *CreateLookupTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("color", "productcategory", "gender", "brand")
}

// -------- 0002: product --------

type CreateProductTable struct{}

func (m *CreateProductTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("product")
}

// -------- 0003: producthascategory, productimage --------

type CreateProductLinkTables struct{}

func (m *CreateProductLinkTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.ProductHasCategory{}, &models.ProductImage{})
}

func (m *CreateProductLinkTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("productimage", "producthascategory")
}
