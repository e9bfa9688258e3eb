package models

import (
	"time"

	"gorm.io/datatypes"
)

// Column names are camelCase to match the catalog schema shared with the
// scrapers' other consumers.

// Brand is a lookup entity. Name is stored lowercased and unique, which is
// how case-insensitive uniqueness is kept portable across drivers.
type Brand struct {
	ID        uint      `gorm:"column:id;primaryKey"                         json:"id"`
	Name      string    `gorm:"column:name;size:255;not null;uniqueIndex"    json:"name"`
	SourceURL *string   `gorm:"column:sourceUrl;size:2048"                   json:"sourceUrl,omitempty"`
	CreatedAt time.Time `gorm:"column:createdAt;not null;autoCreateTime"     json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updatedAt;not null;autoUpdateTime"     json:"updatedAt"`
}

func (Brand) TableName() string { return "brand" }

// Gender is a static lookup table; rows are seeded, never created by ingestion.
type Gender struct {
	ID          uint      `gorm:"column:id;primaryKey"                      json:"id"`
	Name        string    `gorm:"column:name;size:64;not null;uniqueIndex"  json:"name"`
	PrettyName  string    `gorm:"column:prettyName;size:64;not null"        json:"prettyName"`
	Description string    `gorm:"column:description;size:255;not null"      json:"description"`
	CreatedAt   time.Time `gorm:"column:createdAt;not null;autoCreateTime"  json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updatedAt;not null;autoUpdateTime"  json:"updatedAt"`
}

func (Gender) TableName() string { return "gender" }

// Product is keyed for reconciliation by URL (not unique in the schema).
type Product struct {
	ID                uint      `gorm:"column:id;primaryKey"                       json:"id"`
	Title             string    `gorm:"column:title;size:1024;not null"            json:"title"`
	Description       string    `gorm:"column:description;type:text;not null"      json:"description"`
	BrandID           *uint     `gorm:"column:brandId;index"                       json:"brandId"`
	URL               string    `gorm:"column:url;size:2048;not null;index"        json:"url"`
	GenderID          *uint     `gorm:"column:genderId;index"                      json:"genderId"`
	RetailerID        int       `gorm:"column:retailerId;not null"                 json:"retailerId"`
	OriginalProductID string    `gorm:"column:originalProductId;size:255"          json:"originalProductId"`
	Category          *string   `gorm:"column:category;size:255"                   json:"category,omitempty"`
	SubCategory       *string   `gorm:"column:subCategory;size:255"                json:"subCategory,omitempty"`
	ToDelete          bool      `gorm:"column:toDelete;not null;default:false"     json:"toDelete"`
	CreatedAt         time.Time `gorm:"column:createdAt;not null;autoCreateTime"   json:"createdAt"`
	UpdatedAt         time.Time `gorm:"column:updatedAt;not null;autoUpdateTime"   json:"updatedAt"`

	Brand  *Brand  `gorm:"foreignKey:BrandID"  json:"-"`
	Gender *Gender `gorm:"foreignKey:GenderID" json:"-"`
}

func (Product) TableName() string { return "product" }

// ProductCategory is a lookup entity; a sub category is just another row.
type ProductCategory struct {
	ID        uint      `gorm:"column:id;primaryKey"                      json:"id"`
	Name      string    `gorm:"column:name;size:255;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"column:createdAt;not null;autoCreateTime"  json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updatedAt;not null;autoUpdateTime"  json:"updatedAt"`
}

func (ProductCategory) TableName() string { return "productcategory" }

// ProductHasCategory links products to categories. CategoryLevel 1 is the
// top level, 2 the sub level.
type ProductHasCategory struct {
	ID            uint      `gorm:"column:id;primaryKey"                     json:"id"`
	ProductID     uint      `gorm:"column:productId;not null;index"          json:"productId"`
	CategoryID    uint      `gorm:"column:categoryId;not null;index"         json:"categoryId"`
	CategoryLevel int       `gorm:"column:categoryLevel;not null;default:1"  json:"categoryLevel"`
	CreatedAt     time.Time `gorm:"column:createdAt;not null;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"column:updatedAt;not null;autoUpdateTime" json:"updatedAt"`

	Product  *Product         `gorm:"foreignKey:ProductID"  json:"-"`
	Category *ProductCategory `gorm:"foreignKey:CategoryID" json:"-"`
}

func (ProductHasCategory) TableName() string { return "producthascategory" }

// Color is a lookup entity referenced by product images.
type Color struct {
	ID        uint      `gorm:"column:id;primaryKey"                      json:"id"`
	Name      string    `gorm:"column:name;size:255;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `gorm:"column:createdAt;not null;autoCreateTime"  json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updatedAt;not null;autoUpdateTime"  json:"updatedAt"`
}

func (Color) TableName() string { return "color" }

// ProductImage holds per-color price data and image URL sets. Ingestion does
// not populate it yet.
type ProductImage struct {
	ID               uint           `gorm:"column:id;primaryKey"              json:"id"`
	ProductID        uint           `gorm:"column:productId;not null;index"   json:"productId"`
	ColorID          *uint          `gorm:"column:colorId;index"              json:"colorId"`
	Prices           datatypes.JSON `gorm:"column:prices;not null"            json:"prices"`
	OriginalImages   datatypes.JSON `gorm:"column:originalImages"             json:"originalImages,omitempty"`
	ReuploadedImages datatypes.JSON `gorm:"column:reuploadedImages"           json:"reuploadedImages,omitempty"`

	Product *Product `gorm:"foreignKey:ProductID" json:"-"`
	Color   *Color   `gorm:"foreignKey:ColorID"   json:"-"`
}

func (ProductImage) TableName() string { return "productimage" }
