package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mcastellon/shopora-backend/pkg/enums"
)

// Product is a catalog entry. Image fields hold filenames produced by the
// upload/thumbnail pipeline; Images is a comma-joined gallery list.
type Product struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name             string            `gorm:"column:name;not null" json:"name"`
	Slug             string            `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	ShortDescription string            `gorm:"column:short_description;not null" json:"short_description"`
	Description      string            `gorm:"column:description;not null" json:"description"`
	RegularPrice     decimal.Decimal   `gorm:"column:regular_price;type:numeric(12,2);not null" json:"regular_price"`
	SalePrice        decimal.Decimal   `gorm:"column:sale_price;type:numeric(12,2);not null" json:"sale_price"`
	SKU              string            `gorm:"column:sku;not null" json:"sku"`
	StockStatus      enums.StockStatus `gorm:"column:stock_status;type:text;not null;default:'instock'" json:"stock_status"`
	Featured         bool              `gorm:"column:featured;not null;default:false" json:"featured"`
	Quantity         int               `gorm:"column:quantity;not null;default:0" json:"quantity"`
	Image            string            `gorm:"column:image" json:"image"`
	Images           string            `gorm:"column:images" json:"images"`
	CategoryID       uuid.UUID         `gorm:"column:category_id;type:uuid;not null" json:"category_id"`
	BrandID          uuid.UUID         `gorm:"column:brand_id;type:uuid;not null" json:"brand_id"`
	Category         *Category         `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Brand            *Brand            `gorm:"foreignKey:BrandID" json:"brand,omitempty"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
