package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string          `gorm:"size:250;not null" json:"title"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Quantity    int             `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
	Slug        string          `gorm:"uniqueIndex;size:250;not null" json:"slug"`
	CategoryID  uint            `gorm:"index;not null" json:"category_id"`
	Category    *Category       `json:"category,omitempty"`
	BrandID     *uint           `json:"brand_id,omitempty"`
	Brand       *Brand          `json:"brand,omitempty"`
	ColorCode   string          `gorm:"default:'#000000'" json:"color_code"`
	ColorName   string          `json:"color_name"`
	Description string          `gorm:"type:text" json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	EditedAt    time.Time       `gorm:"autoUpdateTime" json:"edited_at"`

	Images     []Gallery            `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Parameters []ProductDescription `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"parameters,omitempty"`
}

type Gallery struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Image     string `gorm:"not null" json:"image"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
}

// ProductDescription is one named parameter of a product spec sheet.
type ProductDescription struct {
	ID            uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Parameter     string `gorm:"size:255;not null" json:"parameter"`
	ParameterInfo string `gorm:"size:400;not null" json:"parameter_info"`
	ProductID     uint   `gorm:"index;not null" json:"product_id"`
}
