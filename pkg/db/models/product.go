package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/printyke/printy-backend/pkg/enums"
)

// DefaultBleedMM is the standard cutting bleed assumed when a product does
// not configure its own.
const DefaultBleedMM = 3

// Product is a catalog entry with the defaults a quote item inherits.
type Product struct {
	ID                      uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID                  uuid.UUID         `gorm:"column:shop_id;type:uuid;not null;index"`
	Name                    string            `gorm:"column:name;not null"`
	Description             string            `gorm:"column:description;not null;default:''"`
	Category                string            `gorm:"column:category;not null;default:''"`
	PricingMode             enums.PricingMode `gorm:"column:pricing_mode;not null;default:'SHEET'"`
	DefaultFinishedWidthMM  int               `gorm:"column:default_finished_width_mm;not null;default:0"`
	DefaultFinishedHeightMM int               `gorm:"column:default_finished_height_mm;not null;default:0"`
	DefaultBleedMM          int               `gorm:"column:default_bleed_mm;not null;default:3"`
	DefaultSides            enums.Sides       `gorm:"column:default_sides;not null;default:'SIMPLEX'"`
	DefaultSheetSize        enums.SheetSize   `gorm:"column:default_sheet_size;not null;default:''"`
	MinQuantity             int               `gorm:"column:min_quantity;not null;default:1"`
	MinGSM                  *int              `gorm:"column:min_gsm"`
	MaxGSM                  *int              `gorm:"column:max_gsm"`
	AllowSimplex            bool              `gorm:"column:allow_simplex;not null;default:true"`
	AllowDuplex             bool              `gorm:"column:allow_duplex;not null;default:true"`
	IsActive                bool              `gorm:"column:is_active;not null;default:true"`
	CreatedAt               time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt               time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// Bleed returns the product's bleed, falling back to the standard default.
func (p *Product) Bleed() int {
	if p == nil || p.DefaultBleedMM <= 0 {
		return DefaultBleedMM
	}
	return p.DefaultBleedMM
}

// HasFinishedDimensions reports whether the product carries the finished
// size needed for imposition.
func (p *Product) HasFinishedDimensions() bool {
	return p != nil && p.DefaultFinishedWidthMM > 0 && p.DefaultFinishedHeightMM > 0
}
