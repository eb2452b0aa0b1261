package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printyke/printy-backend/pkg/enums"
)

// Paper is a shop's sheet-fed stock, priced per sheet. Large-format media
// lives in Material instead.
type Paper struct {
	ID              uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID          uuid.UUID       `gorm:"column:shop_id;type:uuid;not null;index"`
	SheetSize       enums.SheetSize `gorm:"column:sheet_size;not null;default:'A4'"`
	GSM             int             `gorm:"column:gsm;not null"`
	PaperType       enums.PaperType `gorm:"column:paper_type;not null;default:'UNCOATED'"`
	WidthMM         *int            `gorm:"column:width_mm"`
	HeightMM        *int            `gorm:"column:height_mm"`
	BuyingPrice     decimal.Decimal `gorm:"column:buying_price;type:numeric(12,2);not null"`
	SellingPrice    decimal.Decimal `gorm:"column:selling_price;type:numeric(12,2);not null"`
	QuantityInStock int             `gorm:"column:quantity_in_stock;not null;default:0"`
	IsActive        bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// Dimensions returns the physical sheet size in millimeters, falling back
// to the standard dimensions for the named sheet size.
func (p *Paper) Dimensions() (width, height int, ok bool) {
	if p == nil {
		return 0, 0, false
	}
	if p.WidthMM != nil && p.HeightMM != nil && *p.WidthMM > 0 && *p.HeightMM > 0 {
		return *p.WidthMM, *p.HeightMM, true
	}
	if dims, found := p.SheetSize.Dimensions(); found {
		return dims.WidthMM, dims.HeightMM, true
	}
	return 0, 0, false
}
