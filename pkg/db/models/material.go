package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Material is large-format media (vinyl, banner, canvas) sold by area.
// Sheet-fed stock lives in Paper instead.
type Material struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID       uuid.UUID       `gorm:"column:shop_id;type:uuid;not null;index"`
	MaterialType string          `gorm:"column:material_type;not null"`
	Unit         string          `gorm:"column:unit;not null;default:'SQM'"`
	BuyingPrice  decimal.Decimal `gorm:"column:buying_price;type:numeric(12,2);not null"`
	SellingPrice decimal.Decimal `gorm:"column:selling_price;type:numeric(12,2);not null"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
