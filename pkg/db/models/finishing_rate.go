package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printyke/printy-backend/pkg/enums"
)

// FinishingRate is a shop's add-on finishing service (lamination, binding,
// cutting and so on) billed by its charge unit.
type FinishingRate struct {
	ID              uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID          uuid.UUID        `gorm:"column:shop_id;type:uuid;not null;index"`
	Name            string           `gorm:"column:name;not null"`
	ChargeUnit      enums.ChargeUnit `gorm:"column:charge_unit;not null;default:'PER_PIECE'"`
	Price           decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	DoubleSidePrice *decimal.Decimal `gorm:"column:double_side_price;type:numeric(12,2)"`
	SetupFee        *decimal.Decimal `gorm:"column:setup_fee;type:numeric(12,2)"`
	MinQty          *int             `gorm:"column:min_qty"`
	IsActive        bool             `gorm:"column:is_active;not null;default:true"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// EffectiveDoublePrice returns the configured double-side price, defaulting
// to twice the single-side price when not explicitly set.
func (f *FinishingRate) EffectiveDoublePrice() decimal.Decimal {
	if f.DoubleSidePrice != nil {
		return *f.DoubleSidePrice
	}
	return f.Price.Mul(decimal.NewFromInt(2))
}
