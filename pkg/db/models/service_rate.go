package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printyke/printy-backend/pkg/enums"
)

// ServiceRate is an extra charge a shop can apply: design, delivery, rush
// or setup. FIXED rates carry a flat price; TIERED_DISTANCE rates resolve
// through their distance tiers.
type ServiceRate struct {
	ID           uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID       uuid.UUID                `gorm:"column:shop_id;type:uuid;not null;uniqueIndex:uq_shop_service_code"`
	Code         enums.ServiceCode        `gorm:"column:code;not null;uniqueIndex:uq_shop_service_code"`
	Name         string                   `gorm:"column:name;not null"`
	PricingType  enums.ServicePricingType `gorm:"column:pricing_type;not null;default:'FIXED'"`
	Price        *decimal.Decimal         `gorm:"column:price;type:numeric(12,2)"`
	IsOptional   bool                     `gorm:"column:is_optional;not null;default:true"`
	IsNegotiable bool                     `gorm:"column:is_negotiable;not null;default:false"`
	IsActive     bool                     `gorm:"column:is_active;not null;default:true"`
	CreatedAt    time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time                `gorm:"column:updated_at;autoUpdateTime"`

	Tiers []ServiceRateTier `gorm:"foreignKey:ServiceRateID"`
}

// ServiceRateTier is one distance band of a TIERED_DISTANCE service.
// A nil MaxKM means "and above".
type ServiceRateTier struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ServiceRateID uuid.UUID        `gorm:"column:service_rate_id;type:uuid;not null;index"`
	MinKM         decimal.Decimal  `gorm:"column:min_km;type:numeric(12,2);not null"`
	MaxKM         *decimal.Decimal `gorm:"column:max_km;type:numeric(12,2)"`
	Price         decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// Contains reports whether the tier's band covers the given distance.
func (t *ServiceRateTier) Contains(distanceKM decimal.Decimal) bool {
	if t.MinKM.GreaterThan(distanceKM) {
		return false
	}
	if t.MaxKM != nil && t.MaxKM.LessThan(distanceKM) {
		return false
	}
	return true
}
