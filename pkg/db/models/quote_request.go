package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printyke/printy-backend/pkg/enums"
)

// QuoteRequest is the quote header: a buyer creates it against one shop,
// the seller prices it. The total and lock timestamp are written only by
// the pricing lock path.
type QuoteRequest struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID           uuid.UUID         `gorm:"column:shop_id;type:uuid;not null;index"`
	CreatedBy        uuid.UUID         `gorm:"column:created_by;type:uuid;not null;index"`
	CustomerName     string            `gorm:"column:customer_name;not null;default:''"`
	CustomerEmail    string            `gorm:"column:customer_email;not null;default:''"`
	CustomerPhone    string            `gorm:"column:customer_phone;not null;default:''"`
	Status           enums.QuoteStatus `gorm:"column:status;not null;default:'DRAFT'"`
	Notes            string            `gorm:"column:notes;not null;default:''"`
	Total            *decimal.Decimal  `gorm:"column:total;type:numeric(12,2)"`
	PricingLockedAt  *time.Time        `gorm:"column:pricing_locked_at"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`

	Shop     *Shop                 `gorm:"foreignKey:ShopID"`
	Items    []QuoteItem           `gorm:"foreignKey:QuoteRequestID"`
	Services []QuoteRequestService `gorm:"foreignKey:QuoteRequestID"`
}

// QuoteItem is one line of a quote. PRODUCT items reference a catalog
// product; CUSTOM items carry a free-text title/spec. Sheet-path fields
// (paper, machine, sides, color mode) and area-path fields (material,
// chosen dimensions) are mutually exclusive in practice; the pricing
// engine treats a mixed or incomplete item as "needs review".
type QuoteItem struct {
	ID                  uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteRequestID      uuid.UUID         `gorm:"column:quote_request_id;type:uuid;not null;index"`
	ItemType            enums.ItemType    `gorm:"column:item_type;not null;default:'PRODUCT'"`
	Title               string            `gorm:"column:title;not null;default:''"`
	SpecText            string            `gorm:"column:spec_text;not null;default:''"`
	HasArtwork          bool              `gorm:"column:has_artwork;not null;default:false"`
	ProductID           *uuid.UUID        `gorm:"column:product_id;type:uuid"`
	Quantity            int               `gorm:"column:quantity;not null;default:1"`
	PricingMode         enums.PricingMode `gorm:"column:pricing_mode;not null;default:''"`
	PaperID             *uuid.UUID        `gorm:"column:paper_id;type:uuid"`
	MaterialID          *uuid.UUID        `gorm:"column:material_id;type:uuid"`
	ChosenWidthMM       *int              `gorm:"column:chosen_width_mm"`
	ChosenHeightMM      *int              `gorm:"column:chosen_height_mm"`
	Sides               enums.Sides       `gorm:"column:sides;not null;default:''"`
	ColorMode           enums.ColorMode   `gorm:"column:color_mode;not null;default:''"`
	MachineID           *uuid.UUID        `gorm:"column:machine_id;type:uuid"`
	SpecialInstructions string            `gorm:"column:special_instructions;not null;default:''"`
	UnitPrice           *decimal.Decimal  `gorm:"column:unit_price;type:numeric(12,2)"`
	LineTotal           *decimal.Decimal  `gorm:"column:line_total;type:numeric(12,2)"`
	PricingLockedAt     *time.Time        `gorm:"column:pricing_locked_at"`
	CreatedAt           time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time         `gorm:"column:updated_at;autoUpdateTime"`

	Product    *Product             `gorm:"foreignKey:ProductID"`
	Paper      *Paper               `gorm:"foreignKey:PaperID"`
	Material   *Material            `gorm:"foreignKey:MaterialID"`
	Machine    *Machine             `gorm:"foreignKey:MachineID"`
	Finishings []QuoteItemFinishing `gorm:"foreignKey:QuoteItemID"`
	Services   []QuoteItemService   `gorm:"foreignKey:QuoteItemID"`
}

// Label returns the display name used in breakdowns and diagnostics.
func (i *QuoteItem) Label() string {
	if i.ItemType == enums.ItemTypeProduct && i.Product != nil {
		return i.Product.Name
	}
	if i.Title != "" {
		return i.Title
	}
	return "Custom item"
}

// IsLocked reports whether the item's price is frozen.
func (i *QuoteItem) IsLocked() bool {
	return i.PricingLockedAt != nil
}

// QuoteItemFinishing attaches a finishing rate to one quote item.
type QuoteItemFinishing struct {
	ID              uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteItemID     uuid.UUID            `gorm:"column:quote_item_id;type:uuid;not null;uniqueIndex:uq_quote_item_finishing"`
	FinishingRateID uuid.UUID            `gorm:"column:finishing_rate_id;type:uuid;not null;uniqueIndex:uq_quote_item_finishing"`
	CoverageQty     *decimal.Decimal     `gorm:"column:coverage_qty;type:numeric(12,4)"`
	PriceOverride   *decimal.Decimal     `gorm:"column:price_override;type:numeric(12,2)"`
	ApplyToSides    enums.FinishingSides `gorm:"column:apply_to_sides;not null;default:'BOTH'"`
	CreatedAt       time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time            `gorm:"column:updated_at;autoUpdateTime"`

	FinishingRate *FinishingRate `gorm:"foreignKey:FinishingRateID"`
}

// QuoteItemService attaches a per-item service (e.g. design) to a line.
type QuoteItemService struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteItemID   uuid.UUID        `gorm:"column:quote_item_id;type:uuid;not null;uniqueIndex:uq_quote_item_service"`
	ServiceRateID uuid.UUID        `gorm:"column:service_rate_id;type:uuid;not null;uniqueIndex:uq_quote_item_service"`
	IsSelected    bool             `gorm:"column:is_selected;not null;default:false"`
	PriceOverride *decimal.Decimal `gorm:"column:price_override;type:numeric(12,2)"`
	Note          string           `gorm:"column:note;not null;default:''"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`

	ServiceRate *ServiceRate `gorm:"foreignKey:ServiceRateID"`
}

// QuoteRequestService attaches a quote-level service (e.g. delivery) once
// per quote. DistanceKM feeds tiered delivery pricing; the seller can set
// it (or a price override) before locking.
type QuoteRequestService struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteRequestID uuid.UUID        `gorm:"column:quote_request_id;type:uuid;not null;uniqueIndex:uq_quote_request_service"`
	ServiceRateID  uuid.UUID        `gorm:"column:service_rate_id;type:uuid;not null;uniqueIndex:uq_quote_request_service"`
	IsSelected     bool             `gorm:"column:is_selected;not null;default:false"`
	DistanceKM     *decimal.Decimal `gorm:"column:distance_km;type:numeric(12,2)"`
	PriceOverride  *decimal.Decimal `gorm:"column:price_override;type:numeric(12,2)"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`

	ServiceRate *ServiceRate `gorm:"foreignKey:ServiceRateID"`
}
