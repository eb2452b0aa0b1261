package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printyke/printy-backend/pkg/enums"
)

// PrintingRate prices a (machine, sheet size, color mode) combination per
// sheet, with separate simplex and duplex charges. The shop is implied via
// the machine.
type PrintingRate struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MachineID   uuid.UUID       `gorm:"column:machine_id;type:uuid;not null;uniqueIndex:uq_machine_sheet_color"`
	SheetSize   enums.SheetSize `gorm:"column:sheet_size;not null;uniqueIndex:uq_machine_sheet_color"`
	ColorMode   enums.ColorMode `gorm:"column:color_mode;not null;uniqueIndex:uq_machine_sheet_color"`
	SinglePrice decimal.Decimal `gorm:"column:single_price;type:numeric(12,2);not null"`
	DoublePrice decimal.Decimal `gorm:"column:double_price;type:numeric(12,2);not null"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// PriceForSides returns the per-sheet price for the requested side count.
func (r *PrintingRate) PriceForSides(sides enums.Sides) decimal.Decimal {
	if sides == enums.SidesDuplex {
		return r.DoublePrice
	}
	return r.SinglePrice
}
