package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/printyke/printy-backend/pkg/enums"
)

// Machine is a shop's printing press with its physical bounds.
type Machine struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ShopID      uuid.UUID         `gorm:"column:shop_id;type:uuid;not null;index"`
	Name        string            `gorm:"column:name;not null"`
	MachineType enums.MachineType `gorm:"column:machine_type;not null;default:'DIGITAL'"`
	MaxWidthMM  int               `gorm:"column:max_width_mm;not null"`
	MaxHeightMM int               `gorm:"column:max_height_mm;not null"`
	MinGSM      *int              `gorm:"column:min_gsm"`
	MaxGSM      *int              `gorm:"column:max_gsm"`
	IsActive    bool              `gorm:"column:is_active;not null;default:true"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`

	PrintingRates []PrintingRate `gorm:"foreignKey:MachineID"`
}

// SupportsGSM reports whether a paper weight falls inside the machine's
// configured bounds. Missing bounds are treated as unbounded.
func (m *Machine) SupportsGSM(gsm int) bool {
	if m == nil {
		return false
	}
	if m.MinGSM != nil && gsm < *m.MinGSM {
		return false
	}
	if m.MaxGSM != nil && gsm > *m.MaxGSM {
		return false
	}
	return true
}
