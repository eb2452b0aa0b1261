package models

import (
	"time"

	"github.com/google/uuid"
)

// Shop is the tenant boundary: every pricing configuration and catalog
// entity belongs to exactly one shop.
type Shop struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OwnerID   uuid.UUID `gorm:"column:owner_id;type:uuid;not null"`
	Name      string    `gorm:"column:name;not null"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex"`
	Currency  string    `gorm:"column:currency;not null;default:'KES'"`
	Location  string    `gorm:"column:location;not null;default:''"`
	Phone     string    `gorm:"column:phone;not null;default:''"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
