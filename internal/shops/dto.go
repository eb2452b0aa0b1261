package shops

import (
	"time"

	"github.com/google/uuid"

	"github.com/printyke/printy-backend/pkg/db/models"
)

// ShopResult is the transport shape of a shop.
type ShopResult struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Currency  string    `json:"currency"`
	Location  string    `json:"location,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ResultFromModel converts a shop model into its transport shape.
func ResultFromModel(shop *models.Shop) *ShopResult {
	if shop == nil {
		return nil
	}
	return &ShopResult{
		ID:        shop.ID,
		OwnerID:   shop.OwnerID,
		Name:      shop.Name,
		Slug:      shop.Slug,
		Currency:  shop.Currency,
		Location:  shop.Location,
		Phone:     shop.Phone,
		IsActive:  shop.IsActive,
		CreatedAt: shop.CreatedAt,
		UpdatedAt: shop.UpdatedAt,
	}
}
