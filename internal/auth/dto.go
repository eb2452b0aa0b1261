package auth

import (
	"github.com/printyke/printy-backend/internal/users"
	"github.com/printyke/printy-backend/pkg/db/models"
)

// LoginRequest carries the credentials presented by a client.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ShopSummary is the minimal shop shape embedded in login responses.
type ShopSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// LoginResponse is the successful login payload.
type LoginResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token"`
	Shops        []ShopSummary  `json:"shops"`
	User         *users.UserDTO `json:"user"`
}

func shopSummaries(shops []models.Shop) []ShopSummary {
	out := make([]ShopSummary, 0, len(shops))
	for _, shop := range shops {
		out = append(out, ShopSummary{
			ID:   shop.ID.String(),
			Name: shop.Name,
			Slug: shop.Slug,
		})
	}
	return out
}
