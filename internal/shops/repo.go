// Package shops manages print shops, the tenant boundary every catalog
// entity and quote hangs off.
package shops

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printyke/printy-backend/pkg/db/models"
)

// Repository persists shops.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a shop repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads a shop by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// GetByID is FindByID under the name the quote and catalog services expect.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	return r.FindByID(ctx, id)
}

// FindBySlug loads a shop by its public slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Shop, error) {
	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// SlugExists reports whether any shop already claimed the slug.
func (r *Repository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Shop{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// ListByOwner returns every shop the user owns.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Shop, error) {
	var shops []models.Shop
	err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("created_at ASC").Find(&shops).Error
	return shops, err
}

// Create inserts a new shop.
func (r *Repository) Create(ctx context.Context, shop *models.Shop) (*models.Shop, error) {
	if err := r.db.WithContext(ctx).Create(shop).Error; err != nil {
		return nil, err
	}
	return shop, nil
}

// Update persists shop changes.
func (r *Repository) Update(ctx context.Context, shop *models.Shop) (*models.Shop, error) {
	if err := r.db.WithContext(ctx).Save(shop).Error; err != nil {
		return nil, err
	}
	return shop, nil
}
