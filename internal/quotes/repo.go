package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/printyke/printy-backend/pkg/db/models"
	"github.com/printyke/printy-backend/pkg/enums"
)

// Repository persists quote requests and their items.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a quote repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) QuoteRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

func quotePreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Shop").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Paper").
		Preload("Items.Material").
		Preload("Items.Machine").
		Preload("Items.Machine.PrintingRates").
		Preload("Items.Finishings").
		Preload("Items.Finishings.FinishingRate").
		Preload("Items.Services").
		Preload("Items.Services.ServiceRate").
		Preload("Items.Services.ServiceRate.Tiers").
		Preload("Services").
		Preload("Services.ServiceRate").
		Preload("Services.ServiceRate.Tiers")
}

// Create inserts a new QuoteRequest.
func (r *Repository) Create(ctx context.Context, quote *models.QuoteRequest) (*models.QuoteRequest, error) {
	if quote.Status == "" {
		quote.Status = enums.QuoteStatusDraft
	}
	if err := r.db.WithContext(ctx).Create(quote).Error; err != nil {
		return nil, err
	}
	return quote, nil
}

// FindByID loads a quote with everything the pricing engine needs.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	var quote models.QuoteRequest
	err := quotePreloads(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// FindByIDForUpdate loads a quote like FindByID but takes a row lock on
// the quote_requests row, serializing concurrent price attempts. Must run
// inside a transaction.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	var locked models.QuoteRequest
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&locked).Error
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// ListByShop pages a shop's quotes, optionally filtered by status.
func (r *Repository) ListByShop(ctx context.Context, shopID uuid.UUID, statuses []enums.QuoteStatus, limit, offset int) ([]models.QuoteRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.QuoteRequest{}).Where("shop_id = ?", shopID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statuses)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quotes []models.QuoteRequest
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&quotes).Error
	if err != nil {
		return nil, 0, err
	}
	return quotes, total, nil
}

// ListByCreator pages the quotes a buyer created, across shops.
func (r *Repository) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit, offset int) ([]models.QuoteRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.QuoteRequest{}).Where("created_by = ?", creatorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var quotes []models.QuoteRequest
	err := query.
		Preload("Shop").
		Preload("Items").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&quotes).Error
	if err != nil {
		return nil, 0, err
	}
	return quotes, total, nil
}

// UpdateStatus moves a quote to the given status.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.QuoteRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// SaveQuoteTotals persists the quote's total, status and lock timestamp.
func (r *Repository) SaveQuoteTotals(ctx context.Context, quote *models.QuoteRequest) error {
	return r.db.WithContext(ctx).
		Model(&models.QuoteRequest{}).
		Where("id = ?", quote.ID).
		Updates(map[string]any{
			"total":             quote.Total,
			"status":            quote.Status,
			"pricing_locked_at": quote.PricingLockedAt,
		}).Error
}

// SaveItemPricing persists one item's locked price fields.
func (r *Repository) SaveItemPricing(ctx context.Context, item *models.QuoteItem) error {
	return r.db.WithContext(ctx).
		Model(&models.QuoteItem{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"unit_price":        item.UnitPrice,
			"line_total":        item.LineTotal,
			"pricing_locked_at": item.PricingLockedAt,
		}).Error
}

// CreateItem inserts a quote item.
func (r *Repository) CreateItem(ctx context.Context, item *models.QuoteItem) (*models.QuoteItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindItemByID loads one item of a quote with its pricing associations.
func (r *Repository) FindItemByID(ctx context.Context, quoteID, itemID uuid.UUID) (*models.QuoteItem, error) {
	var item models.QuoteItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Preload("Paper").
		Preload("Material").
		Preload("Machine").
		Preload("Machine.PrintingRates").
		Preload("Finishings").
		Preload("Finishings.FinishingRate").
		Preload("Services").
		Preload("Services.ServiceRate").
		Where("id = ? AND quote_request_id = ?", itemID, quoteID).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem saves the provided item.
func (r *Repository) UpdateItem(ctx context.Context, item *models.QuoteItem) (*models.QuoteItem, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteItem removes one item of a quote together with its attachments.
func (r *Repository) DeleteItem(ctx context.Context, quoteID, itemID uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("quote_item_id = ?", itemID).Delete(&models.QuoteItemFinishing{}).Error; err != nil {
		return err
	}
	if err := tx.Where("quote_item_id = ?", itemID).Delete(&models.QuoteItemService{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ? AND quote_request_id = ?", itemID, quoteID).Delete(&models.QuoteItem{}).Error
}

// ReplaceItemFinishings atomically replaces an item's finishing selection.
func (r *Repository) ReplaceItemFinishings(ctx context.Context, itemID uuid.UUID, finishings []models.QuoteItemFinishing) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("quote_item_id = ?", itemID).Delete(&models.QuoteItemFinishing{}).Error; err != nil {
		return err
	}
	if len(finishings) == 0 {
		return nil
	}
	for i := range finishings {
		finishings[i].QuoteItemID = itemID
	}
	return tx.Create(&finishings).Error
}

// ReplaceItemServices atomically replaces an item's service selection.
func (r *Repository) ReplaceItemServices(ctx context.Context, itemID uuid.UUID, services []models.QuoteItemService) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("quote_item_id = ?", itemID).Delete(&models.QuoteItemService{}).Error; err != nil {
		return err
	}
	if len(services) == 0 {
		return nil
	}
	for i := range services {
		services[i].QuoteItemID = itemID
	}
	return tx.Create(&services).Error
}

// ReplaceQuoteServices atomically replaces the quote-level services.
func (r *Repository) ReplaceQuoteServices(ctx context.Context, quoteID uuid.UUID, services []models.QuoteRequestService) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("quote_request_id = ?", quoteID).Delete(&models.QuoteRequestService{}).Error; err != nil {
		return err
	}
	if len(services) == 0 {
		return nil
	}
	for i := range services {
		services[i].QuoteRequestID = quoteID
	}
	return tx.Create(&services).Error
}
