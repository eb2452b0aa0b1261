package quotes

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printyke/printy-backend/pkg/db/models"
	"github.com/printyke/printy-backend/pkg/enums"
)

// QuoteRepository defines the persistence surface required by the quote
// service.
type QuoteRepository interface {
	WithTx(tx *gorm.DB) QuoteRepository
	Create(ctx context.Context, quote *models.QuoteRequest) (*models.QuoteRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error)
	ListByShop(ctx context.Context, shopID uuid.UUID, statuses []enums.QuoteStatus, limit, offset int) ([]models.QuoteRequest, int64, error)
	ListByCreator(ctx context.Context, creatorID uuid.UUID, limit, offset int) ([]models.QuoteRequest, int64, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) error
	SaveQuoteTotals(ctx context.Context, quote *models.QuoteRequest) error
	SaveItemPricing(ctx context.Context, item *models.QuoteItem) error

	CreateItem(ctx context.Context, item *models.QuoteItem) (*models.QuoteItem, error)
	FindItemByID(ctx context.Context, quoteID, itemID uuid.UUID) (*models.QuoteItem, error)
	UpdateItem(ctx context.Context, item *models.QuoteItem) (*models.QuoteItem, error)
	DeleteItem(ctx context.Context, quoteID, itemID uuid.UUID) error
	ReplaceItemFinishings(ctx context.Context, itemID uuid.UUID, finishings []models.QuoteItemFinishing) error
	ReplaceItemServices(ctx context.Context, itemID uuid.UUID, services []models.QuoteItemService) error
	ReplaceQuoteServices(ctx context.Context, quoteID uuid.UUID, services []models.QuoteRequestService) error
}

// ShopLoader resolves shops for ownership and currency checks.
type ShopLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
}

// CatalogLoader resolves shop-scoped configuration entities referenced by
// quote items, for shop-consistency validation at mutation time.
type CatalogLoader interface {
	GetProduct(ctx context.Context, shopID, id uuid.UUID) (*models.Product, error)
	GetPaper(ctx context.Context, shopID, id uuid.UUID) (*models.Paper, error)
	GetMaterial(ctx context.Context, shopID, id uuid.UUID) (*models.Material, error)
	GetMachine(ctx context.Context, shopID, id uuid.UUID) (*models.Machine, error)
	GetFinishingRate(ctx context.Context, shopID, id uuid.UUID) (*models.FinishingRate, error)
	GetServiceRate(ctx context.Context, shopID, id uuid.UUID) (*models.ServiceRate, error)
}
