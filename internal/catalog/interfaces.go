package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printyke/printy-backend/pkg/db/models"
)

// CatalogRepository is the persistence surface the catalog service needs.
type CatalogRepository interface {
	WithTx(tx *gorm.DB) CatalogRepository

	GetProduct(ctx context.Context, shopID, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, shopID uuid.UUID, activeOnly bool, limit, offset int) ([]models.Product, int64, error)
	SaveProduct(ctx context.Context, product *models.Product) (*models.Product, error)
	DeleteProduct(ctx context.Context, shopID, id uuid.UUID) error

	GetPaper(ctx context.Context, shopID, id uuid.UUID) (*models.Paper, error)
	ListPapers(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]models.Paper, int64, error)
	SavePaper(ctx context.Context, paper *models.Paper) (*models.Paper, error)
	DeletePaper(ctx context.Context, shopID, id uuid.UUID) error

	GetMachine(ctx context.Context, shopID, id uuid.UUID) (*models.Machine, error)
	ListMachines(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]models.Machine, int64, error)
	SaveMachine(ctx context.Context, machine *models.Machine) (*models.Machine, error)
	DeleteMachine(ctx context.Context, shopID, id uuid.UUID) error

	SavePrintingRate(ctx context.Context, rate *models.PrintingRate) (*models.PrintingRate, error)
	DeletePrintingRate(ctx context.Context, machineID, rateID uuid.UUID) error

	GetFinishingRate(ctx context.Context, shopID, id uuid.UUID) (*models.FinishingRate, error)
	ListFinishingRates(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]models.FinishingRate, int64, error)
	SaveFinishingRate(ctx context.Context, rate *models.FinishingRate) (*models.FinishingRate, error)
	DeleteFinishingRate(ctx context.Context, shopID, id uuid.UUID) error

	GetMaterial(ctx context.Context, shopID, id uuid.UUID) (*models.Material, error)
	ListMaterials(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]models.Material, int64, error)
	SaveMaterial(ctx context.Context, material *models.Material) (*models.Material, error)
	DeleteMaterial(ctx context.Context, shopID, id uuid.UUID) error

	GetServiceRate(ctx context.Context, shopID, id uuid.UUID) (*models.ServiceRate, error)
	ListServiceRates(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]models.ServiceRate, int64, error)
	SaveServiceRate(ctx context.Context, rate *models.ServiceRate) (*models.ServiceRate, error)
	ReplaceServiceRateTiers(ctx context.Context, rateID uuid.UUID, tiers []models.ServiceRateTier) error
	DeleteServiceRate(ctx context.Context, shopID, id uuid.UUID) error

	CountPapersWithPrice(ctx context.Context, shopID uuid.UUID) (int64, error)
	CountMachines(ctx context.Context, shopID uuid.UUID) (int64, error)
	CountPrintingRates(ctx context.Context, shopID uuid.UUID) (int64, error)
	CountMaterialsWithPrice(ctx context.Context, shopID uuid.UUID) (int64, error)
}

// ShopLoader resolves shops for ownership checks.
type ShopLoader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
}
