// Package catalog manages a shop's pricing configuration: products,
// papers, machines with their printing rates, finishing rates, materials
// and service rates. Everything is shop-scoped; lookups outside the
// owning shop read as not found.
package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printyke/printy-backend/pkg/db/models"
)

// Repository persists catalog entities.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) CatalogRepository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// GetProduct loads one product of the shop.
func (r *Repository) GetProduct(ctx context.Context, shopID, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// ListProducts pages the shop's products.
func (r *Repository) ListProducts(ctx context.Context, shopID uuid.UUID, activeOnly bool, limit, offset int) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).Where("shop_id = ?", shopID)
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var products []models.Product
	if err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// SaveProduct inserts or updates a product.
func (r *Repository) SaveProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Save(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product of the shop.
func (r *Repository) DeleteProduct(ctx context.Context, shopID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		Delete(&models.Product{}).Error
}

// GetPaper loads one paper of the shop.
func (r *Repository) GetPaper(ctx context.Context, shopID, id uuid.UUID) (*models.Paper, error) {
	var paper models.Paper
	err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&paper).Error
	if err != nil {
		return nil, err
	}
	return &paper, nil
}

// ListPapers pages the shop's papers.
func (r *Repository) ListPapers(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]models.Paper, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Paper{}).Where("shop_id = ?", shopID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var papers []models.Paper
	if err := query.Order("sheet_size ASC, gsm ASC").Limit(limit).Offset(offset).Find(&papers).Error; err != nil {
		return nil, 0, err
	}
	return papers, total, nil
}

// SavePaper inserts or updates a paper.
func (r *Repository) SavePaper(ctx context.Context, paper *models.Paper) (*models.Paper, error) {
	if err := r.db.WithContext(ctx).Save(paper).Error; err != nil {
		return nil, err
	}
	return paper, nil
}

// DeletePaper removes a paper of the shop.
func (r *Repository) DeletePaper(ctx context.Context, shopID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		Delete(&models.Paper{}).Error
}

// GetMachine loads one machine of the shop with its printing rates.
func (r *Repository) GetMachine(ctx context.Context, shopID, id uuid.UUID) (*models.Machine, error) {
	var machine models.Machine
	err := r.db.WithContext(ctx).
		Preload("PrintingRates").
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&machine).Error
	if err != nil {
		return nil, err
	}
	return &machine, nil
}

// ListMachines pages the shop's machines.
func (r *Repository) ListMachines(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]models.Machine, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Machine{}).Where("shop_id = ?", shopID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var machines []models.Machine
	if err := query.Preload("PrintingRates").Order("name ASC").Limit(limit).Offset(offset).Find(&machines).Error; err != nil {
		return nil, 0, err
	}
	return machines, total, nil
}

// SaveMachine inserts or updates a machine.
func (r *Repository) SaveMachine(ctx context.Context, machine *models.Machine) (*models.Machine, error) {
	if err := r.db.WithContext(ctx).Omit("PrintingRates").Save(machine).Error; err != nil {
		return nil, err
	}
	return machine, nil
}

// DeleteMachine removes a machine of the shop along with its rates.
func (r *Repository) DeleteMachine(ctx context.Context, shopID, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("machine_id = ?", id).Delete(&models.PrintingRate{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ? AND shop_id = ?", id, shopID).Delete(&models.Machine{}).Error
}

// SavePrintingRate inserts or updates a printing rate.
func (r *Repository) SavePrintingRate(ctx context.Context, rate *models.PrintingRate) (*models.PrintingRate, error) {
	if err := r.db.WithContext(ctx).Save(rate).Error; err != nil {
		return nil, err
	}
	return rate, nil
}

// DeletePrintingRate removes one printing rate of the machine.
func (r *Repository) DeletePrintingRate(ctx context.Context, machineID, rateID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND machine_id = ?", rateID, machineID).
		Delete(&models.PrintingRate{}).Error
}

// GetFinishingRate loads one finishing rate of the shop.
func (r *Repository) GetFinishingRate(ctx context.Context, shopID, id uuid.UUID) (*models.FinishingRate, error) {
	var rate models.FinishingRate
	err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// ListFinishingRates pages the shop's finishing rates.
func (r *Repository) ListFinishingRates(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]models.FinishingRate, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.FinishingRate{}).Where("shop_id = ?", shopID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rates []models.FinishingRate
	if err := query.Order("name ASC").Limit(limit).Offset(offset).Find(&rates).Error; err != nil {
		return nil, 0, err
	}
	return rates, total, nil
}

// SaveFinishingRate inserts or updates a finishing rate.
func (r *Repository) SaveFinishingRate(ctx context.Context, rate *models.FinishingRate) (*models.FinishingRate, error) {
	if err := r.db.WithContext(ctx).Save(rate).Error; err != nil {
		return nil, err
	}
	return rate, nil
}

// DeleteFinishingRate removes a finishing rate of the shop.
func (r *Repository) DeleteFinishingRate(ctx context.Context, shopID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		Delete(&models.FinishingRate{}).Error
}

// GetMaterial loads one material of the shop.
func (r *Repository) GetMaterial(ctx context.Context, shopID, id uuid.UUID) (*models.Material, error) {
	var material models.Material
	err := r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&material).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

// ListMaterials pages the shop's materials.
func (r *Repository) ListMaterials(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]models.Material, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Material{}).Where("shop_id = ?", shopID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var materials []models.Material
	if err := query.Order("material_type ASC").Limit(limit).Offset(offset).Find(&materials).Error; err != nil {
		return nil, 0, err
	}
	return materials, total, nil
}

// SaveMaterial inserts or updates a material.
func (r *Repository) SaveMaterial(ctx context.Context, material *models.Material) (*models.Material, error) {
	if err := r.db.WithContext(ctx).Save(material).Error; err != nil {
		return nil, err
	}
	return material, nil
}

// DeleteMaterial removes a material of the shop.
func (r *Repository) DeleteMaterial(ctx context.Context, shopID, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND shop_id = ?", id, shopID).
		Delete(&models.Material{}).Error
}

// GetServiceRate loads one service rate of the shop with its tiers.
func (r *Repository) GetServiceRate(ctx context.Context, shopID, id uuid.UUID) (*models.ServiceRate, error) {
	var rate models.ServiceRate
	err := r.db.WithContext(ctx).
		Preload("Tiers").
		Where("id = ? AND shop_id = ?", id, shopID).
		First(&rate).Error
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

// ListServiceRates pages the shop's service rates.
func (r *Repository) ListServiceRates(ctx context.Context, shopID uuid.UUID, limit, offset int) ([]models.ServiceRate, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ServiceRate{}).Where("shop_id = ?", shopID)
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rates []models.ServiceRate
	if err := query.Preload("Tiers").Order("code ASC").Limit(limit).Offset(offset).Find(&rates).Error; err != nil {
		return nil, 0, err
	}
	return rates, total, nil
}

// SaveServiceRate inserts or updates a service rate.
func (r *Repository) SaveServiceRate(ctx context.Context, rate *models.ServiceRate) (*models.ServiceRate, error) {
	if err := r.db.WithContext(ctx).Omit("Tiers").Save(rate).Error; err != nil {
		return nil, err
	}
	return rate, nil
}

// ReplaceServiceRateTiers atomically replaces the rate's distance tiers.
func (r *Repository) ReplaceServiceRateTiers(ctx context.Context, rateID uuid.UUID, tiers []models.ServiceRateTier) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("service_rate_id = ?", rateID).Delete(&models.ServiceRateTier{}).Error; err != nil {
		return err
	}
	if len(tiers) == 0 {
		return nil
	}
	for i := range tiers {
		tiers[i].ServiceRateID = rateID
	}
	return tx.Create(&tiers).Error
}

// DeleteServiceRate removes a service rate of the shop with its tiers.
func (r *Repository) DeleteServiceRate(ctx context.Context, shopID, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("service_rate_id = ?", id).Delete(&models.ServiceRateTier{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ? AND shop_id = ?", id, shopID).Delete(&models.ServiceRate{}).Error
}

// CountPapersWithPrice reports how many papers of the shop carry a
// positive selling price. Used by product price hints.
func (r *Repository) CountPapersWithPrice(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Paper{}).
		Where("shop_id = ? AND is_active = ? AND selling_price > 0", shopID, true).
		Count(&count).Error
	return count, err
}

// CountMachines reports how many active machines the shop has.
func (r *Repository) CountMachines(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Machine{}).
		Where("shop_id = ? AND is_active = ?", shopID, true).
		Count(&count).Error
	return count, err
}

// CountPrintingRates reports how many active printing rates exist across
// the shop's machines.
func (r *Repository) CountPrintingRates(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PrintingRate{}).
		Joins("JOIN machines ON machines.id = printing_rates.machine_id").
		Where("machines.shop_id = ? AND printing_rates.is_active = ?", shopID, true).
		Count(&count).Error
	return count, err
}

// CountMaterialsWithPrice reports how many materials of the shop carry a
// positive selling price.
func (r *Repository) CountMaterialsWithPrice(ctx context.Context, shopID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Material{}).
		Where("shop_id = ? AND is_active = ? AND selling_price > 0", shopID, true).
		Count(&count).Error
	return count, err
}
