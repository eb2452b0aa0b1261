package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/printyke/printy-backend/pkg/db/models"
	"github.com/printyke/printy-backend/pkg/enums"
	pkgerrors "github.com/printyke/printy-backend/pkg/errors"
)

// Service exposes shop catalog management. All mutations are restricted
// to the shop owner; product listing is open to any authenticated user.
type Service interface {
	CreateProduct(ctx context.Context, userID, shopID uuid.UUID, input ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, userID, shopID, productID uuid.UUID, input ProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, userID, shopID, productID uuid.UUID) error
	GetProduct(ctx context.Context, shopID, productID uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.Product, int64, error)
	ProductPriceHint(ctx context.Context, userID, shopID, productID uuid.UUID) (*ProductDiagnostics, error)

	CreatePaper(ctx context.Context, userID, shopID uuid.UUID, input PaperInput) (*models.Paper, error)
	UpdatePaper(ctx context.Context, userID, shopID, paperID uuid.UUID, input PaperInput) (*models.Paper, error)
	DeletePaper(ctx context.Context, userID, shopID, paperID uuid.UUID) error
	ListPapers(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.Paper, int64, error)

	CreateMachine(ctx context.Context, userID, shopID uuid.UUID, input MachineInput) (*models.Machine, error)
	UpdateMachine(ctx context.Context, userID, shopID, machineID uuid.UUID, input MachineInput) (*models.Machine, error)
	DeleteMachine(ctx context.Context, userID, shopID, machineID uuid.UUID) error
	ListMachines(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.Machine, int64, error)

	SetPrintingRate(ctx context.Context, userID, shopID, machineID uuid.UUID, input PrintingRateInput) (*models.PrintingRate, error)
	DeletePrintingRate(ctx context.Context, userID, shopID, machineID, rateID uuid.UUID) error
	ApplyDefaultPrintingRates(ctx context.Context, userID, shopID, machineID uuid.UUID) (*models.Machine, error)

	CreateFinishingRate(ctx context.Context, userID, shopID uuid.UUID, input FinishingRateInput) (*models.FinishingRate, error)
	UpdateFinishingRate(ctx context.Context, userID, shopID, rateID uuid.UUID, input FinishingRateInput) (*models.FinishingRate, error)
	DeleteFinishingRate(ctx context.Context, userID, shopID, rateID uuid.UUID) error
	ListFinishingRates(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.FinishingRate, int64, error)

	CreateMaterial(ctx context.Context, userID, shopID uuid.UUID, input MaterialInput) (*models.Material, error)
	UpdateMaterial(ctx context.Context, userID, shopID, materialID uuid.UUID, input MaterialInput) (*models.Material, error)
	DeleteMaterial(ctx context.Context, userID, shopID, materialID uuid.UUID) error
	ListMaterials(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.Material, int64, error)

	CreateServiceRate(ctx context.Context, userID, shopID uuid.UUID, input ServiceRateInput) (*models.ServiceRate, error)
	UpdateServiceRate(ctx context.Context, userID, shopID, rateID uuid.UUID, input ServiceRateInput) (*models.ServiceRate, error)
	DeleteServiceRate(ctx context.Context, userID, shopID, rateID uuid.UUID) error
	ListServiceRates(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.ServiceRate, int64, error)
}

type service struct {
	repo  CatalogRepository
	shops ShopLoader
}

// NewService builds a catalog service backed by the provided stack.
func NewService(repo CatalogRepository, shops ShopLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if shops == nil {
		return nil, fmt.Errorf("shop loader required")
	}
	return &service{repo: repo, shops: shops}, nil
}

// ProductInput is the mutable surface of a product.
type ProductInput struct {
	Name                    string
	Description             string
	Category                string
	PricingMode             enums.PricingMode
	DefaultFinishedWidthMM  int
	DefaultFinishedHeightMM int
	DefaultBleedMM          int
	DefaultSides            enums.Sides
	DefaultSheetSize        enums.SheetSize
	MinQuantity             int
	MinGSM                  *int
	MaxGSM                  *int
	AllowSimplex            bool
	AllowDuplex             bool
	IsActive                bool
}

// PaperInput is the mutable surface of a paper.
type PaperInput struct {
	SheetSize       enums.SheetSize
	GSM             int
	PaperType       enums.PaperType
	WidthMM         *int
	HeightMM        *int
	BuyingPrice     decimal.Decimal
	SellingPrice    decimal.Decimal
	QuantityInStock int
	IsActive        bool
}

// MachineInput is the mutable surface of a machine.
type MachineInput struct {
	Name        string
	MachineType enums.MachineType
	MaxWidthMM  int
	MaxHeightMM int
	MinGSM      *int
	MaxGSM      *int
	IsActive    bool
}

// PrintingRateInput prices one (sheet size, color mode) combination.
type PrintingRateInput struct {
	SheetSize   enums.SheetSize
	ColorMode   enums.ColorMode
	SinglePrice decimal.Decimal
	DoublePrice decimal.Decimal
	IsActive    bool
}

// FinishingRateInput is the mutable surface of a finishing rate.
type FinishingRateInput struct {
	Name            string
	ChargeUnit      enums.ChargeUnit
	Price           decimal.Decimal
	DoubleSidePrice *decimal.Decimal
	SetupFee        *decimal.Decimal
	MinQty          *int
	IsActive        bool
}

// MaterialInput is the mutable surface of a material.
type MaterialInput struct {
	MaterialType string
	Unit         string
	BuyingPrice  decimal.Decimal
	SellingPrice decimal.Decimal
	IsActive     bool
}

// ServiceRateInput is the mutable surface of a service rate. Tiers are
// replaced wholesale on every save.
type ServiceRateInput struct {
	Code         enums.ServiceCode
	Name         string
	PricingType  enums.ServicePricingType
	Price        *decimal.Decimal
	IsOptional   bool
	IsNegotiable bool
	Tiers        []ServiceTierInput
	IsActive     bool
}

// ServiceTierInput is one distance band. A nil MaxKM means open-ended.
type ServiceTierInput struct {
	MinKM decimal.Decimal
	MaxKM *decimal.Decimal
	Price decimal.Decimal
}

func (s *service) CreateProduct(ctx context.Context, userID, shopID uuid.UUID, input ProductInput) (*models.Product, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	product := &models.Product{ShopID: shopID}
	applyProductInput(product, input)
	return s.repo.SaveProduct(ctx, product)
}

func (s *service) UpdateProduct(ctx context.Context, userID, shopID, productID uuid.UUID, input ProductInput) (*models.Product, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if err := validateProductInput(input); err != nil {
		return nil, err
	}
	product, err := s.repo.GetProduct(ctx, shopID, productID)
	if err != nil {
		return nil, notFoundOr(err, "product not found")
	}
	applyProductInput(product, input)
	return s.repo.SaveProduct(ctx, product)
}

func (s *service) DeleteProduct(ctx context.Context, userID, shopID, productID uuid.UUID) error {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return err
	}
	return s.repo.DeleteProduct(ctx, shopID, productID)
}

func (s *service) GetProduct(ctx context.Context, shopID, productID uuid.UUID) (*models.Product, error) {
	product, err := s.repo.GetProduct(ctx, shopID, productID)
	if err != nil {
		return nil, notFoundOr(err, "product not found")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.Product, int64, error) {
	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		return nil, 0, notFoundOr(err, "shop not found")
	}
	activeOnly := shop.OwnerID != userID
	return s.repo.ListProducts(ctx, shopID, activeOnly, limit, offset)
}

func (s *service) ProductPriceHint(ctx context.Context, userID, shopID, productID uuid.UUID) (*ProductDiagnostics, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, err
	}
	product, err := s.repo.GetProduct(ctx, shopID, productID)
	if err != nil {
		return nil, notFoundOr(err, "product not found")
	}
	readiness, err := s.loadReadiness(ctx, shopID, product.PricingMode)
	if err != nil {
		return nil, err
	}
	diag := buildProductDiagnostics(product, readiness)
	return &diag, nil
}

func (s *service) CreatePaper(ctx context.Context, userID, shopID uuid.UUID, input PaperInput) (*models.Paper, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if err := validatePaperInput(&input); err != nil {
		return nil, err
	}
	paper := &models.Paper{ShopID: shopID}
	applyPaperInput(paper, input)
	return s.repo.SavePaper(ctx, paper)
}

func (s *service) UpdatePaper(ctx context.Context, userID, shopID, paperID uuid.UUID, input PaperInput) (*models.Paper, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if err := validatePaperInput(&input); err != nil {
		return nil, err
	}
	paper, err := s.repo.GetPaper(ctx, shopID, paperID)
	if err != nil {
		return nil, notFoundOr(err, "paper not found")
	}
	applyPaperInput(paper, input)
	return s.repo.SavePaper(ctx, paper)
}

func (s *service) DeletePaper(ctx context.Context, userID, shopID, paperID uuid.UUID) error {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return err
	}
	return s.repo.DeletePaper(ctx, shopID, paperID)
}

func (s *service) ListPapers(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.Paper, int64, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListPapers(ctx, shopID, limit, offset)
}

func (s *service) CreateMachine(ctx context.Context, userID, shopID uuid.UUID, input MachineInput) (*models.Machine, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if err := validateMachineInput(input); err != nil {
		return nil, err
	}
	machine := &models.Machine{ShopID: shopID}
	applyMachineInput(machine, input)
	return s.repo.SaveMachine(ctx, machine)
}

func (s *service) UpdateMachine(ctx context.Context, userID, shopID, machineID uuid.UUID, input MachineInput) (*models.Machine, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if err := validateMachineInput(input); err != nil {
		return nil, err
	}
	machine, err := s.repo.GetMachine(ctx, shopID, machineID)
	if err != nil {
		return nil, notFoundOr(err, "machine not found")
	}
	applyMachineInput(machine, input)
	return s.repo.SaveMachine(ctx, machine)
}

func (s *service) DeleteMachine(ctx context.Context, userID, shopID, machineID uuid.UUID) error {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return err
	}
	return s.repo.DeleteMachine(ctx, shopID, machineID)
}

func (s *service) ListMachines(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.Machine, int64, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListMachines(ctx, shopID, limit, offset)
}

// SetPrintingRate upserts the rate for the (sheet size, color mode)
// combination on the machine.
func (s *service) SetPrintingRate(ctx context.Context, userID, shopID, machineID uuid.UUID, input PrintingRateInput) (*models.PrintingRate, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if err := validatePrintingRateInput(input); err != nil {
		return nil, err
	}
	machine, err := s.repo.GetMachine(ctx, shopID, machineID)
	if err != nil {
		return nil, notFoundOr(err, "machine not found")
	}

	rate := &models.PrintingRate{MachineID: machine.ID}
	for i := range machine.PrintingRates {
		existing := &machine.PrintingRates[i]
		if existing.SheetSize == input.SheetSize && existing.ColorMode == input.ColorMode {
			rate = existing
			break
		}
	}
	rate.SheetSize = input.SheetSize
	rate.ColorMode = input.ColorMode
	rate.SinglePrice = input.SinglePrice
	rate.DoublePrice = input.DoublePrice
	rate.IsActive = input.IsActive
	return s.repo.SavePrintingRate(ctx, rate)
}

func (s *service) DeletePrintingRate(ctx context.Context, userID, shopID, machineID, rateID uuid.UUID) error {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return err
	}
	if _, err := s.repo.GetMachine(ctx, shopID, machineID); err != nil {
		return notFoundOr(err, "machine not found")
	}
	return s.repo.DeletePrintingRate(ctx, machineID, rateID)
}

// ApplyDefaultPrintingRates seeds the machine with the starter rate card,
// skipping combinations the shop has already priced, and fills in GSM
// bounds when the machine has none.
func (s *service) ApplyDefaultPrintingRates(ctx context.Context, userID, shopID, machineID uuid.UUID) (*models.Machine, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, err
	}
	machine, err := s.repo.GetMachine(ctx, shopID, machineID)
	if err != nil {
		return nil, notFoundOr(err, "machine not found")
	}

	for _, rate := range missingTemplateRates(machine) {
		rate := rate
		if _, err := s.repo.SavePrintingRate(ctx, &rate); err != nil {
			return nil, err
		}
	}
	if machine.MinGSM == nil && machine.MaxGSM == nil {
		minGSM, maxGSM := defaultMachineMinGSM, defaultMachineMaxGSM
		machine.MinGSM = &minGSM
		machine.MaxGSM = &maxGSM
		if _, err := s.repo.SaveMachine(ctx, machine); err != nil {
			return nil, err
		}
	}
	return s.repo.GetMachine(ctx, shopID, machineID)
}

func (s *service) CreateFinishingRate(ctx context.Context, userID, shopID uuid.UUID, input FinishingRateInput) (*models.FinishingRate, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if err := validateFinishingRateInput(input); err != nil {
		return nil, err
	}
	rate := &models.FinishingRate{ShopID: shopID}
	applyFinishingRateInput(rate, input)
	return s.repo.SaveFinishingRate(ctx, rate)
}

func (s *service) UpdateFinishingRate(ctx context.Context, userID, shopID, rateID uuid.UUID, input FinishingRateInput) (*models.FinishingRate, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if err := validateFinishingRateInput(input); err != nil {
		return nil, err
	}
	rate, err := s.repo.GetFinishingRate(ctx, shopID, rateID)
	if err != nil {
		return nil, notFoundOr(err, "finishing rate not found")
	}
	applyFinishingRateInput(rate, input)
	return s.repo.SaveFinishingRate(ctx, rate)
}

func (s *service) DeleteFinishingRate(ctx context.Context, userID, shopID, rateID uuid.UUID) error {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return err
	}
	return s.repo.DeleteFinishingRate(ctx, shopID, rateID)
}

func (s *service) ListFinishingRates(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.FinishingRate, int64, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListFinishingRates(ctx, shopID, limit, offset)
}

func (s *service) CreateMaterial(ctx context.Context, userID, shopID uuid.UUID, input MaterialInput) (*models.Material, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if err := validateMaterialInput(input); err != nil {
		return nil, err
	}
	material := &models.Material{ShopID: shopID}
	applyMaterialInput(material, input)
	return s.repo.SaveMaterial(ctx, material)
}

func (s *service) UpdateMaterial(ctx context.Context, userID, shopID, materialID uuid.UUID, input MaterialInput) (*models.Material, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if err := validateMaterialInput(input); err != nil {
		return nil, err
	}
	material, err := s.repo.GetMaterial(ctx, shopID, materialID)
	if err != nil {
		return nil, notFoundOr(err, "material not found")
	}
	applyMaterialInput(material, input)
	return s.repo.SaveMaterial(ctx, material)
}

func (s *service) DeleteMaterial(ctx context.Context, userID, shopID, materialID uuid.UUID) error {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return err
	}
	return s.repo.DeleteMaterial(ctx, shopID, materialID)
}

func (s *service) ListMaterials(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.Material, int64, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListMaterials(ctx, shopID, limit, offset)
}

func (s *service) CreateServiceRate(ctx context.Context, userID, shopID uuid.UUID, input ServiceRateInput) (*models.ServiceRate, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if err := validateServiceRateInput(input); err != nil {
		return nil, err
	}
	rate := &models.ServiceRate{ShopID: shopID}
	applyServiceRateInput(rate, input)
	saved, err := s.repo.SaveServiceRate(ctx, rate)
	if err != nil {
		return nil, err
	}
	if err := s.saveTiers(ctx, saved, input); err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *service) UpdateServiceRate(ctx context.Context, userID, shopID, rateID uuid.UUID, input ServiceRateInput) (*models.ServiceRate, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, err
	}
	if err := validateServiceRateInput(input); err != nil {
		return nil, err
	}
	rate, err := s.repo.GetServiceRate(ctx, shopID, rateID)
	if err != nil {
		return nil, notFoundOr(err, "service rate not found")
	}
	applyServiceRateInput(rate, input)
	saved, err := s.repo.SaveServiceRate(ctx, rate)
	if err != nil {
		return nil, err
	}
	if err := s.saveTiers(ctx, saved, input); err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *service) DeleteServiceRate(ctx context.Context, userID, shopID, rateID uuid.UUID) error {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return err
	}
	return s.repo.DeleteServiceRate(ctx, shopID, rateID)
}

func (s *service) ListServiceRates(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.ServiceRate, int64, error) {
	if err := s.requireOwner(ctx, userID, shopID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListServiceRates(ctx, shopID, limit, offset)
}

func (s *service) saveTiers(ctx context.Context, rate *models.ServiceRate, input ServiceRateInput) error {
	tiers := make([]models.ServiceRateTier, 0, len(input.Tiers))
	for _, t := range input.Tiers {
		tiers = append(tiers, models.ServiceRateTier{
			ServiceRateID: rate.ID,
			MinKM:         t.MinKM,
			MaxKM:         t.MaxKM,
			Price:         t.Price,
		})
	}
	if err := s.repo.ReplaceServiceRateTiers(ctx, rate.ID, tiers); err != nil {
		return err
	}
	rate.Tiers = tiers
	return nil
}

func (s *service) requireOwner(ctx context.Context, userID, shopID uuid.UUID) error {
	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		return notFoundOr(err, "shop not found")
	}
	if shop.OwnerID != userID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the shop owner can manage the catalog")
	}
	return nil
}

func (s *service) loadReadiness(ctx context.Context, shopID uuid.UUID, mode enums.PricingMode) (shopReadiness, error) {
	var readiness shopReadiness
	var err error
	switch mode {
	case enums.PricingModeLargeFormat:
		readiness.materialsWithPrice, err = s.repo.CountMaterialsWithPrice(ctx, shopID)
		if err != nil {
			return readiness, err
		}
	default:
		readiness.papersWithPrice, err = s.repo.CountPapersWithPrice(ctx, shopID)
		if err != nil {
			return readiness, err
		}
		readiness.activeMachines, err = s.repo.CountMachines(ctx, shopID)
		if err != nil {
			return readiness, err
		}
		if readiness.activeMachines > 0 {
			readiness.printingRates, err = s.repo.CountPrintingRates(ctx, shopID)
			if err != nil {
				return readiness, err
			}
		}
	}
	return readiness, nil
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, msg)
	}
	return err
}

func validateProductInput(input ProductInput) error {
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if !input.PricingMode.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid pricing mode")
	}
	if input.DefaultSides != "" && !input.DefaultSides.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid default sides")
	}
	if input.DefaultSheetSize != "" && !input.DefaultSheetSize.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid default sheet size")
	}
	if input.MinQuantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "minimum quantity cannot be negative")
	}
	if !input.AllowSimplex && !input.AllowDuplex {
		return pkgerrors.New(pkgerrors.CodeValidation, "product must allow at least one side option")
	}
	if input.MinGSM != nil && input.MaxGSM != nil && *input.MinGSM > *input.MaxGSM {
		return pkgerrors.New(pkgerrors.CodeValidation, "minimum GSM cannot exceed maximum GSM")
	}
	return nil
}

func applyProductInput(product *models.Product, input ProductInput) {
	product.Name = input.Name
	product.Description = input.Description
	product.Category = input.Category
	product.PricingMode = input.PricingMode
	product.DefaultFinishedWidthMM = input.DefaultFinishedWidthMM
	product.DefaultFinishedHeightMM = input.DefaultFinishedHeightMM
	product.DefaultBleedMM = input.DefaultBleedMM
	product.DefaultSides = input.DefaultSides
	product.DefaultSheetSize = input.DefaultSheetSize
	product.MinQuantity = input.MinQuantity
	product.MinGSM = input.MinGSM
	product.MaxGSM = input.MaxGSM
	product.AllowSimplex = input.AllowSimplex
	product.AllowDuplex = input.AllowDuplex
	product.IsActive = input.IsActive
}

// validatePaperInput also fills in physical dimensions from the standard
// sheet size when the caller leaves them out.
func validatePaperInput(input *PaperInput) error {
	if !input.SheetSize.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid sheet size")
	}
	if input.PaperType != "" && !input.PaperType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid paper type")
	}
	if input.GSM <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "paper GSM must be positive")
	}
	if input.SellingPrice.IsNegative() || input.BuyingPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "paper prices cannot be negative")
	}
	if input.WidthMM == nil || input.HeightMM == nil {
		if dims, ok := input.SheetSize.Dimensions(); ok {
			w, h := dims.WidthMM, dims.HeightMM
			input.WidthMM = &w
			input.HeightMM = &h
		} else {
			return pkgerrors.New(pkgerrors.CodeValidation, "custom sheet sizes require explicit dimensions")
		}
	}
	if *input.WidthMM <= 0 || *input.HeightMM <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "paper dimensions must be positive")
	}
	return nil
}

func applyPaperInput(paper *models.Paper, input PaperInput) {
	paper.SheetSize = input.SheetSize
	paper.GSM = input.GSM
	paper.PaperType = input.PaperType
	paper.WidthMM = input.WidthMM
	paper.HeightMM = input.HeightMM
	paper.BuyingPrice = input.BuyingPrice
	paper.SellingPrice = input.SellingPrice
	paper.QuantityInStock = input.QuantityInStock
	paper.IsActive = input.IsActive
}

func validateMachineInput(input MachineInput) error {
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "machine name is required")
	}
	if !input.MachineType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid machine type")
	}
	if input.MaxWidthMM <= 0 || input.MaxHeightMM <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "machine maximum dimensions must be positive")
	}
	if input.MinGSM != nil && input.MaxGSM != nil && *input.MinGSM > *input.MaxGSM {
		return pkgerrors.New(pkgerrors.CodeValidation, "minimum GSM cannot exceed maximum GSM")
	}
	return nil
}

func applyMachineInput(machine *models.Machine, input MachineInput) {
	machine.Name = input.Name
	machine.MachineType = input.MachineType
	machine.MaxWidthMM = input.MaxWidthMM
	machine.MaxHeightMM = input.MaxHeightMM
	machine.MinGSM = input.MinGSM
	machine.MaxGSM = input.MaxGSM
	machine.IsActive = input.IsActive
}

func validatePrintingRateInput(input PrintingRateInput) error {
	if !input.SheetSize.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid sheet size")
	}
	if !input.ColorMode.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid color mode")
	}
	if input.SinglePrice.IsNegative() || input.DoublePrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "printing prices cannot be negative")
	}
	return nil
}

func validateFinishingRateInput(input FinishingRateInput) error {
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "finishing rate name is required")
	}
	if !input.ChargeUnit.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid charge unit")
	}
	if input.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "finishing price cannot be negative")
	}
	if input.MinQty != nil && *input.MinQty < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "minimum quantity cannot be negative")
	}
	return nil
}

func applyFinishingRateInput(rate *models.FinishingRate, input FinishingRateInput) {
	rate.Name = input.Name
	rate.ChargeUnit = input.ChargeUnit
	rate.Price = input.Price
	rate.DoubleSidePrice = input.DoubleSidePrice
	rate.SetupFee = input.SetupFee
	rate.MinQty = input.MinQty
	rate.IsActive = input.IsActive
}

func validateMaterialInput(input MaterialInput) error {
	if input.MaterialType == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "material type is required")
	}
	if input.SellingPrice.IsNegative() || input.BuyingPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "material prices cannot be negative")
	}
	return nil
}

func applyMaterialInput(material *models.Material, input MaterialInput) {
	material.MaterialType = input.MaterialType
	if input.Unit != "" {
		material.Unit = input.Unit
	}
	material.BuyingPrice = input.BuyingPrice
	material.SellingPrice = input.SellingPrice
	material.IsActive = input.IsActive
}

func validateServiceRateInput(input ServiceRateInput) error {
	if !input.Code.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid service code")
	}
	if input.Name == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "service rate name is required")
	}
	if !input.PricingType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid pricing type")
	}
	switch input.PricingType {
	case enums.ServicePricingFixed:
		if input.Price == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "fixed service rates require a price")
		}
		if input.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "service price cannot be negative")
		}
	case enums.ServicePricingTieredDistance:
		if len(input.Tiers) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "distance-tiered service rates require at least one tier")
		}
		if err := validateTiers(input.Tiers); err != nil {
			return err
		}
	}
	return nil
}

// validateTiers requires ordered, non-overlapping distance bands; only
// the last band may be open-ended.
func validateTiers(tiers []ServiceTierInput) error {
	for i, tier := range tiers {
		if tier.MinKM.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "tier minimum distance cannot be negative")
		}
		if tier.Price.IsNegative() {
			return pkgerrors.New(pkgerrors.CodeValidation, "tier price cannot be negative")
		}
		if tier.MaxKM != nil && tier.MaxKM.LessThanOrEqual(tier.MinKM) {
			return pkgerrors.New(pkgerrors.CodeValidation, "tier maximum distance must exceed its minimum")
		}
		if i == 0 {
			continue
		}
		prev := tiers[i-1]
		if prev.MaxKM == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "only the last tier can be open-ended")
		}
		if tier.MinKM.LessThan(*prev.MaxKM) {
			return pkgerrors.New(pkgerrors.CodeValidation, "tiers cannot overlap")
		}
	}
	return nil
}

func applyServiceRateInput(rate *models.ServiceRate, input ServiceRateInput) {
	rate.Code = input.Code
	rate.Name = input.Name
	rate.PricingType = input.PricingType
	rate.Price = input.Price
	rate.IsOptional = input.IsOptional
	rate.IsNegotiable = input.IsNegotiable
	rate.IsActive = input.IsActive
}
