package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/printyke/printy-backend/api/responses"
	"github.com/printyke/printy-backend/api/validators"
	"github.com/printyke/printy-backend/internal/catalog"
	"github.com/printyke/printy-backend/pkg/enums"
	"github.com/printyke/printy-backend/pkg/logger"
	"github.com/printyke/printy-backend/pkg/pagination"
)

type productPayload struct {
	Name                    string            `json:"name" validate:"required,max=160"`
	Description             string            `json:"description" validate:"omitempty,max=2000"`
	Category                string            `json:"category" validate:"omitempty,max=80"`
	PricingMode             enums.PricingMode `json:"pricing_mode" validate:"required"`
	DefaultFinishedWidthMM  int               `json:"default_finished_width_mm" validate:"omitempty,min=0"`
	DefaultFinishedHeightMM int               `json:"default_finished_height_mm" validate:"omitempty,min=0"`
	DefaultBleedMM          int               `json:"default_bleed_mm" validate:"omitempty,min=0"`
	DefaultSides            enums.Sides       `json:"default_sides" validate:"omitempty"`
	DefaultSheetSize        enums.SheetSize   `json:"default_sheet_size" validate:"omitempty"`
	MinQuantity             int               `json:"min_quantity" validate:"omitempty,min=0"`
	MinGSM                  *int              `json:"min_gsm" validate:"omitempty,min=0"`
	MaxGSM                  *int              `json:"max_gsm" validate:"omitempty,min=0"`
	AllowSimplex            bool              `json:"allow_simplex"`
	AllowDuplex             bool              `json:"allow_duplex"`
	IsActive                bool              `json:"is_active"`
}

func (p productPayload) toInput() catalog.ProductInput {
	return catalog.ProductInput{
		Name:                    validators.SanitizeString(p.Name, 160),
		Description:             validators.SanitizeString(p.Description, 2000),
		Category:                validators.SanitizeString(p.Category, 80),
		PricingMode:             p.PricingMode,
		DefaultFinishedWidthMM:  p.DefaultFinishedWidthMM,
		DefaultFinishedHeightMM: p.DefaultFinishedHeightMM,
		DefaultBleedMM:          p.DefaultBleedMM,
		DefaultSides:            p.DefaultSides,
		DefaultSheetSize:        p.DefaultSheetSize,
		MinQuantity:             p.MinQuantity,
		MinGSM:                  p.MinGSM,
		MaxGSM:                  p.MaxGSM,
		AllowSimplex:            p.AllowSimplex,
		AllowDuplex:             p.AllowDuplex,
		IsActive:                p.IsActive,
	}
}

type paperPayload struct {
	SheetSize       enums.SheetSize `json:"sheet_size" validate:"required"`
	GSM             int             `json:"gsm" validate:"required,min=1"`
	PaperType       enums.PaperType `json:"paper_type" validate:"required"`
	WidthMM         *int            `json:"width_mm" validate:"omitempty,min=1"`
	HeightMM        *int            `json:"height_mm" validate:"omitempty,min=1"`
	BuyingPrice     decimal.Decimal `json:"buying_price"`
	SellingPrice    decimal.Decimal `json:"selling_price"`
	QuantityInStock int             `json:"quantity_in_stock" validate:"omitempty,min=0"`
	IsActive        bool            `json:"is_active"`
}

func (p paperPayload) toInput() catalog.PaperInput {
	return catalog.PaperInput{
		SheetSize:       p.SheetSize,
		GSM:             p.GSM,
		PaperType:       p.PaperType,
		WidthMM:         p.WidthMM,
		HeightMM:        p.HeightMM,
		BuyingPrice:     p.BuyingPrice,
		SellingPrice:    p.SellingPrice,
		QuantityInStock: p.QuantityInStock,
		IsActive:        p.IsActive,
	}
}

type machinePayload struct {
	Name        string            `json:"name" validate:"required,max=160"`
	MachineType enums.MachineType `json:"machine_type" validate:"required"`
	MaxWidthMM  int               `json:"max_width_mm" validate:"omitempty,min=0"`
	MaxHeightMM int               `json:"max_height_mm" validate:"omitempty,min=0"`
	MinGSM      *int              `json:"min_gsm" validate:"omitempty,min=0"`
	MaxGSM      *int              `json:"max_gsm" validate:"omitempty,min=0"`
	IsActive    bool              `json:"is_active"`
}

func (p machinePayload) toInput() catalog.MachineInput {
	return catalog.MachineInput{
		Name:        validators.SanitizeString(p.Name, 160),
		MachineType: p.MachineType,
		MaxWidthMM:  p.MaxWidthMM,
		MaxHeightMM: p.MaxHeightMM,
		MinGSM:      p.MinGSM,
		MaxGSM:      p.MaxGSM,
		IsActive:    p.IsActive,
	}
}

type printingRatePayload struct {
	SheetSize   enums.SheetSize `json:"sheet_size" validate:"required"`
	ColorMode   enums.ColorMode `json:"color_mode" validate:"required"`
	SinglePrice decimal.Decimal `json:"single_price"`
	DoublePrice decimal.Decimal `json:"double_price"`
	IsActive    bool            `json:"is_active"`
}

func (p printingRatePayload) toInput() catalog.PrintingRateInput {
	return catalog.PrintingRateInput{
		SheetSize:   p.SheetSize,
		ColorMode:   p.ColorMode,
		SinglePrice: p.SinglePrice,
		DoublePrice: p.DoublePrice,
		IsActive:    p.IsActive,
	}
}

type finishingRatePayload struct {
	Name            string           `json:"name" validate:"required,max=160"`
	ChargeUnit      enums.ChargeUnit `json:"charge_unit" validate:"required"`
	Price           decimal.Decimal  `json:"price"`
	DoubleSidePrice *decimal.Decimal `json:"double_side_price"`
	SetupFee        *decimal.Decimal `json:"setup_fee"`
	MinQty          *int             `json:"min_qty" validate:"omitempty,min=0"`
	IsActive        bool             `json:"is_active"`
}

func (p finishingRatePayload) toInput() catalog.FinishingRateInput {
	return catalog.FinishingRateInput{
		Name:            validators.SanitizeString(p.Name, 160),
		ChargeUnit:      p.ChargeUnit,
		Price:           p.Price,
		DoubleSidePrice: p.DoubleSidePrice,
		SetupFee:        p.SetupFee,
		MinQty:          p.MinQty,
		IsActive:        p.IsActive,
	}
}

type materialPayload struct {
	MaterialType string          `json:"material_type" validate:"required,max=80"`
	Unit         string          `json:"unit" validate:"required,max=32"`
	BuyingPrice  decimal.Decimal `json:"buying_price"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	IsActive     bool            `json:"is_active"`
}

func (p materialPayload) toInput() catalog.MaterialInput {
	return catalog.MaterialInput{
		MaterialType: validators.SanitizeString(p.MaterialType, 80),
		Unit:         validators.SanitizeString(p.Unit, 32),
		BuyingPrice:  p.BuyingPrice,
		SellingPrice: p.SellingPrice,
		IsActive:     p.IsActive,
	}
}

type serviceTierPayload struct {
	MinKM decimal.Decimal  `json:"min_km"`
	MaxKM *decimal.Decimal `json:"max_km"`
	Price decimal.Decimal  `json:"price"`
}

type serviceRatePayload struct {
	Code         enums.ServiceCode        `json:"code" validate:"required"`
	Name         string                   `json:"name" validate:"required,max=160"`
	PricingType  enums.ServicePricingType `json:"pricing_type" validate:"required"`
	Price        *decimal.Decimal         `json:"price"`
	IsOptional   bool                     `json:"is_optional"`
	IsNegotiable bool                     `json:"is_negotiable"`
	Tiers        []serviceTierPayload     `json:"tiers" validate:"omitempty,dive"`
	IsActive     bool                     `json:"is_active"`
}

func (p serviceRatePayload) toInput() catalog.ServiceRateInput {
	tiers := make([]catalog.ServiceTierInput, 0, len(p.Tiers))
	for _, t := range p.Tiers {
		tiers = append(tiers, catalog.ServiceTierInput{MinKM: t.MinKM, MaxKM: t.MaxKM, Price: t.Price})
	}
	return catalog.ServiceRateInput{
		Code:         p.Code,
		Name:         validators.SanitizeString(p.Name, 160),
		PricingType:  p.PricingType,
		Price:        p.Price,
		IsOptional:   p.IsOptional,
		IsNegotiable: p.IsNegotiable,
		Tiers:        tiers,
		IsActive:     p.IsActive,
	}
}

func ProductCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body productPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.CreateProduct(r.Context(), user, shopID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func ProductUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body productPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.UpdateProduct(r.Context(), user, shopID, productID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteProduct(r.Context(), user, shopID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ProductGet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		product, err := svc.GetProduct(r.Context(), shopID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, product)
	}
}

func ProductsList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, total, err := svc.ListProducts(r.Context(), user, shopID, page.Limit, page.Offset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pagination.NewPage(items, total, page))
	}
}

// ProductPriceHint reports whether a product can be priced yet and what
// catalog setup is still missing.
func ProductPriceHint(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := pathUUID(r, "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		hint, err := svc.ProductPriceHint(r.Context(), user, shopID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, hint)
	}
}

func PaperCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body paperPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		paper, err := svc.CreatePaper(r.Context(), user, shopID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, paper)
	}
}

func PaperUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		paperID, err := pathUUID(r, "paperID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body paperPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		paper, err := svc.UpdatePaper(r.Context(), user, shopID, paperID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, paper)
	}
}

func PaperDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		paperID, err := pathUUID(r, "paperID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeletePaper(r.Context(), user, shopID, paperID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func PapersList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, total, err := svc.ListPapers(r.Context(), user, shopID, page.Limit, page.Offset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pagination.NewPage(items, total, page))
	}
}

func MachineCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body machinePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		machine, err := svc.CreateMachine(r.Context(), user, shopID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, machine)
	}
}

func MachineUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		machineID, err := pathUUID(r, "machineID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body machinePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		machine, err := svc.UpdateMachine(r.Context(), user, shopID, machineID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, machine)
	}
}

func MachineDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		machineID, err := pathUUID(r, "machineID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteMachine(r.Context(), user, shopID, machineID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func MachinesList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, total, err := svc.ListMachines(r.Context(), user, shopID, page.Limit, page.Offset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pagination.NewPage(items, total, page))
	}
}

// PrintingRateSet upserts the rate for one (sheet size, color mode) pair.
func PrintingRateSet(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		machineID, err := pathUUID(r, "machineID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body printingRatePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rate, err := svc.SetPrintingRate(r.Context(), user, shopID, machineID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rate)
	}
}

func PrintingRateDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		machineID, err := pathUUID(r, "machineID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rateID, err := pathUUID(r, "rateID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeletePrintingRate(r.Context(), user, shopID, machineID, rateID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// PrintingRatesApplyDefaults seeds standard sheet rates a machine is missing.
func PrintingRatesApplyDefaults(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		machineID, err := pathUUID(r, "machineID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		machine, err := svc.ApplyDefaultPrintingRates(r.Context(), user, shopID, machineID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, machine)
	}
}

func FinishingRateCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body finishingRatePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rate, err := svc.CreateFinishingRate(r.Context(), user, shopID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, rate)
	}
}

func FinishingRateUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rateID, err := pathUUID(r, "rateID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body finishingRatePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rate, err := svc.UpdateFinishingRate(r.Context(), user, shopID, rateID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rate)
	}
}

func FinishingRateDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rateID, err := pathUUID(r, "rateID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteFinishingRate(r.Context(), user, shopID, rateID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func FinishingRatesList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, total, err := svc.ListFinishingRates(r.Context(), user, shopID, page.Limit, page.Offset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pagination.NewPage(items, total, page))
	}
}

func MaterialCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body materialPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		material, err := svc.CreateMaterial(r.Context(), user, shopID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, material)
	}
}

func MaterialUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		materialID, err := pathUUID(r, "materialID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body materialPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		material, err := svc.UpdateMaterial(r.Context(), user, shopID, materialID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, material)
	}
}

func MaterialDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		materialID, err := pathUUID(r, "materialID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteMaterial(r.Context(), user, shopID, materialID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func MaterialsList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, total, err := svc.ListMaterials(r.Context(), user, shopID, page.Limit, page.Offset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pagination.NewPage(items, total, page))
	}
}

func ServiceRateCreate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body serviceRatePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rate, err := svc.CreateServiceRate(r.Context(), user, shopID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, rate)
	}
}

func ServiceRateUpdate(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rateID, err := pathUUID(r, "rateID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body serviceRatePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rate, err := svc.UpdateServiceRate(r.Context(), user, shopID, rateID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, rate)
	}
}

func ServiceRateDelete(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rateID, err := pathUUID(r, "rateID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.DeleteServiceRate(r.Context(), user, shopID, rateID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

func ServiceRatesList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, total, err := svc.ListServiceRates(r.Context(), user, shopID, page.Limit, page.Offset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pagination.NewPage(items, total, page))
	}
}
