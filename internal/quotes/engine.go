// Package quotes implements the quote pricing engine: per-item price
// calculation, the diagnostics that explain incomplete items, the quote
// aggregator and the status workflow. Calculation functions are pure
// over the entities passed in; only the lock path persists anything.
package quotes

import (
	"github.com/shopspring/decimal"

	"github.com/printyke/printy-backend/internal/imposition"
	"github.com/printyke/printy-backend/internal/pricing"
	"github.com/printyke/printy-backend/pkg/db/models"
	"github.com/printyke/printy-backend/pkg/enums"
)

// EffectivePricingMode picks the mode the engine prices an item under.
// PRODUCT items inherit the product's mode. CUSTOM items use their own
// explicit mode when set, otherwise LARGE_FORMAT if a material is
// attached and SHEET as the fallback.
func EffectivePricingMode(item *models.QuoteItem) enums.PricingMode {
	if item.ItemType == enums.ItemTypeProduct && item.ProductID != nil {
		if item.Product != nil && item.Product.PricingMode != "" {
			return item.Product.PricingMode
		}
		return enums.PricingModeSheet
	}
	if item.PricingMode != "" {
		return item.PricingMode
	}
	if item.MaterialID != nil {
		return enums.PricingModeLargeFormat
	}
	return enums.PricingModeSheet
}

// piecesForItem computes how many finished pieces fit on one sheet of the
// item's paper. Without product dimensions or paper dimensions the engine
// falls back to one piece per sheet.
func piecesForItem(item *models.QuoteItem, paper *models.Paper) int {
	product := item.Product
	if product == nil || !product.HasFinishedDimensions() {
		return 1
	}
	sheetW, sheetH, ok := paper.Dimensions()
	if !ok {
		return 1
	}
	return imposition.PiecesPerSheet(
		product.DefaultFinishedWidthMM,
		product.DefaultFinishedHeightMM,
		sheetW,
		sheetH,
		product.Bleed(),
	)
}

// CalculateItem computes (unitPrice, lineTotal) for one quote item.
//
// A locked item returns its stored values untouched unless force is set;
// this is what makes repeated previews idempotent once a seller has
// priced the quote. Missing configuration never errors: the result
// degrades to (0, 0) and the diagnostics builder explains what is
// missing. Associations (product, paper, material, machine with rates,
// finishings, services) must be loaded by the caller.
func CalculateItem(item *models.QuoteItem, force bool) (decimal.Decimal, decimal.Decimal) {
	if item.PricingLockedAt != nil && !force {
		unit := decimal.Zero
		line := decimal.Zero
		if item.UnitPrice != nil {
			unit = *item.UnitPrice
		}
		if item.LineTotal != nil {
			line = *item.LineTotal
		}
		return unit, line
	}

	quantity := item.Quantity
	if quantity <= 0 {
		return decimal.Zero, decimal.Zero
	}
	if item.ItemType == enums.ItemTypeProduct && item.Product == nil {
		return decimal.Zero, decimal.Zero
	}
	if item.ItemType == enums.ItemTypeCustom && item.Title == "" && item.SpecText == "" {
		return decimal.Zero, decimal.Zero
	}

	total := decimal.Zero
	areaSqm := decimal.Zero
	sidesCount := item.Sides.Count()
	sheetsCount := 0

	switch EffectivePricingMode(item) {
	case enums.PricingModeSheet:
		if item.PaperID == nil || item.Paper == nil {
			return decimal.Zero, decimal.Zero
		}
		paper := item.Paper

		pieces := piecesForItem(item, paper)
		sheetsCount = imposition.SheetsNeeded(quantity, pieces)
		total = total.Add(paper.SellingPrice.Mul(decimal.NewFromInt(int64(sheetsCount))))

		if item.MachineID != nil && item.Sides != "" && item.ColorMode != "" {
			_, printPrice := pricing.ResolvePrintingRate(item.Machine, paper.SheetSize, item.ColorMode, item.Sides)
			if printPrice != nil {
				total = total.Add(printPrice.Mul(decimal.NewFromInt(int64(sheetsCount))))
			}
		}

		areaSqm = pricing.SheetAreaSqm(paper).Mul(decimal.NewFromInt(int64(sheetsCount)))

	case enums.PricingModeLargeFormat:
		if item.MaterialID == nil || item.Material == nil {
			return decimal.Zero, decimal.Zero
		}
		if item.ChosenWidthMM == nil || *item.ChosenWidthMM <= 0 ||
			item.ChosenHeightMM == nil || *item.ChosenHeightMM <= 0 {
			return decimal.Zero, decimal.Zero
		}

		thousand := decimal.NewFromInt(1000)
		w := decimal.NewFromInt(int64(*item.ChosenWidthMM)).Div(thousand)
		h := decimal.NewFromInt(int64(*item.ChosenHeightMM)).Div(thousand)
		areaSqm = w.Mul(h).Mul(decimal.NewFromInt(int64(quantity)))
		total = total.Add(item.Material.SellingPrice.Mul(areaSqm))

	default:
		return decimal.Zero, decimal.Zero
	}

	for i := range item.Finishings {
		qif := &item.Finishings[i]
		total = total.Add(pricing.FinishingCost(
			qif.FinishingRate,
			quantity,
			areaSqm,
			sidesCount,
			qif.PriceOverride,
			qif.ApplyToSides,
			sheetsCount,
		))
	}

	for i := range item.Services {
		qis := &item.Services[i]
		if !qis.IsSelected {
			continue
		}
		if price := pricing.ResolveServicePrice(qis.ServiceRate, qis.PriceOverride, nil); price != nil {
			total = total.Add(*price)
		}
	}

	unitPrice := total.Div(decimal.NewFromInt(int64(quantity)))
	return unitPrice, total
}
