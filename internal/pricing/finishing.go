package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/printyke/printy-backend/pkg/db/models"
	"github.com/printyke/printy-backend/pkg/enums"
)

var two = decimal.NewFromInt(2)

// FinishingCost applies a finishing rate to a line item by its charge unit.
//
// An override replaces the single-side price (double becomes 2x override).
// PER_SHEET and PER_SQM bill off the configured single price regardless of
// the override or sides, since sheet count and area, not sides, drive those
// units. The setup fee, when configured, is added once for PER_SHEET and
// FLAT only.
func FinishingCost(rate *models.FinishingRate, quantity int, areaSqm decimal.Decimal, sidesCount int, priceOverride *decimal.Decimal, applyToSides enums.FinishingSides, sheetsNeeded int) decimal.Decimal {
	if rate == nil {
		return decimal.Zero
	}

	single := rate.Price
	double := rate.EffectiveDoublePrice()
	if priceOverride != nil {
		single = *priceOverride
		double = priceOverride.Mul(two)
	}
	effectiveSides := applyToSides.EffectiveCount(sidesCount)

	qty := decimal.NewFromInt(int64(quantity))
	total := decimal.Zero

	switch rate.ChargeUnit {
	case enums.ChargeUnitPerPiece:
		unit := single
		if effectiveSides == 2 {
			unit = double
		}
		total = unit.Mul(qty)
	case enums.ChargeUnitPerSide:
		total = single.Mul(qty).Mul(decimal.NewFromInt(int64(effectiveSides)))
	case enums.ChargeUnitPerSheet:
		sheets := sheetsNeeded
		if sheets <= 0 {
			sheets = quantity
			if sheets < 1 {
				sheets = 1
			}
		}
		total = rate.Price.Mul(decimal.NewFromInt(int64(sheets)))
		if rate.SetupFee != nil {
			total = total.Add(*rate.SetupFee)
		}
	case enums.ChargeUnitPerSqm:
		total = rate.Price.Mul(areaSqm)
	case enums.ChargeUnitFlat:
		total = single
		if effectiveSides == 2 {
			total = double
		}
		if rate.SetupFee != nil {
			total = total.Add(*rate.SetupFee)
		}
	}

	return total
}

// SheetAreaSqm returns the area of one sheet of the paper in square
// meters, zero when the paper's dimensions cannot be determined.
func SheetAreaSqm(paper *models.Paper) decimal.Decimal {
	width, height, ok := paper.Dimensions()
	if !ok {
		return decimal.Zero
	}
	thousand := decimal.NewFromInt(1000)
	w := decimal.NewFromInt(int64(width)).Div(thousand)
	h := decimal.NewFromInt(int64(height)).Div(thousand)
	return w.Mul(h)
}
