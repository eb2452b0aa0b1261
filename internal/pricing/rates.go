// Package pricing holds the pure rate-resolution and cost helpers the
// quote engine composes: printing-rate lookup, service price resolution
// and finishing cost application. Everything here operates on entities
// passed in by the caller; nothing touches the database.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/printyke/printy-backend/pkg/db/models"
	"github.com/printyke/printy-backend/pkg/enums"
)

// ResolvePrintingRate finds the active rate on the machine matching the
// sheet size and color mode exactly, and returns it together with the
// per-sheet price for the requested sides. Both results are nil when no
// rate matches; callers must treat that as "cannot price", never as zero.
// The machine's PrintingRates association must be loaded.
func ResolvePrintingRate(machine *models.Machine, sheetSize enums.SheetSize, colorMode enums.ColorMode, sides enums.Sides) (*models.PrintingRate, *decimal.Decimal) {
	if machine == nil {
		return nil, nil
	}
	for i := range machine.PrintingRates {
		rate := &machine.PrintingRates[i]
		if !rate.IsActive {
			continue
		}
		if rate.SheetSize != sheetSize || rate.ColorMode != colorMode {
			continue
		}
		price := rate.PriceForSides(sides)
		return rate, &price
	}
	return nil, nil
}

// ResolveServicePrice resolves a service charge. An override always wins.
// FIXED rates return their flat price. TIERED_DISTANCE rates select the
// band with the greatest minimum distance that still covers distanceKM;
// with no distance or no covering band the price is undetermined and the
// result is nil, never zero.
func ResolveServicePrice(rate *models.ServiceRate, override *decimal.Decimal, distanceKM *decimal.Decimal) *decimal.Decimal {
	if override != nil {
		return override
	}
	if rate == nil {
		return nil
	}
	switch rate.PricingType {
	case enums.ServicePricingFixed:
		return rate.Price
	case enums.ServicePricingTieredDistance:
		return resolveTieredPrice(rate.Tiers, distanceKM)
	}
	return nil
}

func resolveTieredPrice(tiers []models.ServiceRateTier, distanceKM *decimal.Decimal) *decimal.Decimal {
	if distanceKM == nil {
		return nil
	}
	var best *models.ServiceRateTier
	for i := range tiers {
		tier := &tiers[i]
		if !tier.Contains(*distanceKM) {
			continue
		}
		if best == nil || tier.MinKM.GreaterThan(best.MinKM) {
			best = tier
		}
	}
	if best == nil {
		return nil
	}
	price := best.Price
	return &price
}
