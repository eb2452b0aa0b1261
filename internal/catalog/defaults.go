package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/printyke/printy-backend/pkg/db/models"
	"github.com/printyke/printy-backend/pkg/enums"
)

// RateTemplate is one pre-filled printing rate offered to shops that have
// not priced a machine yet. Prices are per sheet in the shop currency and
// are meant to be adjusted, not trusted.
type RateTemplate struct {
	SheetSize   enums.SheetSize
	ColorMode   enums.ColorMode
	SinglePrice decimal.Decimal
	DoublePrice decimal.Decimal
}

// Machines without configured GSM bounds get these when defaults are
// applied.
const (
	defaultMachineMinGSM = 80
	defaultMachineMaxGSM = 400
)

// DefaultRateTemplates returns the starter rate card covering the common
// digital sheet sizes. Color runs at five times the mono impression cost,
// duplex at twice the simplex price.
func DefaultRateTemplates() []RateTemplate {
	bySize := []struct {
		size enums.SheetSize
		mono string
	}{
		{enums.SheetSizeA4, "0.02"},
		{enums.SheetSizeA3, "0.04"},
		{enums.SheetSizeSRA3, "0.06"},
	}
	colorFactor := decimal.NewFromInt(5)
	double := decimal.NewFromInt(2)

	templates := make([]RateTemplate, 0, len(bySize)*2)
	for _, entry := range bySize {
		mono := decimal.RequireFromString(entry.mono)
		color := mono.Mul(colorFactor)
		templates = append(templates,
			RateTemplate{
				SheetSize:   entry.size,
				ColorMode:   enums.ColorModeBW,
				SinglePrice: mono,
				DoublePrice: mono.Mul(double),
			},
			RateTemplate{
				SheetSize:   entry.size,
				ColorMode:   enums.ColorModeColor,
				SinglePrice: color,
				DoublePrice: color.Mul(double),
			},
		)
	}
	return templates
}

// missingTemplateRates filters the starter rate card down to combinations
// the machine does not already price.
func missingTemplateRates(machine *models.Machine) []models.PrintingRate {
	configured := make(map[enums.SheetSize]map[enums.ColorMode]bool)
	for _, rate := range machine.PrintingRates {
		if configured[rate.SheetSize] == nil {
			configured[rate.SheetSize] = make(map[enums.ColorMode]bool)
		}
		configured[rate.SheetSize][rate.ColorMode] = true
	}

	var rates []models.PrintingRate
	for _, tpl := range DefaultRateTemplates() {
		if configured[tpl.SheetSize][tpl.ColorMode] {
			continue
		}
		rates = append(rates, models.PrintingRate{
			MachineID:   machine.ID,
			SheetSize:   tpl.SheetSize,
			ColorMode:   tpl.ColorMode,
			SinglePrice: tpl.SinglePrice,
			DoublePrice: tpl.DoublePrice,
			IsActive:    true,
		})
	}
	return rates
}
