package catalog

import (
	"fmt"

	"github.com/printyke/printy-backend/internal/quotes"
	"github.com/printyke/printy-backend/pkg/db/models"
	"github.com/printyke/printy-backend/pkg/enums"
)

// ProductDiagnostics reports whether a product can be quoted with the
// shop's current configuration, and what to set up when it cannot.
type ProductDiagnostics struct {
	ProductID   string              `json:"product_id"`
	Ready       bool                `json:"ready"`
	Reason      string              `json:"reason"`
	Suggestions []quotes.Suggestion `json:"suggestions"`
}

// shopReadiness carries the counts the hint needs, gathered by the
// service before delegating here.
type shopReadiness struct {
	papersWithPrice    int64
	activeMachines     int64
	printingRates      int64
	materialsWithPrice int64
}

const hintReason = "Configure papers, machines, and rates under Shop setup."

// buildProductDiagnostics inspects a product against the shop's
// configuration and lists the setup steps still missing before any quote
// item using this product can price.
func buildProductDiagnostics(product *models.Product, readiness shopReadiness) ProductDiagnostics {
	var suggestions []quotes.Suggestion

	switch product.PricingMode {
	case enums.PricingModeSheet:
		if !product.HasFinishedDimensions() {
			suggestions = append(suggestions, quotes.Suggestion{
				Code:    quotes.SuggestionAddDimensions,
				Message: fmt.Sprintf("Set the finished size for %s so sheet usage can be computed.", product.Name),
				Target:  map[string]any{"entity": "product", "product_id": product.ID.String()},
			})
		}
		if readiness.papersWithPrice == 0 {
			suggestions = append(suggestions, quotes.Suggestion{
				Code:    quotes.SuggestionAddPaper,
				Message: "Add at least one paper with a selling price under Shop → Papers.",
				Target:  map[string]any{"entity": "paper"},
			})
		}
		if readiness.activeMachines == 0 {
			suggestions = append(suggestions, quotes.Suggestion{
				Code:    quotes.SuggestionAddMachine,
				Message: "Add a machine under Shop → Machines so printing can be priced.",
				Target:  map[string]any{"entity": "machine"},
			})
		} else if readiness.printingRates == 0 {
			suggestions = append(suggestions, quotes.Suggestion{
				Code:    quotes.SuggestionAddPrintingRate,
				Message: "Add printing rates under Machine → Printing Rates.",
				Target:  map[string]any{"entity": "printing_rate"},
			})
		}
	case enums.PricingModeLargeFormat:
		if readiness.materialsWithPrice == 0 {
			suggestions = append(suggestions, quotes.Suggestion{
				Code:    quotes.SuggestionAddMaterialPrice,
				Message: "Add a material with a selling price under Shop → Materials.",
				Target:  map[string]any{"entity": "material"},
			})
		}
	default:
		suggestions = append(suggestions, quotes.Suggestion{
			Code:    quotes.SuggestionSetPricingMode,
			Message: fmt.Sprintf("Set a pricing mode for %s.", product.Name),
			Target:  map[string]any{"entity": "product", "product_id": product.ID.String()},
		})
	}

	diag := ProductDiagnostics{
		ProductID:   product.ID.String(),
		Ready:       len(suggestions) == 0,
		Suggestions: suggestions,
	}
	if !diag.Ready {
		diag.Reason = hintReason
	}
	if diag.Suggestions == nil {
		diag.Suggestions = []quotes.Suggestion{}
	}
	return diag
}
