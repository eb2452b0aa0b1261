package quotes

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/printyke/printy-backend/internal/pricing"
	"github.com/printyke/printy-backend/pkg/db/models"
	"github.com/printyke/printy-backend/pkg/enums"
)

// Suggestion codes surfaced to the UI. Each one names the concrete action
// that unblocks pricing.
const (
	SuggestionAddPaper               = "ADD_PAPER"
	SuggestionSelectMachine          = "SELECT_MACHINE"
	SuggestionAddPrintingRate        = "ADD_PRINTING_RATE"
	SuggestionAddQuantity            = "ADD_QUANTITY"
	SuggestionAddDimensions          = "ADD_DIMENSIONS"
	SuggestionSelectColorMode        = "SELECT_COLOR_MODE"
	SuggestionSelectSides            = "SELECT_SIDES"
	SuggestionAddMaterialPrice       = "ADD_MATERIAL_PRICE"
	SuggestionSelectProduct          = "SELECT_PRODUCT"
	SuggestionAddTitle               = "ADD_TITLE"
	SuggestionAddDimensionsForFinish = "ADD_DIMENSIONS_FOR_FINISHING"
	SuggestionAddMachine             = "ADD_MACHINE"
	SuggestionSetPricingMode         = "SET_PRICING_MODE"
)

// MissingField names a specific entity field blocking a calculation.
type MissingField struct {
	Entity string `json:"entity"`
	Field  string `json:"field"`
}

// Suggestion is one actionable fix, pointing at the resource to edit.
type Suggestion struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Target  map[string]any `json:"target"`
}

// ItemDiagnostics explains why one item cannot be priced.
type ItemDiagnostics struct {
	CanCalculate  bool         `json:"can_calculate"`
	MissingFields []string     `json:"missing_fields"`
	Suggestions   []Suggestion `json:"suggestions"`
	Reason        string       `json:"reason"`
}

// PricingDiagnostics aggregates item diagnostics to the quote level.
type PricingDiagnostics struct {
	CanCalculate     bool                       `json:"can_calculate"`
	Reason           string                     `json:"reason"`
	MissingFields    []string                   `json:"missing_fields"`
	Suggestions      []Suggestion               `json:"suggestions"`
	NeedsReviewItems []uuid.UUID                `json:"needs_review_items"`
	ItemDiagnostics  map[string]ItemDiagnostics `json:"item_diagnostics"`
}

// MissingFieldsForItem lists the entity fields that must be filled before
// CalculateItem can produce a positive price. The branching here mirrors
// the engine's: any condition the engine degrades to zero on must surface
// a missing field, and an empty result means the engine can price the
// item. Changing one without the other breaks that duality.
func MissingFieldsForItem(item *models.QuoteItem) []MissingField {
	var missing []MissingField

	if item.ItemType == enums.ItemTypeProduct && item.Product == nil {
		return append(missing, MissingField{"QuoteItem", "product"})
	}
	if item.ItemType == enums.ItemTypeCustom && item.Title == "" && item.SpecText == "" {
		return append(missing, MissingField{"QuoteItem", "title or spec_text"})
	}
	if item.Quantity <= 0 {
		return append(missing, MissingField{"QuoteItem", "quantity"})
	}

	switch EffectivePricingMode(item) {
	case enums.PricingModeSheet:
		if item.Product != nil && !item.Product.HasFinishedDimensions() {
			missing = append(missing, MissingField{"Product", "default_finished_width_mm, default_finished_height_mm"})
		}
		if item.PaperID == nil || item.Paper == nil {
			return append(missing, MissingField{"QuoteItem", "paper"})
		}
		paper := item.Paper
		if paper.SellingPrice.IsZero() {
			missing = append(missing, MissingField{"Paper", "selling_price"})
		}
		if item.MachineID != nil && item.Sides != "" && item.ColorMode != "" {
			rate, _ := pricing.ResolvePrintingRate(item.Machine, paper.SheetSize, item.ColorMode, item.Sides)
			if rate == nil {
				missing = append(missing, MissingField{
					"PrintingRate",
					fmt.Sprintf("Create rate: machine + %s + %s", paper.SheetSize, item.ColorMode),
				})
			}
		} else {
			if item.MachineID == nil {
				missing = append(missing, MissingField{"QuoteItem", "machine"})
			}
			if item.Sides == "" {
				missing = append(missing, MissingField{"QuoteItem", "sides"})
			}
			if item.ColorMode == "" {
				missing = append(missing, MissingField{"QuoteItem", "color_mode"})
			}
		}
		if _, _, ok := paper.Dimensions(); !ok {
			missing = append(missing, MissingField{"Paper", "width_mm, height_mm (for PER_SQM finishing)"})
		}

	case enums.PricingModeLargeFormat:
		if item.MaterialID == nil || item.Material == nil {
			return append(missing, MissingField{"QuoteItem", "material"})
		}
		if item.ChosenWidthMM == nil || *item.ChosenWidthMM <= 0 {
			missing = append(missing, MissingField{"QuoteItem", "chosen_width_mm"})
		}
		if item.ChosenHeightMM == nil || *item.ChosenHeightMM <= 0 {
			missing = append(missing, MissingField{"QuoteItem", "chosen_height_mm"})
		}
		if item.Material.SellingPrice.IsZero() {
			missing = append(missing, MissingField{"Material", "selling_price"})
		}

	default:
		missing = append(missing, MissingField{"QuoteItem", "pricing_mode (SHEET or LARGE_FORMAT)"})
	}

	return missing
}

// FlattenMissingFields reduces raw missing fields to the short keys the
// API exposes (paper, machine, dimensions, printing_rate and so on),
// deduplicated in first-seen order.
func FlattenMissingFields(raw []MissingField) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, mf := range raw {
		key := missingFieldKey(mf)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out
}

func missingFieldKey(mf MissingField) string {
	field := strings.ToLower(mf.Field)
	switch {
	case mf.Entity == "PrintingRate" || strings.Contains(field, "printing"):
		return "printing_rate"
	case mf.Entity == "Product" && strings.Contains(field, "default_finished"):
		return "dimensions"
	case strings.Contains(field, "chosen_width") || strings.Contains(field, "chosen_height") || strings.Contains(field, "width_mm"):
		return "dimensions"
	case strings.Contains(field, "paper") || mf.Entity == "Paper":
		return "paper"
	case strings.Contains(field, "material") || mf.Entity == "Material":
		return "material"
	case strings.Contains(field, "machine"):
		return "machine"
	case strings.Contains(field, "pricing_mode"):
		return "pricing_mode"
	case strings.Contains(field, "product"):
		return "product"
	case strings.Contains(field, "quantity"):
		return "quantity"
	case strings.Contains(field, "sides"):
		return "sides"
	case strings.Contains(field, "color"):
		return "color_mode"
	case strings.Contains(field, "title"):
		return "title"
	default:
		return strings.ReplaceAll(field, " ", "_")
	}
}

// BuildItemDiagnostics turns an item's missing fields into structured,
// deduplicated suggestions with a short reason line.
func BuildItemDiagnostics(item *models.QuoteItem, flatMissing []string, shopID uuid.UUID) ItemDiagnostics {
	var suggestions []Suggestion
	var reasonParts []string

	mode := EffectivePricingMode(item)

	for _, mf := range flatMissing {
		switch mf {
		case "paper":
			message := "Add paper selling price under Shop → Papers."
			if item.Paper != nil {
				message = fmt.Sprintf("Add paper selling price for %s %dgsm under Shop → Papers.", item.Paper.SheetSize, item.Paper.GSM)
			} else if item.SpecText != "" {
				message = "Add paper selling price (check spec for size/gsm) under Shop → Papers."
			}
			suggestions = append(suggestions, Suggestion{
				Code:    SuggestionAddPaper,
				Message: message,
				Target:  map[string]any{"resource": "papers", "shop_id": shopID},
			})
			reasonParts = append(reasonParts, "paper pricing")
		case "machine":
			suggestions = append(suggestions, Suggestion{
				Code:    SuggestionSelectMachine,
				Message: "Select machine for this item.",
				Target:  map[string]any{"resource": "quote_item", "field": []string{"machine"}},
			})
			reasonParts = append(reasonParts, "machine")
		case "printing_rate":
			machineName := "machine"
			sheetSize := "sheet"
			target := map[string]any{"resource": "machines", "shop_id": shopID}
			if item.Machine != nil {
				machineName = item.Machine.Name
				target = map[string]any{"resource": "printing_rates", "machine_id": item.Machine.ID}
			}
			if item.Paper != nil {
				sheetSize = item.Paper.SheetSize.String()
			}
			color := string(item.ColorMode)
			if color == "" {
				color = string(enums.ColorModeColor)
			}
			suggestions = append(suggestions, Suggestion{
				Code:    SuggestionAddPrintingRate,
				Message: fmt.Sprintf("Set %s printing rate for %s %s (single/double) under Machine → Printing Rates.", machineName, sheetSize, color),
				Target:  target,
			})
			reasonParts = append(reasonParts, "printing rate")
		case "quantity":
			suggestions = append(suggestions, Suggestion{
				Code:    SuggestionAddQuantity,
				Message: "Add quantity or set Product.min_quantity.",
				Target:  map[string]any{"resource": "quote_item", "field": []string{"quantity"}},
			})
			reasonParts = append(reasonParts, "quantity")
		case "dimensions":
			suggestions = append(suggestions, dimensionsSuggestion(mode))
			reasonParts = append(reasonParts, "dimensions")
		case "color_mode":
			suggestions = append(suggestions, Suggestion{
				Code:    SuggestionSelectColorMode,
				Message: "Choose color: Black & White or Color.",
				Target:  map[string]any{"resource": "quote_item", "field": []string{"color_mode"}},
			})
			reasonParts = append(reasonParts, "color mode")
		case "sides":
			suggestions = append(suggestions, Suggestion{
				Code:    SuggestionSelectSides,
				Message: "Choose sides: Single or Double.",
				Target:  map[string]any{"resource": "quote_item", "field": []string{"sides"}},
			})
			reasonParts = append(reasonParts, "sides")
		case "material":
			suggestions = append(suggestions, Suggestion{
				Code:    SuggestionAddMaterialPrice,
				Message: "Add material with selling price under Shop → Materials.",
				Target:  map[string]any{"resource": "materials", "shop_id": shopID},
			})
			reasonParts = append(reasonParts, "material")
		case "product":
			suggestions = append(suggestions, Suggestion{
				Code:    SuggestionSelectProduct,
				Message: "Select a product for this item.",
				Target:  map[string]any{"resource": "quote_item", "field": []string{"product"}},
			})
			reasonParts = append(reasonParts, "product")
		case "title":
			suggestions = append(suggestions, Suggestion{
				Code:    SuggestionAddTitle,
				Message: "Add title or spec for this custom item.",
				Target:  map[string]any{"resource": "quote_item", "field": []string{"title", "spec_text"}},
			})
			reasonParts = append(reasonParts, "title/spec")
		}
	}

	if hasPerSheetFinishing(item) && contains(flatMissing, "dimensions") {
		target := map[string]any{"resource": "product", "field": []string{"default_finished_width_mm", "default_finished_height_mm"}}
		if mode == enums.PricingModeLargeFormat {
			target = map[string]any{"resource": "quote_item", "field": []string{"chosen_width_mm", "chosen_height_mm"}}
		}
		suggestions = append(suggestions, Suggestion{
			Code:    SuggestionAddDimensionsForFinish,
			Message: "Add artwork size so we can compute sheets needed for finishing.",
			Target:  target,
		})
	}

	reason := "Missing data to calculate price."
	if len(reasonParts) > 0 {
		reason = strings.Join(reasonParts, "; ")
	}
	return ItemDiagnostics{
		CanCalculate:  false,
		MissingFields: flatMissing,
		Suggestions:   dedupeSuggestions(suggestions),
		Reason:        reason,
	}
}

func dimensionsSuggestion(mode enums.PricingMode) Suggestion {
	if mode == enums.PricingModeLargeFormat {
		return Suggestion{
			Code:    SuggestionAddDimensions,
			Message: "Add artwork size (width × height) so we can compute area and finishing.",
			Target:  map[string]any{"resource": "quote_item", "field": []string{"chosen_width_mm", "chosen_height_mm"}},
		}
	}
	return Suggestion{
		Code:    SuggestionAddDimensions,
		Message: "Add finished size so we can compute pieces per sheet and finishing sheets.",
		Target:  map[string]any{"resource": "product", "field": []string{"default_finished_width_mm", "default_finished_height_mm"}},
	}
}

func hasPerSheetFinishing(item *models.QuoteItem) bool {
	for i := range item.Finishings {
		rate := item.Finishings[i].FinishingRate
		if rate != nil && rate.ChargeUnit == enums.ChargeUnitPerSheet {
			return true
		}
	}
	return false
}

func dedupeSuggestions(suggestions []Suggestion) []Suggestion {
	seen := make(map[string]struct{}, len(suggestions))
	out := make([]Suggestion, 0, len(suggestions))
	for _, s := range suggestions {
		if _, ok := seen[s.Code]; ok {
			continue
		}
		seen[s.Code] = struct{}{}
		out = append(out, s)
	}
	return out
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// BuildPricingDiagnostics merges per-item diagnostics into the quote-level
// structure, deduplicating suggestions across items. Pass suggestions in
// item order for a stable result; a nil slice falls back to deriving them
// from the item diagnostics map.
func BuildPricingDiagnostics(canCalculate bool, reason string, missingFields []string, needsReviewItems []uuid.UUID, itemDiagnostics map[string]ItemDiagnostics, suggestions []Suggestion) PricingDiagnostics {
	if suggestions == nil {
		for _, diag := range itemDiagnostics {
			suggestions = append(suggestions, diag.Suggestions...)
		}
	}
	if missingFields == nil {
		missingFields = []string{}
	}
	if needsReviewItems == nil {
		needsReviewItems = []uuid.UUID{}
	}
	if itemDiagnostics == nil {
		itemDiagnostics = map[string]ItemDiagnostics{}
	}
	return PricingDiagnostics{
		CanCalculate:     canCalculate,
		Reason:           reason,
		MissingFields:    missingFields,
		Suggestions:      dedupeSuggestions(suggestions),
		NeedsReviewItems: needsReviewItems,
		ItemDiagnostics:  itemDiagnostics,
	}
}
