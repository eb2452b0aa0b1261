package quotes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printyke/printy-backend/internal/imposition"
	"github.com/printyke/printy-backend/internal/pricing"
	"github.com/printyke/printy-backend/pkg/db/models"
	"github.com/printyke/printy-backend/pkg/enums"
)

// DefaultCurrency is used when the shop has no currency configured.
const DefaultCurrency = "KES"

// BreakdownLine is one row of the human-readable price breakdown. Header
// and grouping rows carry an empty amount.
type BreakdownLine struct {
	Label  string `json:"label"`
	Amount string `json:"amount"`
}

// PreviewResponse is the full "price reveal as you type" payload: the
// running total with a line-item breakdown plus the diagnostics for
// whatever cannot be priced yet.
type PreviewResponse struct {
	Currency string          `json:"currency"`
	Total    decimal.Decimal `json:"total"`
	Lines    []BreakdownLine `json:"lines"`
	PricingDiagnostics
	HasNegotiable      bool                `json:"hasNegotiable"`
	ItemsMissingFields map[string][]string `json:"items_missing_fields"`
}

// BuildPreviewResponse prices every item of the quote non-destructively
// (locked items keep their stored values) and packages the result for the
// quote detail UI. Items with missing data contribute a diagnostics entry
// instead of a price. The quote's shop, items and their associations must
// be loaded.
func BuildPreviewResponse(quote *models.QuoteRequest) PreviewResponse {
	currency := DefaultCurrency
	if quote.Shop != nil && quote.Shop.Currency != "" {
		currency = quote.Shop.Currency
	}

	total := decimal.Zero
	var lines []BreakdownLine
	var needsReview []uuid.UUID
	var suggestions []Suggestion
	missingSet := map[string]struct{}{}
	var missingFields []string
	itemsMissing := map[string][]string{}
	itemDiagnostics := map[string]ItemDiagnostics{}
	hasNegotiable := false

	for i := range quote.Items {
		item := &quote.Items[i]

		missing := MissingFieldsForItem(item)
		if len(missing) > 0 {
			needsReview = append(needsReview, item.ID)
			flat := FlattenMissingFields(missing)
			for _, mf := range flat {
				if _, ok := missingSet[mf]; !ok {
					missingSet[mf] = struct{}{}
					missingFields = append(missingFields, mf)
				}
			}
			itemsMissing[item.ID.String()] = flat
			diag := BuildItemDiagnostics(item, flat, quote.ShopID)
			itemDiagnostics[item.ID.String()] = diag
			suggestions = append(suggestions, diag.Suggestions...)
			lines = append(lines, BreakdownLine{
				Label: fmt.Sprintf("%s: Needs review (%s)", item.Label(), missing[0].Field),
			})
			continue
		}

		_, lineTotal := CalculateItem(item, false)
		if lineTotal.IsPositive() {
			total = total.Add(lineTotal)
			breakdown := itemBreakdownLines(item)
			if len(breakdown) > 0 {
				lines = append(lines, BreakdownLine{Label: item.Label()})
				lines = append(lines, breakdown...)
				lines = append(lines, BreakdownLine{Label: "Total", Amount: formatAmount(lineTotal)})
			} else {
				lines = append(lines, BreakdownLine{Label: item.Label(), Amount: formatAmount(lineTotal)})
			}
		}

		for j := range item.Services {
			qis := &item.Services[j]
			if !qis.IsSelected {
				continue
			}
			if qis.PriceOverride == nil && (qis.ServiceRate == nil || qis.ServiceRate.PricingType != enums.ServicePricingFixed) {
				hasNegotiable = true
			}
		}
	}

	canCalculate := len(needsReview) == 0
	reason := ""
	if !canCalculate {
		reason = fmt.Sprintf("%d item(s) need more details to calculate.", len(needsReview))
	}

	sort.Strings(missingFields)

	return PreviewResponse{
		Currency:           currency,
		Total:              total,
		Lines:              lines,
		PricingDiagnostics: BuildPricingDiagnostics(canCalculate, reason, missingFields, needsReview, itemDiagnostics, suggestions),
		HasNegotiable:      hasNegotiable,
		ItemsMissingFields: itemsMissing,
	}
}

// itemBreakdownLines details a SHEET item: imposition, paper charge,
// printing charge, finishings and services. Other modes get a single
// total line from the caller instead.
func itemBreakdownLines(item *models.QuoteItem) []BreakdownLine {
	if EffectivePricingMode(item) != enums.PricingModeSheet || item.Paper == nil {
		return nil
	}
	quantity := item.Quantity
	if quantity <= 0 {
		return nil
	}
	paper := item.Paper

	var lines []BreakdownLine

	pieces := piecesForItem(item, paper)
	sheets := imposition.SheetsNeeded(quantity, pieces)
	lines = append(lines, BreakdownLine{Label: fmt.Sprintf("Sheets: %d (×%d up)", sheets, pieces)})

	sheetsDec := decimal.NewFromInt(int64(sheets))
	paperTotal := paper.SellingPrice.Mul(sheetsDec)
	lines = append(lines, BreakdownLine{
		Label:  fmt.Sprintf("Paper: %s %dgsm", paper.SheetSize, paper.GSM),
		Amount: formatAmount(paperTotal),
	})

	if item.MachineID != nil && item.Sides != "" && item.ColorMode != "" {
		rate, price := pricing.ResolvePrintingRate(item.Machine, paper.SheetSize, item.ColorMode, item.Sides)
		if rate != nil && price != nil {
			sideLabel := "Single"
			if item.Sides == enums.SidesDuplex {
				sideLabel = "Double"
			}
			lines = append(lines, BreakdownLine{
				Label:  fmt.Sprintf("Printing: %s %s", rate.ColorMode.Label(), sideLabel),
				Amount: formatAmount(price.Mul(sheetsDec)),
			})
		}
	}

	sidesCount := item.Sides.Count()
	areaSqm := pricing.SheetAreaSqm(paper).Mul(sheetsDec)
	for i := range item.Finishings {
		qif := &item.Finishings[i]
		if qif.FinishingRate == nil {
			continue
		}
		cost := pricing.FinishingCost(qif.FinishingRate, quantity, areaSqm, sidesCount, qif.PriceOverride, qif.ApplyToSides, sheets)
		if cost.IsPositive() {
			lines = append(lines, BreakdownLine{
				Label:  fmt.Sprintf("Finishing: %s", qif.FinishingRate.Name),
				Amount: formatAmount(cost),
			})
		}
	}

	for i := range item.Services {
		qis := &item.Services[i]
		if !qis.IsSelected {
			continue
		}
		price := pricing.ResolveServicePrice(qis.ServiceRate, qis.PriceOverride, nil)
		if price != nil {
			lines = append(lines, BreakdownLine{
				Label:  fmt.Sprintf("Service: %s", qis.ServiceRate.Name),
				Amount: formatAmount(*price),
			})
		}
	}

	return lines
}

// formatAmount renders a money amount for breakdown display: rounded to
// whole units with thousands separators, price-list style.
func formatAmount(amount decimal.Decimal) string {
	whole := amount.Round(0).IntPart()
	sign := ""
	if whole < 0 {
		sign = "-"
		whole = -whole
	}
	digits := fmt.Sprintf("%d", whole)
	if len(digits) <= 3 {
		return sign + digits
	}
	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return sign + strings.Join(parts, ",")
}
