package controllers

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printyke/printy-backend/api/responses"
	"github.com/printyke/printy-backend/api/validators"
	"github.com/printyke/printy-backend/internal/quotes"
	"github.com/printyke/printy-backend/pkg/enums"
	"github.com/printyke/printy-backend/pkg/errors"
	"github.com/printyke/printy-backend/pkg/logger"
	"github.com/printyke/printy-backend/pkg/pagination"
)

type createQuotePayload struct {
	CustomerName  string `json:"customer_name" validate:"omitempty,max=160"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email"`
	CustomerPhone string `json:"customer_phone" validate:"omitempty,max=32"`
	Notes         string `json:"notes" validate:"omitempty,max=2000"`
}

func (p createQuotePayload) toInput() quotes.CreateQuoteInput {
	return quotes.CreateQuoteInput{
		CustomerName:  validators.SanitizeString(p.CustomerName, 160),
		CustomerEmail: strings.TrimSpace(p.CustomerEmail),
		CustomerPhone: validators.SanitizeString(p.CustomerPhone, 32),
		Notes:         validators.SanitizeString(p.Notes, 2000),
	}
}

type quoteItemPayload struct {
	ItemType            enums.ItemType    `json:"item_type" validate:"required"`
	Title               string            `json:"title" validate:"omitempty,max=200"`
	SpecText            string            `json:"spec_text" validate:"omitempty,max=4000"`
	HasArtwork          bool              `json:"has_artwork"`
	ProductID           *uuid.UUID        `json:"product_id"`
	Quantity            int               `json:"quantity" validate:"omitempty,min=0"`
	PricingMode         enums.PricingMode `json:"pricing_mode" validate:"omitempty"`
	PaperID             *uuid.UUID        `json:"paper_id"`
	MaterialID          *uuid.UUID        `json:"material_id"`
	MachineID           *uuid.UUID        `json:"machine_id"`
	ChosenWidthMM       *int              `json:"chosen_width_mm" validate:"omitempty,min=1"`
	ChosenHeightMM      *int              `json:"chosen_height_mm" validate:"omitempty,min=1"`
	Sides               enums.Sides       `json:"sides" validate:"omitempty"`
	ColorMode           enums.ColorMode   `json:"color_mode" validate:"omitempty"`
	SpecialInstructions string            `json:"special_instructions" validate:"omitempty,max=2000"`
}

func (p quoteItemPayload) toInput() quotes.ItemInput {
	return quotes.ItemInput{
		ItemType:            p.ItemType,
		Title:               validators.SanitizeString(p.Title, 200),
		SpecText:            validators.SanitizeString(p.SpecText, 4000),
		HasArtwork:          p.HasArtwork,
		ProductID:           p.ProductID,
		Quantity:            p.Quantity,
		PricingMode:         p.PricingMode,
		PaperID:             p.PaperID,
		MaterialID:          p.MaterialID,
		MachineID:           p.MachineID,
		ChosenWidthMM:       p.ChosenWidthMM,
		ChosenHeightMM:      p.ChosenHeightMM,
		Sides:               p.Sides,
		ColorMode:           p.ColorMode,
		SpecialInstructions: validators.SanitizeString(p.SpecialInstructions, 2000),
	}
}

type itemFinishingPayload struct {
	FinishingRateID uuid.UUID            `json:"finishing_rate_id" validate:"required"`
	CoverageQty     *decimal.Decimal     `json:"coverage_qty"`
	PriceOverride   *decimal.Decimal     `json:"price_override"`
	ApplyToSides    enums.FinishingSides `json:"apply_to_sides" validate:"omitempty"`
}

type itemServicePayload struct {
	ServiceRateID uuid.UUID        `json:"service_rate_id" validate:"required"`
	IsSelected    bool             `json:"is_selected"`
	PriceOverride *decimal.Decimal `json:"price_override"`
	Note          string           `json:"note" validate:"omitempty,max=500"`
}

type quoteServicePayload struct {
	ServiceRateID uuid.UUID        `json:"service_rate_id" validate:"required"`
	IsSelected    bool             `json:"is_selected"`
	DistanceKM    *decimal.Decimal `json:"distance_km"`
	PriceOverride *decimal.Decimal `json:"price_override"`
}

type itemFinishingsPayload struct {
	Finishings []itemFinishingPayload `json:"finishings" validate:"dive"`
}

type itemServicesPayload struct {
	Services []itemServicePayload `json:"services" validate:"dive"`
}

type quoteServicesPayload struct {
	Services []quoteServicePayload `json:"services" validate:"dive"`
}

// parseStatusFilter reads an optional comma-separated status query value.
func parseStatusFilter(r *http.Request) ([]enums.QuoteStatus, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("status"))
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	statuses := make([]enums.QuoteStatus, 0, len(parts))
	for _, part := range parts {
		status := enums.QuoteStatus(strings.ToUpper(strings.TrimSpace(part)))
		if !status.IsValid() {
			return nil, errors.New(errors.CodeValidation, "unknown quote status").
				WithDetails(map[string]any{"status": part})
		}
		statuses = append(statuses, status)
	}
	return statuses, nil
}

// QuoteCreate opens a draft quote against a shop.
func QuoteCreate(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
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
		var body createQuotePayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.CreateQuote(r.Context(), user, shopID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, quote)
	}
}

func QuoteGet(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quoteID, err := pathUUID(r, "quoteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quote, err := svc.GetQuote(r.Context(), user, quoteID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, quote)
	}
}

// QuotesListShop returns a shop's quotes, optionally filtered by status.
func QuotesListShop(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
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
		statuses, err := parseStatusFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, total, err := svc.ListShopQuotes(r.Context(), user, shopID, statuses, page.Limit, page.Offset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pagination.NewPage(items, total, page))
	}
}

// QuotesListMine returns quotes the caller created, across shops.
func QuotesListMine(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		page, err := pageParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items, total, err := svc.ListMyQuotes(r.Context(), user, page.Limit, page.Offset)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pagination.NewPage(items, total, page))
	}
}

func QuoteItemAdd(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quoteID, err := pathUUID(r, "quoteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body quoteItemPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.AddItem(r.Context(), user, quoteID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func QuoteItemUpdate(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quoteID, err := pathUUID(r, "quoteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body quoteItemPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		item, err := svc.UpdateItem(r.Context(), user, quoteID, itemID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func QuoteItemRemove(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quoteID, err := pathUUID(r, "quoteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.RemoveItem(r.Context(), user, quoteID, itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

// QuoteItemSetFinishings replaces an item's finishing selections.
func QuoteItemSetFinishings(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quoteID, err := pathUUID(r, "quoteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body itemFinishingsPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		inputs := make([]quotes.ItemFinishingInput, 0, len(body.Finishings))
		for _, f := range body.Finishings {
			inputs = append(inputs, quotes.ItemFinishingInput{
				FinishingRateID: f.FinishingRateID,
				CoverageQty:     f.CoverageQty,
				PriceOverride:   f.PriceOverride,
				ApplyToSides:    f.ApplyToSides,
			})
		}
		if err := svc.SetItemFinishings(r.Context(), user, quoteID, itemID, inputs); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// QuoteItemSetServices replaces an item's per-item service selections.
func QuoteItemSetServices(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quoteID, err := pathUUID(r, "quoteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		itemID, err := pathUUID(r, "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body itemServicesPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		inputs := make([]quotes.ItemServiceInput, 0, len(body.Services))
		for _, s := range body.Services {
			inputs = append(inputs, quotes.ItemServiceInput{
				ServiceRateID: s.ServiceRateID,
				IsSelected:    s.IsSelected,
				PriceOverride: s.PriceOverride,
				Note:          validators.SanitizeString(s.Note, 500),
			})
		}
		if err := svc.SetItemServices(r.Context(), user, quoteID, itemID, inputs); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// QuoteSetServices replaces quote-level service selections.
func QuoteSetServices(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quoteID, err := pathUUID(r, "quoteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body quoteServicesPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		inputs := make([]quotes.QuoteServiceInput, 0, len(body.Services))
		for _, s := range body.Services {
			inputs = append(inputs, quotes.QuoteServiceInput{
				ServiceRateID: s.ServiceRateID,
				IsSelected:    s.IsSelected,
				DistanceKM:    s.DistanceKM,
				PriceOverride: s.PriceOverride,
			})
		}
		if err := svc.SetQuoteServices(r.Context(), user, quoteID, inputs); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "updated"})
	}
}

// QuotePreview prices the quote without persisting, returning per-item
// breakdowns and diagnostics for anything unpriceable.
func QuotePreview(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quoteID, err := pathUUID(r, "quoteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		preview, err := svc.Preview(r.Context(), user, quoteID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, preview)
	}
}

// quoteTransition wraps the status-changing operations that share a shape.
func quoteTransition(
	logg *logger.Logger,
	apply func(r *http.Request, userID, quoteID uuid.UUID) (any, error),
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quoteID, err := pathUUID(r, "quoteID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := apply(r, user, quoteID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

func QuoteSubmit(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return quoteTransition(logg, func(r *http.Request, user, quoteID uuid.UUID) (any, error) {
		return svc.Submit(r.Context(), user, quoteID)
	})
}

// QuotePrice locks current catalog prices into the quote.
func QuotePrice(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return quoteTransition(logg, func(r *http.Request, user, quoteID uuid.UUID) (any, error) {
		return svc.Price(r.Context(), user, quoteID)
	})
}

func QuoteSend(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return quoteTransition(logg, func(r *http.Request, user, quoteID uuid.UUID) (any, error) {
		return svc.Send(r.Context(), user, quoteID)
	})
}

func QuoteAccept(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return quoteTransition(logg, func(r *http.Request, user, quoteID uuid.UUID) (any, error) {
		return svc.Accept(r.Context(), user, quoteID)
	})
}

func QuoteReject(svc quotes.Service, logg *logger.Logger) http.HandlerFunc {
	return quoteTransition(logg, func(r *http.Request, user, quoteID uuid.UUID) (any, error) {
		return svc.Reject(r.Context(), user, quoteID)
	})
}
