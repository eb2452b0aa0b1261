package quotes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/printyke/printy-backend/internal/pricing"
	"github.com/printyke/printy-backend/pkg/db/models"
	"github.com/printyke/printy-backend/pkg/enums"
	pkgerrors "github.com/printyke/printy-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the quote workflow: drafting, item mutation, preview,
// submit, price locking and the post-pricing transitions.
type Service interface {
	CreateQuote(ctx context.Context, userID, shopID uuid.UUID, input CreateQuoteInput) (*models.QuoteRequest, error)
	GetQuote(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error)
	ListShopQuotes(ctx context.Context, userID, shopID uuid.UUID, statuses []enums.QuoteStatus, limit, offset int) ([]models.QuoteRequest, int64, error)
	ListMyQuotes(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.QuoteRequest, int64, error)

	AddItem(ctx context.Context, userID, quoteID uuid.UUID, input ItemInput) (*models.QuoteItem, error)
	UpdateItem(ctx context.Context, userID, quoteID, itemID uuid.UUID, input ItemInput) (*models.QuoteItem, error)
	RemoveItem(ctx context.Context, userID, quoteID, itemID uuid.UUID) error
	SetItemFinishings(ctx context.Context, userID, quoteID, itemID uuid.UUID, inputs []ItemFinishingInput) error
	SetItemServices(ctx context.Context, userID, quoteID, itemID uuid.UUID, inputs []ItemServiceInput) error
	SetQuoteServices(ctx context.Context, userID, quoteID uuid.UUID, inputs []QuoteServiceInput) error

	Preview(ctx context.Context, userID, quoteID uuid.UUID) (*PreviewResponse, error)
	Submit(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error)
	Price(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error)
	Send(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error)
	Accept(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error)
	Reject(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error)
}

type service struct {
	repo    QuoteRepository
	tx      txRunner
	shops   ShopLoader
	catalog CatalogLoader
}

// NewService builds a quote service backed by the provided stack.
func NewService(repo QuoteRepository, tx txRunner, shops ShopLoader, catalog CatalogLoader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quote repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if shops == nil {
		return nil, fmt.Errorf("shop loader required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog loader required")
	}
	return &service{repo: repo, tx: tx, shops: shops, catalog: catalog}, nil
}

// CreateQuoteInput captures the header fields of a new draft quote.
type CreateQuoteInput struct {
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
}

// ItemInput is the mutable surface of a quote item.
type ItemInput struct {
	ItemType            enums.ItemType
	Title               string
	SpecText            string
	HasArtwork          bool
	ProductID           *uuid.UUID
	Quantity            int
	PricingMode         enums.PricingMode
	PaperID             *uuid.UUID
	MaterialID          *uuid.UUID
	MachineID           *uuid.UUID
	ChosenWidthMM       *int
	ChosenHeightMM      *int
	Sides               enums.Sides
	ColorMode           enums.ColorMode
	SpecialInstructions string
}

// ItemFinishingInput selects one finishing for an item.
type ItemFinishingInput struct {
	FinishingRateID uuid.UUID
	CoverageQty     *decimal.Decimal
	PriceOverride   *decimal.Decimal
	ApplyToSides    enums.FinishingSides
}

// ItemServiceInput selects one per-item service.
type ItemServiceInput struct {
	ServiceRateID uuid.UUID
	IsSelected    bool
	PriceOverride *decimal.Decimal
	Note          string
}

// QuoteServiceInput selects one quote-level service. DistanceKM and
// PriceOverride are seller-side knobs set before pricing.
type QuoteServiceInput struct {
	ServiceRateID uuid.UUID
	IsSelected    bool
	DistanceKM    *decimal.Decimal
	PriceOverride *decimal.Decimal
}

// CreateQuote opens a new DRAFT quote against the shop.
func (s *service) CreateQuote(ctx context.Context, userID, shopID uuid.UUID, input CreateQuoteInput) (*models.QuoteRequest, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if _, err := s.shops.GetByID(ctx, shopID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, err
	}

	quote := &models.QuoteRequest{
		ShopID:        shopID,
		CreatedBy:     userID,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: input.CustomerPhone,
		Notes:         input.Notes,
		Status:        enums.QuoteStatusDraft,
	}
	return s.repo.Create(ctx, quote)
}

// GetQuote loads a quote for its creator or the owning seller.
func (s *service) GetQuote(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error) {
	quote, _, _, err := s.loadQuote(ctx, userID, quoteID)
	return quote, err
}

// ListShopQuotes pages a shop's quotes for its owner.
func (s *service) ListShopQuotes(ctx context.Context, userID, shopID uuid.UUID, statuses []enums.QuoteStatus, limit, offset int) ([]models.QuoteRequest, int64, error) {
	shop, err := s.shops.GetByID(ctx, shopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
		}
		return nil, 0, err
	}
	if shop.OwnerID != userID {
		return nil, 0, pkgerrors.New(pkgerrors.CodeForbidden, "only the shop owner may list shop quotes")
	}
	return s.repo.ListByShop(ctx, shopID, statuses, limit, offset)
}

// ListMyQuotes pages the quotes the user created.
func (s *service) ListMyQuotes(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.QuoteRequest, int64, error) {
	return s.repo.ListByCreator(ctx, userID, limit, offset)
}

// AddItem appends an item to a draft quote after shop-consistency checks.
func (s *service) AddItem(ctx context.Context, userID, quoteID uuid.UUID, input ItemInput) (*models.QuoteItem, error) {
	quote, err := s.draftQuoteForCreator(ctx, userID, quoteID)
	if err != nil {
		return nil, err
	}
	if err := s.validateItemInput(ctx, quote.ShopID, &input); err != nil {
		return nil, err
	}

	item := &models.QuoteItem{
		QuoteRequestID:      quote.ID,
		ItemType:            input.ItemType,
		Title:               input.Title,
		SpecText:            input.SpecText,
		HasArtwork:          input.HasArtwork,
		ProductID:           input.ProductID,
		Quantity:            input.Quantity,
		PricingMode:         input.PricingMode,
		PaperID:             input.PaperID,
		MaterialID:          input.MaterialID,
		MachineID:           input.MachineID,
		ChosenWidthMM:       input.ChosenWidthMM,
		ChosenHeightMM:      input.ChosenHeightMM,
		Sides:               input.Sides,
		ColorMode:           input.ColorMode,
		SpecialInstructions: input.SpecialInstructions,
	}
	return s.repo.CreateItem(ctx, item)
}

// UpdateItem rewrites an item of a draft quote. Locked items are frozen
// until the seller force-recalculates via the price action.
func (s *service) UpdateItem(ctx context.Context, userID, quoteID, itemID uuid.UUID, input ItemInput) (*models.QuoteItem, error) {
	quote, err := s.draftQuoteForCreator(ctx, userID, quoteID)
	if err != nil {
		return nil, err
	}
	item, err := s.loadItem(ctx, quote.ID, itemID)
	if err != nil {
		return nil, err
	}
	if item.IsLocked() {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "item price is locked; the shop must re-price the quote first")
	}
	if err := s.validateItemInput(ctx, quote.ShopID, &input); err != nil {
		return nil, err
	}

	item.ItemType = input.ItemType
	item.Title = input.Title
	item.SpecText = input.SpecText
	item.HasArtwork = input.HasArtwork
	item.ProductID = input.ProductID
	item.Quantity = input.Quantity
	item.PricingMode = input.PricingMode
	item.PaperID = input.PaperID
	item.MaterialID = input.MaterialID
	item.MachineID = input.MachineID
	item.ChosenWidthMM = input.ChosenWidthMM
	item.ChosenHeightMM = input.ChosenHeightMM
	item.Sides = input.Sides
	item.ColorMode = input.ColorMode
	item.SpecialInstructions = input.SpecialInstructions

	// Associations may be stale after the FK rewrite; drop them so a
	// later save does not resurrect old links.
	item.Product = nil
	item.Paper = nil
	item.Material = nil
	item.Machine = nil

	return s.repo.UpdateItem(ctx, item)
}

// RemoveItem deletes an item from a draft quote.
func (s *service) RemoveItem(ctx context.Context, userID, quoteID, itemID uuid.UUID) error {
	quote, err := s.draftQuoteForCreator(ctx, userID, quoteID)
	if err != nil {
		return err
	}
	item, err := s.loadItem(ctx, quote.ID, itemID)
	if err != nil {
		return err
	}
	if item.IsLocked() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, "item price is locked; the shop must re-price the quote first")
	}
	return s.repo.DeleteItem(ctx, quote.ID, itemID)
}

// SetItemFinishings replaces the finishings attached to a draft item.
func (s *service) SetItemFinishings(ctx context.Context, userID, quoteID, itemID uuid.UUID, inputs []ItemFinishingInput) error {
	quote, err := s.draftQuoteForCreator(ctx, userID, quoteID)
	if err != nil {
		return err
	}
	if _, err := s.loadItem(ctx, quote.ID, itemID); err != nil {
		return err
	}

	finishings := make([]models.QuoteItemFinishing, 0, len(inputs))
	for _, in := range inputs {
		if _, err := s.catalog.GetFinishingRate(ctx, quote.ShopID, in.FinishingRateID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "finishing rate does not belong to this shop")
			}
			return err
		}
		applyTo := in.ApplyToSides
		if applyTo == "" {
			applyTo = enums.FinishingSidesBoth
		}
		finishings = append(finishings, models.QuoteItemFinishing{
			FinishingRateID: in.FinishingRateID,
			CoverageQty:     in.CoverageQty,
			PriceOverride:   in.PriceOverride,
			ApplyToSides:    applyTo,
		})
	}
	return s.repo.ReplaceItemFinishings(ctx, itemID, finishings)
}

// SetItemServices replaces the per-item services of a draft item.
func (s *service) SetItemServices(ctx context.Context, userID, quoteID, itemID uuid.UUID, inputs []ItemServiceInput) error {
	quote, err := s.draftQuoteForCreator(ctx, userID, quoteID)
	if err != nil {
		return err
	}
	if _, err := s.loadItem(ctx, quote.ID, itemID); err != nil {
		return err
	}

	services := make([]models.QuoteItemService, 0, len(inputs))
	for _, in := range inputs {
		if _, err := s.catalog.GetServiceRate(ctx, quote.ShopID, in.ServiceRateID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "service rate does not belong to this shop")
			}
			return err
		}
		services = append(services, models.QuoteItemService{
			ServiceRateID: in.ServiceRateID,
			IsSelected:    in.IsSelected,
			PriceOverride: in.PriceOverride,
			Note:          in.Note,
		})
	}
	return s.repo.ReplaceItemServices(ctx, itemID, services)
}

// SetQuoteServices replaces the quote-level services. The creator may
// change the selection while drafting; the shop owner may additionally
// set distances and price overrides up to the moment the quote is priced.
func (s *service) SetQuoteServices(ctx context.Context, userID, quoteID uuid.UUID, inputs []QuoteServiceInput) error {
	quote, isCreator, isShopOwner, err := s.loadQuote(ctx, userID, quoteID)
	if err != nil {
		return err
	}
	switch {
	case isCreator && quote.Status == enums.QuoteStatusDraft:
	case isShopOwner && (quote.Status == enums.QuoteStatusDraft || quote.Status == enums.QuoteStatusSubmitted):
	default:
		return pkgerrors.New(pkgerrors.CodeStateConflict, "quote services can no longer be changed")
	}

	services := make([]models.QuoteRequestService, 0, len(inputs))
	for _, in := range inputs {
		if _, err := s.catalog.GetServiceRate(ctx, quote.ShopID, in.ServiceRateID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "service rate does not belong to this shop")
			}
			return err
		}
		services = append(services, models.QuoteRequestService{
			ServiceRateID: in.ServiceRateID,
			IsSelected:    in.IsSelected,
			DistanceKM:    in.DistanceKM,
			PriceOverride: in.PriceOverride,
		})
	}
	return s.repo.ReplaceQuoteServices(ctx, quote.ID, services)
}

// Preview prices the quote non-destructively for either party.
func (s *service) Preview(ctx context.Context, userID, quoteID uuid.UUID) (*PreviewResponse, error) {
	quote, _, _, err := s.loadQuote(ctx, userID, quoteID)
	if err != nil {
		return nil, err
	}
	resp := BuildPreviewResponse(quote)
	return &resp, nil
}

// Submit moves a draft to SUBMITTED. No pricing is invoked.
func (s *service) Submit(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error) {
	return s.transition(ctx, userID, quoteID, enums.QuoteStatusSubmitted)
}

// Price locks the quote: every item is force-recalculated, its price
// persisted, and the quote total written, all inside one transaction. A
// row lock on the quote serializes concurrent attempts; the loser fails
// the SUBMITTED precondition with a state conflict.
func (s *service) Price(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error) {
	var priced *models.QuoteRequest
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		quote, err := repo.FindByIDForUpdate(ctx, quoteID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
			}
			return err
		}
		isCreator, isShopOwner := s.actorRoles(quote, userID)
		if !isCreator && !isShopOwner {
			return pkgerrors.New(pkgerrors.CodeForbidden, "no access to this quote")
		}
		if err := ValidateTransition(quote.Status, enums.QuoteStatusPriced, isCreator, isShopOwner); err != nil {
			return err
		}

		now := time.Now().UTC()
		total := decimal.Zero
		for i := range quote.Items {
			item := &quote.Items[i]
			unitPrice, lineTotal := CalculateItem(item, true)

			unit := unitPrice.Round(2)
			line := lineTotal.Round(2)
			item.UnitPrice = &unit
			item.LineTotal = &line
			item.PricingLockedAt = &now
			if err := repo.SaveItemPricing(ctx, item); err != nil {
				return err
			}
			total = total.Add(line)
		}

		for i := range quote.Services {
			qrs := &quote.Services[i]
			if !qrs.IsSelected {
				continue
			}
			if price := pricing.ResolveServicePrice(qrs.ServiceRate, qrs.PriceOverride, qrs.DistanceKM); price != nil {
				total = total.Add(*price)
			}
		}

		grand := total.Round(2)
		quote.Total = &grand
		quote.Status = enums.QuoteStatusPriced
		quote.PricingLockedAt = &now
		if err := repo.SaveQuoteTotals(ctx, quote); err != nil {
			return err
		}

		priced = quote
		return nil
	})
	if err != nil {
		return nil, err
	}
	return priced, nil
}

// Send moves a priced quote to SENT.
func (s *service) Send(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error) {
	return s.transition(ctx, userID, quoteID, enums.QuoteStatusSent)
}

// Accept records the buyer's acceptance of a sent quote.
func (s *service) Accept(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error) {
	return s.transition(ctx, userID, quoteID, enums.QuoteStatusAccepted)
}

// Reject records the buyer's rejection of a sent quote.
func (s *service) Reject(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error) {
	return s.transition(ctx, userID, quoteID, enums.QuoteStatusRejected)
}

func (s *service) transition(ctx context.Context, userID, quoteID uuid.UUID, to enums.QuoteStatus) (*models.QuoteRequest, error) {
	quote, isCreator, isShopOwner, err := s.loadQuote(ctx, userID, quoteID)
	if err != nil {
		return nil, err
	}
	if err := ValidateTransition(quote.Status, to, isCreator, isShopOwner); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, quote.ID, to); err != nil {
		return nil, err
	}
	quote.Status = to
	return quote, nil
}

func (s *service) loadQuote(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, bool, bool, error) {
	quote, err := s.repo.FindByID(ctx, quoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, false, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, false, false, err
	}
	isCreator, isShopOwner := s.actorRoles(quote, userID)
	if !isCreator && !isShopOwner {
		return nil, false, false, pkgerrors.New(pkgerrors.CodeForbidden, "no access to this quote")
	}
	return quote, isCreator, isShopOwner, nil
}

func (s *service) actorRoles(quote *models.QuoteRequest, userID uuid.UUID) (isCreator, isShopOwner bool) {
	isCreator = quote.CreatedBy == userID
	if quote.Shop != nil {
		isShopOwner = quote.Shop.OwnerID == userID
	}
	return isCreator, isShopOwner
}

func (s *service) draftQuoteForCreator(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error) {
	quote, isCreator, _, err := s.loadQuote(ctx, userID, quoteID)
	if err != nil {
		return nil, err
	}
	if !isCreator {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the quote creator may change items")
	}
	if quote.Status != enums.QuoteStatusDraft {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "items can only be changed while the quote is a draft")
	}
	return quote, nil
}

func (s *service) loadItem(ctx context.Context, quoteID, itemID uuid.UUID) (*models.QuoteItem, error) {
	item, err := s.repo.FindItemByID(ctx, quoteID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote item not found")
		}
		return nil, err
	}
	return item, nil
}

// validateItemInput enforces the structural rules that fail at mutation
// time: valid enums, references inside the quote's shop, and gsm
// compatibility between paper, product and machine.
func (s *service) validateItemInput(ctx context.Context, shopID uuid.UUID, input *ItemInput) error {
	if !input.ItemType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "item type must be PRODUCT or CUSTOM")
	}
	if input.Quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must not be negative")
	}
	if input.PricingMode != "" && !input.PricingMode.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "pricing mode must be SHEET or LARGE_FORMAT")
	}
	if input.Sides != "" && !input.Sides.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "sides must be SIMPLEX or DUPLEX")
	}
	if input.ColorMode != "" && !input.ColorMode.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "color mode must be BW or COLOR")
	}
	if input.ItemType == enums.ItemTypeProduct && input.ProductID == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product items require a product")
	}

	var product *models.Product
	if input.ProductID != nil {
		var err error
		product, err = s.catalog.GetProduct(ctx, shopID, *input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "product does not belong to this shop")
			}
			return err
		}
		if input.Sides == enums.SidesSimplex && !product.AllowSimplex {
			return pkgerrors.New(pkgerrors.CodeValidation, "product does not allow single-sided printing")
		}
		if input.Sides == enums.SidesDuplex && !product.AllowDuplex {
			return pkgerrors.New(pkgerrors.CodeValidation, "product does not allow double-sided printing")
		}
	}

	var paper *models.Paper
	if input.PaperID != nil {
		var err error
		paper, err = s.catalog.GetPaper(ctx, shopID, *input.PaperID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "paper does not belong to this shop")
			}
			return err
		}
	}

	if input.MaterialID != nil {
		if _, err := s.catalog.GetMaterial(ctx, shopID, *input.MaterialID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "material does not belong to this shop")
			}
			return err
		}
	}

	var machine *models.Machine
	if input.MachineID != nil {
		var err error
		machine, err = s.catalog.GetMachine(ctx, shopID, *input.MachineID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeValidation, "machine does not belong to this shop")
			}
			return err
		}
	}

	if paper != nil {
		if product != nil {
			if product.MinGSM != nil && paper.GSM < *product.MinGSM {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("paper is %dgsm but the product needs at least %dgsm", paper.GSM, *product.MinGSM))
			}
			if product.MaxGSM != nil && paper.GSM > *product.MaxGSM {
				return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("paper is %dgsm but the product allows at most %dgsm", paper.GSM, *product.MaxGSM))
			}
		}
		if machine != nil && !machine.SupportsGSM(paper.GSM) {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("machine %s cannot run %dgsm paper", machine.Name, paper.GSM))
		}
	}

	return nil
}
