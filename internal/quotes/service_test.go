package quotes

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printyke/printy-backend/pkg/db/models"
	"github.com/printyke/printy-backend/pkg/enums"
	pkgerrors "github.com/printyke/printy-backend/pkg/errors"
)

type stubQuoteRepo struct {
	quote       *models.QuoteRequest
	item        *models.QuoteItem
	savedItems  []models.QuoteItem
	savedQuote  *models.QuoteRequest
	statusSet   enums.QuoteStatus
	createdItem *models.QuoteItem
}

func (s *stubQuoteRepo) WithTx(tx *gorm.DB) QuoteRepository { return s }
func (s *stubQuoteRepo) Create(ctx context.Context, quote *models.QuoteRequest) (*models.QuoteRequest, error) {
	quote.ID = uuid.New()
	s.quote = quote
	return quote, nil
}
func (s *stubQuoteRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	if s.quote == nil || s.quote.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.quote, nil
}
func (s *stubQuoteRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.QuoteRequest, error) {
	return s.FindByID(ctx, id)
}
func (s *stubQuoteRepo) ListByShop(ctx context.Context, shopID uuid.UUID, statuses []enums.QuoteStatus, limit, offset int) ([]models.QuoteRequest, int64, error) {
	return nil, 0, nil
}
func (s *stubQuoteRepo) ListByCreator(ctx context.Context, creatorID uuid.UUID, limit, offset int) ([]models.QuoteRequest, int64, error) {
	return nil, 0, nil
}
func (s *stubQuoteRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus) error {
	s.statusSet = status
	return nil
}
func (s *stubQuoteRepo) SaveQuoteTotals(ctx context.Context, quote *models.QuoteRequest) error {
	s.savedQuote = quote
	return nil
}
func (s *stubQuoteRepo) SaveItemPricing(ctx context.Context, item *models.QuoteItem) error {
	s.savedItems = append(s.savedItems, *item)
	return nil
}
func (s *stubQuoteRepo) CreateItem(ctx context.Context, item *models.QuoteItem) (*models.QuoteItem, error) {
	item.ID = uuid.New()
	s.createdItem = item
	return item, nil
}
func (s *stubQuoteRepo) FindItemByID(ctx context.Context, quoteID, itemID uuid.UUID) (*models.QuoteItem, error) {
	if s.item == nil || s.item.ID != itemID {
		return nil, gorm.ErrRecordNotFound
	}
	return s.item, nil
}
func (s *stubQuoteRepo) UpdateItem(ctx context.Context, item *models.QuoteItem) (*models.QuoteItem, error) {
	s.item = item
	return item, nil
}
func (s *stubQuoteRepo) DeleteItem(ctx context.Context, quoteID, itemID uuid.UUID) error { return nil }
func (s *stubQuoteRepo) ReplaceItemFinishings(ctx context.Context, itemID uuid.UUID, finishings []models.QuoteItemFinishing) error {
	return nil
}
func (s *stubQuoteRepo) ReplaceItemServices(ctx context.Context, itemID uuid.UUID, services []models.QuoteItemService) error {
	return nil
}
func (s *stubQuoteRepo) ReplaceQuoteServices(ctx context.Context, quoteID uuid.UUID, services []models.QuoteRequestService) error {
	return nil
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type shopLoaderFunc func(ctx context.Context, id uuid.UUID) (*models.Shop, error)

func (fn shopLoaderFunc) GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	return fn(ctx, id)
}

// stubCatalog serves whichever entities the test seeds; everything else
// reads as not-found, i.e. outside the shop.
type stubCatalog struct {
	products   map[uuid.UUID]*models.Product
	papers     map[uuid.UUID]*models.Paper
	materials  map[uuid.UUID]*models.Material
	machines   map[uuid.UUID]*models.Machine
	finishings map[uuid.UUID]*models.FinishingRate
	services   map[uuid.UUID]*models.ServiceRate
}

func (s *stubCatalog) GetProduct(ctx context.Context, shopID, id uuid.UUID) (*models.Product, error) {
	if p, ok := s.products[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubCatalog) GetPaper(ctx context.Context, shopID, id uuid.UUID) (*models.Paper, error) {
	if p, ok := s.papers[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubCatalog) GetMaterial(ctx context.Context, shopID, id uuid.UUID) (*models.Material, error) {
	if m, ok := s.materials[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubCatalog) GetMachine(ctx context.Context, shopID, id uuid.UUID) (*models.Machine, error) {
	if m, ok := s.machines[id]; ok {
		return m, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubCatalog) GetFinishingRate(ctx context.Context, shopID, id uuid.UUID) (*models.FinishingRate, error) {
	if f, ok := s.finishings[id]; ok {
		return f, nil
	}
	return nil, gorm.ErrRecordNotFound
}
func (s *stubCatalog) GetServiceRate(ctx context.Context, shopID, id uuid.UUID) (*models.ServiceRate, error) {
	if r, ok := s.services[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestService(t *testing.T, repo QuoteRepository, shop *models.Shop, catalog *stubCatalog) Service {
	t.Helper()
	if catalog == nil {
		catalog = &stubCatalog{}
	}
	svc, err := NewService(repo, stubTxRunner{}, shopLoaderFunc(func(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
		if shop == nil || shop.ID != id {
			return nil, gorm.ErrRecordNotFound
		}
		return shop, nil
	}), catalog)
	if err != nil {
		t.Fatalf("building service: %v", err)
	}
	return svc
}

func assertCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != want {
		t.Fatalf("expected %s error, got %v", want, err)
	}
}

func submittedQuote(t *testing.T, shop *models.Shop, buyerID uuid.UUID) *models.QuoteRequest {
	t.Helper()

	paper := sheetPaper(t, "0.10")
	machine := machineWithRate(t, enums.SheetSizeSRA3, enums.ColorModeColor, "0.15", "0.25")
	item := models.QuoteItem{
		ID:        uuid.New(),
		ItemType:  enums.ItemTypeCustom,
		Title:     "Posters",
		Quantity:  100,
		Sides:     enums.SidesSimplex,
		ColorMode: enums.ColorModeColor,
	}
	attachPaper(&item, paper)
	attachMachine(&item, machine)

	return &models.QuoteRequest{
		ID:        uuid.New(),
		ShopID:    shop.ID,
		Shop:      shop,
		CreatedBy: buyerID,
		Status:    enums.QuoteStatusSubmitted,
		Items:     []models.QuoteItem{item},
	}
}

func TestServicePriceLocksQuote(t *testing.T) {
	t.Parallel()

	sellerID := uuid.New()
	buyerID := uuid.New()
	shop := &models.Shop{ID: uuid.New(), OwnerID: sellerID, Currency: "KES"}
	repo := &stubQuoteRepo{quote: submittedQuote(t, shop, buyerID)}
	svc := newTestService(t, repo, shop, nil)

	priced, err := svc.Price(context.Background(), sellerID, repo.quote.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if priced.Status != enums.QuoteStatusPriced {
		t.Fatalf("status = %s, want PRICED", priced.Status)
	}
	if priced.Total == nil || !priced.Total.Equal(dec(t, "25.00")) {
		t.Fatalf("total = %v, want 25.00", priced.Total)
	}
	if len(repo.savedItems) != 1 {
		t.Fatalf("saved items = %d, want 1", len(repo.savedItems))
	}
	saved := repo.savedItems[0]
	if saved.PricingLockedAt == nil {
		t.Fatal("item lock timestamp not set")
	}
	if saved.LineTotal == nil || !saved.LineTotal.Equal(dec(t, "25.00")) {
		t.Fatalf("item line total = %v, want 25.00", saved.LineTotal)
	}
	if repo.savedQuote == nil {
		t.Fatal("quote totals not persisted")
	}
}

func TestServicePriceIncludesQuoteLevelServices(t *testing.T) {
	t.Parallel()

	sellerID := uuid.New()
	shop := &models.Shop{ID: uuid.New(), OwnerID: sellerID}
	quote := submittedQuote(t, shop, uuid.New())
	quote.Services = []models.QuoteRequestService{
		{
			IsSelected: true,
			DistanceKM: decPtr(t, "10"),
			ServiceRate: &models.ServiceRate{
				Name:        "Delivery",
				PricingType: enums.ServicePricingTieredDistance,
				Tiers: []models.ServiceRateTier{
					{MinKM: dec(t, "0"), MaxKM: decPtr(t, "5"), Price: dec(t, "200")},
					{MinKM: dec(t, "5"), MaxKM: decPtr(t, "15"), Price: dec(t, "350")},
					{MinKM: dec(t, "15"), Price: dec(t, "500")},
				},
			},
		},
	}
	repo := &stubQuoteRepo{quote: quote}
	svc := newTestService(t, repo, shop, nil)

	priced, err := svc.Price(context.Background(), sellerID, quote.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if priced.Total == nil || !priced.Total.Equal(dec(t, "375.00")) {
		t.Fatalf("total = %v, want items 25.00 + delivery 350", priced.Total)
	}
}

func TestServicePriceRejectsSecondCall(t *testing.T) {
	t.Parallel()

	sellerID := uuid.New()
	shop := &models.Shop{ID: uuid.New(), OwnerID: sellerID}
	repo := &stubQuoteRepo{quote: submittedQuote(t, shop, uuid.New())}
	svc := newTestService(t, repo, shop, nil)

	if _, err := svc.Price(context.Background(), sellerID, repo.quote.ID); err != nil {
		t.Fatalf("first price call failed: %v", err)
	}
	_, err := svc.Price(context.Background(), sellerID, repo.quote.ID)
	assertCode(t, err, pkgerrors.CodeStateConflict)
}

func TestServicePriceForbiddenForBuyer(t *testing.T) {
	t.Parallel()

	buyerID := uuid.New()
	shop := &models.Shop{ID: uuid.New(), OwnerID: uuid.New()}
	repo := &stubQuoteRepo{quote: submittedQuote(t, shop, buyerID)}
	svc := newTestService(t, repo, shop, nil)

	_, err := svc.Price(context.Background(), buyerID, repo.quote.ID)
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestServiceSubmitTransitions(t *testing.T) {
	t.Parallel()

	buyerID := uuid.New()
	shop := &models.Shop{ID: uuid.New(), OwnerID: uuid.New()}
	quote := submittedQuote(t, shop, buyerID)
	quote.Status = enums.QuoteStatusDraft
	repo := &stubQuoteRepo{quote: quote}
	svc := newTestService(t, repo, shop, nil)

	got, err := svc.Submit(context.Background(), buyerID, quote.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != enums.QuoteStatusSubmitted || repo.statusSet != enums.QuoteStatusSubmitted {
		t.Fatalf("status = %s, persisted = %s", got.Status, repo.statusSet)
	}
}

func TestServiceAddItemRequiresDraft(t *testing.T) {
	t.Parallel()

	buyerID := uuid.New()
	shop := &models.Shop{ID: uuid.New(), OwnerID: uuid.New()}
	repo := &stubQuoteRepo{quote: submittedQuote(t, shop, buyerID)}
	svc := newTestService(t, repo, shop, nil)

	_, err := svc.AddItem(context.Background(), buyerID, repo.quote.ID, ItemInput{
		ItemType: enums.ItemTypeCustom,
		Title:    "Flyers",
		Quantity: 10,
	})
	assertCode(t, err, pkgerrors.CodeStateConflict)
}

func TestServiceAddItemShopConsistency(t *testing.T) {
	t.Parallel()

	buyerID := uuid.New()
	shop := &models.Shop{ID: uuid.New(), OwnerID: uuid.New()}
	quote := submittedQuote(t, shop, buyerID)
	quote.Status = enums.QuoteStatusDraft
	repo := &stubQuoteRepo{quote: quote}
	svc := newTestService(t, repo, shop, &stubCatalog{})

	foreignPaper := uuid.New()
	_, err := svc.AddItem(context.Background(), buyerID, quote.ID, ItemInput{
		ItemType: enums.ItemTypeCustom,
		Title:    "Flyers",
		Quantity: 10,
		PaperID:  &foreignPaper,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestServiceAddItemGSMBounds(t *testing.T) {
	t.Parallel()

	buyerID := uuid.New()
	shop := &models.Shop{ID: uuid.New(), OwnerID: uuid.New()}
	quote := submittedQuote(t, shop, buyerID)
	quote.Status = enums.QuoteStatusDraft

	paper := sheetPaper(t, "0.50")
	paper.GSM = 400
	maxGSM := 350
	machine := machineWithRate(t, enums.SheetSizeSRA3, enums.ColorModeColor, "1.00", "1.80")
	machine.MaxGSM = &maxGSM

	catalog := &stubCatalog{
		papers:   map[uuid.UUID]*models.Paper{paper.ID: paper},
		machines: map[uuid.UUID]*models.Machine{machine.ID: machine},
	}
	repo := &stubQuoteRepo{quote: quote}
	svc := newTestService(t, repo, shop, catalog)

	_, err := svc.AddItem(context.Background(), buyerID, quote.ID, ItemInput{
		ItemType:  enums.ItemTypeCustom,
		Title:     "Card stock",
		Quantity:  100,
		PaperID:   &paper.ID,
		MachineID: &machine.ID,
	})
	assertCode(t, err, pkgerrors.CodeValidation)
}

func TestServiceUpdateItemRejectsLocked(t *testing.T) {
	t.Parallel()

	buyerID := uuid.New()
	shop := &models.Shop{ID: uuid.New(), OwnerID: uuid.New()}
	quote := submittedQuote(t, shop, buyerID)
	quote.Status = enums.QuoteStatusDraft

	locked := quote.Items[0]
	now := time.Now().UTC()
	locked.PricingLockedAt = &now

	repo := &stubQuoteRepo{quote: quote, item: &locked}
	svc := newTestService(t, repo, shop, nil)

	_, err := svc.UpdateItem(context.Background(), buyerID, quote.ID, locked.ID, ItemInput{
		ItemType: enums.ItemTypeCustom,
		Title:    "Changed",
		Quantity: 5,
	})
	assertCode(t, err, pkgerrors.CodeStateConflict)
}

func TestServicePreviewForbiddenForStranger(t *testing.T) {
	t.Parallel()

	shop := &models.Shop{ID: uuid.New(), OwnerID: uuid.New()}
	repo := &stubQuoteRepo{quote: submittedQuote(t, shop, uuid.New())}
	svc := newTestService(t, repo, shop, nil)

	_, err := svc.Preview(context.Background(), uuid.New(), repo.quote.ID)
	assertCode(t, err, pkgerrors.CodeForbidden)
}

func TestServicePreviewReturnsDiagnostics(t *testing.T) {
	t.Parallel()

	buyerID := uuid.New()
	shop := &models.Shop{ID: uuid.New(), OwnerID: uuid.New(), Currency: "KES"}
	quote := submittedQuote(t, shop, buyerID)
	quote.Status = enums.QuoteStatusDraft
	quote.Items = append(quote.Items, models.QuoteItem{
		ID:       uuid.New(),
		ItemType: enums.ItemTypeCustom,
		Title:    "Banner",
		Quantity: 1,
	})
	repo := &stubQuoteRepo{quote: quote}
	svc := newTestService(t, repo, shop, nil)

	resp, err := svc.Preview(context.Background(), buyerID, quote.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.CanCalculate {
		t.Fatal("expected can_calculate=false")
	}
	if len(resp.NeedsReviewItems) != 1 {
		t.Fatalf("needs_review_items = %v", resp.NeedsReviewItems)
	}
	if !resp.Total.Equal(dec(t, "25.00")) {
		t.Fatalf("total = %s, want 25.00 from the complete item", resp.Total)
	}
}
