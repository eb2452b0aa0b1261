package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printyke/printy-backend/internal/auth"
	"github.com/printyke/printy-backend/internal/catalog"
	"github.com/printyke/printy-backend/internal/quotes"
	"github.com/printyke/printy-backend/internal/shops"
	pkgAuth "github.com/printyke/printy-backend/pkg/auth"
	"github.com/printyke/printy-backend/pkg/config"
	"github.com/printyke/printy-backend/pkg/db/models"
	"github.com/printyke/printy-backend/pkg/enums"
	pkgerrors "github.com/printyke/printy-backend/pkg/errors"
	"github.com/printyke/printy-backend/pkg/logger"
	"github.com/printyke/printy-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "", "", nil
}

func (stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
}

type stubRegisterService struct{}

func (stubRegisterService) Register(ctx context.Context, req auth.RegisterRequest) (*auth.RegisterResponse, error) {
	return &auth.RegisterResponse{}, nil
}

type stubShopService struct {
	listMine func(ctx context.Context, ownerID uuid.UUID) ([]models.Shop, error)
}

func (stubShopService) Create(ctx context.Context, ownerID uuid.UUID, input shops.ShopInput) (*models.Shop, error) {
	panic("unimplemented")
}

func (stubShopService) GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	panic("unimplemented")
}

func (stubShopService) GetBySlug(ctx context.Context, slug string) (*models.Shop, error) {
	panic("unimplemented")
}

func (s stubShopService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]models.Shop, error) {
	if s.listMine != nil {
		return s.listMine(ctx, ownerID)
	}
	return nil, nil
}

func (stubShopService) Update(ctx context.Context, userID, shopID uuid.UUID, input shops.ShopInput) (*models.Shop, error) {
	panic("unimplemented")
}

func (stubShopService) Deactivate(ctx context.Context, userID, shopID uuid.UUID) error {
	panic("unimplemented")
}

type stubCatalogService struct{}

func (stubCatalogService) CreateProduct(ctx context.Context, userID, shopID uuid.UUID, input catalog.ProductInput) (*models.Product, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdateProduct(ctx context.Context, userID, shopID, productID uuid.UUID, input catalog.ProductInput) (*models.Product, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteProduct(ctx context.Context, userID, shopID, productID uuid.UUID) error {
	panic("unimplemented")
}

func (stubCatalogService) GetProduct(ctx context.Context, shopID, productID uuid.UUID) (*models.Product, error) {
	panic("unimplemented")
}

func (stubCatalogService) ListProducts(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.Product, int64, error) {
	return nil, 0, nil
}

func (stubCatalogService) ProductPriceHint(ctx context.Context, userID, shopID, productID uuid.UUID) (*catalog.ProductDiagnostics, error) {
	panic("unimplemented")
}

func (stubCatalogService) CreatePaper(ctx context.Context, userID, shopID uuid.UUID, input catalog.PaperInput) (*models.Paper, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdatePaper(ctx context.Context, userID, shopID, paperID uuid.UUID, input catalog.PaperInput) (*models.Paper, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeletePaper(ctx context.Context, userID, shopID, paperID uuid.UUID) error {
	panic("unimplemented")
}

func (stubCatalogService) ListPapers(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.Paper, int64, error) {
	panic("unimplemented")
}

func (stubCatalogService) CreateMachine(ctx context.Context, userID, shopID uuid.UUID, input catalog.MachineInput) (*models.Machine, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdateMachine(ctx context.Context, userID, shopID, machineID uuid.UUID, input catalog.MachineInput) (*models.Machine, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteMachine(ctx context.Context, userID, shopID, machineID uuid.UUID) error {
	panic("unimplemented")
}

func (stubCatalogService) ListMachines(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.Machine, int64, error) {
	panic("unimplemented")
}

func (stubCatalogService) SetPrintingRate(ctx context.Context, userID, shopID, machineID uuid.UUID, input catalog.PrintingRateInput) (*models.PrintingRate, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeletePrintingRate(ctx context.Context, userID, shopID, machineID, rateID uuid.UUID) error {
	panic("unimplemented")
}

func (stubCatalogService) ApplyDefaultPrintingRates(ctx context.Context, userID, shopID, machineID uuid.UUID) (*models.Machine, error) {
	panic("unimplemented")
}

func (stubCatalogService) CreateFinishingRate(ctx context.Context, userID, shopID uuid.UUID, input catalog.FinishingRateInput) (*models.FinishingRate, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdateFinishingRate(ctx context.Context, userID, shopID, rateID uuid.UUID, input catalog.FinishingRateInput) (*models.FinishingRate, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteFinishingRate(ctx context.Context, userID, shopID, rateID uuid.UUID) error {
	panic("unimplemented")
}

func (stubCatalogService) ListFinishingRates(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.FinishingRate, int64, error) {
	panic("unimplemented")
}

func (stubCatalogService) CreateMaterial(ctx context.Context, userID, shopID uuid.UUID, input catalog.MaterialInput) (*models.Material, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdateMaterial(ctx context.Context, userID, shopID, materialID uuid.UUID, input catalog.MaterialInput) (*models.Material, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteMaterial(ctx context.Context, userID, shopID, materialID uuid.UUID) error {
	panic("unimplemented")
}

func (stubCatalogService) ListMaterials(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.Material, int64, error) {
	panic("unimplemented")
}

func (stubCatalogService) CreateServiceRate(ctx context.Context, userID, shopID uuid.UUID, input catalog.ServiceRateInput) (*models.ServiceRate, error) {
	panic("unimplemented")
}

func (stubCatalogService) UpdateServiceRate(ctx context.Context, userID, shopID, rateID uuid.UUID, input catalog.ServiceRateInput) (*models.ServiceRate, error) {
	panic("unimplemented")
}

func (stubCatalogService) DeleteServiceRate(ctx context.Context, userID, shopID, rateID uuid.UUID) error {
	panic("unimplemented")
}

func (stubCatalogService) ListServiceRates(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.ServiceRate, int64, error) {
	panic("unimplemented")
}

type stubQuoteService struct {
	preview func(ctx context.Context, userID, quoteID uuid.UUID) (*quotes.PreviewResponse, error)
}

func (stubQuoteService) CreateQuote(ctx context.Context, userID, shopID uuid.UUID, input quotes.CreateQuoteInput) (*models.QuoteRequest, error) {
	panic("unimplemented")
}

func (stubQuoteService) GetQuote(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error) {
	panic("unimplemented")
}

func (stubQuoteService) ListShopQuotes(ctx context.Context, userID, shopID uuid.UUID, statuses []enums.QuoteStatus, limit, offset int) ([]models.QuoteRequest, int64, error) {
	panic("unimplemented")
}

func (stubQuoteService) ListMyQuotes(ctx context.Context, userID uuid.UUID, limit, offset int) ([]models.QuoteRequest, int64, error) {
	return nil, 0, nil
}

func (stubQuoteService) AddItem(ctx context.Context, userID, quoteID uuid.UUID, input quotes.ItemInput) (*models.QuoteItem, error) {
	panic("unimplemented")
}

func (stubQuoteService) UpdateItem(ctx context.Context, userID, quoteID, itemID uuid.UUID, input quotes.ItemInput) (*models.QuoteItem, error) {
	panic("unimplemented")
}

func (stubQuoteService) RemoveItem(ctx context.Context, userID, quoteID, itemID uuid.UUID) error {
	panic("unimplemented")
}

func (stubQuoteService) SetItemFinishings(ctx context.Context, userID, quoteID, itemID uuid.UUID, inputs []quotes.ItemFinishingInput) error {
	panic("unimplemented")
}

func (stubQuoteService) SetItemServices(ctx context.Context, userID, quoteID, itemID uuid.UUID, inputs []quotes.ItemServiceInput) error {
	panic("unimplemented")
}

func (stubQuoteService) SetQuoteServices(ctx context.Context, userID, quoteID uuid.UUID, inputs []quotes.QuoteServiceInput) error {
	panic("unimplemented")
}

func (s stubQuoteService) Preview(ctx context.Context, userID, quoteID uuid.UUID) (*quotes.PreviewResponse, error) {
	if s.preview != nil {
		return s.preview(ctx, userID, quoteID)
	}
	return &quotes.PreviewResponse{Currency: "KES", Total: decimal.Zero}, nil
}

func (stubQuoteService) Submit(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error) {
	panic("unimplemented")
}

func (stubQuoteService) Price(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error) {
	panic("unimplemented")
}

func (stubQuoteService) Send(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error) {
	panic("unimplemented")
}

func (stubQuoteService) Accept(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error) {
	panic("unimplemented")
}

func (stubQuoteService) Reject(ctx context.Context, userID, quoteID uuid.UUID) (*models.QuoteRequest, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:                 "secret",
			Issuer:                 "issuer",
			ExpirationMinutes:      60,
			RefreshTokenTTLMinutes: 120,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		nil,
		nil,
		stubSessionManager{},
		stubAuthService{},
		stubRegisterService{},
		stubShopService{},
		stubCatalogService{},
		stubQuoteService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "owner@example.com",
		JTI:    uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for liveness got %d", resp.Code)
	}
	if env := resp.Header().Get("X-Printy-Env"); env != "test" {
		t.Fatalf("expected env header got %q", env)
	}
}

func TestProtectedRoutesRejectMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{
		"/api/v1/shops/mine",
		"/api/v1/quotes/mine",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without token got %d", path, resp.Code)
		}
	}
}

func TestProtectedRouteSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/mine", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for owned shops got %d", resp.Code)
	}
}

func TestQuotePreviewWired(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/"+uuid.NewString()+"/preview", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for preview got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "KES") {
		t.Fatalf("expected preview currency in body got %s", resp.Body.String())
	}
}

func TestQuotePreviewRejectsBadQuoteID(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/quotes/not-a-uuid/preview", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed quote id got %d", resp.Code)
	}
}

func TestLoginRouteWired(t *testing.T) {
	router := newTestRouter(testConfig())
	body := strings.NewReader(`{"email":"owner@example.com","password":"wrong-password"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 from stub login got %d", resp.Code)
	}
}
