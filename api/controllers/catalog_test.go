package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/printyke/printy-backend/internal/catalog"
	"github.com/printyke/printy-backend/pkg/db/models"
	"github.com/printyke/printy-backend/pkg/enums"
)

type stubCatalogService struct {
	createProductFn func(ctx context.Context, userID, shopID uuid.UUID, input catalog.ProductInput) (*models.Product, error)
	listProductsFn  func(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.Product, int64, error)
	priceHintFn     func(ctx context.Context, userID, shopID, productID uuid.UUID) (*catalog.ProductDiagnostics, error)
	setRateFn       func(ctx context.Context, userID, shopID, machineID uuid.UUID, input catalog.PrintingRateInput) (*models.PrintingRate, error)
	createSvcRateFn func(ctx context.Context, userID, shopID uuid.UUID, input catalog.ServiceRateInput) (*models.ServiceRate, error)
}

func (s stubCatalogService) CreateProduct(ctx context.Context, userID, shopID uuid.UUID, input catalog.ProductInput) (*models.Product, error) {
	return s.createProductFn(ctx, userID, shopID, input)
}

func (s stubCatalogService) UpdateProduct(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, catalog.ProductInput) (*models.Product, error) {
	panic("unexpected UpdateProduct call")
}

func (s stubCatalogService) DeleteProduct(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
	panic("unexpected DeleteProduct call")
}

func (s stubCatalogService) GetProduct(context.Context, uuid.UUID, uuid.UUID) (*models.Product, error) {
	panic("unexpected GetProduct call")
}

func (s stubCatalogService) ListProducts(ctx context.Context, userID, shopID uuid.UUID, limit, offset int) ([]models.Product, int64, error) {
	return s.listProductsFn(ctx, userID, shopID, limit, offset)
}

func (s stubCatalogService) ProductPriceHint(ctx context.Context, userID, shopID, productID uuid.UUID) (*catalog.ProductDiagnostics, error) {
	return s.priceHintFn(ctx, userID, shopID, productID)
}

func (s stubCatalogService) CreatePaper(context.Context, uuid.UUID, uuid.UUID, catalog.PaperInput) (*models.Paper, error) {
	panic("unexpected CreatePaper call")
}

func (s stubCatalogService) UpdatePaper(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, catalog.PaperInput) (*models.Paper, error) {
	panic("unexpected UpdatePaper call")
}

func (s stubCatalogService) DeletePaper(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
	panic("unexpected DeletePaper call")
}

func (s stubCatalogService) ListPapers(context.Context, uuid.UUID, uuid.UUID, int, int) ([]models.Paper, int64, error) {
	panic("unexpected ListPapers call")
}

func (s stubCatalogService) CreateMachine(context.Context, uuid.UUID, uuid.UUID, catalog.MachineInput) (*models.Machine, error) {
	panic("unexpected CreateMachine call")
}

func (s stubCatalogService) UpdateMachine(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, catalog.MachineInput) (*models.Machine, error) {
	panic("unexpected UpdateMachine call")
}

func (s stubCatalogService) DeleteMachine(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
	panic("unexpected DeleteMachine call")
}

func (s stubCatalogService) ListMachines(context.Context, uuid.UUID, uuid.UUID, int, int) ([]models.Machine, int64, error) {
	panic("unexpected ListMachines call")
}

func (s stubCatalogService) SetPrintingRate(ctx context.Context, userID, shopID, machineID uuid.UUID, input catalog.PrintingRateInput) (*models.PrintingRate, error) {
	return s.setRateFn(ctx, userID, shopID, machineID, input)
}

func (s stubCatalogService) DeletePrintingRate(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, uuid.UUID) error {
	panic("unexpected DeletePrintingRate call")
}

func (s stubCatalogService) ApplyDefaultPrintingRates(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) (*models.Machine, error) {
	panic("unexpected ApplyDefaultPrintingRates call")
}

func (s stubCatalogService) CreateFinishingRate(context.Context, uuid.UUID, uuid.UUID, catalog.FinishingRateInput) (*models.FinishingRate, error) {
	panic("unexpected CreateFinishingRate call")
}

func (s stubCatalogService) UpdateFinishingRate(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, catalog.FinishingRateInput) (*models.FinishingRate, error) {
	panic("unexpected UpdateFinishingRate call")
}

func (s stubCatalogService) DeleteFinishingRate(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
	panic("unexpected DeleteFinishingRate call")
}

func (s stubCatalogService) ListFinishingRates(context.Context, uuid.UUID, uuid.UUID, int, int) ([]models.FinishingRate, int64, error) {
	panic("unexpected ListFinishingRates call")
}

func (s stubCatalogService) CreateMaterial(context.Context, uuid.UUID, uuid.UUID, catalog.MaterialInput) (*models.Material, error) {
	panic("unexpected CreateMaterial call")
}

func (s stubCatalogService) UpdateMaterial(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, catalog.MaterialInput) (*models.Material, error) {
	panic("unexpected UpdateMaterial call")
}

func (s stubCatalogService) DeleteMaterial(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
	panic("unexpected DeleteMaterial call")
}

func (s stubCatalogService) ListMaterials(context.Context, uuid.UUID, uuid.UUID, int, int) ([]models.Material, int64, error) {
	panic("unexpected ListMaterials call")
}

func (s stubCatalogService) CreateServiceRate(ctx context.Context, userID, shopID uuid.UUID, input catalog.ServiceRateInput) (*models.ServiceRate, error) {
	return s.createSvcRateFn(ctx, userID, shopID, input)
}

func (s stubCatalogService) UpdateServiceRate(context.Context, uuid.UUID, uuid.UUID, uuid.UUID, catalog.ServiceRateInput) (*models.ServiceRate, error) {
	panic("unexpected UpdateServiceRate call")
}

func (s stubCatalogService) DeleteServiceRate(context.Context, uuid.UUID, uuid.UUID, uuid.UUID) error {
	panic("unexpected DeleteServiceRate call")
}

func (s stubCatalogService) ListServiceRates(context.Context, uuid.UUID, uuid.UUID, int, int) ([]models.ServiceRate, int64, error) {
	panic("unexpected ListServiceRates call")
}

func TestProductCreateSuccess(t *testing.T) {
	shopID := uuid.New()
	svc := stubCatalogService{
		createProductFn: func(_ context.Context, _, gotShop uuid.UUID, input catalog.ProductInput) (*models.Product, error) {
			if gotShop != shopID {
				t.Fatalf("unexpected shop %s", gotShop)
			}
			if input.PricingMode != enums.PricingModeSheet {
				t.Fatalf("unexpected pricing mode %s", input.PricingMode)
			}
			return &models.Product{ID: uuid.New(), ShopID: gotShop, Name: input.Name}, nil
		},
	}
	handler := ProductCreate(svc, testLogger())

	payload := []byte(`{"name": "Business Cards", "pricing_mode": "SHEET", "is_active": true}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shops/"+shopID.String()+"/products", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req = withUser(req, uuid.New())
	req = addRouteParam(req, "shopID", shopID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestProductCreateRejectsMissingPricingMode(t *testing.T) {
	handler := ProductCreate(stubCatalogService{}, testLogger())

	payload := []byte(`{"name": "Business Cards"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shops/"+uuid.NewString()+"/products", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req = withUser(req, uuid.New())
	req = addRouteParam(req, "shopID", uuid.NewString())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestProductsListPaginates(t *testing.T) {
	var gotLimit, gotOffset int
	svc := stubCatalogService{
		listProductsFn: func(_ context.Context, _, _ uuid.UUID, limit, offset int) ([]models.Product, int64, error) {
			gotLimit = limit
			gotOffset = offset
			return []models.Product{{ID: uuid.New(), Name: "Flyers"}}, 41, nil
		},
	}
	handler := ProductsList(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/"+uuid.NewString()+"/products?limit=25&offset=10", nil)
	req = withUser(req, uuid.New())
	req = addRouteParam(req, "shopID", uuid.NewString())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
	if gotLimit != 25 || gotOffset != 10 {
		t.Fatalf("unexpected page %d/%d", gotLimit, gotOffset)
	}
	var envelope struct {
		Data struct {
			Items []models.Product `json:"items"`
			Total int64            `json:"total"`
		} `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Total != 41 {
		t.Fatalf("expected total 41 got %d", envelope.Data.Total)
	}
	if len(envelope.Data.Items) != 1 {
		t.Fatalf("expected 1 product got %d", len(envelope.Data.Items))
	}
}

func TestProductPriceHintSuccess(t *testing.T) {
	productID := uuid.New()
	svc := stubCatalogService{
		priceHintFn: func(_ context.Context, _, _, gotProduct uuid.UUID) (*catalog.ProductDiagnostics, error) {
			if gotProduct != productID {
				t.Fatalf("unexpected product %s", gotProduct)
			}
			return &catalog.ProductDiagnostics{ProductID: gotProduct.String(), Ready: false, Reason: "no active paper has a price"}, nil
		},
	}
	handler := ProductPriceHint(svc, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/"+uuid.NewString()+"/products/"+productID.String()+"/price-hint", nil)
	req = withUser(req, uuid.New())
	req = addRouteParam(req, "shopID", uuid.NewString())
	req = addRouteParam(req, "productID", productID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data catalog.ProductDiagnostics `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Ready {
		t.Fatal("expected not ready")
	}
}

func TestPrintingRateSetSuccess(t *testing.T) {
	machineID := uuid.New()
	svc := stubCatalogService{
		setRateFn: func(_ context.Context, _, _, gotMachine uuid.UUID, input catalog.PrintingRateInput) (*models.PrintingRate, error) {
			if gotMachine != machineID {
				t.Fatalf("unexpected machine %s", gotMachine)
			}
			if input.SheetSize != enums.SheetSizeSRA3 || input.ColorMode != enums.ColorModeColor {
				t.Fatalf("unexpected rate key %s/%s", input.SheetSize, input.ColorMode)
			}
			if !input.SinglePrice.Equal(decimal.RequireFromString("25")) {
				t.Fatalf("unexpected single price %s", input.SinglePrice)
			}
			return &models.PrintingRate{ID: uuid.New(), MachineID: gotMachine, SheetSize: input.SheetSize, ColorMode: input.ColorMode}, nil
		},
	}
	handler := PrintingRateSet(svc, testLogger())

	payload := []byte(`{"sheet_size": "SRA3", "color_mode": "COLOR", "single_price": "25", "double_price": "45", "is_active": true}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/shops/"+uuid.NewString()+"/machines/"+machineID.String()+"/rates", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req = withUser(req, uuid.New())
	req = addRouteParam(req, "shopID", uuid.NewString())
	req = addRouteParam(req, "machineID", machineID.String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestServiceRateCreateForwardsTiers(t *testing.T) {
	svc := stubCatalogService{
		createSvcRateFn: func(_ context.Context, _, _ uuid.UUID, input catalog.ServiceRateInput) (*models.ServiceRate, error) {
			if len(input.Tiers) != 2 {
				t.Fatalf("expected 2 tiers got %d", len(input.Tiers))
			}
			return &models.ServiceRate{ID: uuid.New(), Code: input.Code, Name: input.Name}, nil
		},
	}
	handler := ServiceRateCreate(svc, testLogger())

	payload := []byte(`{
		"code": "DELIVERY",
		"name": "Delivery",
		"pricing_type": "TIERED_DISTANCE",
		"is_active": true,
		"tiers": [
			{"min_km": "0", "max_km": "5", "price": "200"},
			{"min_km": "5", "max_km": "15", "price": "500"}
		]
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shops/"+uuid.NewString()+"/service-rates", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req = withUser(req, uuid.New())
	req = addRouteParam(req, "shopID", uuid.NewString())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", rec.Code, rec.Body.String())
	}
}
