package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/printyke/printy-backend/api/middleware"
	"github.com/printyke/printy-backend/internal/shops"
	"github.com/printyke/printy-backend/pkg/db/models"
	pkgerrors "github.com/printyke/printy-backend/pkg/errors"
	"github.com/printyke/printy-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func withUser(req *http.Request, userID uuid.UUID) *http.Request {
	return req.WithContext(middleware.WithUserID(req.Context(), userID.String()))
}

func addRouteParam(req *http.Request, key, value string) *http.Request {
	routeCtx, ok := req.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		routeCtx = chi.NewRouteContext()
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
	}
	routeCtx.URLParams.Add(key, value)
	return req
}

type stubShopService struct {
	createResp *models.Shop
	createErr  error
	getResp    *models.Shop
	getErr     error
	listResp   []models.Shop
	listErr    error
	updateResp *models.Shop
	updateErr  error
	deactErr   error
}

func (s stubShopService) Create(_ context.Context, _ uuid.UUID, _ shops.ShopInput) (*models.Shop, error) {
	return s.createResp, s.createErr
}

func (s stubShopService) GetByID(_ context.Context, _ uuid.UUID) (*models.Shop, error) {
	return s.getResp, s.getErr
}

func (s stubShopService) GetBySlug(_ context.Context, _ string) (*models.Shop, error) {
	return s.getResp, s.getErr
}

func (s stubShopService) ListMine(_ context.Context, _ uuid.UUID) ([]models.Shop, error) {
	return s.listResp, s.listErr
}

func (s stubShopService) Update(_ context.Context, _, _ uuid.UUID, _ shops.ShopInput) (*models.Shop, error) {
	return s.updateResp, s.updateErr
}

func (s stubShopService) Deactivate(_ context.Context, _, _ uuid.UUID) error {
	return s.deactErr
}

func TestShopCreateSuccess(t *testing.T) {
	owner := uuid.New()
	shop := &models.Shop{ID: uuid.New(), OwnerID: owner, Name: "Kwik Prints", Slug: "kwik-prints", Currency: "KES", IsActive: true}
	handler := ShopCreate(stubShopService{createResp: shop}, testLogger())

	payload := []byte(`{"name": "Kwik Prints", "currency": "KES"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shops", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req = withUser(req, owner)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d body %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data shops.ShopResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Slug != "kwik-prints" {
		t.Fatalf("unexpected slug %q", envelope.Data.Slug)
	}
}

func TestShopCreateMissingUser(t *testing.T) {
	handler := ShopCreate(stubShopService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shops", bytes.NewReader([]byte(`{"name":"x"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestShopCreateRejectsEmptyName(t *testing.T) {
	handler := ShopCreate(stubShopService{}, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/shops", bytes.NewReader([]byte(`{"currency":"KES"}`)))
	req.Header.Set("Content-Type", "application/json")
	req = withUser(req, uuid.New())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d body %s", rec.Code, rec.Body.String())
	}
}

func TestShopGetNotFound(t *testing.T) {
	handler := ShopGet(stubShopService{getErr: pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/"+uuid.NewString(), nil)
	req = addRouteParam(req, "shopID", uuid.NewString())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", rec.Code)
	}
}

func TestShopGetRejectsBadID(t *testing.T) {
	handler := ShopGet(stubShopService{}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/nope", nil)
	req = addRouteParam(req, "shopID", "nope")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}

func TestShopsListMineSuccess(t *testing.T) {
	owner := uuid.New()
	list := []models.Shop{
		{ID: uuid.New(), OwnerID: owner, Name: "One", Slug: "one", Currency: "KES", IsActive: true},
		{ID: uuid.New(), OwnerID: owner, Name: "Two", Slug: "two", Currency: "USD", IsActive: true},
	}
	handler := ShopsListMine(stubShopService{listResp: list}, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shops/mine", nil)
	req = withUser(req, owner)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope struct {
		Data []shops.ShopResult `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Fatalf("expected 2 shops got %d", len(envelope.Data))
	}
	if envelope.Data[1].Currency != "USD" {
		t.Fatalf("unexpected currency %q", envelope.Data[1].Currency)
	}
}

func TestShopDeactivateForbidden(t *testing.T) {
	handler := ShopDeactivate(stubShopService{deactErr: pkgerrors.New(pkgerrors.CodeForbidden, "not the owner")}, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/shops/"+uuid.NewString(), nil)
	req = withUser(req, uuid.New())
	req = addRouteParam(req, "shopID", uuid.NewString())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rec.Code)
	}
}

func TestShopDeactivateSuccess(t *testing.T) {
	handler := ShopDeactivate(stubShopService{}, testLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/shops/"+uuid.NewString(), nil)
	req = withUser(req, uuid.New())
	req = addRouteParam(req, "shopID", uuid.NewString())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data["status"] != "deactivated" {
		t.Fatalf("unexpected body %v", envelope.Data)
	}
}
