package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/printyke/printy-backend/pkg/auth"
	"github.com/printyke/printy-backend/pkg/auth/session"
	"github.com/printyke/printy-backend/pkg/config"
)

type stubRotator struct {
	rotateAccessID string
	rotateRefresh  string
	rotateErr      error
	revokeErr      error

	revokedID  string
	rotatedOld string
	provided   string
}

func (s *stubRotator) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	s.rotatedOld = oldAccessID
	s.provided = provided
	return s.rotateAccessID, s.rotateRefresh, s.rotateErr
}

func (s *stubRotator) Revoke(_ context.Context, accessID string) error {
	s.revokedID = accessID
	return s.revokeErr
}

func sessionTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret",
		Issuer:                 "printy-test",
		ExpirationMinutes:      60,
		RefreshTokenTTLMinutes: 120,
	}
}

func mintToken(t *testing.T, cfg config.JWTConfig, jti string) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().UTC(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  "owner@example.com",
		JTI:    jti,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestAuthLogoutRevokesSession(t *testing.T) {
	cfg := sessionTestConfig()
	rotator := &stubRotator{}
	handler := AuthLogout(rotator, cfg, testLogger())

	jti := uuid.NewString()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, jti))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
	if rotator.revokedID != jti {
		t.Fatalf("expected revoke of %s got %s", jti, rotator.revokedID)
	}
}

func TestAuthLogoutMissingHeader(t *testing.T) {
	handler := AuthLogout(&stubRotator{}, sessionTestConfig(), testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthLogoutRejectsForgedToken(t *testing.T) {
	cfg := sessionTestConfig()
	otherCfg := cfg
	otherCfg.Secret = "different-secret"
	handler := AuthLogout(&stubRotator{}, cfg, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+mintToken(t, otherCfg, uuid.NewString()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthRefreshRotatesTokens(t *testing.T) {
	cfg := sessionTestConfig()
	rotator := &stubRotator{
		rotateAccessID: uuid.NewString(),
		rotateRefresh:  "next-refresh",
	}
	handler := AuthRefresh(rotator, cfg, testLogger())

	jti := uuid.NewString()
	payload := []byte(`{"refresh_token": "current-refresh"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, jti))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d body %s", rec.Code, rec.Body.String())
	}
	if rotator.rotatedOld != jti || rotator.provided != "current-refresh" {
		t.Fatalf("rotate called with %s/%s", rotator.rotatedOld, rotator.provided)
	}
	var envelope struct {
		Data refreshResponse `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RefreshToken != "next-refresh" {
		t.Fatalf("unexpected refresh token %q", envelope.Data.RefreshToken)
	}
	if envelope.Data.AccessToken == "" {
		t.Fatal("expected a new access token")
	}

	claims, err := pkgAuth.ParseAccessTokenAllowExpired(cfg, envelope.Data.AccessToken)
	if err != nil {
		t.Fatalf("parse rotated token: %v", err)
	}
	if claims.ID != rotator.rotateAccessID {
		t.Fatalf("expected jti %s got %s", rotator.rotateAccessID, claims.ID)
	}
}

func TestAuthRefreshInvalidRefreshToken(t *testing.T) {
	cfg := sessionTestConfig()
	rotator := &stubRotator{rotateErr: session.ErrInvalidRefreshToken}
	handler := AuthRefresh(rotator, cfg, testLogger())

	payload := []byte(`{"refresh_token": "stale"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, uuid.NewString()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rec.Code)
	}
}

func TestAuthRefreshRequiresBody(t *testing.T) {
	cfg := sessionTestConfig()
	handler := AuthRefresh(&stubRotator{}, cfg, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+mintToken(t, cfg, uuid.NewString()))
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rec.Code)
	}
}
