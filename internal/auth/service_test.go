package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgAuth "github.com/printyke/printy-backend/pkg/auth"
	"github.com/printyke/printy-backend/pkg/config"
	"github.com/printyke/printy-backend/pkg/db/models"
	pkgerrors "github.com/printyke/printy-backend/pkg/errors"
	"github.com/printyke/printy-backend/pkg/security"
)

type stubUserRepo struct {
	user *models.User
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubShopLister struct {
	shops []models.Shop
}

func (s *stubShopLister) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Shop, error) {
	return s.shops, nil
}

type stubSessionManager struct {
	lastAccessID string
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	s.lastAccessID = accessID
	return "refresh-token", nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "secret",
		Issuer:            "printy",
		ExpirationMinutes: 30,
	}
}

func testUser(t *testing.T, email, password string) *models.User {
	t.Helper()
	hash, err := security.HashPassword(password, config.PasswordConfig{})
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  "Test User",
		IsActive:     true,
	}
}

func newLoginService(t *testing.T, user *models.User, shops []models.Shop) (Service, *stubSessionManager) {
	t.Helper()
	sessions := &stubSessionManager{}
	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{user: user},
		ShopRepo:       &stubShopLister{shops: shops},
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc, sessions
}

func assertCode(t *testing.T, err error, want pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %s, got nil", want)
	}
	coded := pkgerrors.As(err)
	if coded == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if coded.Code() != want {
		t.Fatalf("expected code %s, got %s (%v)", want, coded.Code(), err)
	}
}

func TestLoginSuccess(t *testing.T) {
	t.Parallel()

	user := testUser(t, "owner@printy.dev", "print-all-day")
	shop := models.Shop{ID: uuid.New(), OwnerID: user.ID, Name: "Quick Prints", Slug: "quick-prints"}
	svc, sessions := newLoginService(t, user, []models.Shop{shop})

	resp, err := svc.Login(context.Background(), LoginRequest{Email: "Owner@printy.dev", Password: "print-all-day"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("expected token pair")
	}
	if len(resp.Shops) != 1 || resp.Shops[0].Slug != "quick-prints" {
		t.Fatalf("expected owned shop in response, got %v", resp.Shops)
	}
	if resp.User == nil || resp.User.ID != user.ID {
		t.Fatal("expected sanitized user in response")
	}

	claims, err := pkgAuth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("parse minted token: %v", err)
	}
	if claims.UserID != user.ID {
		t.Fatalf("expected user id %s in claims, got %s", user.ID, claims.UserID)
	}
	if claims.ID != sessions.lastAccessID {
		t.Fatal("expected jti to match the stored session id")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Parallel()

	user := testUser(t, "owner@printy.dev", "print-all-day")
	svc, _ := newLoginService(t, user, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "owner@printy.dev", Password: "wrong"})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLoginUnknownEmail(t *testing.T) {
	t.Parallel()

	svc, _ := newLoginService(t, nil, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "ghost@printy.dev", Password: "whatever"})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}

func TestLoginInactiveUser(t *testing.T) {
	t.Parallel()

	user := testUser(t, "owner@printy.dev", "print-all-day")
	user.IsActive = false
	svc, _ := newLoginService(t, user, nil)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "owner@printy.dev", Password: "print-all-day"})
	assertCode(t, err, pkgerrors.CodeUnauthorized)
}
