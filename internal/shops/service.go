package shops

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/printyke/printy-backend/pkg/db/models"
	pkgerrors "github.com/printyke/printy-backend/pkg/errors"
)

// DefaultCurrency is assigned to shops that do not pick one.
const DefaultCurrency = "KES"

// slugAttempts bounds how many numbered suffixes are tried before giving
// up on a name.
const slugAttempts = 50

type shopRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	FindBySlug(ctx context.Context, slug string) (*models.Shop, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Shop, error)
	Create(ctx context.Context, shop *models.Shop) (*models.Shop, error)
	Update(ctx context.Context, shop *models.Shop) (*models.Shop, error)
}

// Service exposes shop operations.
type Service interface {
	Create(ctx context.Context, ownerID uuid.UUID, input ShopInput) (*models.Shop, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error)
	GetBySlug(ctx context.Context, slug string) (*models.Shop, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]models.Shop, error)
	Update(ctx context.Context, userID, shopID uuid.UUID, input ShopInput) (*models.Shop, error)
	Deactivate(ctx context.Context, userID, shopID uuid.UUID) error
}

type service struct {
	repo shopRepository
}

// NewService builds a shop service with the provided repository.
func NewService(repo shopRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shop repository required")
	}
	return &service{repo: repo}, nil
}

// ShopInput captures the mutable shop fields.
type ShopInput struct {
	Name     string
	Currency string
	Location string
	Phone    string
}

func (s *service) Create(ctx context.Context, ownerID uuid.UUID, input ShopInput) (*models.Shop, error) {
	if err := validateShopInput(input); err != nil {
		return nil, err
	}
	slug, err := s.uniqueSlug(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	currency := input.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	shop := &models.Shop{
		OwnerID:  ownerID,
		Name:     input.Name,
		Slug:     slug,
		Currency: currency,
		Location: input.Location,
		Phone:    input.Phone,
		IsActive: true,
	}
	return s.repo.Create(ctx, shop)
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID) (*models.Shop, error) {
	shop, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return shop, nil
}

func (s *service) GetBySlug(ctx context.Context, slug string) (*models.Shop, error) {
	shop, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return shop, nil
}

func (s *service) ListMine(ctx context.Context, ownerID uuid.UUID) ([]models.Shop, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *service) Update(ctx context.Context, userID, shopID uuid.UUID, input ShopInput) (*models.Shop, error) {
	if err := validateShopInput(input); err != nil {
		return nil, err
	}
	shop, err := s.ownedShop(ctx, userID, shopID)
	if err != nil {
		return nil, err
	}
	shop.Name = input.Name
	if input.Currency != "" {
		shop.Currency = input.Currency
	}
	shop.Location = input.Location
	shop.Phone = input.Phone
	return s.repo.Update(ctx, shop)
}

func (s *service) Deactivate(ctx context.Context, userID, shopID uuid.UUID) error {
	shop, err := s.ownedShop(ctx, userID, shopID)
	if err != nil {
		return err
	}
	shop.IsActive = false
	_, err = s.repo.Update(ctx, shop)
	return err
}

func (s *service) ownedShop(ctx context.Context, userID, shopID uuid.UUID) (*models.Shop, error) {
	shop, err := s.repo.FindByID(ctx, shopID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	if shop.OwnerID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only the shop owner can modify the shop")
	}
	return shop, nil
}

// uniqueSlug derives a slug from the name, appending a counter while the
// base is taken.
func (s *service) uniqueSlug(ctx context.Context, name string) (string, error) {
	base := Slugify(name)
	if base == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "shop name must contain letters or digits")
	}
	candidate := base
	for i := 2; i <= slugAttempts; i++ {
		taken, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
	return "", pkgerrors.New(pkgerrors.CodeConflict, "could not allocate a unique shop slug")
}

func validateShopInput(input ShopInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "shop name is required")
	}
	if input.Currency != "" && len(input.Currency) != 3 {
		return pkgerrors.New(pkgerrors.CodeValidation, "currency must be a 3-letter code")
	}
	return nil
}

// Slugify lowercases the name and collapses every non-alphanumeric run
// into a single hyphen.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(b.String(), "-")
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "shop not found")
	}
	return err
}
