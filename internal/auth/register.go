package auth

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/printyke/printy-backend/internal/shops"
	"github.com/printyke/printy-backend/internal/users"
	"github.com/printyke/printy-backend/pkg/config"
	"github.com/printyke/printy-backend/pkg/db"
	pkgerrors "github.com/printyke/printy-backend/pkg/errors"
	"github.com/printyke/printy-backend/pkg/security"
)

// RegisterRequest contains the payload for creating an account. A shop
// name may be sent along to onboard a seller in one call.
type RegisterRequest struct {
	DisplayName string  `json:"display_name" validate:"required"`
	Email       string  `json:"email" validate:"required,email"`
	Password    string  `json:"password" validate:"required,min=8"`
	Phone       string  `json:"phone,omitempty"`
	ShopName    *string `json:"shop_name,omitempty"`
}

// RegisterResponse reports what the onboarding transaction created.
type RegisterResponse struct {
	User *users.UserDTO    `json:"user"`
	Shop *shops.ShopResult `json:"shop,omitempty"`
}

// RegisterService handles the onboarding transaction.
type RegisterService interface {
	Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *registerService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if len(req.Password) < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "password must be at least 8 characters")
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "display name is required")
	}

	passwordHash, err := security.HashPassword(req.Password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	var resp RegisterResponse
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		userRepo := users.NewRepository(tx)
		shopRepo := shops.NewRepository(tx)

		if _, err := userRepo.FindByEmail(ctx, email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check user email")
		}

		user, err := userRepo.Create(ctx, users.CreateUserDTO{
			Email:        email,
			PasswordHash: passwordHash,
			DisplayName:  req.DisplayName,
			Phone:        req.Phone,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create user")
		}
		resp.User = users.FromModel(user)

		if req.ShopName == nil || strings.TrimSpace(*req.ShopName) == "" {
			return nil
		}
		shopSvc, err := shops.NewService(shopRepo)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build shop service")
		}
		shop, err := shopSvc.Create(ctx, user.ID, shops.ShopInput{Name: *req.ShopName})
		if err != nil {
			return err
		}
		resp.Shop = shops.ResultFromModel(shop)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
