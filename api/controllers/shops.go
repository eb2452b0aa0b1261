package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/printyke/printy-backend/api/responses"
	"github.com/printyke/printy-backend/api/validators"
	"github.com/printyke/printy-backend/internal/shops"
	"github.com/printyke/printy-backend/pkg/logger"
)

type shopPayload struct {
	Name     string `json:"name" validate:"required,max=120"`
	Currency string `json:"currency" validate:"omitempty,len=3"`
	Location string `json:"location" validate:"omitempty,max=200"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
}

func (p shopPayload) toInput() shops.ShopInput {
	return shops.ShopInput{
		Name:     validators.SanitizeString(p.Name, 120),
		Currency: p.Currency,
		Location: validators.SanitizeString(p.Location, 200),
		Phone:    validators.SanitizeString(p.Phone, 32),
	}
}

// ShopCreate opens a new shop owned by the caller.
func ShopCreate(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body shopPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.Create(r.Context(), owner, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, shops.ResultFromModel(shop))
	}
}

// ShopGet returns a shop by id.
func ShopGet(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shopID, err := pathUUID(r, "shopID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.GetByID(r.Context(), shopID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shops.ResultFromModel(shop))
	}
}

// ShopGetBySlug returns a shop by its public slug.
func ShopGetBySlug(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")

		shop, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shops.ResultFromModel(shop))
	}
}

// ShopsListMine returns every shop owned by the caller.
func ShopsListMine(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		owner, err := actorID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListMine(r.Context(), owner)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		results := make([]*shops.ShopResult, 0, len(list))
		for i := range list {
			results = append(results, shops.ResultFromModel(&list[i]))
		}
		responses.WriteSuccess(w, results)
	}
}

// ShopUpdate edits shop details. Owner only.
func ShopUpdate(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
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

		var body shopPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		shop, err := svc.Update(r.Context(), user, shopID, body.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, shops.ResultFromModel(shop))
	}
}

// ShopDeactivate soft-disables a shop. Owner only.
func ShopDeactivate(svc shops.Service, logg *logger.Logger) http.HandlerFunc {
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

		if err := svc.Deactivate(r.Context(), user, shopID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deactivated"})
	}
}
