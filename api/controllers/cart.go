package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sbaral/bookpasal-backend/api/middleware"
	"github.com/sbaral/bookpasal-backend/api/responses"
	"github.com/sbaral/bookpasal-backend/api/validators"
	cartsvc "github.com/sbaral/bookpasal-backend/internal/cart"
	"github.com/sbaral/bookpasal-backend/pkg/enums"
	pkgerrors "github.com/sbaral/bookpasal-backend/pkg/errors"
	"github.com/sbaral/bookpasal-backend/pkg/logger"
)

type cartResponse struct {
	Items            []cartsvc.LineItem `json:"items"`
	Total            decimal.Decimal    `json:"total"`
	RequiresShipping bool               `json:"requires_shipping"`
}

func newCartResponse(state cartsvc.State) cartResponse {
	items := state.Items
	if items == nil {
		items = []cartsvc.LineItem{}
	}
	return cartResponse{
		Items:            items,
		Total:            state.Total,
		RequiresShipping: state.RequiresShipping(),
	}
}

// CartGet returns the current session cart.
func CartGet(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		state, err := store.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(state))
	}
}

type addItemRequest struct {
	BookID     string `json:"book_id" validate:"required"`
	Format     string `json:"format" validate:"required"`
	Title      string `json:"title" validate:"required"`
	Author     string `json:"author" validate:"required"`
	CoverImage string `json:"cover_image"`
	UnitPrice  string `json:"unit_price" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

// CartAddItem merges a line into the session cart.
func CartAddItem(store *cartsvc.Store, currency enums.Currency, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		format, err := enums.ParseBookFormat(payload.Format)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid book format"))
			return
		}

		price, err := decimal.NewFromString(payload.UnitPrice)
		if err != nil || price.IsNegative() {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid unit price"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		state, err := store.Dispatch(r.Context(), sessionID, cartsvc.AddItem{
			Item: cartsvc.LineItem{
				BookID:     payload.BookID,
				Format:     format,
				Title:      payload.Title,
				Author:     payload.Author,
				CoverImage: payload.CoverImage,
				UnitPrice:  price,
				Currency:   currency,
				Quantity:   payload.Quantity,
			},
			Quantity: payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(state))
	}
}

type updateQuantityRequest struct {
	BookID   string `json:"book_id" validate:"required"`
	Format   string `json:"format" validate:"required"`
	Quantity int    `json:"quantity" validate:"min=0"`
}

// CartUpdateQuantity replaces a line's quantity. Zero removes the line.
func CartUpdateQuantity(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		format, err := enums.ParseBookFormat(payload.Format)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid book format"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		state, err := store.Dispatch(r.Context(), sessionID, cartsvc.UpdateQuantity{
			Key:      cartsvc.ItemKey{BookID: payload.BookID, Format: format},
			Quantity: payload.Quantity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(state))
	}
}

type removeItemRequest struct {
	BookID string `json:"book_id" validate:"required"`
	Format string `json:"format" validate:"required"`
}

// CartRemoveItem drops a line from the session cart.
func CartRemoveItem(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload removeItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		format, err := enums.ParseBookFormat(payload.Format)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid book format"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		state, err := store.Dispatch(r.Context(), sessionID, cartsvc.RemoveItem{
			Key: cartsvc.ItemKey{BookID: payload.BookID, Format: format},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(state))
	}
}

// CartClear empties the session cart.
func CartClear(store *cartsvc.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		state, err := store.Dispatch(r.Context(), sessionID, cartsvc.Clear{})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(state))
	}
}
