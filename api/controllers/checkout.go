package controllers

import (
	"net/http"

	"github.com/sbaral/bookpasal-backend/api/middleware"
	"github.com/sbaral/bookpasal-backend/api/responses"
	"github.com/sbaral/bookpasal-backend/api/validators"
	checkoutsvc "github.com/sbaral/bookpasal-backend/internal/checkout"
	"github.com/sbaral/bookpasal-backend/pkg/enums"
	"github.com/sbaral/bookpasal-backend/pkg/logger"
)

// checkoutRequest carries the buyer-entered fields. Field-level requirements
// depend on whether the cart ships, so they are enforced in the checkout
// service rather than with struct tags.
type checkoutRequest struct {
	Email         string `json:"email"`
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone"`
	Province      string `json:"province"`
	District      string `json:"district"`
	Street        string `json:"street"`
	PaymentMethod string `json:"payment_method"`
	TransactionID string `json:"transaction_id"`
}

type checkoutResponse struct {
	Order             orderResponse `json:"order"`
	ConfirmationQuery string        `json:"confirmation_query"`
}

// CheckoutSubmit turns the session cart into an order.
func CheckoutSubmit(svc *checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		order, err := svc.Submit(r.Context(), sessionID, checkoutsvc.Fields{
			Email:         payload.Email,
			FirstName:     payload.FirstName,
			LastName:      payload.LastName,
			Phone:         payload.Phone,
			Province:      payload.Province,
			District:      payload.District,
			Street:        payload.Street,
			PaymentMethod: enums.PaymentMethod(payload.PaymentMethod),
			TransactionID: payload.TransactionID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, checkoutResponse{
			Order:             newOrderResponse(order),
			ConfirmationQuery: checkoutsvc.ConfirmationParams(order).Encode(),
		})
	}
}
