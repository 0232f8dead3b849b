package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sbaral/bookpasal-backend/api/responses"
	"github.com/sbaral/bookpasal-backend/api/validators"
	ordersvc "github.com/sbaral/bookpasal-backend/internal/orders"
	"github.com/sbaral/bookpasal-backend/pkg/db/models"
	"github.com/sbaral/bookpasal-backend/pkg/enums"
	pkgerrors "github.com/sbaral/bookpasal-backend/pkg/errors"
	"github.com/sbaral/bookpasal-backend/pkg/logger"
	"github.com/sbaral/bookpasal-backend/pkg/types"
)

type orderItemResponse struct {
	BookID    string          `json:"book_id"`
	Format    string          `json:"format"`
	Title     string          `json:"title"`
	Author    string          `json:"author"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

type orderResponse struct {
	OrderNumber      string              `json:"order_number"`
	Status           string              `json:"status"`
	Email            string              `json:"email"`
	CustomerName     string              `json:"customer_name"`
	Phone            string              `json:"phone"`
	ShippingAddress  *types.Address      `json:"shipping_address,omitempty"`
	RequiresShipping bool                `json:"requires_shipping"`
	PaymentMethod    string              `json:"payment_method"`
	TransactionRef   string              `json:"transaction_ref"`
	Currency         string              `json:"currency"`
	Subtotal         decimal.Decimal     `json:"subtotal"`
	ShippingCost     decimal.Decimal     `json:"shipping_cost"`
	GrandTotal       decimal.Decimal     `json:"grand_total"`
	Notes            *string             `json:"notes,omitempty"`
	Items            []orderItemResponse `json:"items"`
	CreatedAt        time.Time           `json:"created_at"`
}

func newOrderResponse(order *models.Order) orderResponse {
	items := make([]orderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, orderItemResponse{
			BookID:    item.BookID,
			Format:    string(item.Format),
			Title:     item.Title,
			Author:    item.Author,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			LineTotal: item.LineTotal,
		})
	}
	return orderResponse{
		OrderNumber:      order.OrderNumber,
		Status:           string(order.Status),
		Email:            order.Email,
		CustomerName:     order.CustomerName(),
		Phone:            order.Phone,
		ShippingAddress:  order.ShippingAddress,
		RequiresShipping: order.RequiresShipping,
		PaymentMethod:    string(order.PaymentMethod),
		TransactionRef:   order.TransactionRef,
		Currency:         string(order.Currency),
		Subtotal:         order.Subtotal,
		ShippingCost:     order.ShippingCost,
		GrandTotal:       order.GrandTotal,
		Notes:            order.Notes,
		Items:            items,
		CreatedAt:        order.CreatedAt,
	}
}

// OrderLookup serves the confirmation page data by public order number.
func OrderLookup(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderNumber := chi.URLParam(r, "orderNumber")
		order, err := svc.GetByNumber(r.Context(), orderNumber)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}

type updateStatusRequest struct {
	Status         string  `json:"status" validate:"required"`
	PreviousStatus string  `json:"previous_status" validate:"required"`
	Notes          *string `json:"notes"`
}

// AdminUpdateOrderStatus applies a guarded status transition.
func AdminUpdateOrderStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload updateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		next, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}
		previous, err := enums.ParseOrderStatus(payload.PreviousStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid previous status"))
			return
		}

		orderNumber := chi.URLParam(r, "orderNumber")
		order, err := svc.UpdateStatus(r.Context(), orderNumber, next, previous, payload.Notes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newOrderResponse(order))
	}
}
