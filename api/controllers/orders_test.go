package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/sbaral/bookpasal-backend/pkg/db/models"
	"github.com/sbaral/bookpasal-backend/pkg/enums"
	pkgerrors "github.com/sbaral/bookpasal-backend/pkg/errors"
)

type stubOrdersService struct {
	order *models.Order
	err   error

	updatedNext     enums.OrderStatus
	updatedPrevious enums.OrderStatus
}

func (s *stubOrdersService) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	return order, nil
}

func (s *stubOrdersService) GetByNumber(context.Context, string) (*models.Order, error) {
	return s.order, s.err
}

func (s *stubOrdersService) UpdateStatus(_ context.Context, _ string, next, previous enums.OrderStatus, _ *string) (*models.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.updatedNext = next
	s.updatedPrevious = previous
	s.order.Status = next
	return s.order, nil
}

func sampleOrder() *models.Order {
	return &models.Order{
		OrderNumber: "BP17550000000004GH78I",
		Email:       "sita@example.com",
		FirstName:   "Sita",
		LastName:    "Sharma",
		Status:      enums.OrderStatusPending,
		Currency:    enums.CurrencyNPR,
		GrandTotal:  decimal.RequireFromString("650.00"),
	}
}

func orderRequest(method, target, body, orderNumber string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("orderNumber", orderNumber)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

func TestOrderLookupSuccess(t *testing.T) {
	order := sampleOrder()
	handler := OrderLookup(&stubOrdersService{order: order}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, orderRequest(http.MethodGet, "/api/v1/orders/"+order.OrderNumber, "", order.OrderNumber))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data orderResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.OrderNumber != order.OrderNumber {
		t.Fatalf("unexpected order number %q", envelope.Data.OrderNumber)
	}
	if envelope.Data.CustomerName != "Sita Sharma" {
		t.Fatalf("unexpected customer name %q", envelope.Data.CustomerName)
	}
}

func TestOrderLookupNotFound(t *testing.T) {
	handler := OrderLookup(&stubOrdersService{err: pkgerrors.New(pkgerrors.CodeNotFound, "order not found")}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, orderRequest(http.MethodGet, "/api/v1/orders/BP-missing", "", "BP-missing"))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	svc := &stubOrdersService{order: sampleOrder()}
	handler := AdminUpdateOrderStatus(svc, nil)

	body := `{"status":"shipped","previous_status":"pending","notes":"sent via Pathao"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, orderRequest(http.MethodPatch, "/api/admin/v1/orders/x/status", body, "BP17550000000004GH78I"))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.updatedNext != enums.OrderStatusShipped || svc.updatedPrevious != enums.OrderStatusPending {
		t.Fatalf("unexpected transition %s -> %s", svc.updatedPrevious, svc.updatedNext)
	}
}

func TestAdminUpdateOrderStatusRejectsUnknownStatus(t *testing.T) {
	handler := AdminUpdateOrderStatus(&stubOrdersService{order: sampleOrder()}, nil)

	body := `{"status":"archived","previous_status":"pending"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, orderRequest(http.MethodPatch, "/api/admin/v1/orders/x/status", body, "BP17550000000004GH78I"))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAdminUpdateOrderStatusStateConflict(t *testing.T) {
	svc := &stubOrdersService{
		order: sampleOrder(),
		err:   pkgerrors.New(pkgerrors.CodeStateConflict, "order status changed since last read"),
	}
	handler := AdminUpdateOrderStatus(svc, nil)

	body := `{"status":"shipped","previous_status":"pending"}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, orderRequest(http.MethodPatch, "/api/admin/v1/orders/x/status", body, "BP17550000000004GH78I"))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}
