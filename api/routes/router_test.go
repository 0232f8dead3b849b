package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	cartsvc "github.com/sbaral/bookpasal-backend/internal/cart"
	checkoutsvc "github.com/sbaral/bookpasal-backend/internal/checkout"
	"github.com/sbaral/bookpasal-backend/pkg/config"
	"github.com/sbaral/bookpasal-backend/pkg/db/models"
	"github.com/sbaral/bookpasal-backend/pkg/enums"
	pkgerrors "github.com/sbaral/bookpasal-backend/pkg/errors"
)

type stubOrders struct{}

func (stubOrders) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	return order, nil
}

func (stubOrders) GetByNumber(context.Context, string) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (stubOrders) UpdateStatus(context.Context, string, enums.OrderStatus, enums.OrderStatus, *string) (*models.Order, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

type stubNotifier struct{}

func (stubNotifier) OnOrderCreated(context.Context, *models.Order) error { return nil }

func testRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		App:       config.AppConfig{Env: config.AppEnvDev, Port: "8080"},
		Store:     config.StoreConfig{Name: "Book Pasal", Currency: "NPR"},
		Cart:      config.CartConfig{SessionTTL: time.Hour},
		AdminAuth: config.AdminAuthConfig{JWTSecret: "secret", Issuer: "bookpasal"},
	}

	cartStore, err := cartsvc.NewStore(cartsvc.NewMemoryPersister())
	if err != nil {
		t.Fatalf("cart store: %v", err)
	}

	checkoutService, err := checkoutsvc.NewService(
		cartStore,
		stubOrders{},
		stubNotifier{},
		checkoutsvc.FlatRatePolicy{Rate: decimal.RequireFromString("150")},
		enums.CurrencyNPR,
		nil,
	)
	if err != nil {
		t.Fatalf("checkout service: %v", err)
	}

	return NewRouter(cfg, nil, nil, nil, cartStore, checkoutService, stubOrders{}, prometheus.NewRegistry())
}

func TestRouterHealthLive(t *testing.T) {
	router := testRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health/live", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterMetricsExposed(t *testing.T) {
	router := testRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestRouterCartIssuesSessionCookie(t *testing.T) {
	router := testRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	cookies := resp.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "bp_session" {
		t.Fatalf("expected a bp_session cookie, got %v", cookies)
	}
}

func TestRouterAdminRouteRequiresToken(t *testing.T) {
	router := testRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPatch, "/api/admin/v1/orders/BP1/status", nil))

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	router := testRouter(t)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
