package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sbaral/bookpasal-backend/api/middleware"
	cartsvc "github.com/sbaral/bookpasal-backend/internal/cart"
	"github.com/sbaral/bookpasal-backend/pkg/enums"
)

func newCartStore(t *testing.T) *cartsvc.Store {
	t.Helper()
	store, err := cartsvc.NewStore(cartsvc.NewMemoryPersister())
	if err != nil {
		t.Fatalf("cart store: %v", err)
	}
	return store
}

func sessionRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	return req.WithContext(middleware.WithSessionID(req.Context(), "11111111-1111-4111-8111-111111111111"))
}

func decodeCart(t *testing.T, resp *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var envelope struct {
		Data cartResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestCartAddItemAndGet(t *testing.T) {
	store := newCartStore(t)
	add := CartAddItem(store, enums.CurrencyNPR, nil)

	body := `{"book_id":"bk-1","format":"paperback","title":"Seto Dharti","author":"Amar Neupane","unit_price":"450.00","quantity":2}`
	resp := httptest.NewRecorder()
	add.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	state := decodeCart(t, resp)
	if len(state.Items) != 1 || state.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart state: %+v", state)
	}
	if state.Total.StringFixed(2) != "900.00" {
		t.Fatalf("expected total 900.00, got %s", state.Total)
	}
	if !state.RequiresShipping {
		t.Fatal("paperback cart must require shipping")
	}

	get := CartGet(store, nil)
	resp = httptest.NewRecorder()
	get.ServeHTTP(resp, sessionRequest(http.MethodGet, "/api/v1/cart", ""))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if state := decodeCart(t, resp); len(state.Items) != 1 {
		t.Fatalf("expected the line to persist, got %+v", state)
	}
}

func TestCartAddItemInvalidFormat(t *testing.T) {
	add := CartAddItem(newCartStore(t), enums.CurrencyNPR, nil)

	body := `{"book_id":"bk-1","format":"vinyl","title":"x","author":"y","unit_price":"100","quantity":1}`
	resp := httptest.NewRecorder()
	add.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items", body))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestCartUpdateQuantityToZeroRemoves(t *testing.T) {
	store := newCartStore(t)
	add := CartAddItem(store, enums.CurrencyNPR, nil)
	resp := httptest.NewRecorder()
	add.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items",
		`{"book_id":"bk-1","format":"ebook","title":"x","author":"y","unit_price":"250","quantity":1}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("seed add failed: %d", resp.Code)
	}

	update := CartUpdateQuantity(store, nil)
	resp = httptest.NewRecorder()
	update.ServeHTTP(resp, sessionRequest(http.MethodPatch, "/api/v1/cart/items",
		`{"book_id":"bk-1","format":"ebook","quantity":0}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if state := decodeCart(t, resp); len(state.Items) != 0 || !state.Total.IsZero() {
		t.Fatalf("expected empty cart, got %+v", state)
	}
}

func TestCartClear(t *testing.T) {
	store := newCartStore(t)
	add := CartAddItem(store, enums.CurrencyNPR, nil)
	resp := httptest.NewRecorder()
	add.ServeHTTP(resp, sessionRequest(http.MethodPost, "/api/v1/cart/items",
		`{"book_id":"bk-2","format":"hardcover","title":"x","author":"y","unit_price":"999.99","quantity":3}`))
	if resp.Code != http.StatusOK {
		t.Fatalf("seed add failed: %d", resp.Code)
	}

	clear := CartClear(store, nil)
	resp = httptest.NewRecorder()
	clear.ServeHTTP(resp, sessionRequest(http.MethodDelete, "/api/v1/cart", ""))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if state := decodeCart(t, resp); len(state.Items) != 0 {
		t.Fatalf("expected cleared cart, got %+v", state)
	}
}
