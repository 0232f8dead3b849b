package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sbaral/bookpasal-backend/pkg/config"
)

func adminToken(t *testing.T, secret, issuer string, expiresIn time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub": "admin@bookpasal.test",
		"iss": issuer,
		"exp": time.Now().Add(expiresIn).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func adminHandler(cfg config.AdminAuthConfig) (http.Handler, *bool) {
	called := false
	h := AdminAuth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	return h, &called
}

func TestAdminAuthAcceptsValidToken(t *testing.T) {
	cfg := config.AdminAuthConfig{JWTSecret: "secret", Issuer: "bookpasal"}
	handler, called := adminHandler(cfg)

	req := httptest.NewRequest(http.MethodPatch, "/api/admin/v1/orders/x/status", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "secret", "bookpasal", time.Hour))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if !*called {
		t.Fatalf("handler not reached, status %d: %s", resp.Code, resp.Body.String())
	}
}

func TestAdminAuthRejectsMissingToken(t *testing.T) {
	handler, called := adminHandler(config.AdminAuthConfig{JWTSecret: "secret", Issuer: "bookpasal"})

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, httptest.NewRequest(http.MethodPatch, "/x", nil))

	if *called {
		t.Fatal("handler must not run without credentials")
	}
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAdminAuthRejectsWrongSecret(t *testing.T) {
	handler, called := adminHandler(config.AdminAuthConfig{JWTSecret: "secret", Issuer: "bookpasal"})

	req := httptest.NewRequest(http.MethodPatch, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "other-secret", "bookpasal", time.Hour))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if *called || resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d (called=%v)", resp.Code, *called)
	}
}

func TestAdminAuthRejectsExpiredToken(t *testing.T) {
	handler, called := adminHandler(config.AdminAuthConfig{JWTSecret: "secret", Issuer: "bookpasal"})

	req := httptest.NewRequest(http.MethodPatch, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "secret", "bookpasal", -time.Minute))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if *called || resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d (called=%v)", resp.Code, *called)
	}
}

func TestAdminAuthRejectsWrongIssuer(t *testing.T) {
	handler, called := adminHandler(config.AdminAuthConfig{JWTSecret: "secret", Issuer: "bookpasal"})

	req := httptest.NewRequest(http.MethodPatch, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t, "secret", "someone-else", time.Hour))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if *called || resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d (called=%v)", resp.Code, *called)
	}
}
