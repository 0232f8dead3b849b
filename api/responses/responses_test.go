package responses

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/sbaral/bookpasal-backend/pkg/errors"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	resp := httptest.NewRecorder()
	WriteSuccess(resp, map[string]string{"status": "live"})

	if resp.Code != 200 {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var envelope struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Data["status"] != "live" {
		t.Fatalf("unexpected payload: %v", envelope.Data)
	}
}

func TestWriteErrorUsesCodeMetadata(t *testing.T) {
	resp := httptest.NewRecorder()
	err := pkgerrors.New(pkgerrors.CodeValidation, "checkout fields incomplete").
		WithDetails([]map[string]string{{"field": "email", "reason": "is required"}})
	WriteError(context.Background(), nil, resp, err)

	if resp.Code != 400 {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
			Details any    `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Error.Code != "VALIDATION_ERROR" {
		t.Fatalf("unexpected code %q", envelope.Error.Code)
	}
	if envelope.Error.Message != "checkout fields incomplete" {
		t.Fatalf("unexpected message %q", envelope.Error.Message)
	}
	if envelope.Error.Details == nil {
		t.Fatal("validation details must pass through")
	}
}

func TestWriteErrorHidesInternalDetail(t *testing.T) {
	resp := httptest.NewRecorder()
	WriteError(context.Background(), nil, resp, fmt.Errorf("pq: connection refused"))

	if resp.Code != 500 {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if envelope.Error.Message != "internal server error" {
		t.Fatalf("internal errors must not leak, got %q", envelope.Error.Message)
	}
}
