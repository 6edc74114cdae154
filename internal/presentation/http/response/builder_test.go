package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/KevynGreenn/Izi-Hotel-Compras/pkg/errorbank"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBuildSuccess(t *testing.T) {
	ctx, rec := newContext()

	err := New(ctx).
		WithStatus(http.StatusCreated).
		WithMessage("Requisição criada com sucesso!").
		WithData(map[string]string{"token": "abc"}).
		Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var payload struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Data    map[string]string `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !payload.Success || payload.Message == "" || payload.Data["token"] != "abc" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBuildSuccessOmitsEmptyMessage(t *testing.T) {
	ctx, rec := newContext()

	if err := New(ctx).WithData("ok").Build(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := payload["message"]; ok {
		t.Fatal("empty message must be omitted")
	}
}

func TestBuildError(t *testing.T) {
	ctx, rec := newContext()

	err := New(ctx).WithError(errorbank.Conflict("requisição já foi decidida")).Build()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var payload struct {
		Success bool `json:"success"`
		Error   struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if payload.Success {
		t.Fatal("error responses must not be marked successful")
	}
	if payload.Error.Kind != "conflict" || payload.Error.Message != "requisição já foi decidida" {
		t.Fatalf("unexpected error body: %+v", payload.Error)
	}
}

func TestBuildErrorWrapsUnknown(t *testing.T) {
	ctx, rec := newContext()

	if err := New(ctx).WithError(echo.ErrForbidden).Build(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unknown errors map to 500, got %d", rec.Code)
	}
}
