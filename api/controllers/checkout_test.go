package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/classmart/classmart-backend/api/middleware"
	checkoutsvc "github.com/classmart/classmart-backend/internal/checkout"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
)

type stubCheckoutService struct {
	result   checkoutsvc.CheckoutDTO
	err      error
	gotInput checkoutsvc.CheckoutInput
	called   bool
}

func (s *stubCheckoutService) Checkout(ctx context.Context, input checkoutsvc.CheckoutInput) (checkoutsvc.CheckoutDTO, error) {
	s.called = true
	s.gotInput = input
	return s.result, s.err
}

func checkoutRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCheckoutSuccess(t *testing.T) {
	stub := &stubCheckoutService{}
	handler := Checkout(stub, nil)

	req := checkoutRequest(`{"usuario_id":7,"cliente":"Ana","direccion":"Calle 1","metodo_pago":"tarjeta"}`)
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if !stub.called {
		t.Fatal("expected the service to run")
	}
	if stub.gotInput.UsuarioID != 7 {
		t.Fatalf("unexpected usuario_id %d", stub.gotInput.UsuarioID)
	}
}

func TestCheckoutRequiresAuthContext(t *testing.T) {
	stub := &stubCheckoutService{}
	handler := Checkout(stub, nil)

	req := checkoutRequest(`{"usuario_id":7,"cliente":"Ana","direccion":"Calle 1","metodo_pago":"tarjeta"}`)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if stub.called {
		t.Fatal("service must not run without a user context")
	}
}

func TestCheckoutForbidsCrossUser(t *testing.T) {
	stub := &stubCheckoutService{}
	handler := Checkout(stub, nil)

	req := checkoutRequest(`{"usuario_id":9,"cliente":"Ana","direccion":"Calle 1","metodo_pago":"tarjeta"}`)
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", resp.Code)
	}
	if stub.called {
		t.Fatal("service must not run for another user's cart")
	}
}

func TestCheckoutAllowsStaffOnBehalf(t *testing.T) {
	stub := &stubCheckoutService{}
	handler := Checkout(stub, nil)

	req := checkoutRequest(`{"usuario_id":9,"cliente":"Ana","direccion":"Calle 1","metodo_pago":"tarjeta"}`)
	ctx := middleware.WithUserID(req.Context(), 7)
	ctx = middleware.WithStaff(ctx, true)
	req = req.WithContext(ctx)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	if stub.gotInput.UsuarioID != 9 {
		t.Fatalf("expected staff to buy for user 9, got %d", stub.gotInput.UsuarioID)
	}
}

func TestCheckoutSurfacesStageConflict(t *testing.T) {
	stub := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock for product")}
	handler := Checkout(stub, nil)

	req := checkoutRequest(`{"usuario_id":7,"cliente":"Ana","direccion":"Calle 1","metodo_pago":"tarjeta"}`)
	req = req.WithContext(middleware.WithUserID(req.Context(), 7))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}

	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Error.Code != string(pkgerrors.CodeConflict) {
		t.Fatalf("unexpected error code %q", envelope.Error.Code)
	}
}
