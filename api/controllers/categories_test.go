package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	categorysvc "github.com/classmart/classmart-backend/internal/categories"
	pkgerrors "github.com/classmart/classmart-backend/pkg/errors"
	"github.com/go-chi/chi/v5"
)

type stubCategoryService struct {
	records []categorysvc.CategoryDTO
	record  categorysvc.CategoryDTO
	err     error
	gotID   int64
}

func (s *stubCategoryService) Create(ctx context.Context, input categorysvc.CreateCategoryInput) (categorysvc.CategoryDTO, error) {
	return s.record, s.err
}

func (s *stubCategoryService) Get(ctx context.Context, id int64) (categorysvc.CategoryDTO, error) {
	s.gotID = id
	return s.record, s.err
}

func (s *stubCategoryService) List(ctx context.Context) ([]categorysvc.CategoryDTO, error) {
	return s.records, s.err
}

func (s *stubCategoryService) Update(ctx context.Context, id int64, input categorysvc.UpdateCategoryInput) (categorysvc.CategoryDTO, error) {
	s.gotID = id
	return s.record, s.err
}

func (s *stubCategoryService) Delete(ctx context.Context, id int64) error {
	s.gotID = id
	return s.err
}

func withPathID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestListCategoriesSuccess(t *testing.T) {
	stub := &stubCategoryService{records: []categorysvc.CategoryDTO{{ID: 1, Nombre: "Hogar"}}}
	handler := ListCategories(stub, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/categorias/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var envelope struct {
		Data []categorysvc.CategoryDTO `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].Nombre != "Hogar" {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestGetCategoryParsesPathID(t *testing.T) {
	stub := &stubCategoryService{record: categorysvc.CategoryDTO{ID: 5, Nombre: "Libros"}}
	handler := GetCategory(stub, nil)

	req := withPathID(httptest.NewRequest(http.MethodGet, "/api/categorias/5/", nil), "5")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if stub.gotID != 5 {
		t.Fatalf("expected id 5 got %d", stub.gotID)
	}
}

func TestGetCategoryRejectsBadID(t *testing.T) {
	handler := GetCategory(&stubCategoryService{}, nil)

	req := withPathID(httptest.NewRequest(http.MethodGet, "/api/categorias/abc/", nil), "abc")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetCategoryNotFound(t *testing.T) {
	stub := &stubCategoryService{err: pkgerrors.New(pkgerrors.CodeNotFound, "category not found")}
	handler := GetCategory(stub, nil)

	req := withPathID(httptest.NewRequest(http.MethodGet, "/api/categorias/9/", nil), "9")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestCreateCategorySuccess(t *testing.T) {
	stub := &stubCategoryService{record: categorysvc.CategoryDTO{ID: 2, Nombre: "Deportes"}}
	handler := CreateCategory(stub, nil)

	body := strings.NewReader(`{"nombre":"Deportes"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/categorias/", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
}

func TestCreateCategoryRejectsInvalidBody(t *testing.T) {
	handler := CreateCategory(&stubCategoryService{}, nil)

	body := strings.NewReader(`{"nombre":""}`)
	req := httptest.NewRequest(http.MethodPost, "/api/categorias/", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestNilServiceReportsInternal(t *testing.T) {
	handler := ListCategories(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/categorias/", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
}
