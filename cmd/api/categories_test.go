package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"conexaoiris/internal/domain/categories"
)

func TestListCategories(t *testing.T) {
	app := newTestApplication(newTestStorage())
	mux := app.mount()

	req := httptest.NewRequest(http.MethodGet, "/v1/categories", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []categories.Category `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(resp.Data))
	}
}

func TestListCategoriesStorageFailureYieldsEmptyList(t *testing.T) {
	storage := newTestStorage()
	storage.Categories = &stubCategoryStore{err: errors.New("connection refused")}
	app := newTestApplication(storage)
	mux := app.mount()

	req := httptest.NewRequest(http.MethodGet, "/v1/categories", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 despite storage failure, got %d", rec.Code)
	}

	var resp struct {
		Data []categories.Category `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 0 {
		t.Fatalf("expected empty list, got %v", resp.Data)
	}
}
