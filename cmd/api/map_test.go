package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"conexaoiris/internal/domain/locations"
	"conexaoiris/internal/geo"
)

func seedMapLocation(t *testing.T, stub *stubLocationStore, name, rating string, owned bool, lat, lng float64) {
	t.Helper()
	_, err := stub.Create(t.Context(), &locations.CreateLocationInput{
		Name:         name,
		CategoryID:   1,
		Address:      "Rua X",
		SafetyRating: rating,
		LgbtqOwned:   owned,
		Latitude:     &lat,
		Longitude:    &lng,
	})
	if err != nil {
		t.Fatalf("seed location: %v", err)
	}
}

func TestMapMarkersStyles(t *testing.T) {
	storage := newTestStorage()
	app := newTestApplication(storage)
	mux := app.mount()

	stub := storage.Locations.(*stubLocationStore)
	seedMapLocation(t, stub, "Bar Seguro", "safe", true, -23.55, -46.63)
	seedMapLocation(t, stub, "Praça Neutra", "neutral", false, -23.56, -46.64)
	seedMapLocation(t, stub, "Esquina Ruim", "unsafe", false, -23.57, -46.65)

	// a row without coordinates must not become a marker
	if _, err := stub.Create(t.Context(), &locations.CreateLocationInput{
		Name: "Sem Endereço", CategoryID: 1, Address: "?", SafetyRating: "safe",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/map/markers", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data MapResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if len(resp.Data.Markers) != 3 {
		t.Fatalf("expected 3 markers, got %d", len(resp.Data.Markers))
	}

	byName := map[string]MapMarker{}
	for _, m := range resp.Data.Markers {
		byName[m.Name] = m
	}

	if got := byName["Bar Seguro"].Style; got.Color != geo.ColorSafe || got.Outline != geo.OutlineOwned {
		t.Fatalf("safe owned style wrong: %+v", got)
	}
	if got := byName["Praça Neutra"].Style; got.Color != geo.ColorNeutral || got.Outline != geo.OutlineDefault {
		t.Fatalf("neutral style wrong: %+v", got)
	}
	if got := byName["Esquina Ruim"].Style; got.Color != geo.ColorUnsafe {
		t.Fatalf("unsafe style wrong: %+v", got)
	}

	// no fix supplied: São Paulo default, no recenter
	if resp.Data.Center != geo.DefaultCenter {
		t.Fatalf("expected default center, got %+v", resp.Data.Center)
	}
	if resp.Data.Recenter {
		t.Fatal("recenter must be false without a fix")
	}
}

func TestMapRecenterDecision(t *testing.T) {
	app := newTestApplication(newTestStorage())
	mux := app.mount()

	get := func(query string) MapResponse {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/v1/map/markers"+query, nil)
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var resp struct {
			Data MapResponse `json:"data"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		return resp.Data
	}

	// first fix always recenters
	first := get("?lat=-23.5505&lng=-46.6333")
	if !first.Recenter {
		t.Fatal("first fix should recenter")
	}

	// ~30m north of previous: inside the threshold, stay put
	lat30 := -23.5505 + 30.0/111320.0
	small := get(fmt.Sprintf("?lat=%f&lng=-46.6333&prev_lat=-23.5505&prev_lng=-46.6333", lat30))
	if small.Recenter {
		t.Fatal("30m move must not recenter")
	}

	// ~80m north: beyond the threshold
	lat80 := -23.5505 + 80.0/111320.0
	big := get(fmt.Sprintf("?lat=%v&lng=-46.6333&prev_lat=-23.5505&prev_lng=-46.6333", lat80))
	if !big.Recenter {
		t.Fatal("80m move must recenter")
	}
	if big.Center.Lat != lat80 {
		t.Fatalf("center should follow the current fix, got %+v", big.Center)
	}
}

func TestMapMarkersCategoryFilter(t *testing.T) {
	storage := newTestStorage()
	app := newTestApplication(storage)
	mux := app.mount()

	stub := storage.Locations.(*stubLocationStore)
	seedMapLocation(t, stub, "Festa Fixa", "safe", false, -23.55, -46.63)

	lat, lng := -23.56, -46.64
	if _, err := stub.Create(t.Context(), &locations.CreateLocationInput{
		Name: "Oficina", CategoryID: 2, Address: "Rua Y", SafetyRating: "neutral",
		Latitude: &lat, Longitude: &lng,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/map/markers?category=workshop", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	var resp struct {
		Data MapResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data.Markers) != 1 || resp.Data.Markers[0].Name != "Oficina" {
		t.Fatalf("category filter failed: %v", resp.Data.Markers)
	}
}
