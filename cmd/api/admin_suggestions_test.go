package main

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"conexaoiris/internal/domain/events"
)

func basicAuthHeader(user, pass string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(user+":"+pass))
}

func seedPendingEvent(t *testing.T, stub *stubEventStore) *events.EventSuggestion {
	t.Helper()
	ev, err := stub.Create(t.Context(), &events.CreateEventInput{
		Title:         "Picnic no Parque",
		CategoryID:    1,
		Date:          time.Now().AddDate(0, 0, 14),
		Location:      "Parque da Cidade",
		Organizer:     "Coletivo Íris",
		LgbtqFriendly: true,
	})
	if err != nil {
		t.Fatalf("seed event: %v", err)
	}
	return ev
}

func TestAdminRoutesRequireBasicAuth(t *testing.T) {
	app := newTestApplication(newTestStorage())
	mux := app.mount()

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/event-suggestions", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without credentials, got %d", rec.Code)
	}

	req2 := httptest.NewRequest(http.MethodGet, "/v1/admin/event-suggestions", nil)
	req2.Header.Set("Authorization", basicAuthHeader("admin", "wrong"))
	rec2 := httptest.NewRecorder()
	mux.ServeHTTP(rec2, req2)
	if rec2.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad credentials, got %d", rec2.Code)
	}
}

func TestApproveMakesEventPublic(t *testing.T) {
	storage := newTestStorage()
	app := newTestApplication(storage)
	mux := app.mount()

	ev := seedPendingEvent(t, storage.Events.(*stubEventStore))

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/event-suggestions/1/approve", nil)
	req.Header.Set("Authorization", basicAuthHeader("admin", "secret"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Data events.EventSuggestion `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Status != events.StatusApproved {
		t.Fatalf("expected APPROVED, got %s", resp.Data.Status)
	}

	listReq := httptest.NewRequest(http.MethodGet, "/v1/events", nil)
	listRec := httptest.NewRecorder()
	mux.ServeHTTP(listRec, listReq)

	var listResp struct {
		Data []events.EventSuggestion `json:"data"`
	}
	if err := json.Unmarshal(listRec.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(listResp.Data) != 1 || listResp.Data[0].ID != ev.ID {
		t.Fatalf("approved event missing from public list: %v", listResp.Data)
	}
}

func TestModerationIsOneShot(t *testing.T) {
	storage := newTestStorage()
	app := newTestApplication(storage)
	mux := app.mount()

	seedPendingEvent(t, storage.Events.(*stubEventStore))

	approve := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/v1/admin/event-suggestions/1/approve", nil)
		req.Header.Set("Authorization", basicAuthHeader("admin", "secret"))
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, req)
		return rec
	}

	if rec := approve(); rec.Code != http.StatusOK {
		t.Fatalf("first approve: expected 200, got %d", rec.Code)
	}
	if rec := approve(); rec.Code != http.StatusBadRequest {
		t.Fatalf("second approve: expected 400, got %d", rec.Code)
	}

	// reject after approve is equally blocked
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/event-suggestions/1/reject", nil)
	req.Header.Set("Authorization", basicAuthHeader("admin", "secret"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("reject after approve: expected 400, got %d", rec.Code)
	}
}

func TestModerationUnknownSuggestion(t *testing.T) {
	app := newTestApplication(newTestStorage())
	mux := app.mount()

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/event-suggestions/42/approve", nil)
	req.Header.Set("Authorization", basicAuthHeader("admin", "secret"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminListFiltersByStatus(t *testing.T) {
	storage := newTestStorage()
	app := newTestApplication(storage)
	mux := app.mount()

	stub := storage.Events.(*stubEventStore)
	seedPendingEvent(t, stub)
	second := seedPendingEvent(t, stub)
	if _, err := stub.UpdateStatus(t.Context(), second.ID, events.StatusRejected); err != nil {
		t.Fatalf("reject seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/event-suggestions?status=pending", nil)
	req.Header.Set("Authorization", basicAuthHeader("admin", "secret"))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Data []events.EventSuggestion `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 1 || resp.Data[0].Status != events.StatusPending {
		t.Fatalf("status filter failed: %v", resp.Data)
	}

	bad := httptest.NewRequest(http.MethodGet, "/v1/admin/event-suggestions?status=bogus", nil)
	bad.Header.Set("Authorization", basicAuthHeader("admin", "secret"))
	badRec := httptest.NewRecorder()
	mux.ServeHTTP(badRec, bad)
	if badRec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bogus status, got %d", badRec.Code)
	}
}
