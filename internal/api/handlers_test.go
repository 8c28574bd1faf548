package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/quickmart/support-bot/internal/core"
	"github.com/quickmart/support-bot/internal/store"
)

func setupRouter() http.Handler {
	dataset := &store.Dataset{
		Customers: []store.Customer{
			{UserID: "u1", Name: "Asha", FavoriteDrink: "Latte"},
		},
		Stores: []store.Store{
			{StoreID: "S1", Name: "MG Road Outlet", Coord: &store.Coordinate{Lat: 12.9716, Lon: 77.5946}, OpenTime: "00:00", CloseTime: "23:59"},
		},
		Inventory: []store.InventoryItem{
			{StoreID: "S1", Product: "Shirt", Size: "M", InStock: true},
		},
		Offers: []store.Offer{
			{OfferID: "1", Description: "10% off on all Lattes today", StoreID: store.WildcardStoreID},
		},
	}
	chatService := core.NewChatService(core.NewSnapshotProvider(core.NewSnapshot(dataset)), core.DefaultTopK, false)
	return NewRouter(NewAPIHandler(chatService))
}

func postChat(t *testing.T, router http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestChatHandlerWithLocation(t *testing.T) {
	router := setupRouter()

	resp := postChat(t, router, ChatRequest{
		UserID:   "u1",
		Message:  "it's so cold today",
		Location: &LocationPayload{Lat: float64Ptr(12.9716), Lon: float64Ptr(77.5946)},
	})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if chatResp.ExchangeID == "" {
		t.Error("expected a non-empty exchange_id")
	}
	if chatResp.UsedStore != "MG Road Outlet" {
		t.Errorf("expected used_store MG Road Outlet, got %q", chatResp.UsedStore)
	}
	if !strings.Contains(chatResp.Reply, "Latte") {
		t.Errorf("expected a Latte suggestion in reply, got %q", chatResp.Reply)
	}
	if chatResp.DebugContext.SelectedStore == nil {
		t.Error("expected a selected store in debug_context")
	}
}

func TestChatHandlerWithoutLocation(t *testing.T) {
	router := setupRouter()

	resp := postChat(t, router, ChatRequest{UserID: "u1", Message: "any offer today"})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if chatResp.UsedStore != "" {
		t.Errorf("expected empty used_store, got %q", chatResp.UsedStore)
	}
	if !strings.Contains(chatResp.Reply, "I couldn't find a nearby store.") {
		t.Errorf("expected no-store paragraph, got %q", chatResp.Reply)
	}
}

func TestChatHandlerPartialLocationIgnored(t *testing.T) {
	router := setupRouter()

	resp := postChat(t, router, ChatRequest{
		UserID:   "u1",
		Message:  "hello",
		Location: &LocationPayload{Lat: float64Ptr(12.9716)}, // lon missing
	})

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var chatResp ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if chatResp.UsedStore != "" {
		t.Errorf("incomplete location must be treated as absent, got used_store %q", chatResp.UsedStore)
	}
}

func TestChatHandlerValidation(t *testing.T) {
	router := setupRouter()

	if resp := postChat(t, router, ChatRequest{Message: "hi"}); resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing user_id, got %d", resp.Code)
	}
	if resp := postChat(t, router, ChatRequest{UserID: "u1"}); resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for missing message, got %d", resp.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{not json"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for malformed JSON, got %d", resp.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected health body %q", resp.Body.String())
	}
}

func TestCORSPreflight(t *testing.T) {
	router := setupRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", resp.Code)
	}
	if resp.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected permissive CORS header")
	}
}

func float64Ptr(v float64) *float64 { return &v }
