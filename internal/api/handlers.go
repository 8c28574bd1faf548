package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/quickmart/support-bot/internal/core"
	"github.com/quickmart/support-bot/internal/store"
)

type APIHandler struct {
	chatService *core.ChatService
}

func NewAPIHandler(cs *core.ChatService) *APIHandler {
	return &APIHandler{chatService: cs}
}

type LocationPayload struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type ChatRequest struct {
	UserID   string           `json:"user_id"`
	Message  string           `json:"message"`
	Location *LocationPayload `json:"location,omitempty"`
}

type ChatResponse struct {
	ExchangeID   string            `json:"exchange_id"`
	Reply        string            `json:"reply"`
	UsedStore    string            `json:"used_store,omitempty"`
	DebugContext core.DebugContext `json:"debug_context"`
}

func (h *APIHandler) ChatHandler(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.UserID == "" || req.Message == "" {
		http.Error(w, "user_id and message are required", http.StatusBadRequest)
		return
	}

	// A location missing either coordinate is treated as absent.
	var coord *store.Coordinate
	if req.Location != nil && req.Location.Lat != nil && req.Location.Lon != nil {
		coord = &store.Coordinate{Lat: *req.Location.Lat, Lon: *req.Location.Lon}
	}

	result := h.chatService.Chat(req.UserID, req.Message, coord)

	resp := ChatResponse{
		ExchangeID:   result.ExchangeID,
		Reply:        result.Reply,
		UsedStore:    result.UsedStore,
		DebugContext: result.Debug,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding chat response for user %s: %v", req.UserID, err)
	}
}
