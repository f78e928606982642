package gateway

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mcdev12/franchise/go/internal/events"
	"github.com/rs/zerolog/log"
)

// Handler serves the WebSocket transaction feed over HTTP
type Handler struct {
	feed *Feed
}

// NewHandler creates a feed HTTP handler
func NewHandler(feed *Feed) *Handler {
	return &Handler{feed: feed}
}

// HandleFeedConnection upgrades a client onto the transaction feed
func (h *Handler) HandleFeedConnection(w http.ResponseWriter, r *http.Request) {
	if err := h.feed.Upgrade(w, r); err != nil {
		log.Error().Err(err).Msg("failed to upgrade feed connection")
		http.Error(w, "failed to upgrade connection", http.StatusInternalServerError)
		return
	}
}

// HandleFeedStats reports live connection counts
func (h *Handler) HandleFeedStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"connections":` + strconv.Itoa(h.feed.ConnectionCount()) + `}`))
}

// RegisterRoutes registers feed routes with an HTTP mux
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/ws/transactions", h.HandleFeedConnection)
	mux.HandleFunc("/ws/stats", h.HandleFeedStats)
}

func encodeEvent(event events.TransactionEvent) ([]byte, error) {
	return json.Marshal(event)
}
