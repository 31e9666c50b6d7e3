package handlers

import (
	"net/http"
	"strconv"

	"github.com/example/animeswipe/internal/platform/api"
	"github.com/example/animeswipe/internal/platform/auth"
	"github.com/example/animeswipe/services/swipe/internal/store"
)

const (
	defaultDeckSize = 10
	maxDeckSize     = 25
)

type deckResponse struct {
	Cards []store.DeckCard `json:"cards"`
}

// GetDeck handles GET /v1/deck
func GetDeck(ds store.DeckStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", "")
			return
		}

		limit := defaultDeckSize
		if l := r.URL.Query().Get("limit"); l != "" {
			parsed, err := strconv.Atoi(l)
			if err != nil || parsed < 1 {
				api.BadRequest(w, "INVALID_LIMIT", "limit must be a positive integer", "", nil)
				return
			}
			limit = parsed
			if limit > maxDeckSize {
				limit = maxDeckSize
			}
		}

		cards, err := ds.NextCards(r.Context(), userID, limit)
		if err != nil {
			api.Internal(w, "")
			return
		}
		if cards == nil {
			cards = []store.DeckCard{}
		}
		api.WriteJSON(w, http.StatusOK, deckResponse{Cards: cards})
	}
}
