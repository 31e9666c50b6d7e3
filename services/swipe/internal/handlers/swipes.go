package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/example/animeswipe/internal/platform/analytics"
	"github.com/example/animeswipe/internal/platform/api"
	"github.com/example/animeswipe/internal/platform/auth"
	"github.com/example/animeswipe/services/swipe/internal/store"
)

type swipeRequest struct {
	AnimeID   string `json:"anime_id"`
	Direction string `json:"direction"`
}

type likesResponse struct {
	Likes []store.LikedAnime `json:"likes"`
}

// RecordSwipe handles POST /v1/swipes
func RecordSwipe(ss store.SwipeStore, pub *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", "")
			return
		}

		var req swipeRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(&req); err != nil {
			api.BadRequest(w, "INVALID_JSON", "invalid JSON", "", nil)
			return
		}

		req.AnimeID = strings.TrimSpace(req.AnimeID)
		if _, err := uuid.Parse(req.AnimeID); err != nil {
			api.BadRequest(w, "INVALID_ANIME_ID", "anime_id must be a valid id", "", nil)
			return
		}

		dir := store.Direction(strings.ToLower(strings.TrimSpace(req.Direction)))
		if !dir.Valid() {
			api.BadRequest(w, "INVALID_DIRECTION", "direction must be left, right or skip", "", nil)
			return
		}

		sw, err := ss.Record(r.Context(), userID, req.AnimeID, dir)
		if err != nil {
			api.Internal(w, "")
			return
		}

		pub.Publish(analytics.SubjectSwipeRecorded, "swipe.recorded", userID, map[string]any{
			"anime_id":  sw.AnimeID,
			"direction": string(sw.Direction),
		})
		api.WriteJSON(w, http.StatusCreated, sw)
	}
}

// UndoSwipe handles DELETE /v1/swipes/last
func UndoSwipe(ss store.SwipeStore, pub *analytics.Publisher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", "")
			return
		}

		sw, err := ss.UndoLast(r.Context(), userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				api.NotFound(w, "NOTHING_TO_UNDO", "no swipes to undo", "")
				return
			}
			api.Internal(w, "")
			return
		}

		pub.Publish(analytics.SubjectSwipeUndone, "swipe.undone", userID, map[string]any{
			"anime_id": sw.AnimeID,
		})
		api.WriteJSON(w, http.StatusOK, sw)
	}
}

// ListLikes handles GET /v1/me/likes
func ListLikes(ss store.SwipeStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok || userID == "" {
			api.Unauthorized(w, "UNAUTHORIZED", "authentication required", "")
			return
		}

		limit := 50
		if l := r.URL.Query().Get("limit"); l != "" {
			if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 100 {
				limit = parsed
			}
		}

		likes, err := ss.ListLiked(r.Context(), userID, limit)
		if err != nil {
			api.Internal(w, "")
			return
		}
		if likes == nil {
			likes = []store.LikedAnime{}
		}
		api.WriteJSON(w, http.StatusOK, likesResponse{Likes: likes})
	}
}
