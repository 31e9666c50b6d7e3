package store

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("not found")

// Direction is how the user swiped a card.
type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
	DirectionSkip  Direction = "skip"
)

func (d Direction) Valid() bool {
	switch d {
	case DirectionLeft, DirectionRight, DirectionSkip:
		return true
	}
	return false
}

// DeckCard is one anime presented in the swipe deck.
type DeckCard struct {
	AnimeID  string   `json:"anime_id"`
	Title    string   `json:"title"`
	TitleEng *string  `json:"title_english,omitempty"`
	Synopsis *string  `json:"synopsis,omitempty"`
	Type     string   `json:"type"`
	Episodes *int     `json:"episodes,omitempty"`
	Score    *float64 `json:"score,omitempty"`
	Year     *int     `json:"year,omitempty"`
	CoverURL *string  `json:"cover_url,omitempty"`
	Genres   []string `json:"genres"`
}

// Swipe is a recorded decision, at most one per (user, anime).
type Swipe struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	AnimeID   string    `json:"anime_id"`
	Direction Direction `json:"direction"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LikedAnime is a right-swiped title in the user's likes list.
type LikedAnime struct {
	AnimeID  string    `json:"anime_id"`
	Title    string    `json:"title"`
	Score    *float64  `json:"score,omitempty"`
	CoverURL *string   `json:"cover_url,omitempty"`
	SwipedAt time.Time `json:"swiped_at"`
}

// DeckStore serves cards the user has not swiped yet.
type DeckStore interface {
	NextCards(ctx context.Context, userID string, limit int) ([]DeckCard, error)
}

// SwipeStore records and replays user decisions.
type SwipeStore interface {
	// Record upserts the decision for (userID, animeID); re-swiping the
	// same anime replaces the previous direction.
	Record(ctx context.Context, userID, animeID string, dir Direction) (Swipe, error)
	// UndoLast removes the user's most recent swipe and returns it.
	// Returns ErrNotFound when the user has no swipes.
	UndoLast(ctx context.Context, userID string) (Swipe, error)
	// ListLiked returns the user's right swipes, newest first.
	ListLiked(ctx context.Context, userID string, limit int) ([]LikedAnime, error)
}
