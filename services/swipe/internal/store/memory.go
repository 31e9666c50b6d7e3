package store

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// InMemoryStore implements DeckStore and SwipeStore for tests.
// Deck order follows the order cards were added.
type InMemoryStore struct {
	mu     sync.Mutex
	cards  []DeckCard
	swipes map[string][]Swipe // user id -> swipes, oldest first
	nextID int
	now    time.Time
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		swipes: make(map[string][]Swipe),
		now:    time.Unix(1700000000, 0).UTC(),
	}
}

// AddCard seeds the deck; returns the assigned anime id.
func (s *InMemoryStore) AddCard(card DeckCard) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if card.AnimeID == "" {
		s.nextID++
		card.AnimeID = fmt.Sprintf("anime-%d", s.nextID)
	}
	if card.Genres == nil {
		card.Genres = []string{}
	}
	s.cards = append(s.cards, card)
	return card.AnimeID
}

func (s *InMemoryStore) NextCards(ctx context.Context, userID string, limit int) ([]DeckCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]bool)
	for _, sw := range s.swipes[userID] {
		seen[sw.AnimeID] = true
	}

	var out []DeckCard
	for _, c := range s.cards {
		if seen[c.AnimeID] {
			continue
		}
		out = append(out, c)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *InMemoryStore) Record(ctx context.Context, userID, animeID string, dir Direction) (Swipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.now = s.now.Add(time.Second)
	list := s.swipes[userID]
	for i, sw := range list {
		if sw.AnimeID == animeID {
			sw.Direction = dir
			sw.UpdatedAt = s.now
			// re-swipe moves the entry to the back, matching updated_at order
			list = append(append(list[:i:i], list[i+1:]...), sw)
			s.swipes[userID] = list
			return sw, nil
		}
	}

	s.nextID++
	sw := Swipe{
		ID:        fmt.Sprintf("swipe-%d", s.nextID),
		UserID:    userID,
		AnimeID:   animeID,
		Direction: dir,
		CreatedAt: s.now,
		UpdatedAt: s.now,
	}
	s.swipes[userID] = append(list, sw)
	return sw, nil
}

func (s *InMemoryStore) UndoLast(ctx context.Context, userID string) (Swipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.swipes[userID]
	if len(list) == 0 {
		return Swipe{}, ErrNotFound
	}
	last := list[len(list)-1]
	s.swipes[userID] = list[:len(list)-1]
	return last, nil
}

func (s *InMemoryStore) ListLiked(ctx context.Context, userID string, limit int) ([]LikedAnime, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[string]DeckCard, len(s.cards))
	for _, c := range s.cards {
		byID[c.AnimeID] = c
	}

	list := s.swipes[userID]
	var likes []LikedAnime
	for i := len(list) - 1; i >= 0 && len(likes) < limit; i-- {
		sw := list[i]
		if sw.Direction != DirectionRight {
			continue
		}
		card := byID[sw.AnimeID]
		title := card.Title
		if title == "" {
			title = sw.AnimeID
		}
		likes = append(likes, LikedAnime{
			AnimeID:  sw.AnimeID,
			Title:    title,
			Score:    card.Score,
			CoverURL: card.CoverURL,
			SwipedAt: sw.UpdatedAt,
		})
	}
	return likes, nil
}

// SwipeCount reports how many swipes a user has recorded.
func (s *InMemoryStore) SwipeCount(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.swipes[userID])
}
