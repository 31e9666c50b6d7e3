package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/example/animeswipe/services/seeder/internal/domain"
)

// InMemorySeedStore is a development and test implementation. Optional
// error fields let tests exercise the pipeline's degrade-on-write-failure
// policy per stage.
type InMemorySeedStore struct {
	mu     sync.Mutex
	genres map[string]domain.GenreRecord // name -> record
	ids    map[string]string             // genre name -> id
	anime  map[int]domain.AnimeRecord    // mal_id -> record
	refs   map[int]string                // mal_id -> id
	links  map[domain.AnimeGenre]struct{}
	covers map[string][]domain.CoverRecord // anime id -> rows

	FailGenres error
	FailAnime  error
	FailLinks  error
	FailCovers error
}

func NewInMemorySeedStore() *InMemorySeedStore {
	return &InMemorySeedStore{
		genres: make(map[string]domain.GenreRecord),
		ids:    make(map[string]string),
		anime:  make(map[int]domain.AnimeRecord),
		refs:   make(map[int]string),
		links:  make(map[domain.AnimeGenre]struct{}),
		covers: make(map[string][]domain.CoverRecord),
	}
}

func (s *InMemorySeedStore) UpsertGenres(_ context.Context, genres []domain.GenreRecord) (map[string]string, error) {
	if s.FailGenres != nil {
		return nil, s.FailGenres
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(genres))
	for _, g := range genres {
		if _, ok := s.ids[g.Name]; !ok {
			s.ids[g.Name] = uuid.NewString()
		}
		s.genres[g.Name] = g
		out[g.Name] = s.ids[g.Name]
	}
	return out, nil
}

func (s *InMemorySeedStore) UpsertAnime(_ context.Context, anime []domain.AnimeRecord) ([]domain.AnimeRef, error) {
	if s.FailAnime != nil {
		return nil, s.FailAnime
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	touched := make(map[int]struct{}, len(anime))
	for _, a := range anime {
		if _, ok := s.refs[a.MalID]; !ok {
			s.refs[a.MalID] = uuid.NewString()
		}
		s.anime[a.MalID] = a
		touched[a.MalID] = struct{}{}
	}
	// Map iteration order stands in for the store's unspecified return order.
	refs := make([]domain.AnimeRef, 0, len(touched))
	for malID := range touched {
		refs = append(refs, domain.AnimeRef{ID: s.refs[malID], MalID: malID})
	}
	return refs, nil
}

func (s *InMemorySeedStore) LinkGenres(_ context.Context, links []domain.AnimeGenre) error {
	if s.FailLinks != nil {
		return s.FailLinks
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, l := range links {
		s.links[l] = struct{}{}
	}
	return nil
}

func (s *InMemorySeedStore) ReplaceCovers(_ context.Context, covers []domain.CoverRecord) error {
	if s.FailCovers != nil {
		return s.FailCovers
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, c := range covers {
		delete(s.covers, c.AnimeID)
	}
	for _, c := range covers {
		s.covers[c.AnimeID] = append(s.covers[c.AnimeID], c)
	}
	return nil
}

// Inspection helpers for tests.

func (s *InMemorySeedStore) GenreCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.genres)
}

func (s *InMemorySeedStore) AnimeCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.anime)
}

func (s *InMemorySeedStore) LinkCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.links)
}

func (s *InMemorySeedStore) CoversFor(animeID string) []domain.CoverRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.CoverRecord(nil), s.covers[animeID]...)
}

func (s *InMemorySeedStore) AnimeID(malID int) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refs[malID]
}

func (s *InMemorySeedStore) Anime(malID int) (domain.AnimeRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.anime[malID]
	return a, ok
}
