package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/example/animeswipe/services/seeder/internal/domain"
)

// PostgresSeedStore is the production Postgres-backed implementation.
type PostgresSeedStore struct {
	db *pgxpool.Pool
}

func NewPostgresSeedStore(db *pgxpool.Pool) *PostgresSeedStore {
	return &PostgresSeedStore{db: db}
}

func (s *PostgresSeedStore) UpsertGenres(ctx context.Context, genres []domain.GenreRecord) (map[string]string, error) {
	out := make(map[string]string, len(genres))
	if len(genres) == 0 {
		return out, nil
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("genres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, g := range genres {
		var id, name string
		err := tx.QueryRow(ctx, `
INSERT INTO genres (id, name, slug, mal_id, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6)
ON CONFLICT (name) DO UPDATE SET slug = EXCLUDED.slug, mal_id = EXCLUDED.mal_id, updated_at = EXCLUDED.updated_at
RETURNING id::text, name`,
			uuid.New(), g.Name, g.Slug, g.MalID, g.CreatedAt, g.UpdatedAt,
		).Scan(&id, &name)
		if err != nil {
			return nil, fmt.Errorf("genres: upsert %q: %w", g.Name, err)
		}
		out[name] = id
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("genres: commit: %w", err)
	}
	return out, nil
}

func (s *PostgresSeedStore) UpsertAnime(ctx context.Context, anime []domain.AnimeRecord) ([]domain.AnimeRef, error) {
	if len(anime) == 0 {
		return nil, nil
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, fmt.Errorf("anime: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	refs := make([]domain.AnimeRef, 0, len(anime))
	for _, a := range anime {
		var ref domain.AnimeRef
		err := tx.QueryRow(ctx, `
INSERT INTO anime (
  id, mal_id, title, title_english, title_japanese, title_synonyms,
  synopsis, background, type, status, episodes, duration,
  aired_from, aired_to, season, year, score, scored_by, rank, popularity,
  members, favorites, rating, source, studios, producers, licensors,
  broadcast, trailer, mal_url, approved, airing, created_at, updated_at
) VALUES (
  $1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,
  $21,$22,$23,$24,$25,$26,$27,$28,$29,$30,$31,$32,$33,$34
)
ON CONFLICT (mal_id) DO UPDATE SET
  title = EXCLUDED.title, title_english = EXCLUDED.title_english,
  title_japanese = EXCLUDED.title_japanese, title_synonyms = EXCLUDED.title_synonyms,
  synopsis = EXCLUDED.synopsis, background = EXCLUDED.background,
  type = EXCLUDED.type, status = EXCLUDED.status,
  episodes = EXCLUDED.episodes, duration = EXCLUDED.duration,
  aired_from = EXCLUDED.aired_from, aired_to = EXCLUDED.aired_to,
  season = EXCLUDED.season, year = EXCLUDED.year,
  score = EXCLUDED.score, scored_by = EXCLUDED.scored_by,
  rank = EXCLUDED.rank, popularity = EXCLUDED.popularity,
  members = EXCLUDED.members, favorites = EXCLUDED.favorites,
  rating = EXCLUDED.rating, source = EXCLUDED.source,
  studios = EXCLUDED.studios, producers = EXCLUDED.producers,
  licensors = EXCLUDED.licensors, broadcast = EXCLUDED.broadcast,
  trailer = EXCLUDED.trailer, mal_url = EXCLUDED.mal_url,
  approved = EXCLUDED.approved, airing = EXCLUDED.airing,
  updated_at = EXCLUDED.updated_at
RETURNING id::text, mal_id`,
			uuid.New(), a.MalID, a.Title, a.TitleEnglish, a.TitleJapanese, jsonOrNull(a.TitleSynonyms),
			a.Synopsis, a.Background, string(a.Type), string(a.Status), a.Episodes, a.Duration,
			a.AiredFrom, a.AiredTo, seasonOrNull(a.Season), a.Year, a.Score, a.ScoredBy, a.Rank, a.Popularity,
			a.Members, a.Favorites, a.Rating, a.Source, jsonOrNull(a.Studios), jsonOrNull(a.Producers), jsonOrNull(a.Licensors),
			broadcastOrNull(a.Broadcast), a.Trailer, a.MalURL, a.Approved, a.Airing, a.CreatedAt, a.UpdatedAt,
		).Scan(&ref.ID, &ref.MalID)
		if err != nil {
			return nil, fmt.Errorf("anime: upsert mal_id=%d: %w", a.MalID, err)
		}
		refs = append(refs, ref)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("anime: commit: %w", err)
	}
	return refs, nil
}

func (s *PostgresSeedStore) LinkGenres(ctx context.Context, links []domain.AnimeGenre) error {
	if len(links) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("anime_genres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, l := range links {
		if _, err := tx.Exec(ctx, `
INSERT INTO anime_genres (id, anime_id, genre_id)
VALUES ($1,$2::uuid,$3::uuid)
ON CONFLICT (anime_id, genre_id) DO NOTHING`,
			uuid.New(), l.AnimeID, l.GenreID,
		); err != nil {
			return fmt.Errorf("anime_genres: link %s->%s: %w", l.AnimeID, l.GenreID, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("anime_genres: commit: %w", err)
	}
	return nil
}

func (s *PostgresSeedStore) ReplaceCovers(ctx context.Context, covers []domain.CoverRecord) error {
	if len(covers) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(covers))
	animeIDs := make([]string, 0, len(covers))
	for _, c := range covers {
		if _, dup := seen[c.AnimeID]; dup {
			continue
		}
		seen[c.AnimeID] = struct{}{}
		animeIDs = append(animeIDs, c.AnimeID)
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("covers: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	// Full replace per run: wipe first, then plain inserts.
	if _, err := tx.Exec(ctx, `DELETE FROM covers WHERE anime_id = ANY($1::uuid[])`, animeIDs); err != nil {
		return fmt.Errorf("covers: delete: %w", err)
	}
	for _, c := range covers {
		if _, err := tx.Exec(ctx, `
INSERT INTO covers (id, anime_id, url, size, is_primary, created_at, updated_at)
VALUES ($1,$2::uuid,$3,$4,$5,$6,$7)`,
			uuid.New(), c.AnimeID, c.URL, string(c.Size), c.IsPrimary, c.CreatedAt, c.UpdatedAt,
		); err != nil {
			return fmt.Errorf("covers: insert %s: %w", c.URL, err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("covers: commit: %w", err)
	}
	return nil
}

// jsonOrNull keeps the nil/empty distinction: nil slices become SQL NULL,
// everything else is marshalled jsonb.
func jsonOrNull(names []string) any {
	if names == nil {
		return nil
	}
	b, _ := json.Marshal(names)
	return b
}

func seasonOrNull(s *domain.Season) any {
	if s == nil {
		return nil
	}
	return string(*s)
}

func broadcastOrNull(b *domain.Broadcast) any {
	if b == nil {
		return nil
	}
	out, _ := json.Marshal(b)
	return out
}
