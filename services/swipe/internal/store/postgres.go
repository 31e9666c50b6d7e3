package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements DeckStore and SwipeStore on a pgx pool.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{Pool: pool}
}

func (s *PostgresStore) NextCards(ctx context.Context, userID string, limit int) ([]DeckCard, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT a.id::text, a.title, a.title_english, a.synopsis, a.type::text,
		       a.episodes, a.score, a.year,
		       (SELECT c.url FROM covers c
		        WHERE c.anime_id = a.id AND c.is_primary
		        LIMIT 1),
		       COALESCE((SELECT array_agg(g.name ORDER BY g.name)
		                 FROM anime_genres ag
		                 JOIN genres g ON g.id = ag.genre_id
		                 WHERE ag.anime_id = a.id), '{}')
		FROM anime a
		WHERE NOT EXISTS (
			SELECT 1 FROM swipes s WHERE s.user_id = $1 AND s.anime_id = a.id
		)
		ORDER BY a.popularity ASC NULLS LAST, a.score DESC NULLS LAST, a.id
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query deck: %w", err)
	}
	defer rows.Close()

	var cards []DeckCard
	for rows.Next() {
		var c DeckCard
		if err := rows.Scan(
			&c.AnimeID, &c.Title, &c.TitleEng, &c.Synopsis, &c.Type,
			&c.Episodes, &c.Score, &c.Year, &c.CoverURL, &c.Genres,
		); err != nil {
			return nil, fmt.Errorf("scan deck card: %w", err)
		}
		if c.Genres == nil {
			c.Genres = []string{}
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (s *PostgresStore) Record(ctx context.Context, userID, animeID string, dir Direction) (Swipe, error) {
	var sw Swipe
	err := s.Pool.QueryRow(ctx, `
		INSERT INTO swipes (user_id, anime_id, direction)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, anime_id) DO UPDATE SET
			direction = EXCLUDED.direction,
			updated_at = now()
		RETURNING id::text, user_id::text, anime_id::text, direction::text, created_at, updated_at`,
		userID, animeID, string(dir),
	).Scan(&sw.ID, &sw.UserID, &sw.AnimeID, &sw.Direction, &sw.CreatedAt, &sw.UpdatedAt)
	if err != nil {
		return Swipe{}, fmt.Errorf("record swipe: %w", err)
	}
	return sw, nil
}

func (s *PostgresStore) UndoLast(ctx context.Context, userID string) (Swipe, error) {
	var sw Swipe
	err := s.Pool.QueryRow(ctx, `
		DELETE FROM swipes
		WHERE id = (
			SELECT id FROM swipes
			WHERE user_id = $1
			ORDER BY updated_at DESC
			LIMIT 1
		)
		RETURNING id::text, user_id::text, anime_id::text, direction::text, created_at, updated_at`,
		userID,
	).Scan(&sw.ID, &sw.UserID, &sw.AnimeID, &sw.Direction, &sw.CreatedAt, &sw.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Swipe{}, ErrNotFound
	}
	if err != nil {
		return Swipe{}, fmt.Errorf("undo swipe: %w", err)
	}
	return sw, nil
}

func (s *PostgresStore) ListLiked(ctx context.Context, userID string, limit int) ([]LikedAnime, error) {
	rows, err := s.Pool.Query(ctx, `
		SELECT a.id::text, a.title, a.score,
		       (SELECT c.url FROM covers c
		        WHERE c.anime_id = a.id AND c.is_primary
		        LIMIT 1),
		       s.updated_at
		FROM swipes s
		JOIN anime a ON a.id = s.anime_id
		WHERE s.user_id = $1 AND s.direction = 'right'
		ORDER BY s.updated_at DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query likes: %w", err)
	}
	defer rows.Close()

	var likes []LikedAnime
	for rows.Next() {
		var l LikedAnime
		if err := rows.Scan(&l.AnimeID, &l.Title, &l.Score, &l.CoverURL, &l.SwipedAt); err != nil {
			return nil, fmt.Errorf("scan liked anime: %w", err)
		}
		likes = append(likes, l)
	}
	return likes, rows.Err()
}
