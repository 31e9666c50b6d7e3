package store

import (
	"context"

	"github.com/example/animeswipe/services/seeder/internal/domain"
)

// SeedStore defines the write operations the seeding pipeline performs,
// in foreign-key order: genres, anime, links, covers.
type SeedStore interface {
	// UpsertGenres writes the de-duplicated genre pool keyed by name and
	// returns a name -> surrogate id mapping.
	UpsertGenres(ctx context.Context, genres []domain.GenreRecord) (map[string]string, error)

	// UpsertAnime writes anime rows keyed by mal_id. The same mal_id never
	// produces a second row. Returned refs are in no particular order.
	UpsertAnime(ctx context.Context, anime []domain.AnimeRecord) ([]domain.AnimeRef, error)

	// LinkGenres writes anime-genre join rows; the (anime_id, genre_id)
	// pair is the conflict target, so repeated runs are idempotent.
	LinkGenres(ctx context.Context, links []domain.AnimeGenre) error

	// ReplaceCovers deletes all covers of the affected anime and inserts
	// the given rows. Full replace, not a merge.
	ReplaceCovers(ctx context.Context, covers []domain.CoverRecord) error
}
