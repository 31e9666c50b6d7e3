package transform

import (
	"regexp"
	"strings"
	"time"

	"github.com/example/animeswipe/services/seeder/internal/domain"
	"github.com/example/animeswipe/services/seeder/internal/jikan"
)

var (
	slugSpaceRe = regexp.MustCompile(`\s+`)
	slugStripRe = regexp.MustCompile(`[^a-z0-9-]`)
)

// Slug derives a URL slug from a genre name: lowercased, whitespace runs
// collapsed to hyphens, everything else non-alphanumeric stripped.
func Slug(name string) string {
	s := strings.ToLower(name)
	s = slugSpaceRe.ReplaceAllString(s, "-")
	return slugStripRe.ReplaceAllString(s, "")
}

// Genres pools the four genre-like collections of one record and emits one
// row per distinct source genre id, first occurrence winning. Cross-record
// de-duplication by name is the caller's job.
func Genres(a jikan.AnimeData, now time.Time) []domain.GenreRecord {
	pool := make([]jikan.Genre, 0, len(a.Genres)+len(a.ExplicitGenres)+len(a.Themes)+len(a.Demographics))
	pool = append(pool, a.Genres...)
	pool = append(pool, a.ExplicitGenres...)
	pool = append(pool, a.Themes...)
	pool = append(pool, a.Demographics...)

	seen := make(map[int]struct{}, len(pool))
	out := make([]domain.GenreRecord, 0, len(pool))
	for _, g := range pool {
		if _, dup := seen[g.MalID]; dup {
			continue
		}
		seen[g.MalID] = struct{}{}
		out = append(out, domain.GenreRecord{
			Name:      g.Name,
			Slug:      Slug(g.Name),
			MalID:     g.MalID,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return out
}
