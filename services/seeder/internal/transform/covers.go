package transform

import (
	"time"

	"github.com/example/animeswipe/services/seeder/internal/domain"
	"github.com/example/animeswipe/services/seeder/internal/jikan"
)

// Covers emits cover rows for one anime, ordered: JPEG large (primary),
// JPEG medium, JPEG small, then the WebP large variant. A size is skipped
// when its URL string exactly equals the previously emitted size — no URL
// canonicalization.
func Covers(a jikan.AnimeData, animeID string, now time.Time) []domain.CoverRecord {
	var covers []domain.CoverRecord

	add := func(url string, size domain.CoverSize, primary bool) {
		covers = append(covers, domain.CoverRecord{
			AnimeID:   animeID,
			URL:       url,
			Size:      size,
			IsPrimary: primary,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}

	jpg := a.Images.JPG
	if jpg.LargeImageURL != "" {
		add(jpg.LargeImageURL, domain.CoverLarge, true)
	}
	if jpg.ImageURL != "" && jpg.ImageURL != jpg.LargeImageURL {
		add(jpg.ImageURL, domain.CoverMedium, false)
	}
	if jpg.SmallImageURL != "" && jpg.SmallImageURL != jpg.ImageURL {
		add(jpg.SmallImageURL, domain.CoverSmall, false)
	}
	if webp := a.Images.WebP.LargeImageURL; webp != "" && webp != jpg.LargeImageURL {
		add(webp, domain.CoverLarge, false)
	}
	return covers
}
