// Package seed sequences one seeding run: drain the catalog pager, then
// write genres, anime, links and covers in foreign-key order.
//
// Two failure policies coexist on purpose. Fetching is fail-fast: the
// first bad page stops pagination, though everything already accumulated
// is still written. Writes are best-effort: a failed stage logs, degrades
// to an empty result and lets the remaining independent stages run.
package seed

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/example/animeswipe/internal/platform/analytics"
	"github.com/example/animeswipe/services/seeder/internal/domain"
	"github.com/example/animeswipe/services/seeder/internal/jikan"
	"github.com/example/animeswipe/services/seeder/internal/store"
	"github.com/example/animeswipe/services/seeder/internal/transform"
)

type Seeder struct {
	Log       *zap.Logger
	Pager     *jikan.Pager
	Store     store.SeedStore
	Analytics *analytics.Publisher // optional, nil-safe
	Now       func() time.Time     // defaults to time.Now
}

// Summary reports what one run accomplished, for the final log line.
type Summary struct {
	Fetched int
	Genres  int
	Anime   int
	Links   int
	Covers  int
}

// Run executes the pipeline once. It returns an error only for
// cancellation; per-stage failures are logged and absorbed.
func (s *Seeder) Run(ctx context.Context) (Summary, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	records, err := s.Pager.FetchAll(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Summary{}, err
		}
		// Fetch stopped early; process what we have.
		s.Log.Warn("pagination stopped early", zap.Int("accumulated", len(records)), zap.Error(err))
	}

	writeTime := now().UTC()

	// One pass over the accumulated records: transform rows, pool genres
	// de-duplicated by name across records, and index the originals by
	// mal_id so later stages never re-scan.
	byMalID := make(map[int]jikan.AnimeData, len(records))
	animeRows := make([]domain.AnimeRecord, 0, len(records))
	var genrePool []domain.GenreRecord
	seenGenre := make(map[string]struct{})
	for _, rec := range records {
		byMalID[rec.MalID] = rec
		animeRows = append(animeRows, transform.Anime(rec, writeTime))
		for _, g := range transform.Genres(rec, writeTime) {
			if _, dup := seenGenre[g.Name]; dup {
				continue
			}
			seenGenre[g.Name] = struct{}{}
			genrePool = append(genrePool, g)
		}
	}

	summary := Summary{Fetched: len(records)}

	genreIDs, err := s.Store.UpsertGenres(ctx, genrePool)
	if err != nil {
		s.Log.Error("genre upsert failed, continuing without genre links", zap.Error(err))
		genreIDs = map[string]string{}
	}
	summary.Genres = len(genreIDs)

	refs, err := s.Store.UpsertAnime(ctx, animeRows)
	if err != nil {
		s.Log.Error("anime upsert failed", zap.Error(err))
		refs = nil
	}
	summary.Anime = len(refs)

	// Upsert return order is unspecified; the mal_id index resolves each
	// ref back to its source record.
	var links []domain.AnimeGenre
	for _, ref := range refs {
		orig, ok := byMalID[ref.MalID]
		if !ok {
			continue
		}
		for _, g := range transform.Genres(orig, writeTime) {
			genreID, ok := genreIDs[g.Name]
			if !ok {
				continue
			}
			links = append(links, domain.AnimeGenre{AnimeID: ref.ID, GenreID: genreID})
		}
	}
	if err := s.Store.LinkGenres(ctx, links); err != nil {
		s.Log.Error("genre linking failed", zap.Error(err))
		links = nil
	}
	summary.Links = len(links)

	var covers []domain.CoverRecord
	for _, ref := range refs {
		orig, ok := byMalID[ref.MalID]
		if !ok {
			continue
		}
		covers = append(covers, transform.Covers(orig, ref.ID, writeTime)...)
	}
	if err := s.Store.ReplaceCovers(ctx, covers); err != nil {
		s.Log.Error("cover replace failed", zap.Error(err))
		covers = nil
	}
	summary.Covers = len(covers)

	s.Log.Info("seeding run finished",
		zap.Int("fetched", summary.Fetched),
		zap.Int("genres", summary.Genres),
		zap.Int("anime", summary.Anime),
		zap.Int("links", summary.Links),
		zap.Int("covers", summary.Covers))

	s.Analytics.Publish(analytics.SubjectSeedCompleted, "seed.completed", "", map[string]any{
		"fetched": summary.Fetched,
		"genres":  summary.Genres,
		"anime":   summary.Anime,
		"links":   summary.Links,
		"covers":  summary.Covers,
	})
	return summary, nil
}
