package seed

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/example/animeswipe/services/seeder/internal/jikan"
	"github.com/example/animeswipe/services/seeder/internal/store"
)

type fakeCatalog struct {
	pages []jikan.AnimeListResponse
	err   error
}

func (f *fakeCatalog) ListAnime(ctx context.Context, page, _ int) (*jikan.AnimeListResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page > len(f.pages) {
		if f.err == nil {
			return nil, &jikan.StatusError{Status: 404}
		}
		return nil, f.err
	}
	resp := f.pages[page-1]
	return &resp, nil
}

func testRecord(malID int, title string, genres []jikan.Genre) jikan.AnimeData {
	return jikan.AnimeData{
		MalID:  malID,
		Title:  title,
		Type:   "TV",
		Status: "Finished Airing",
		Genres: genres,
		Images: jikan.Images{JPG: jikan.Image{
			LargeImageURL: title + "-l.jpg",
			ImageURL:      title + "-m.jpg",
			SmallImageURL: title + "-s.jpg",
		}},
	}
}

func newSeeder(catalog jikan.Provider, st store.SeedStore) *Seeder {
	return &Seeder{
		Log:   zap.NewNop(),
		Pager: &jikan.Pager{Client: catalog, Log: zap.NewNop(), Delay: time.Millisecond},
		Store: st,
	}
}

func TestSeeder_SinglePageRun(t *testing.T) {
	catalog := &fakeCatalog{pages: []jikan.AnimeListResponse{{
		Data: []jikan.AnimeData{
			testRecord(1, "alpha", []jikan.Genre{{MalID: 1, Name: "Action"}, {MalID: 2, Name: "Drama"}}),
			testRecord(2, "beta", []jikan.Genre{{MalID: 1, Name: "Action"}}),
		},
		Pagination: jikan.Pagination{HasNextPage: false},
	}}}
	st := store.NewInMemorySeedStore()

	summary, err := newSeeder(catalog, st).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Fetched != 2 || summary.Anime != 2 {
		t.Fatalf("expected 2 fetched and 2 anime, got %+v", summary)
	}
	// "Action" is shared across both records: pooled once globally.
	if summary.Genres != 2 {
		t.Fatalf("expected 2 unique genres, got %d", summary.Genres)
	}
	// alpha links Action+Drama, beta links Action.
	if summary.Links != 3 {
		t.Fatalf("expected 3 links, got %d", summary.Links)
	}
	// 3 jpg sizes each, all URLs distinct, no webp.
	if summary.Covers != 6 {
		t.Fatalf("expected 6 covers, got %d", summary.Covers)
	}

	covers := st.CoversFor(st.AnimeID(1))
	if len(covers) != 3 {
		t.Fatalf("expected 3 covers for mal_id 1, got %d", len(covers))
	}
	if !covers[0].IsPrimary || covers[0].URL != "alpha-l.jpg" {
		t.Fatalf("expected alpha's large jpg as primary, got %+v", covers[0])
	}
}

func TestSeeder_Idempotent(t *testing.T) {
	catalog := &fakeCatalog{pages: []jikan.AnimeListResponse{{
		Data: []jikan.AnimeData{
			testRecord(1, "alpha", []jikan.Genre{{MalID: 1, Name: "Action"}}),
			testRecord(2, "beta", []jikan.Genre{{MalID: 2, Name: "Drama"}}),
		},
		Pagination: jikan.Pagination{HasNextPage: false},
	}}}
	st := store.NewInMemorySeedStore()
	s := newSeeder(catalog, st)

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	firstAnime, firstGenres := st.AnimeCount(), st.GenreCount()
	firstID := st.AnimeID(1)

	if _, err := s.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if st.AnimeCount() != firstAnime || st.GenreCount() != firstGenres {
		t.Fatalf("expected identical counts after rerun: anime %d->%d genres %d->%d",
			firstAnime, st.AnimeCount(), firstGenres, st.GenreCount())
	}
	if st.AnimeID(1) != firstID {
		t.Fatal("expected rerun to update the existing row, not create a new one")
	}
	// Covers are fully replaced each run, never accumulated.
	if covers := st.CoversFor(firstID); len(covers) != 3 {
		t.Fatalf("expected 3 covers after rerun, got %d", len(covers))
	}
}

func TestSeeder_FetchFailureStillRunsInsertStage(t *testing.T) {
	catalog := &fakeCatalog{err: &jikan.StatusError{Status: 500}}
	st := store.NewInMemorySeedStore()

	summary, err := newSeeder(catalog, st).Run(context.Background())
	if err != nil {
		t.Fatalf("fetch failure must not escape the run, got %v", err)
	}
	if summary.Fetched != 0 || summary.Anime != 0 || summary.Genres != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

func TestSeeder_PartialFetchIsProcessed(t *testing.T) {
	catalog := &fakeCatalog{
		pages: []jikan.AnimeListResponse{{
			Data:       []jikan.AnimeData{testRecord(1, "alpha", nil)},
			Pagination: jikan.Pagination{HasNextPage: true},
		}},
		err: &jikan.StatusError{Status: 429},
	}
	st := store.NewInMemorySeedStore()

	summary, err := newSeeder(catalog, st).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Fetched != 1 || summary.Anime != 1 {
		t.Fatalf("expected the page 1 record to be written, got %+v", summary)
	}
}

func TestSeeder_GenreFailureDegradesToNoLinks(t *testing.T) {
	catalog := &fakeCatalog{pages: []jikan.AnimeListResponse{{
		Data:       []jikan.AnimeData{testRecord(1, "alpha", []jikan.Genre{{MalID: 1, Name: "Action"}})},
		Pagination: jikan.Pagination{HasNextPage: false},
	}}}
	st := store.NewInMemorySeedStore()
	st.FailGenres = errors.New("genres table unavailable")

	summary, err := newSeeder(catalog, st).Run(context.Background())
	if err != nil {
		t.Fatalf("write failure must not escape the run, got %v", err)
	}
	if summary.Anime != 1 {
		t.Fatalf("anime upsert should proceed despite genre failure, got %+v", summary)
	}
	if summary.Genres != 0 || summary.Links != 0 {
		t.Fatalf("expected no genres or links, got %+v", summary)
	}
	if summary.Covers != 3 {
		t.Fatalf("cover stage should still run, got %+v", summary)
	}
}

func TestSeeder_AnimeFailureDegradesDownstream(t *testing.T) {
	catalog := &fakeCatalog{pages: []jikan.AnimeListResponse{{
		Data:       []jikan.AnimeData{testRecord(1, "alpha", []jikan.Genre{{MalID: 1, Name: "Action"}})},
		Pagination: jikan.Pagination{HasNextPage: false},
	}}}
	st := store.NewInMemorySeedStore()
	st.FailAnime = errors.New("anime table unavailable")

	summary, err := newSeeder(catalog, st).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Genres != 1 {
		t.Fatalf("genre upsert precedes anime and should succeed, got %+v", summary)
	}
	if summary.Anime != 0 || summary.Links != 0 || summary.Covers != 0 {
		t.Fatalf("expected no anime-dependent rows, got %+v", summary)
	}
}

func TestSeeder_Cancelled(t *testing.T) {
	catalog := &fakeCatalog{pages: []jikan.AnimeListResponse{{
		Data:       []jikan.AnimeData{testRecord(1, "alpha", nil)},
		Pagination: jikan.Pagination{HasNextPage: false},
	}}}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newSeeder(catalog, store.NewInMemorySeedStore()).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
