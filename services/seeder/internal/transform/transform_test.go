package transform

import (
	"testing"
	"time"

	"github.com/example/animeswipe/services/seeder/internal/domain"
	"github.com/example/animeswipe/services/seeder/internal/jikan"
)

func strPtr(s string) *string   { return &s }
func intPtr(n int) *int         { return &n }
func f64Ptr(f float64) *float64 { return &f }

func TestAnimeType(t *testing.T) {
	cases := map[string]domain.AnimeType{
		"TV":      domain.TypeTV,
		"Movie":   domain.TypeMovie,
		"OVA":     domain.TypeOVA,
		"ONA":     domain.TypeONA,
		"Special": domain.TypeSpecial,
		"Music":   domain.TypeMusic,
	}
	for in, want := range cases {
		if got := AnimeType(in); got != want {
			t.Fatalf("AnimeType(%q) = %q, want %q", in, got, want)
		}
	}

	// Anything outside the closed table falls back to TV.
	for _, in := range []string{"CM", "PV", "TV Special", "", "tv"} {
		if got := AnimeType(in); got != domain.TypeTV {
			t.Fatalf("AnimeType(%q) = %q, want TV fallback", in, got)
		}
	}
}

func TestAnimeStatus(t *testing.T) {
	cases := map[string]domain.AnimeStatus{
		"Currently Airing": domain.StatusAiring,
		"Finished Airing":  domain.StatusFinished,
		"Not yet aired":    domain.StatusNotYetAired,
	}
	for in, want := range cases {
		if got := AnimeStatus(in); got != want {
			t.Fatalf("AnimeStatus(%q) = %q, want %q", in, got, want)
		}
	}

	for _, in := range []string{"Cancelled", "", "finished airing"} {
		if got := AnimeStatus(in); got != domain.StatusFinished {
			t.Fatalf("AnimeStatus(%q) = %q, want Finished fallback", in, got)
		}
	}
}

func TestAnimeSeason(t *testing.T) {
	for _, in := range []string{"winter", "WINTER", "Winter"} {
		got := AnimeSeason(strPtr(in))
		if got == nil || *got != domain.SeasonWinter {
			t.Fatalf("AnimeSeason(%q) = %v, want Winter", in, got)
		}
	}
	if got := AnimeSeason(nil); got != nil {
		t.Fatalf("AnimeSeason(nil) = %v, want nil", got)
	}
	if got := AnimeSeason(strPtr("monsoon")); got != nil {
		t.Fatalf("AnimeSeason(unmapped) = %v, want nil", got)
	}
}

func TestDuration(t *testing.T) {
	if got := Duration(strPtr("24 min per ep")); got == nil || *got != 24 {
		t.Fatalf("Duration('24 min per ep') = %v, want 24", got)
	}
	if got := Duration(strPtr("1 hr 30 min")); got == nil || *got != 30 {
		t.Fatalf("Duration('1 hr 30 min') = %v, want 30", got)
	}
	if got := Duration(nil); got != nil {
		t.Fatalf("Duration(nil) = %v, want nil", got)
	}
	// No "min" token means no duration, never zero.
	if got := Duration(strPtr("1 hr")); got != nil {
		t.Fatalf("Duration('1 hr') = %v, want nil", got)
	}
	if got := Duration(strPtr("Unknown")); got != nil {
		t.Fatalf("Duration('Unknown') = %v, want nil", got)
	}
}

func TestDate(t *testing.T) {
	if got := Date(strPtr("2021-04-03T00:00:00+00:00")); got == nil || *got != "2021-04-03" {
		t.Fatalf("Date(RFC3339) = %v, want 2021-04-03", got)
	}
	if got := Date(nil); got != nil {
		t.Fatalf("Date(nil) = %v, want nil", got)
	}
	if got := Date(strPtr("not-a-date")); got != nil {
		t.Fatalf("Date('not-a-date') = %v, want nil", got)
	}
}

func TestScore(t *testing.T) {
	if got := Score(f64Ptr(8.756)); got == nil || *got != 8.76 {
		t.Fatalf("Score(8.756) = %v, want 8.76", got)
	}
	if got := Score(f64Ptr(7.1)); got == nil || *got != 7.1 {
		t.Fatalf("Score(7.1) = %v, want 7.1", got)
	}
	if got := Score(nil); got != nil {
		t.Fatalf("Score(nil) = %v, want nil", got)
	}
}

func TestNames_TriState(t *testing.T) {
	if got := Names(nil); got != nil {
		t.Fatalf("Names(nil) = %v, want nil", got)
	}
	got := Names([]jikan.NamedEntity{})
	if got == nil || len(got) != 0 {
		t.Fatalf("Names(empty) = %v, want empty non-nil", got)
	}
	got = Names([]jikan.NamedEntity{{Name: "Madhouse"}, {Name: "Bones"}})
	if len(got) != 2 || got[0] != "Madhouse" || got[1] != "Bones" {
		t.Fatalf("Names = %v, want [Madhouse Bones]", got)
	}
}

func TestAnime_ComposesRecord(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	data := jikan.AnimeData{
		MalID:    5114,
		Title:    "Fullmetal Alchemist: Brotherhood",
		Type:     "TV",
		Status:   "Finished Airing",
		Episodes: intPtr(64),
		Duration: strPtr("24 min per ep"),
		Score:    f64Ptr(9.1),
		ScoredBy: intPtr(2000000),
		Season:   strPtr("spring"),
		Aired:    jikan.Aired{From: strPtr("2009-04-05T00:00:00+00:00")},
		Studios:  []jikan.NamedEntity{{Name: "Bones"}},
		Trailer:  jikan.Trailer{EmbedURL: strPtr("https://youtube.com/embed/abc")},
	}

	rec := Anime(data, now)
	if rec.MalID != 5114 || rec.Type != domain.TypeTV || rec.Status != domain.StatusFinished {
		t.Fatalf("unexpected base fields: %+v", rec)
	}
	if rec.Duration == nil || *rec.Duration != 24 {
		t.Fatalf("expected duration 24, got %v", rec.Duration)
	}
	if rec.AiredFrom == nil || *rec.AiredFrom != "2009-04-05" {
		t.Fatalf("expected aired_from 2009-04-05, got %v", rec.AiredFrom)
	}
	if rec.Season == nil || *rec.Season != domain.SeasonSpring {
		t.Fatalf("expected season Spring, got %v", rec.Season)
	}
	if rec.ScoredBy != 2000000 {
		t.Fatalf("expected scored_by carried over, got %d", rec.ScoredBy)
	}
	if rec.Trailer == nil || *rec.Trailer != "https://youtube.com/embed/abc" {
		t.Fatalf("expected embed trailer url, got %v", rec.Trailer)
	}
	if len(rec.Studios) != 1 || rec.Studios[0] != "Bones" {
		t.Fatalf("expected studios [Bones], got %v", rec.Studios)
	}
	if rec.Producers != nil {
		t.Fatalf("expected absent producers to stay nil, got %v", rec.Producers)
	}
	if !rec.CreatedAt.Equal(now) || !rec.UpdatedAt.Equal(now) {
		t.Fatal("expected write-time timestamps")
	}
}
