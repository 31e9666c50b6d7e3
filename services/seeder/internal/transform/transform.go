// Package transform maps Jikan API records into normalized store rows.
// Every function is total: bad input degrades to a fallback value or to
// nil ("not provided"), never to an error.
package transform

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/example/animeswipe/services/seeder/internal/domain"
	"github.com/example/animeswipe/services/seeder/internal/jikan"
)

var animeTypes = map[string]domain.AnimeType{
	"TV":      domain.TypeTV,
	"Movie":   domain.TypeMovie,
	"OVA":     domain.TypeOVA,
	"ONA":     domain.TypeONA,
	"Special": domain.TypeSpecial,
	"Music":   domain.TypeMusic,
}

// AnimeType maps a Jikan type string into the closed enum.
// Unrecognized values (CM, PV, TV Special, ...) fall back to TV.
func AnimeType(s string) domain.AnimeType {
	if t, ok := animeTypes[s]; ok {
		return t
	}
	return domain.TypeTV
}

var animeStatuses = map[string]domain.AnimeStatus{
	"Currently Airing": domain.StatusAiring,
	"Finished Airing":  domain.StatusFinished,
	"Not yet aired":    domain.StatusNotYetAired,
}

// AnimeStatus maps a Jikan status phrase into the closed enum.
// Unrecognized values fall back to Finished.
func AnimeStatus(s string) domain.AnimeStatus {
	if st, ok := animeStatuses[s]; ok {
		return st
	}
	return domain.StatusFinished
}

var animeSeasons = map[string]domain.Season{
	"winter": domain.SeasonWinter,
	"spring": domain.SeasonSpring,
	"summer": domain.SeasonSummer,
	"fall":   domain.SeasonFall,
}

// AnimeSeason maps a season name case-insensitively. Absent or unmapped
// input means "no season", not a fallback.
func AnimeSeason(s *string) *domain.Season {
	if s == nil {
		return nil
	}
	if season, ok := animeSeasons[strings.ToLower(*s)]; ok {
		return &season
	}
	return nil
}

var durationRe = regexp.MustCompile(`(\d+)\s*min`)

// Duration extracts whole minutes from a free-text duration such as
// "24 min per ep". Text without a "min" amount yields nil, never zero.
func Duration(s *string) *int {
	if s == nil {
		return nil
	}
	m := durationRe.FindStringSubmatch(*s)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// Date re-renders an RFC 3339 timestamp as a YYYY-MM-DD calendar date.
// Absent or unparseable input yields nil.
func Date(s *string) *string {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		if t, err = time.Parse("2006-01-02", *s); err != nil {
			return nil
		}
	}
	d := t.Format("2006-01-02")
	return &d
}

// Score rounds to two decimal places; absent score stays absent.
func Score(s *float64) *float64 {
	if s == nil {
		return nil
	}
	v := math.Round(*s*100) / 100
	return &v
}

// Names flattens named entities (studios, producers, licensors) to their
// names. A nil source list stays nil so "not provided" survives; an empty
// list stays an empty list.
func Names(entities []jikan.NamedEntity) []string {
	if entities == nil {
		return nil
	}
	out := make([]string, 0, len(entities))
	for _, e := range entities {
		out = append(out, e.Name)
	}
	return out
}

// Anime composes the full record transform. Timestamps are assigned at
// write time by the pipeline, not carried from the source.
func Anime(a jikan.AnimeData, now time.Time) domain.AnimeRecord {
	rec := domain.AnimeRecord{
		MalID:         a.MalID,
		Title:         a.Title,
		TitleEnglish:  a.TitleEnglish,
		TitleJapanese: a.TitleJapanese,
		Synopsis:      a.Synopsis,
		Background:    a.Background,
		Type:          AnimeType(a.Type),
		Status:        AnimeStatus(a.Status),
		Episodes:      a.Episodes,
		Duration:      Duration(a.Duration),
		AiredFrom:     Date(a.Aired.From),
		AiredTo:       Date(a.Aired.To),
		Season:        AnimeSeason(a.Season),
		Year:          a.Year,
		Score:         Score(a.Score),
		Rank:          a.Rank,
		Popularity:    a.Popularity,
		Members:       a.Members,
		Rating:        a.Rating,
		Source:        a.Source,
		Studios:       Names(a.Studios),
		Producers:     Names(a.Producers),
		Licensors:     Names(a.Licensors),
		MalURL:        a.URL,
		Approved:      a.Approved,
		Airing:        a.Airing,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if len(a.TitleSynonyms) > 0 {
		rec.TitleSynonyms = a.TitleSynonyms
	}
	if a.ScoredBy != nil {
		rec.ScoredBy = *a.ScoredBy
	}
	if a.Favorites != nil {
		rec.Favorites = *a.Favorites
	}
	if b := a.Broadcast; b.Day != nil || b.Time != nil || b.Timezone != nil || b.String != nil {
		rec.Broadcast = &domain.Broadcast{Day: b.Day, Time: b.Time, Timezone: b.Timezone, String: b.String}
	}
	switch {
	case a.Trailer.EmbedURL != nil:
		rec.Trailer = a.Trailer.EmbedURL
	case a.Trailer.URL != nil:
		rec.Trailer = a.Trailer.URL
	}
	return rec
}
