// Package domain holds the normalized, store-shaped rows produced by the
// seeding pipeline. Pointer fields distinguish "absent" from zero values;
// list fields distinguish nil (not provided) from empty (provided but empty).
package domain

import "time"

type AnimeType string

const (
	TypeTV      AnimeType = "TV"
	TypeMovie   AnimeType = "Movie"
	TypeOVA     AnimeType = "OVA"
	TypeONA     AnimeType = "ONA"
	TypeSpecial AnimeType = "Special"
	TypeMusic   AnimeType = "Music"
)

type AnimeStatus string

const (
	StatusAiring      AnimeStatus = "Airing"
	StatusFinished    AnimeStatus = "Finished"
	StatusNotYetAired AnimeStatus = "Not yet aired"
)

type Season string

const (
	SeasonWinter Season = "Winter"
	SeasonSpring Season = "Spring"
	SeasonSummer Season = "Summer"
	SeasonFall   Season = "Fall"
)

type CoverSize string

const (
	CoverSmall  CoverSize = "small"
	CoverMedium CoverSize = "medium"
	CoverLarge  CoverSize = "large"
)

// AnimeRecord is one normalized anime row keyed by MAL id.
type AnimeRecord struct {
	MalID         int
	Title         string
	TitleEnglish  *string
	TitleJapanese *string
	TitleSynonyms []string
	Synopsis      *string
	Background    *string
	Type          AnimeType
	Status        AnimeStatus
	Episodes      *int
	Duration      *int // minutes
	AiredFrom     *string
	AiredTo       *string
	Season        *Season
	Year          *int
	Score         *float64
	ScoredBy      int
	Rank          *int
	Popularity    *int
	Members       *int
	Favorites     int
	Rating        *string
	Source        *string
	Studios       []string
	Producers     []string
	Licensors     []string
	Broadcast     *Broadcast
	Trailer       *string
	MalURL        string
	Approved      bool
	Airing        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type Broadcast struct {
	Day      *string `json:"day"`
	Time     *string `json:"time"`
	Timezone *string `json:"timezone"`
	String   *string `json:"string"`
}

// GenreRecord is one genre row keyed for upsert by name.
type GenreRecord struct {
	Name      string
	Slug      string
	MalID     int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CoverRecord is one cover row; covers are owned by exactly one anime.
type CoverRecord struct {
	AnimeID   string
	URL       string
	Size      CoverSize
	IsPrimary bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AnimeGenre links an anime surrogate id to a genre surrogate id.
type AnimeGenre struct {
	AnimeID string
	GenreID string
}

// AnimeRef is what the store returns per upserted anime row. Order of refs
// is not guaranteed to match insert order.
type AnimeRef struct {
	ID    string
	MalID int
}
