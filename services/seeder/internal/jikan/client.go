package jikan

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "https://api.jikan.moe/v4"
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTPClient: &http.Client{Timeout: 10 * time.Second}}
}

// NamedEntity is a producer, licensor or studio reference.
type NamedEntity struct {
	MalID int    `json:"mal_id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

// Genre covers the four genre-like collections (genres, explicit_genres,
// themes, demographics); they share one shape.
type Genre struct {
	MalID int    `json:"mal_id"`
	Type  string `json:"type"`
	Name  string `json:"name"`
	URL   string `json:"url"`
}

type Image struct {
	ImageURL      string `json:"image_url"`
	SmallImageURL string `json:"small_image_url"`
	LargeImageURL string `json:"large_image_url"`
}

type Images struct {
	JPG  Image `json:"jpg"`
	WebP Image `json:"webp"`
}

type Trailer struct {
	YoutubeID *string `json:"youtube_id"`
	URL       *string `json:"url"`
	EmbedURL  *string `json:"embed_url"`
}

type Aired struct {
	From *string `json:"from"`
	To   *string `json:"to"`
}

type Broadcast struct {
	Day      *string `json:"day"`
	Time     *string `json:"time"`
	Timezone *string `json:"timezone"`
	String   *string `json:"string"`
}

// AnimeData is one anime as returned by the list endpoint. Nullable API
// fields stay pointers so downstream mapping can tell absent from zero.
type AnimeData struct {
	MalID          int           `json:"mal_id"`
	URL            string        `json:"url"`
	Images         Images        `json:"images"`
	Trailer        Trailer       `json:"trailer"`
	Approved       bool          `json:"approved"`
	Title          string        `json:"title"`
	TitleEnglish   *string       `json:"title_english"`
	TitleJapanese  *string       `json:"title_japanese"`
	TitleSynonyms  []string      `json:"title_synonyms"`
	Type           string        `json:"type"`
	Source         *string       `json:"source"`
	Episodes       *int          `json:"episodes"`
	Status         string        `json:"status"`
	Airing         bool          `json:"airing"`
	Aired          Aired         `json:"aired"`
	Duration       *string       `json:"duration"`
	Rating         *string       `json:"rating"`
	Score          *float64      `json:"score"`
	ScoredBy       *int          `json:"scored_by"`
	Rank           *int          `json:"rank"`
	Popularity     *int          `json:"popularity"`
	Members        *int          `json:"members"`
	Favorites      *int          `json:"favorites"`
	Synopsis       *string       `json:"synopsis"`
	Background     *string       `json:"background"`
	Season         *string       `json:"season"`
	Year           *int          `json:"year"`
	Broadcast      Broadcast     `json:"broadcast"`
	Producers      []NamedEntity `json:"producers"`
	Licensors      []NamedEntity `json:"licensors"`
	Studios        []NamedEntity `json:"studios"`
	Genres         []Genre       `json:"genres"`
	ExplicitGenres []Genre       `json:"explicit_genres"`
	Themes         []Genre       `json:"themes"`
	Demographics   []Genre       `json:"demographics"`
}

type Pagination struct {
	LastVisiblePage int  `json:"last_visible_page"`
	HasNextPage     bool `json:"has_next_page"`
	CurrentPage     int  `json:"current_page"`
}

type AnimeListResponse struct {
	Data       []AnimeData `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// StatusError reports a non-2xx response from the catalog API.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("jikan: status %d body=%q", e.Status, e.Body)
}

// ListAnime fetches one page of the full anime catalog.
func (c *Client) ListAnime(ctx context.Context, page, limit int) (*AnimeListResponse, error) {
	u := fmt.Sprintf("%s/anime?page=%d&limit=%d", c.BaseURL, page, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "animeswipe-seeder/1.0")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Status: resp.StatusCode, Body: string(b[:min(len(b), 200)])}
	}
	var out AnimeListResponse
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("jikan: decode error: %w body=%q", err, string(b[:min(len(b), 200)]))
	}
	return &out, nil
}
