package jikan

import "context"

// Provider is the port for fetching catalog pages from the Jikan/MAL API.
type Provider interface {
	ListAnime(ctx context.Context, page, limit int) (*AnimeListResponse, error)
}
