package jikan

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Filter decides whether a fetched record enters the accumulator.
// A nil Filter keeps everything.
type Filter func(AnimeData) bool

// TVSeriesFilter keeps broadcast series only: type TV, score above 5, more
// than one episode, and a recognized airing status.
func TVSeriesFilter(a AnimeData) bool {
	if a.Type != "TV" {
		return false
	}
	if a.Score == nil || *a.Score <= 5 {
		return false
	}
	if a.Episodes == nil || *a.Episodes <= 1 {
		return false
	}
	switch a.Status {
	case "Currently Airing", "Finished Airing", "Not yet aired":
		return true
	}
	return false
}

// Pager walks the catalog list endpoint page by page until the provider
// reports no next page, or the first fetch failure. Failures are fatal to
// pagination but not to the run: the records accumulated so far are
// returned alongside the error.
type Pager struct {
	Client   Provider
	Log      *zap.Logger
	PageSize int           // default 25
	Delay    time.Duration // pause between pages, default 1s
	Filter   Filter        // nil keeps everything
}

// FetchAll drains the catalog starting at page 1. No retries: a non-2xx
// response or transport error stops pagination immediately.
func (p *Pager) FetchAll(ctx context.Context) ([]AnimeData, error) {
	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = 25
	}
	delay := p.Delay
	if delay <= 0 {
		delay = time.Second
	}

	var records []AnimeData
	page := 1
	for {
		resp, err := p.Client.ListAnime(ctx, page, pageSize)
		if err != nil {
			var se *StatusError
			if errors.As(err, &se) {
				p.Log.Error("page fetch failed", zap.Int("page", page), zap.Int("status", se.Status))
			} else {
				p.Log.Error("page fetch failed", zap.Int("page", page), zap.Error(err))
			}
			return records, err
		}

		kept := 0
		for _, a := range resp.Data {
			if p.Filter != nil && !p.Filter(a) {
				continue
			}
			records = append(records, a)
			kept++
		}
		p.Log.Info("page fetched",
			zap.Int("page", page),
			zap.Int("kept", kept),
			zap.Int("total", len(records)))

		if !resp.Pagination.HasNextPage {
			return records, nil
		}
		page++

		// Fixed pause between pages for the provider's rate limit. No
		// backoff or jitter; the next page is never requested early.
		select {
		case <-ctx.Done():
			return records, ctx.Err()
		case <-time.After(delay):
		}
	}
}
