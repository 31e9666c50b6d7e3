package jikan

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

type fakeProvider struct {
	pages []AnimeListResponse
	err   error
	calls []int
}

func (f *fakeProvider) ListAnime(_ context.Context, page, _ int) (*AnimeListResponse, error) {
	f.calls = append(f.calls, page)
	if page > len(f.pages) {
		if f.err != nil {
			return nil, f.err
		}
		return nil, &StatusError{Status: 404}
	}
	resp := f.pages[page-1]
	return &resp, nil
}

func anime(malID int, typ string) AnimeData {
	return AnimeData{MalID: malID, Type: typ}
}

func TestPager_SinglePage(t *testing.T) {
	fp := &fakeProvider{pages: []AnimeListResponse{
		{Data: []AnimeData{anime(1, "TV"), anime(2, "Movie")}, Pagination: Pagination{HasNextPage: false}},
	}}
	p := &Pager{Client: fp, Log: zap.NewNop(), Delay: time.Millisecond}

	records, err := p.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if len(fp.calls) != 1 || fp.calls[0] != 1 {
		t.Fatalf("expected exactly one fetch of page 1, got %v", fp.calls)
	}
}

func TestPager_WalksAllPages(t *testing.T) {
	fp := &fakeProvider{pages: []AnimeListResponse{
		{Data: []AnimeData{anime(1, "TV")}, Pagination: Pagination{HasNextPage: true}},
		{Data: []AnimeData{anime(2, "TV")}, Pagination: Pagination{HasNextPage: true}},
		{Data: []AnimeData{anime(3, "TV")}, Pagination: Pagination{HasNextPage: false}},
	}}
	p := &Pager{Client: fp, Log: zap.NewNop(), Delay: time.Millisecond}

	records, err := p.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	if len(fp.calls) != 3 {
		t.Fatalf("expected 3 page fetches, got %v", fp.calls)
	}
}

func TestPager_FailFastKeepsAccumulated(t *testing.T) {
	fp := &fakeProvider{pages: []AnimeListResponse{
		{Data: []AnimeData{anime(1, "TV"), anime(2, "TV")}, Pagination: Pagination{HasNextPage: true}},
	}}
	p := &Pager{Client: fp, Log: zap.NewNop(), Delay: time.Millisecond}

	records, err := p.FetchAll(context.Background())
	if err == nil {
		t.Fatal("expected error from failed page 2")
	}
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	// Page 1's records survive the page 2 failure.
	if len(records) != 2 {
		t.Fatalf("expected 2 accumulated records, got %d", len(records))
	}
	// No retry of the failed page.
	if len(fp.calls) != 2 {
		t.Fatalf("expected 2 fetches (no retry), got %v", fp.calls)
	}
}

func TestPager_FirstPageFails(t *testing.T) {
	fp := &fakeProvider{err: &StatusError{Status: 500}}
	p := &Pager{Client: fp, Log: zap.NewNop(), Delay: time.Millisecond}

	records, err := p.FetchAll(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestPager_AppliesFilter(t *testing.T) {
	score := 8.0
	episodes := 12
	keeper := AnimeData{MalID: 1, Type: "TV", Status: "Finished Airing", Score: &score, Episodes: &episodes}
	fp := &fakeProvider{pages: []AnimeListResponse{
		{Data: []AnimeData{keeper, anime(2, "Movie"), anime(3, "OVA")}, Pagination: Pagination{HasNextPage: false}},
	}}
	p := &Pager{Client: fp, Log: zap.NewNop(), Delay: time.Millisecond, Filter: TVSeriesFilter}

	records, err := p.FetchAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].MalID != 1 {
		t.Fatalf("expected only the TV series to survive, got %v", records)
	}
}

func TestTVSeriesFilter(t *testing.T) {
	score := 8.0
	low := 4.5
	episodes := 12
	one := 1

	ok := AnimeData{Type: "TV", Status: "Currently Airing", Score: &score, Episodes: &episodes}
	if !TVSeriesFilter(ok) {
		t.Fatal("expected airing TV series to pass")
	}

	cases := map[string]AnimeData{
		"not tv":         {Type: "Movie", Status: "Finished Airing", Score: &score, Episodes: &episodes},
		"no score":       {Type: "TV", Status: "Finished Airing", Episodes: &episodes},
		"low score":      {Type: "TV", Status: "Finished Airing", Score: &low, Episodes: &episodes},
		"single episode": {Type: "TV", Status: "Finished Airing", Score: &score, Episodes: &one},
		"no episodes":    {Type: "TV", Status: "Finished Airing", Score: &score},
		"odd status":     {Type: "TV", Status: "Cancelled", Score: &score, Episodes: &episodes},
	}
	for name, a := range cases {
		if TVSeriesFilter(a) {
			t.Fatalf("%s: expected filter to reject %+v", name, a)
		}
	}
}
