package search

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"
)

// fakeProvider records the queries it receives and replies from a canned
// script, one entry per call.
type fakeProvider struct {
	name    string
	queries []string
	results [][]RawListing
	err     error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Search(ctx context.Context, query, location string) ([]RawListing, error) {
	call := len(f.queries)
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	if call < len(f.results) {
		return f.results[call], nil
	}
	return nil, nil
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PaceInterval = time.Millisecond
	return cfg
}

func keywordFixture(n int) KeywordSet {
	var ks KeywordSet
	for i := 0; i < n; i++ {
		ks = append(ks, KeywordEntry{Primary: fmt.Sprintf("Role %d", i)})
	}
	return ks
}

func TestSearchEmptyKeywordSet(t *testing.T) {
	svc := NewService(&fakeProvider{name: "primary"}, nil, testConfig())
	if _, err := svc.Search(context.Background(), nil, ""); !errors.Is(err, ErrEmptyKeywordSet) {
		t.Fatalf("Search() error = %v, want ErrEmptyKeywordSet", err)
	}
}

func TestSearchFallsBackWhenProvidersReturnNothing(t *testing.T) {
	keywords := KeywordSet{
		{Primary: "Backend Engineer", Related: []string{"Python", "API"}, Level: "mid"},
	}

	svc := NewService(&fakeProvider{name: "primary", err: errors.New("boom")}, nil, testConfig())

	got, err := svc.Search(context.Background(), keywords, "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	want := Fallback(keywords, "")
	gotJSON, _ := json.Marshal(got)
	wantJSON, _ := json.Marshal(want)
	if string(gotJSON) != string(wantJSON) {
		t.Errorf("Search() = %s, want fallback output %s", gotJSON, wantJSON)
	}

	// Determinism: a second identical run yields byte-identical results.
	again, err := svc.Search(context.Background(), keywords, "")
	if err != nil {
		t.Fatalf("Search() second run error = %v", err)
	}
	againJSON, _ := json.Marshal(again)
	if string(againJSON) != string(gotJSON) {
		t.Errorf("Search() not deterministic:\nfirst:  %s\nsecond: %s", gotJSON, againJSON)
	}
}

func TestSearchQueriesAtMostThreeKeywords(t *testing.T) {
	primary := &fakeProvider{name: "primary"}
	svc := NewService(primary, nil, testConfig())

	if _, err := svc.Search(context.Background(), keywordFixture(5), ""); err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if len(primary.queries) != 3 {
		t.Errorf("primary queried %d times, want 3", len(primary.queries))
	}
	if primary.queries[0] != "Role 0" || primary.queries[2] != "Role 2" {
		t.Errorf("unexpected query order: %v", primary.queries)
	}
}

func TestSearchTakesFirstFivePerResponse(t *testing.T) {
	var big []RawListing
	for i := 0; i < 8; i++ {
		big = append(big, RawListing{ID: fmt.Sprintf("p_%d", i), Title: "T", Company: "C"})
	}

	primary := &fakeProvider{name: "primary", results: [][]RawListing{big}}
	svc := NewService(primary, nil, testConfig())

	got, err := svc.Search(context.Background(), keywordFixture(1), "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 5 {
		t.Errorf("Search() returned %d listings, want 5 (first five of one response)", len(got))
	}
}

func TestSearchSkipsFailingCallAndContinues(t *testing.T) {
	// First call errors, later calls succeed; the batch must survive.
	primary := &scriptedProvider{
		name: "primary",
		script: []scriptedCall{
			{err: errors.New("timeout")},
			{results: []RawListing{{ID: "ok_1", Title: "T", Company: "C"}}},
			{results: []RawListing{{ID: "ok_2", Title: "T", Company: "C"}}},
		},
	}
	svc := NewService(primary, nil, testConfig())

	got, err := svc.Search(context.Background(), keywordFixture(3), "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Search() returned %d listings, want 2 from the surviving calls", len(got))
	}
}

func TestSearchUsesSecondaryWhenFallbackDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.DisableFallback = true

	primary := &fakeProvider{name: "primary", err: errors.New("down")}
	secondary := &fakeProvider{
		name: "secondary",
		results: [][]RawListing{
			{{ID: "adz_1", Title: "Go Developer", Company: "Initech"}},
		},
	}

	svc := NewService(primary, secondary, cfg)

	got, err := svc.Search(context.Background(), keywordFixture(2), "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "adz_1" {
		t.Fatalf("Search() = %+v, want the secondary provider's listing", got)
	}
	if len(secondary.queries) != 2 {
		t.Errorf("secondary queried %d times, want 2 (same keyword iteration)", len(secondary.queries))
	}
}

func TestSearchReturnsEmptyWhenEverythingFails(t *testing.T) {
	cfg := testConfig()
	cfg.DisableFallback = true

	primary := &fakeProvider{name: "primary", err: errors.New("down")}
	secondary := &fakeProvider{name: "secondary", err: errors.New("down too")}

	svc := NewService(primary, secondary, cfg)

	got, err := svc.Search(context.Background(), keywordFixture(1), "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Search() = %v, want empty non-nil slice", got)
	}
}

func TestSearchDeduplicatesAcrossKeywords(t *testing.T) {
	shared := RawListing{ID: "dup", Title: "Engineer", Company: "Acme"}
	primary := &fakeProvider{
		name: "primary",
		results: [][]RawListing{
			{shared, {ID: "a", Title: "T", Company: "C"}},
			{shared, {ID: "b", Title: "T", Company: "C"}},
		},
	}
	svc := NewService(primary, nil, testConfig())

	got, err := svc.Search(context.Background(), keywordFixture(2), "")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	count := 0
	for _, job := range got {
		if job.ID == "dup" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("duplicate id appears %d times, want 1", count)
	}
	if len(got) != 3 {
		t.Errorf("Search() returned %d listings, want 3", len(got))
	}
}

// scriptedProvider returns a fixed outcome per call index.
type scriptedCall struct {
	results []RawListing
	err     error
}

type scriptedProvider struct {
	name   string
	script []scriptedCall
	calls  int
}

func (s *scriptedProvider) Name() string { return s.name }

func (s *scriptedProvider) Search(ctx context.Context, query, location string) ([]RawListing, error) {
	call := s.calls
	s.calls++
	if call >= len(s.script) {
		return nil, nil
	}
	return s.script[call].results, s.script[call].err
}
