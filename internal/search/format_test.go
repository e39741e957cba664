package search

import (
	"fmt"
	"sort"
	"strings"
	"testing"
)

func TestFormatDeduplicatesFirstWins(t *testing.T) {
	keywords := KeywordSet{{Primary: "Engineer"}}

	pool := []RawListing{
		{ID: "j1", Title: "First Engineer", Company: "A"},
		{ID: "j2", Title: "Other Engineer", Company: "B"},
		{ID: "j1", Title: "Duplicate Engineer", Company: "C"},
	}

	jobs := Format(pool, keywords)
	if len(jobs) != 2 {
		t.Fatalf("Format() returned %d jobs, want 2", len(jobs))
	}

	seen := map[string]bool{}
	for _, job := range jobs {
		if seen[job.ID] {
			t.Errorf("duplicate id %q in output", job.ID)
		}
		seen[job.ID] = true
		if job.ID == "j1" && job.Title != "First Engineer" {
			t.Errorf("kept %q for j1, want the first-seen record", job.Title)
		}
	}
}

func TestFormatBoundsAndOrder(t *testing.T) {
	keywords := KeywordSet{{Primary: "golang", Related: []string{"backend"}}}

	var pool []RawListing
	for i := 0; i < 15; i++ {
		desc := "unrelated role"
		if i%2 == 0 {
			desc = "golang backend position"
		}
		pool = append(pool, RawListing{
			ID:          fmt.Sprintf("job_%d", i),
			Title:       "Engineer",
			Company:     "Acme",
			Description: desc,
		})
	}

	jobs := Format(pool, keywords)
	if len(jobs) > 10 {
		t.Fatalf("Format() returned %d jobs, want <= 10", len(jobs))
	}

	if !sort.SliceIsSorted(jobs, func(i, j int) bool {
		return jobs[i].MatchScore > jobs[j].MatchScore
	}) {
		t.Errorf("output not sorted by match_score descending: %+v", jobs)
	}
}

func TestFormatTiesPreserveInputOrder(t *testing.T) {
	keywords := KeywordSet{{Primary: "nothing matches"}}

	pool := []RawListing{
		{ID: "a", Title: "T1", Company: "C"},
		{ID: "b", Title: "T2", Company: "C"},
		{ID: "c", Title: "T3", Company: "C"},
	}

	jobs := Format(pool, keywords)
	wantOrder := []string{"a", "b", "c"}
	for i, job := range jobs {
		if job.ID != wantOrder[i] {
			t.Errorf("jobs[%d].ID = %q, want %q (equal scores must keep input order)", i, job.ID, wantOrder[i])
		}
	}
}

func TestFormatDescriptionTruncation(t *testing.T) {
	keywords := KeywordSet{{Primary: "x"}}
	pool := []RawListing{
		{ID: "j1", Title: "T", Company: "C", Description: strings.Repeat("a", 500)},
	}

	jobs := Format(pool, keywords)
	if got := len(jobs[0].Description); got != 203 {
		t.Errorf("description length = %d, want 203 (200 chars + ellipsis)", got)
	}
	if !strings.HasSuffix(jobs[0].Description, "...") {
		t.Errorf("description %q does not end with ellipsis", jobs[0].Description)
	}
}

func TestNormalizeDefaults(t *testing.T) {
	keywords := KeywordSet{{Primary: "x"}}

	tests := []struct {
		name string
		raw  RawListing
		want func(t *testing.T, job Listing)
	}{
		{
			name: "empty fields get defaults",
			raw:  RawListing{ID: "j1"},
			want: func(t *testing.T, job Listing) {
				if job.Title != "Software Engineer" {
					t.Errorf("Title = %q", job.Title)
				}
				if job.Company != "Tech Company" {
					t.Errorf("Company = %q", job.Company)
				}
				if job.Location != "Remote" {
					t.Errorf("Location = %q", job.Location)
				}
				if job.Mode != "On-site" {
					t.Errorf("Mode = %q", job.Mode)
				}
				if job.URL != "https://www.linkedin.com/jobs/" {
					t.Errorf("URL = %q", job.URL)
				}
				if job.PostedDate != "Recently" {
					t.Errorf("PostedDate = %q", job.PostedDate)
				}
				if job.CompanyLogo != "https://via.placeholder.com/120x120?text=C" {
					t.Errorf("CompanyLogo = %q", job.CompanyLogo)
				}
			},
		},
		{
			name: "placeholder logo uses company initial",
			raw:  RawListing{ID: "j1", Company: "Globex"},
			want: func(t *testing.T, job Listing) {
				if job.CompanyLogo != "https://via.placeholder.com/120x120?text=G" {
					t.Errorf("CompanyLogo = %q", job.CompanyLogo)
				}
			},
		},
		{
			name: "location composes city, state, and non-US country",
			raw:  RawListing{ID: "j1", City: "Toronto", State: "ON", Country: "CA"},
			want: func(t *testing.T, job Listing) {
				if job.Location != "Toronto, ON, CA" {
					t.Errorf("Location = %q", job.Location)
				}
			},
		},
		{
			name: "default country is omitted",
			raw:  RawListing{ID: "j1", City: "Austin", State: "TX", Country: "US"},
			want: func(t *testing.T, job Listing) {
				if job.Location != "Austin, TX" {
					t.Errorf("Location = %q", job.Location)
				}
			},
		},
		{
			name: "remote flag wins over hybrid text",
			raw:  RawListing{ID: "j1", IsRemote: true, Description: "hybrid schedule"},
			want: func(t *testing.T, job Listing) {
				if job.Mode != "Remote" {
					t.Errorf("Mode = %q, want Remote", job.Mode)
				}
			},
		},
		{
			name: "hybrid detected in description",
			raw:  RawListing{ID: "j1", Description: "This is a Hybrid role"},
			want: func(t *testing.T, job Listing) {
				if job.Mode != "Hybrid" {
					t.Errorf("Mode = %q, want Hybrid", job.Mode)
				}
			},
		},
		{
			name: "google link used when apply link missing",
			raw:  RawListing{ID: "j1", GoogleLink: "https://g.co/jobs/1"},
			want: func(t *testing.T, job Listing) {
				if job.URL != "https://g.co/jobs/1" {
					t.Errorf("URL = %q", job.URL)
				}
			},
		},
		{
			name: "html markup is stripped from the description",
			raw:  RawListing{ID: "j1", Description: "<p>Build <b>APIs</b> in Go</p>"},
			want: func(t *testing.T, job Listing) {
				if job.Description != "Build APIs in Go..." {
					t.Errorf("Description = %q", job.Description)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs := Format([]RawListing{tt.raw}, keywords)
			if len(jobs) != 1 {
				t.Fatalf("Format() returned %d jobs, want 1", len(jobs))
			}
			tt.want(t, jobs[0])
		})
	}
}
