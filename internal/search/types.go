package search

import "context"

// KeywordEntry is one search-term cluster derived from a candidate's resume:
// a primary query term plus related terms, seniority, and preferred locations.
type KeywordEntry struct {
	Primary   string   `json:"primary_keyword"`
	Related   []string `json:"related_terms"`
	Level     string   `json:"job_level"`
	Locations []string `json:"locations"`
}

// KeywordSet is built once per request and treated as immutable afterwards.
type KeywordSet []KeywordEntry

// RawListing is a provider record before normalization. The JSON tags follow
// the JSearch response schema; other providers map their own schema into this
// shape in their client.
type RawListing struct {
	ID          string `json:"job_id"`
	Title       string `json:"job_title"`
	Company     string `json:"employer_name"`
	CompanyLogo string `json:"employer_logo"`
	City        string `json:"job_city"`
	State       string `json:"job_state"`
	Country     string `json:"job_country"`
	IsRemote    bool   `json:"job_is_remote"`
	Description string `json:"job_description"`
	ApplyLink   string `json:"job_apply_link"`
	GoogleLink  string `json:"job_google_link"`
	PostedDate  string `json:"job_posted_at_date"`
}

// Listing is the only externally visible job shape.
type Listing struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	CompanyLogo string `json:"company_logo"`
	Location    string `json:"location"`
	Mode        string `json:"mode"`
	URL         string `json:"url"`
	Description string `json:"description"`
	MatchScore  int    `json:"match_score"`
	PostedDate  string `json:"posted_date"`
}

// Provider fetches raw listings for a single query term. Implementations
// must honor the context deadline set by the aggregator.
type Provider interface {
	Name() string
	Search(ctx context.Context, query, location string) ([]RawListing, error)
}
