package search

import (
	"context"
	"net/url"
	"time"

	"github.com/jobnexus/jobnexus/internal/httpx"
)

const adzunaBaseURL = "https://api.adzuna.com/v1/api/jobs/us/search/1"

// AdzunaClient is the secondary provider. Its schema differs from JSearch,
// so the client maps responses into RawListing itself.
type AdzunaClient struct {
	appID  string
	appKey string
	client *httpx.Client
}

func NewAdzunaClient(appID, appKey string, timeout time.Duration) *AdzunaClient {
	return &AdzunaClient{
		appID:  appID,
		appKey: appKey,
		client: httpx.NewClient(timeout),
	}
}

func (a *AdzunaClient) Name() string {
	return "adzuna"
}

type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

type adzunaJob struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	Description string `json:"description"`
	RedirectURL string `json:"redirect_url"`
	Created     string `json:"created"`
}

func (a *AdzunaClient) Search(ctx context.Context, query, location string) ([]RawListing, error) {
	params := url.Values{
		"app_id":           {a.appID},
		"app_key":          {a.appKey},
		"what":             {query},
		"results_per_page": {"5"},
		"sort_by":          {"relevance"},
	}
	if location != "" {
		params.Set("where", location)
	}

	var resp adzunaResponse
	if err := a.client.GetJSON(ctx, adzunaBaseURL, params, nil, &resp); err != nil {
		return nil, err
	}

	listings := make([]RawListing, 0, len(resp.Results))
	for _, job := range resp.Results {
		listings = append(listings, RawListing{
			ID:          job.ID,
			Title:       job.Title,
			Company:     job.Company.DisplayName,
			City:        job.Location.DisplayName,
			Description: job.Description,
			ApplyLink:   job.RedirectURL,
			PostedDate:  job.Created,
		})
	}
	return listings, nil
}
