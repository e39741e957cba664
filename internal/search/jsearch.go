package search

import (
	"context"
	"net/url"
	"time"

	"github.com/jobnexus/jobnexus/internal/httpx"
)

const jsearchBaseURL = "https://jsearch.p.rapidapi.com/search"

// JSearchClient queries the JSearch API (RapidAPI), which aggregates
// listings from several job boards. Auth is an API key header.
type JSearchClient struct {
	apiKey string
	client *httpx.Client
}

func NewJSearchClient(apiKey string, timeout time.Duration) *JSearchClient {
	return &JSearchClient{
		apiKey: apiKey,
		client: httpx.NewClient(timeout),
	}
}

func (j *JSearchClient) Name() string {
	return "jsearch"
}

type jsearchResponse struct {
	Data []RawListing `json:"data"`
}

func (j *JSearchClient) Search(ctx context.Context, query, location string) ([]RawListing, error) {
	params := url.Values{
		"query":            {query},
		"page":             {"1"},
		"num_pages":        {"1"},
		"date_posted":      {"week"},
		"remote_jobs_only": {"false"},
		"employment_types": {"FULLTIME,PARTTIME,CONTRACTOR"},
	}
	if location != "" {
		params.Set("location", location)
	}

	headers := map[string]string{
		"X-RapidAPI-Key":  j.apiKey,
		"X-RapidAPI-Host": "jsearch.p.rapidapi.com",
	}

	var resp jsearchResponse
	if err := j.client.GetJSON(ctx, jsearchBaseURL, params, headers, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}
