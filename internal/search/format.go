package search

import (
	"sort"
	"strings"
)

const (
	maxResults       = 10
	descriptionLimit = 200
	defaultCountry   = "US"

	placeholderLogoURL = "https://via.placeholder.com/120x120?text="
	genericJobsURL     = "https://www.linkedin.com/jobs/"
)

// Format deduplicates a raw provider pool by listing identifier (first
// occurrence wins), normalizes each survivor, scores it against the keyword
// set, and returns at most maxResults listings sorted by match score
// descending. Ties keep their input order.
func Format(pool []RawListing, keywords KeywordSet) []Listing {
	seen := make(map[string]bool, len(pool))
	jobs := make([]Listing, 0, maxResults)

	for _, raw := range pool {
		if seen[raw.ID] {
			continue
		}
		if len(jobs) == maxResults {
			break
		}
		seen[raw.ID] = true
		jobs = append(jobs, normalize(raw, keywords))
	}

	sort.SliceStable(jobs, func(i, j int) bool {
		return jobs[i].MatchScore > jobs[j].MatchScore
	})

	if len(jobs) > maxResults {
		jobs = jobs[:maxResults]
	}
	return jobs
}

func normalize(raw RawListing, keywords KeywordSet) Listing {
	title := raw.Title
	if title == "" {
		title = "Software Engineer"
	}

	company := raw.Company
	if company == "" {
		company = "Tech Company"
	}

	logo := raw.CompanyLogo
	if logo == "" {
		initial := "C"
		if raw.Company != "" {
			initial = string([]rune(raw.Company)[:1])
		}
		logo = placeholderLogoURL + initial
	}

	location := raw.City
	if location == "" {
		location = "Remote"
	}
	if raw.State != "" {
		location += ", " + raw.State
	}
	if raw.Country != "" && raw.Country != defaultCountry {
		location += ", " + raw.Country
	}

	mode := "On-site"
	switch {
	case raw.IsRemote:
		mode = "Remote"
	case strings.Contains(strings.ToLower(raw.Description), "hybrid"):
		mode = "Hybrid"
	}

	url := raw.ApplyLink
	if url == "" {
		url = raw.GoogleLink
	}
	if url == "" {
		url = genericJobsURL
	}

	posted := raw.PostedDate
	if posted == "" {
		posted = "Recently"
	}

	return Listing{
		ID:          raw.ID,
		Title:       title,
		Company:     company,
		CompanyLogo: logo,
		Location:    location,
		Mode:        mode,
		URL:         url,
		Description: truncate(plainText(raw.Description), descriptionLimit),
		MatchScore:  Score(raw, keywords),
		PostedDate:  posted,
	}
}

// truncate keeps the first limit characters and always appends an ellipsis,
// mirroring the card format the frontend expects.
func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) > limit {
		r = r[:limit]
	}
	return string(r) + "..."
}
