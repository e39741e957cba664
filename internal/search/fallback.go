package search

import (
	"fmt"
	"strings"
)

var fallbackCompanies = []struct {
	name string
	logo string
}{
	{"TechCorp", "https://via.placeholder.com/120x120?text=TC"},
	{"InnovateLabs", "https://via.placeholder.com/120x120?text=IL"},
	{"DataSoft", "https://via.placeholder.com/120x120?text=DS"},
	{"CloudTech", "https://via.placeholder.com/120x120?text=CT"},
	{"DevSolutions", "https://via.placeholder.com/120x120?text=DS"},
}

var fallbackLocations = []string{"San Francisco, CA", "New York, NY", "Austin, TX", "Seattle, WA", "Remote"}

var fallbackModes = []string{"Remote", "Hybrid", "On-site"}

// Fallback synthesizes listings when no provider returned anything. It is
// deterministic and network-free: the same keyword set and location always
// yield identical output. The result is already normalized and ranked.
func Fallback(keywords KeywordSet, location string) []Listing {
	locations := fallbackLocations
	if strings.TrimSpace(location) != "" {
		locations = []string{location, "Remote"}
	}

	n := len(keywords)
	if n > 5 {
		n = 5
	}

	jobs := make([]Listing, 0, n)
	for i := 0; i < n; i++ {
		company := fallbackCompanies[i%len(fallbackCompanies)]
		title := keywords[i].Primary

		jobs = append(jobs, Listing{
			ID:          fmt.Sprintf("fallback_%d", i),
			Title:       title,
			Company:     company.name,
			CompanyLogo: company.logo,
			Location:    locations[i%len(locations)],
			Mode:        fallbackModes[i%len(fallbackModes)],
			URL:         "https://www.linkedin.com/jobs/search/?keywords=" + strings.ReplaceAll(title, " ", "%20"),
			Description: fmt.Sprintf("Exciting opportunity for a %s role.", title),
			MatchScore:  85 - i*5,
			PostedDate:  "Recently",
		})
	}
	return jobs
}
