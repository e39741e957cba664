package search

import "strings"

const (
	baseScore = 70
	maxScore  = 98
)

// Score rates a raw listing against the full keyword set. The result is
// always in [70, 98]: every surfaced listing reads as at least moderately
// relevant, and 98 is reserved as a near-certain ceiling.
func Score(listing RawListing, keywords KeywordSet) int {
	text := strings.ToLower(listing.Title + " " + listing.Description + " " + listing.Company)

	total := 0
	matched := 0
	for _, entry := range keywords {
		terms := make([]string, 0, len(entry.Related)+1)
		terms = append(terms, entry.Primary)
		terms = append(terms, entry.Related...)

		total += len(terms)
		for _, term := range terms {
			if strings.Contains(text, strings.ToLower(term)) {
				matched++
			}
		}
	}

	score := baseScore
	if total > 0 {
		score += 25 * matched / total
	}
	if score > maxScore {
		score = maxScore
	}
	return score
}
