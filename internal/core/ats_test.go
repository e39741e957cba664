package core

import (
	"testing"

	"github.com/jobnexus/jobnexus/internal/ai"
)

func TestCalculateATSScore(t *testing.T) {
	base := ai.ATSAnalysis{
		SkillsRelevance:   8,
		MarketDemand:      6,
		ExperienceQuality: 8,
		ProjectQuality:    6,
		Innovation:        4,
		EducationQuality:  6,
		ATSCompliance:     8,
		Readability:       8,
		Organization:      8,
		Formatting:        8,
	}

	tests := []struct {
		name   string
		mutate func(a *ai.ATSAnalysis)
		links  LinkValidation
		want   int
	}{
		{
			name:   "weighted categories, no links, no bonus",
			mutate: func(a *ai.ATSAnalysis) { a.AverageCompanyRating = 7 },
			want:   69, // (7*.25 + 8*.25 + 5*.20 + 6*.15 + 8*.10 + 8*.05) * 10
		},
		{
			name:   "reputable companies add the bonus",
			mutate: func(a *ai.ATSAnalysis) { a.AverageCompanyRating = 8 },
			want:   74,
		},
		{
			name: "perfect resume is capped at 100",
			mutate: func(a *ai.ATSAnalysis) {
				*a = ai.ATSAnalysis{
					SkillsRelevance: 10, MarketDemand: 10,
					ExperienceQuality: 10,
					ProjectQuality:    10, Innovation: 10,
					EducationQuality: 10,
					ATSCompliance:    10, Readability: 10, Organization: 10, Formatting: 10,
					AverageCompanyRating: 9,
				}
			},
			links: LinkValidation{TotalLinks: 2, ValidLinks: 2},
			want:  100,
		},
		{
			name:   "broken links drag the link share down",
			mutate: func(a *ai.ATSAnalysis) { a.AverageCompanyRating = 7 },
			links:  LinkValidation{TotalLinks: 4, ValidLinks: 0},
			want:   65, // links share drops from 8 to 0
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := base
			tt.mutate(&a)
			if got := CalculateATSScore(&a, tt.links); got != tt.want {
				t.Errorf("CalculateATSScore() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestValidateLinks(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantTotal int
		wantValid int
	}{
		{
			name:      "no links",
			text:      "plain resume text",
			wantTotal: 0,
			wantValid: 0,
		},
		{
			name:      "two valid links",
			text:      "see https://github.com/me and http://example.com/portfolio for work",
			wantTotal: 2,
			wantValid: 2,
		},
		{
			name:      "link inside parentheses",
			text:      "(profile: https://linkedin.com/in/me)",
			wantTotal: 1,
			wantValid: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateLinks(tt.text)
			if got.TotalLinks != tt.wantTotal || got.ValidLinks != tt.wantValid {
				t.Errorf("ValidateLinks() = %+v, want total %d valid %d", got, tt.wantTotal, tt.wantValid)
			}
		})
	}
}
