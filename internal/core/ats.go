package core

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"regexp"
	"strings"

	"github.com/jobnexus/jobnexus/internal/ai"
	"github.com/jobnexus/jobnexus/internal/observability"
	"github.com/jobnexus/jobnexus/internal/resume"
)

// Weighted category shares of the final ATS score.
const (
	weightSkills     = 0.25
	weightExperience = 0.25
	weightProjects   = 0.20
	weightEducation  = 0.15
	weightFormatting = 0.10
	weightLinks      = 0.05
)

type LinkValidation struct {
	TotalLinks int `json:"totalLinks"`
	ValidLinks int `json:"validLinks"`
}

// ATSReport is the response of the ATS analysis endpoint.
type ATSReport struct {
	ATSScore        int                    `json:"atsScore"`
	Analysis        *ai.ATSAnalysis        `json:"analysisResults"`
	LinkValidation  LinkValidation         `json:"linkValidation"`
	Recommendations []ai.ATSRecommendation `json:"recommendations"`
}

// ATSService scores how well a resume survives applicant tracking systems.
type ATSService struct {
	aiClient ai.Client
}

func NewATSService(aiClient ai.Client) *ATSService {
	return &ATSService{aiClient: aiClient}
}

func (s *ATSService) Analyze(ctx context.Context, filename string, data []byte) (*ATSReport, error) {
	text, err := resume.ExtractText(filename, data)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(text)) < resume.MinTextLength {
		return nil, ErrInsufficientText
	}

	observability.IncAICall("ats_analyzer")
	analysis, err := s.aiClient.AnalyzeATS(ctx, text)
	if err != nil {
		observability.IncError(observability.ErrorAI, "ats_analyzer")
		return nil, fmt.Errorf("ATS analysis failed: %w", err)
	}

	links := ValidateLinks(text)

	return &ATSReport{
		ATSScore:        CalculateATSScore(analysis, links),
		Analysis:        analysis,
		LinkValidation:  links,
		Recommendations: analysis.Recommendations,
	}, nil
}

var linkPattern = regexp.MustCompile(`https?://[^\s)>\]]+`)

// ValidateLinks counts URLs in the resume text and checks that each one
// parses with a host. No network calls are made.
func ValidateLinks(text string) LinkValidation {
	links := linkPattern.FindAllString(text, -1)

	valid := 0
	for _, link := range links {
		u, err := url.Parse(link)
		if err == nil && u.Host != "" {
			valid++
		}
	}
	return LinkValidation{TotalLinks: len(links), ValidLinks: valid}
}

// CalculateATSScore folds the per-category ratings into a single 0-100
// score. Category weights sum to 1; a reputable-company bonus of 5 points is
// added on top, and the result is capped at 100.
func CalculateATSScore(a *ai.ATSAnalysis, links LinkValidation) int {
	skillsScore := (a.SkillsRelevance + a.MarketDemand) / 2
	experienceScore := a.ExperienceQuality
	projectsScore := (a.ProjectQuality + a.Innovation) / 2
	educationScore := a.EducationQuality
	formattingScore := (a.ATSCompliance + a.Readability + a.Organization + a.Formatting) / 4

	// A resume with no links at all is not penalized to zero.
	linksScore := 8.0
	if links.TotalLinks > 0 {
		linksScore = float64(links.ValidLinks) / float64(links.TotalLinks) * 10
	}

	bonus := 0.0
	if a.AverageCompanyRating > 7 {
		bonus = 5
	}

	total := (skillsScore*weightSkills +
		experienceScore*weightExperience +
		projectsScore*weightProjects +
		educationScore*weightEducation +
		formattingScore*weightFormatting +
		linksScore*weightLinks) * 10

	score := int(math.Round(total + bonus))
	if score > 100 {
		score = 100
	}
	return score
}
