package ai

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jobnexus/jobnexus/internal/search"
)

type Client interface {
	ParseResume(ctx context.Context, resumeText string) (*ResumeAnalysis, error)
	GenerateKeywords(ctx context.Context, analysis *ResumeAnalysis) (search.KeywordSet, error)
	AnalyzeATS(ctx context.Context, resumeText string) (*ATSAnalysis, error)
}

// NewClient creates an AI client based on the AI_PROVIDER environment variable.
// Supported providers: "gemini" (default if GEMINI_API_KEY is set), "mock"
//
// Environment variables:
//   - AI_PROVIDER: "gemini" or "mock" (optional, auto-detected)
//   - GEMINI_API_KEY: Your Google Gemini API key (get free at https://aistudio.google.com/apikey)
func NewClient() Client {
	provider := strings.ToLower(os.Getenv("AI_PROVIDER"))
	geminiKey := os.Getenv("GEMINI_API_KEY")

	// Auto-detect provider if not specified
	if provider == "" {
		if geminiKey != "" {
			provider = "gemini"
		} else {
			provider = "mock"
		}
	}

	switch provider {
	case "gemini":
		if geminiKey == "" {
			fmt.Println("WARNING: AI_PROVIDER=gemini but GEMINI_API_KEY not set, falling back to mock")
			return NewMockClient()
		}
		return NewGeminiClient(geminiKey)
	default:
		fmt.Println("Using Mock AI client (set GEMINI_API_KEY for real AI)")
		return NewMockClient()
	}
}

// PersonalInfo is the contact block extracted from a resume.
type PersonalInfo struct {
	Name     string `json:"name"`
	Contact  string `json:"contact"`
	Location string `json:"location"`
}

type Education struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
}

type Experience struct {
	Position         string   `json:"position"`
	Company          string   `json:"company"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements"`
}

type Project struct {
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// ResumeAnalysis is the structured form of a parsed resume.
type ResumeAnalysis struct {
	PersonalInfo   PersonalInfo `json:"personal_info"`
	Skills         []string     `json:"skills"`
	Education      []Education  `json:"education"`
	Experience     []Experience `json:"experience"`
	Projects       []Project    `json:"projects"`
	Certifications []string     `json:"certifications"`
	Keywords       []string     `json:"keywords"`
}

// ATSAnalysis holds the per-category ratings (1-10 scale) behind an ATS
// score, plus improvement suggestions.
type ATSAnalysis struct {
	SkillsRelevance      float64             `json:"skillsRelevance"`
	MarketDemand         float64             `json:"marketDemand"`
	ExperienceQuality    float64             `json:"experienceQuality"`
	ProjectQuality       float64             `json:"projectQuality"`
	Innovation           float64             `json:"innovation"`
	EducationQuality     float64             `json:"educationQuality"`
	ATSCompliance        float64             `json:"atsCompliance"`
	Readability          float64             `json:"readability"`
	Organization         float64             `json:"organization"`
	Formatting           float64             `json:"formatting"`
	AverageCompanyRating float64             `json:"averageCompanyRating"`
	Analysis             string              `json:"analysis"`
	Recommendations      []ATSRecommendation `json:"recommendations"`
}

type ATSRecommendation struct {
	Category   string `json:"category"`
	Suggestion string `json:"suggestion"`
	Priority   string `json:"priority"`
}

// MockClient produces deterministic output without network access. Used at
// keyless startup and in tests.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

var mockSkillPool = []string{"Go", "Python", "JavaScript", "SQL", "Docker", "Kubernetes", "AWS", "React"}

func (m *MockClient) ParseResume(ctx context.Context, resumeText string) (*ResumeAnalysis, error) {
	// Surface whichever known skills appear in the text.
	lower := strings.ToLower(resumeText)
	var skills []string
	for _, skill := range mockSkillPool {
		if strings.Contains(lower, strings.ToLower(skill)) {
			skills = append(skills, skill)
		}
	}
	if len(skills) == 0 {
		skills = []string{"Software Engineering"}
	}

	return &ResumeAnalysis{
		PersonalInfo: PersonalInfo{Name: "Candidate"},
		Skills:       skills,
		Keywords:     skills,
	}, nil
}

func (m *MockClient) GenerateKeywords(ctx context.Context, analysis *ResumeAnalysis) (search.KeywordSet, error) {
	primary := "Software Engineer"
	if len(analysis.Experience) > 0 && analysis.Experience[0].Position != "" {
		primary = analysis.Experience[0].Position
	}

	return search.KeywordSet{
		{
			Primary: primary,
			Related: analysis.Skills,
			Level:   "mid",
		},
	}, nil
}

func (m *MockClient) AnalyzeATS(ctx context.Context, resumeText string) (*ATSAnalysis, error) {
	return &ATSAnalysis{
		SkillsRelevance:   7,
		MarketDemand:      7,
		ExperienceQuality: 6,
		ProjectQuality:    6,
		Innovation:        5,
		EducationQuality:  7,
		ATSCompliance:     8,
		Readability:       8,
		Organization:      7,
		Formatting:        7,
		Analysis:          "Mock ATS analysis.",
	}, nil
}
