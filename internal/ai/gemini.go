package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jobnexus/jobnexus/internal/search"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel  = "gemini-2.5-flash"
)

// GeminiClient implements the Client interface using Google's Gemini API.
// Get your API key at: https://aistudio.google.com/apikey
type GeminiClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGeminiClient creates a new Gemini AI client.
func NewGeminiClient(apiKey string) *GeminiClient {
	return &GeminiClient{
		apiKey: apiKey,
		model:  defaultModel,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// WithModel allows changing the model (e.g., "gemini-2.5-pro")
func (g *GeminiClient) WithModel(model string) *GeminiClient {
	g.model = model
	return g
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature      float64 `json:"temperature"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error,omitempty"`
}

func (g *GeminiClient) callAPI(ctx context.Context, prompt string) (string, error) {
	url := fmt.Sprintf("%s/%s:generateContent?key=%s", geminiBaseURL, g.model, g.apiKey)

	reqBody := geminiRequest{
		Contents: []geminiContent{
			{
				Parts: []geminiPart{
					{Text: prompt},
				},
			},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:      0.2, // Low temperature for consistent JSON output
			MaxOutputTokens:  4096,
			ResponseMIMEType: "application/json",
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var geminiResp geminiResponse
	if err := json.Unmarshal(body, &geminiResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if geminiResp.Error != nil {
		return "", fmt.Errorf("Gemini API error: %s (code: %d)", geminiResp.Error.Message, geminiResp.Error.Code)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text, nil
}

// ParseResume extracts structured candidate data from raw resume text.
func (g *GeminiClient) ParseResume(ctx context.Context, resumeText string) (*ResumeAnalysis, error) {
	prompt := fmt.Sprintf(`You are an expert resume analyzer specialized in extracting structured information from resumes.

Carefully analyze this resume text and extract all relevant information in a structured format:

%s

Return ONLY the JSON response with no additional explanation. Follow this exact structure:
{
    "personal_info": {
        "name": "string",
        "contact": "string",
        "location": "string"
    },
    "skills": ["skill1", "skill2"],
    "education": [
        {"degree": "string", "institution": "string", "year": "string"}
    ],
    "experience": [
        {
            "position": "string",
            "company": "string",
            "duration": "string",
            "responsibilities": ["string"],
            "achievements": ["string"]
        }
    ],
    "projects": [
        {"name": "string", "description": "string", "technologies": ["string"]}
    ],
    "certifications": ["string"],
    "keywords": ["string"]
}`, resumeText)

	response, err := g.callAPI(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result ResumeAnalysis
	if err := json.Unmarshal([]byte(cleanJSON(response)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse resume analysis: %w (response: %s)", err, response)
	}

	return &result, nil
}

type keywordResponse struct {
	SearchKeywords search.KeywordSet `json:"search_keywords"`
}

// GenerateKeywords derives job-search keyword clusters from a parsed resume.
func (g *GeminiClient) GenerateKeywords(ctx context.Context, analysis *ResumeAnalysis) (search.KeywordSet, error) {
	resumeData, err := json.Marshal(analysis)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume data: %w", err)
	}

	prompt := fmt.Sprintf(`You are a career advisor and job search expert. Based on the following parsed resume information, generate the most effective job search keywords and queries that would find the best matching jobs for this candidate.

Resume data:
%s

Generate search terms that include:
1. Job titles that match the candidate's experience level and skills
2. Key technical skills and technologies
3. Industry-specific terms
4. Alternative job titles and synonyms

Return ONLY the JSON response with no additional explanation. Follow this exact structure:
{
    "search_keywords": [
        {
            "primary_keyword": "string",
            "related_terms": ["string", "string"],
            "job_level": "entry|mid|senior",
            "locations": ["string", "string"]
        }
    ]
}

Generate 5-7 different search keyword combinations to maximize job discovery.`, resumeData)

	response, err := g.callAPI(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result keywordResponse
	if err := json.Unmarshal([]byte(cleanJSON(response)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse keywords: %w (response: %s)", err, response)
	}

	return result.SearchKeywords, nil
}

// AnalyzeATS rates a resume across the categories behind an ATS score.
func (g *GeminiClient) AnalyzeATS(ctx context.Context, resumeText string) (*ATSAnalysis, error) {
	prompt := fmt.Sprintf(`You are an ATS (Applicant Tracking System) evaluator. Analyze this resume text and rate each category on a scale of 1-10.

Resume text:
%s

Rate skills relevance and market demand, experience quality, project quality and innovation, education quality, ATS-friendly formatting (compliance, readability, organization, formatting), and the market reputation of the companies listed. Also provide 5-7 actionable improvement recommendations.

Return ONLY the JSON response with no additional explanation. Follow this exact structure:
{
    "skillsRelevance": number,
    "marketDemand": number,
    "experienceQuality": number,
    "projectQuality": number,
    "innovation": number,
    "educationQuality": number,
    "atsCompliance": number,
    "readability": number,
    "organization": number,
    "formatting": number,
    "averageCompanyRating": number,
    "analysis": "detailed analysis",
    "recommendations": [
        {"category": "string", "suggestion": "string", "priority": "high|medium|low"}
    ]
}`, resumeText)

	response, err := g.callAPI(ctx, prompt)
	if err != nil {
		return nil, err
	}

	var result ATSAnalysis
	if err := json.Unmarshal([]byte(cleanJSON(response)), &result); err != nil {
		return nil, fmt.Errorf("failed to parse ATS analysis: %w (response: %s)", err, response)
	}

	return &result, nil
}

// cleanJSON removes markdown code blocks if present
func cleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
