package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jobnexus/jobnexus/internal/ai"
	"github.com/jobnexus/jobnexus/internal/observability"
	"github.com/jobnexus/jobnexus/internal/resume"
	"github.com/jobnexus/jobnexus/internal/search"
)

// ErrInsufficientText means the document parsed but held too little text to
// analyze, usually a scanned or image-only resume.
var ErrInsufficientText = errors.New("could not extract sufficient text from the resume")

// SearchKeywords wraps the keyword set in the envelope the frontend expects.
type SearchKeywords struct {
	SearchKeywords search.KeywordSet `json:"search_keywords"`
}

// UploadResult is the response of the full resume pipeline.
type UploadResult struct {
	ResumeAnalysis *ai.ResumeAnalysis `json:"resume_analysis"`
	SearchKeywords SearchKeywords     `json:"search_keywords"`
	JobListings    []search.Listing   `json:"job_listings"`
}

// JobSearcher is the aggregation pipeline boundary, satisfied by
// search.Service and by fakes in tests.
type JobSearcher interface {
	Search(ctx context.Context, keywords search.KeywordSet, location string) ([]search.Listing, error)
}

// ResumeService chains document extraction, the two LLM passes, and the job
// aggregation pipeline for one uploaded resume.
type ResumeService struct {
	aiClient ai.Client
	searcher JobSearcher
}

func NewResumeService(aiClient ai.Client, searcher JobSearcher) *ResumeService {
	return &ResumeService{aiClient: aiClient, searcher: searcher}
}

func (s *ResumeService) Process(ctx context.Context, filename string, data []byte) (*UploadResult, error) {
	text, err := resume.ExtractText(filename, data)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(text)) < resume.MinTextLength {
		return nil, ErrInsufficientText
	}

	observability.IncAICall("resume_parser")
	analysis, err := s.aiClient.ParseResume(ctx, text)
	if err != nil {
		observability.IncError(observability.ErrorAI, "resume_parser")
		return nil, fmt.Errorf("resume parsing failed: %w", err)
	}

	observability.IncAICall("keyword_generator")
	keywords, err := s.aiClient.GenerateKeywords(ctx, analysis)
	if err != nil {
		observability.IncError(observability.ErrorAI, "keyword_generator")
		return nil, fmt.Errorf("keyword generation failed: %w", err)
	}
	if len(keywords) == 0 {
		return nil, fmt.Errorf("keyword generation produced no entries")
	}

	location := strings.TrimSpace(analysis.PersonalInfo.Location)

	listings, err := s.searcher.Search(ctx, keywords, location)
	if err != nil {
		return nil, fmt.Errorf("job search failed: %w", err)
	}

	observability.IncResumesProcessed()
	slog.Info("resume processed",
		"keywords", len(keywords),
		"listings", len(listings),
		"location", location)

	return &UploadResult{
		ResumeAnalysis: analysis,
		SearchKeywords: SearchKeywords{SearchKeywords: keywords},
		JobListings:    listings,
	}, nil
}
