package search

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/jobnexus/jobnexus/internal/observability"
)

// ErrEmptyKeywordSet is returned when the caller hands over a keyword set
// with no entries. The keyword generator is expected to have validated its
// output before this point.
var ErrEmptyKeywordSet = errors.New("keyword set has no entries")

// Config bounds provider load per aggregation run.
type Config struct {
	// CallTimeout is the deadline for one provider call.
	CallTimeout time.Duration
	// PaceInterval is the minimum spacing between successive provider
	// calls. Providers rate-limit aggressively, so this is a contract,
	// not a tunable.
	PaceInterval time.Duration
	// MaxKeywords caps how many keyword entries are queried.
	MaxKeywords int
	// PerCallLimit caps how many records are taken from one response.
	PerCallLimit int
	// DisableFallback turns off the synthetic fallback generator, which
	// makes the secondary provider path reachable.
	DisableFallback bool
}

func DefaultConfig() Config {
	return Config{
		CallTimeout:  10 * time.Second,
		PaceInterval: 500 * time.Millisecond,
		MaxKeywords:  3,
		PerCallLimit: 5,
	}
}

// Service is the job aggregation pipeline: it fans keyword queries out to
// the primary provider, falls back to synthetic data or the secondary
// provider when nothing comes back, and ranks the merged pool.
type Service struct {
	primary   Provider
	secondary Provider
	cfg       Config
	limiter   *rate.Limiter
}

func NewService(primary, secondary Provider, cfg Config) *Service {
	if cfg.CallTimeout <= 0 {
		cfg = DefaultConfig()
	}
	return &Service{
		primary:   primary,
		secondary: secondary,
		cfg:       cfg,
		limiter:   rate.NewLimiter(rate.Every(cfg.PaceInterval), 1),
	}
}

// Search runs the full pipeline for one request. A failing provider call is
// never fatal: it is logged, counted, and skipped. The only error this
// returns is ErrEmptyKeywordSet.
func (s *Service) Search(ctx context.Context, keywords KeywordSet, location string) ([]Listing, error) {
	if len(keywords) == 0 {
		return nil, ErrEmptyKeywordSet
	}

	pool := s.collect(ctx, s.primary, keywords, location)

	if len(pool) == 0 {
		if !s.cfg.DisableFallback {
			observability.IncFallbackServed()
			slog.Info("no provider results, serving fallback listings", "keywords", len(keywords))
			return Fallback(keywords, location), nil
		}

		pool = s.collect(ctx, s.secondary, keywords, location)
		if len(pool) == 0 {
			return []Listing{}, nil
		}
	}

	return Format(pool, keywords), nil
}

// collect queries one provider across the leading keyword entries, pacing
// calls through the shared limiter and taking at most PerCallLimit records
// per response.
func (s *Service) collect(ctx context.Context, p Provider, keywords KeywordSet, location string) []RawListing {
	if p == nil {
		return nil
	}

	n := s.cfg.MaxKeywords
	if len(keywords) < n {
		n = len(keywords)
	}

	var pool []RawListing
	for _, entry := range keywords[:n] {
		if err := s.limiter.Wait(ctx); err != nil {
			return pool
		}

		callCtx, cancel := context.WithTimeout(ctx, s.cfg.CallTimeout)
		results, err := p.Search(callCtx, entry.Primary, location)
		cancel()

		observability.IncProviderCall(p.Name())
		if err != nil {
			observability.IncError(observability.ClassifyProviderError(err), p.Name())
			slog.Warn("provider query failed",
				"provider", p.Name(),
				"query", entry.Primary,
				"error", err)
			continue
		}

		if len(results) > s.cfg.PerCallLimit {
			results = results[:s.cfg.PerCallLimit]
		}
		pool = append(pool, results...)
	}
	return pool
}
