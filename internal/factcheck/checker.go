// Package factcheck queries the Google Fact Check Tools API for verdicts on
// claims extracted from article text.
package factcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"github.com/jonesrussell/credibility/internal/domain"
	"github.com/jonesrussell/credibility/internal/logger"
)

const (
	defaultBaseURL   = "https://factchecktools.googleapis.com/v1alpha1/claims:search"
	defaultTimeout   = 10 * time.Second
	defaultCacheTTL  = 15 * time.Minute
	defaultRateLimit = 5 // requests per second
)

// Recorder receives fact-check lookup metrics. telemetry.Provider satisfies
// it; tests use a no-op.
type Recorder interface {
	RecordFactCheck(outcome string)
	RecordFactCheckCacheHit()
}

type nopRecorder struct{}

func (nopRecorder) RecordFactCheck(string) {}
func (nopRecorder) RecordFactCheckCacheHit() {}

// Config holds the checker's settings.
type Config struct {
	APIKey    string
	BaseURL   string
	Timeout   time.Duration
	CacheTTL  time.Duration
	RateLimit float64 // queries per second against the API
}

// Checker looks up claims against external fact-check databases. Without an
// API key it degrades to a single mock placeholder entry, which downstream
// scoring neutralizes. Lookup failures are absorbed: Check never fails the
// analysis it serves.
type Checker struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	cache      *gocache.Cache
	metrics    Recorder
	logger     logger.Logger
}

// NewChecker creates a fact-check client. metrics may be nil.
func NewChecker(cfg Config, metrics Recorder, log logger.Logger) *Checker {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = defaultCacheTTL
	}
	if cfg.RateLimit <= 0 {
		cfg.RateLimit = defaultRateLimit
	}
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Checker{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), 1),
		cache:      gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		metrics:    metrics,
		logger:     log,
	}
}

// Enabled reports whether real lookups are configured.
func (c *Checker) Enabled() bool {
	return c.apiKey != ""
}

// Status describes the checker for the config endpoint.
func (c *Checker) Status() map[string]any {
	service := "Mock service"
	if c.Enabled() {
		service = "Google Fact Check Tools API"
	}
	return map[string]any{
		"enabled": c.Enabled(),
		"service": service,
	}
}

// Check extracts claims from text and returns their fact-check verdicts,
// capped at maxClaims entries. Failures shrink the result, never abort it;
// the result is never nil so callers serialize an empty list, not null.
func (c *Checker) Check(ctx context.Context, text string) []domain.FactCheckResult {
	if !c.Enabled() {
		c.metrics.RecordFactCheck("mock")
		return []domain.FactCheckResult{{
			Claim:     "Fact-checking service unavailable",
			Verdict:   domain.VerdictUnknown,
			Rating:    "API key required",
			Publisher: "System",
			IsMock:    true,
		}}
	}

	results := []domain.FactCheckResult{}
	for _, claim := range ExtractClaims(text) {
		found, err := c.lookup(ctx, claim)
		if err != nil {
			c.metrics.RecordFactCheck("error")
			c.logger.Warn("Fact-check lookup failed",
				logger.String("claim", claim),
				logger.Error(err))
			continue
		}
		c.metrics.RecordFactCheck("ok")
		results = append(results, found...)
		if len(results) >= maxClaims {
			results = results[:maxClaims]
			break
		}
	}
	return results
}

// claimsSearchResponse mirrors the claims:search API response.
type claimsSearchResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		ClaimReview []struct {
			URL           string `json:"url"`
			TextualRating string `json:"textualRating"`
			ReviewDate    string `json:"reviewDate"`
			Publisher     struct {
				Name string `json:"name"`
			} `json:"publisher"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// lookup queries the API for a single claim, consulting the cache first.
func (c *Checker) lookup(ctx context.Context, claim string) ([]domain.FactCheckResult, error) {
	if cached, ok := c.cache.Get(claim); ok {
		c.metrics.RecordFactCheckCacheHit()
		return cached.([]domain.FactCheckResult), nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("query", claim)
	params.Set("languageCode", "en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fact-check API returned %d", resp.StatusCode)
	}

	var data claimsSearchResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&data); decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}

	var results []domain.FactCheckResult
	for _, found := range data.Claims {
		if len(found.ClaimReview) == 0 {
			continue
		}
		review := found.ClaimReview[0]
		claimText := found.Text
		if claimText == "" {
			claimText = claim
		}
		results = append(results, domain.FactCheckResult{
			Claim:      claimText,
			Verdict:    domain.NormalizeVerdict(review.TextualRating),
			Rating:     review.TextualRating,
			Publisher:  review.Publisher.Name,
			URL:        review.URL,
			ReviewDate: review.ReviewDate,
		})
	}

	c.cache.Set(claim, results, gocache.DefaultExpiration)
	return results, nil
}
