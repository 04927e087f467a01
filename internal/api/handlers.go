// Package api exposes the credibility analysis HTTP endpoints.
package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/credibility/internal/classifier"
	"github.com/jonesrussell/credibility/internal/domain"
	"github.com/jonesrussell/credibility/internal/fetcher"
	"github.com/jonesrussell/credibility/internal/history"
	"github.com/jonesrussell/credibility/internal/logger"
	"github.com/jonesrussell/credibility/internal/scoring"
	"github.com/jonesrussell/credibility/internal/telemetry"
)

// FactCheckStatus describes the fact-check collaborator for health and
// config endpoints.
type FactCheckStatus interface {
	Status() map[string]any
}

// Handler handles HTTP requests for the credibility API.
type Handler struct {
	analyzer  *classifier.Analyzer
	engine    *scoring.Engine
	factCheck FactCheckStatus
	fetcher   *fetcher.Fetcher
	history   *history.Repository
	telemetry *telemetry.Provider
	logger    logger.Logger
	version   string
}

// NewHandler creates a new API handler. history may be nil when persistence
// is disabled.
func NewHandler(
	analyzer *classifier.Analyzer,
	engine *scoring.Engine,
	factCheck FactCheckStatus,
	fetch *fetcher.Fetcher,
	historyRepo *history.Repository,
	tel *telemetry.Provider,
	log logger.Logger,
	version string,
) *Handler {
	return &Handler{
		analyzer:  analyzer,
		engine:    engine,
		factCheck: factCheck,
		fetcher:   fetch,
		history:   historyRepo,
		telemetry: tel,
		logger:    log,
		version:   version,
	}
}

// Analyze handles POST /api/v1/analyze.
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid analyze request", logger.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	analysis := h.analyzer.Analyze(c.Request.Context(), req.Text, "", "text")
	h.recordHistory(c, analysis, "text")

	c.JSON(http.StatusOK, AnalysisResponse{Analysis: analysis})
}

// AnalyzeURL handles POST /api/v1/analyze/url.
func (h *Handler) AnalyzeURL(c *gin.Context) {
	var req AnalyzeURLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid analyze URL request", logger.Error(err))
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	article, err := h.fetcher.Extract(c.Request.Context(), req.URL)
	if err != nil {
		h.telemetry.RecordFetchFailure()
		h.logger.Warn("Article fetch failed",
			logger.String("url", req.URL),
			logger.Error(err))

		switch {
		case errors.Is(err, fetcher.ErrInvalidURL):
			c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		case errors.Is(err, fetcher.ErrNoContent):
			c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusBadGateway, errorResponse{Error: err.Error()})
		}
		return
	}

	analysis := h.analyzer.Analyze(c.Request.Context(), article.Text, article.Domain, "url")
	h.recordHistory(c, analysis, "url")

	c.JSON(http.StatusOK, AnalysisResponse{Analysis: analysis, Title: article.Title})
}

// GetConfig handles GET /api/v1/config.
func (h *Handler) GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"scoring":           h.engine.Explain(),
		"model":             h.analyzer.Info(),
		"fact_check":        h.factCheck.Status(),
		"known_reputations": h.engine.Table().Len(),
	})
}

// UpdateWeights handles PUT /api/v1/weights.
func (h *Handler) UpdateWeights(c *gin.Context) {
	var req UpdateWeightsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if req.empty() {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "at least one weight must be provided"})
		return
	}
	if req.negative() {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "weights must be non-negative"})
		return
	}

	updated := h.engine.UpdateWeights(req.toDomain())
	c.JSON(http.StatusOK, WeightsResponse{Weights: updated})
}

// GetSource handles GET /api/v1/sources/:domain.
func (h *Handler) GetSource(c *gin.Context) {
	domainName := c.Param("domain")

	reputation, known := h.engine.Table().Lookup(domainName)
	if !known {
		reputation = h.engine.Table().Score(domainName)
	}
	c.JSON(http.StatusOK, SourceResponse{
		Domain:     scoring.NormalizeDomain(domainName),
		Reputation: reputation,
		Known:      known,
	})
}

// ListHistory handles GET /api/v1/history.
func (h *Handler) ListHistory(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "history persistence disabled"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	records, err := h.history.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list history", logger.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to list history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"analyses": records,
		"count":    len(records),
	})
}

// GetStats handles GET /api/v1/stats.
func (h *Handler) GetStats(c *gin.Context) {
	if h.history == nil {
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "history persistence disabled"})
		return
	}

	stats, err := h.history.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to aggregate stats", logger.Error(err))
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "failed to aggregate stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "healthy",
		"version":    h.version,
		"model":      h.analyzer.Info(),
		"fact_check": h.factCheck.Status(),
	})
}

// ReadyCheck handles GET /ready. Readiness tracks the history store; the
// classifier and fact-check collaborators degrade gracefully on their own.
func (h *Handler) ReadyCheck(c *gin.Context) {
	if h.history != nil {
		if err := h.history.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

// recordHistory persists the analysis. Write failures are logged, never
// surfaced to the client.
func (h *Handler) recordHistory(c *gin.Context, analysis *domain.Analysis, input string) {
	if h.history == nil {
		return
	}
	if err := h.history.Insert(c.Request.Context(), analysis, input); err != nil {
		h.logger.Error("Failed to record analysis",
			logger.String("input", input),
			logger.Error(err))
	}
}
