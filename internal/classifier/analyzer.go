package classifier

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jonesrussell/credibility/internal/domain"
	"github.com/jonesrussell/credibility/internal/logger"
	"github.com/jonesrussell/credibility/internal/scoring"
	"github.com/jonesrussell/credibility/internal/telemetry"
)

// maxHighlights caps how many of the most suspicious sentences are returned.
const maxHighlights = 5

// FactChecker looks up external fact-check verdicts for claims found in the
// text. Implementations return an empty slice on failure, never an error
// that would abort the analysis.
type FactChecker interface {
	Check(ctx context.Context, text string) []domain.FactCheckResult
}

// Analyzer orchestrates a full document analysis: whole-document
// classification, fact-check lookup, score fusion, and sentence ranking.
type Analyzer struct {
	clf       Classifier
	sentences *SentenceAnalyzer
	factCheck FactChecker
	engine    *scoring.Engine
	telemetry *telemetry.Provider
	logger    logger.Logger
}

// NewAnalyzer creates the analysis orchestrator.
func NewAnalyzer(
	clf Classifier,
	factCheck FactChecker,
	engine *scoring.Engine,
	tel *telemetry.Provider,
	log logger.Logger,
) *Analyzer {
	return &Analyzer{
		clf:       clf,
		sentences: NewSentenceAnalyzer(clf, log),
		factCheck: factCheck,
		engine:    engine,
		telemetry: tel,
		logger:    log,
	}
}

// Analyze runs the full pipeline on text. sourceDomain is empty for direct
// text input; inputKind is "text" or "url" and only feeds logs and metrics.
// A failed whole-document prediction degrades to a neutral one instead of
// failing the analysis.
func (a *Analyzer) Analyze(ctx context.Context, text, sourceDomain, inputKind string) *domain.Analysis {
	startTime := time.Now()

	ctx, span := a.telemetry.StartSpan(ctx, "analyze",
		attribute.String("input", inputKind),
		attribute.Int("text_length", len(text)))
	defer span.End()

	a.logger.Debug("Starting analysis",
		logger.String("input", inputKind),
		logger.String("source", sourceDomain),
		logger.Int("text_length", len(text)))

	pred, err := a.clf.Predict(ctx, text)
	if err != nil {
		// Predict already returned a neutral prediction; record and go on.
		a.telemetry.RecordInferenceFailure()
	}

	factChecks := a.factCheck.Check(ctx, text)
	if factChecks == nil {
		// The wire format promises lists, never null.
		factChecks = []domain.FactCheckResult{}
	}
	score := a.engine.Fuse(pred, factChecks, sourceDomain)
	ranked := a.sentences.Analyze(ctx, text)

	highlights := ranked
	if len(highlights) > maxHighlights {
		highlights = highlights[:maxHighlights]
	}

	elapsed := time.Since(startTime)
	result := &domain.Analysis{
		Label:            pred.Label,
		ModelConfidence:  pred.Confidence,
		CredibilityScore: score.CredibilityScore,
		Source:           sourceDomain,
		SourceReputation: score.SourceReputation,
		FactCheck:        factChecks,
		Highlights:       highlights,
		Explainability: domain.Explainability{
			Method:  "sentence_scoring",
			Details: fmt.Sprintf("Analyzed %d sentences using %s", len(ranked), a.clf.Info().Name),
		},
		Breakdown:         score.Breakdown,
		WeightsUsed:       score.WeightsUsed,
		SentencesAnalyzed: len(ranked),
		Truncated:         pred.Truncated,
		ProcessingTimeMs:  elapsed.Milliseconds(),
		AnalyzedAt:        time.Now().UTC(),
	}

	a.telemetry.RecordAnalysis(inputKind, result.CredibilityScore, result.SentencesAnalyzed, elapsed)

	a.logger.Info("Analysis complete",
		logger.String("input", inputKind),
		logger.String("label", string(result.Label)),
		logger.Float64("credibility_score", result.CredibilityScore),
		logger.Int("sentences_analyzed", result.SentencesAnalyzed),
		logger.Int("fact_checks", len(factChecks)),
		logger.Int64("processing_time_ms", result.ProcessingTimeMs))

	return result
}

// Info exposes the underlying model description.
func (a *Analyzer) Info() domain.ModelInfo {
	return a.clf.Info()
}
