package scoring

import (
	"math"
	"sync"
	"sync/atomic"

	"github.com/jonesrussell/credibility/internal/domain"
	"github.com/jonesrussell/credibility/internal/logger"
)

const (
	// scoreScale converts a [0,1] sub-score to the 0-100 display range.
	scoreScale = 100.0
	// weightSumTolerance is how far a new weight set may drift from 1.0
	// before it is normalized.
	weightSumTolerance = 0.01
)

// Engine combines the three sub-scores into the final credibility score.
// The weight set is held as an immutable snapshot behind an atomic pointer:
// concurrent scoring reads see either the old or the fully-updated weights,
// never a partially-written set.
type Engine struct {
	weights atomic.Pointer[domain.Weights]
	// writeMu serializes UpdateWeights; without it two concurrent partial
	// updates could load the same snapshot and drop each other's fields.
	writeMu sync.Mutex
	table   *ReputationTable
	logger  logger.Logger
}

// DefaultWeights returns the default fusion weights.
func DefaultWeights() domain.Weights {
	return domain.Weights{
		ModelConfidence:   0.5,
		FactCheckEvidence: 0.3,
		SourceReputation:  0.2,
	}
}

// NewEngine creates a fusion engine with the given weights and reputation
// table.
func NewEngine(weights domain.Weights, table *ReputationTable, log logger.Logger) *Engine {
	e := &Engine{
		table:  table,
		logger: log,
	}
	w := weights
	e.weights.Store(&w)
	return e
}

// Weights returns the current weight snapshot.
func (e *Engine) Weights() domain.Weights {
	return *e.weights.Load()
}

// Table returns the reputation table the engine consults.
func (e *Engine) Table() *ReputationTable {
	return e.table
}

// Fuse computes the credibility score for one document. sourceDomain may be
// empty when the text did not come from a URL. Deterministic and
// side-effect-free: identical inputs yield identical output.
func (e *Engine) Fuse(
	pred domain.ModelPrediction,
	factChecks []domain.FactCheckResult,
	sourceDomain string,
) *domain.ScoreResult {
	w := e.weights.Load()

	modelScore := ModelScore(pred.Label, pred.Confidence)
	factScore := FactCheckScore(factChecks)
	sourceScore := e.table.Score(sourceDomain)

	// The weighted sum is used as-is: when weights sum to 1 the result is
	// naturally within 0-100, and deliberately unclamped otherwise.
	credibility := (modelScore*w.ModelConfidence +
		factScore*w.FactCheckEvidence +
		sourceScore*w.SourceReputation) * scoreScale

	result := &domain.ScoreResult{
		CredibilityScore: round1(credibility),
		Breakdown: domain.ScoreBreakdown{
			ModelScore:     round1(modelScore * scoreScale),
			FactCheckScore: round1(factScore * scoreScale),
			SourceScore:    round1(sourceScore * scoreScale),
		},
		WeightsUsed: *w,
	}

	if sourceDomain != "" {
		raw := sourceScore
		result.SourceReputation = &raw
	}

	return result
}

// UpdateWeights merges a partial weight update into the current set and
// atomically swaps the snapshot. If the new entries alone sum further than
// the tolerance from 1.0, they are normalized (each divided by their sum)
// before merging; entries absent from the update are left untouched.
func (e *Engine) UpdateWeights(update domain.WeightUpdate) domain.Weights {
	e.writeMu.Lock()
	defer e.writeMu.Unlock()

	// Copy provided entries so normalization never mutates the caller's update.
	provided := make(map[string]float64, 3)
	if update.ModelConfidence != nil {
		provided["model_confidence"] = *update.ModelConfidence
	}
	if update.FactCheckEvidence != nil {
		provided["fact_check_evidence"] = *update.FactCheckEvidence
	}
	if update.SourceReputation != nil {
		provided["source_reputation"] = *update.SourceReputation
	}

	var sum float64
	for _, v := range provided {
		sum += v
	}

	if len(provided) > 0 && math.Abs(sum-1.0) > weightSumTolerance && sum != 0 {
		e.logger.Warn("Weight update does not sum to 1.0, normalizing",
			logger.Float64("sum", sum))
		for k, v := range provided {
			provided[k] = v / sum
		}
	}

	next := *e.weights.Load()
	if v, ok := provided["model_confidence"]; ok {
		next.ModelConfidence = v
	}
	if v, ok := provided["fact_check_evidence"]; ok {
		next.FactCheckEvidence = v
	}
	if v, ok := provided["source_reputation"]; ok {
		next.SourceReputation = v
	}

	e.weights.Store(&next)

	e.logger.Info("Scoring weights updated",
		logger.Float64("model_confidence", next.ModelConfidence),
		logger.Float64("fact_check_evidence", next.FactCheckEvidence),
		logger.Float64("source_reputation", next.SourceReputation))

	return next
}

// Explanation describes the scoring methodology for the config endpoint.
type Explanation struct {
	Formula    string            `json:"formula"`
	Weights    domain.Weights    `json:"weights"`
	Scale      string            `json:"scale"`
	Components map[string]string `json:"components"`
}

// Explain returns a description of the scoring methodology.
func (e *Engine) Explain() Explanation {
	return Explanation{
		Formula: "credibility_score = (model_score * w1) + (factcheck_score * w2) + (source_score * w3)",
		Weights: e.Weights(),
		Scale:   "0-100 (higher = more credible)",
		Components: map[string]string{
			"model_score":     "Classifier confidence on the Real vs Fake axis",
			"factcheck_score": "Averaged external fact-checking verdicts",
			"source_score":    "Source domain reputation lookup",
		},
	}
}

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
