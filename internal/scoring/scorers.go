// Package scoring implements the credibility fusion engine: three signal
// scorers, the domain reputation table, and the weighted combination that
// produces the final 0-100 credibility score.
package scoring

import (
	"github.com/jonesrussell/credibility/internal/domain"
)

const (
	// Sub-score constants
	neutralScore       = 0.5 // no evidence either way
	biasedScore        = 0.4 // fixed penalty: confidence in Biased has no direction
	satireScore        = 0.2 // fixed penalty: satire is low-credibility as factual content
	verdictFalseScore  = 0.0
	verdictTrueScore   = 1.0
	misleadingScore    = 0.3
	unprovenScore      = 0.4
)

// ModelScore converts a classifier prediction into a [0,1] credibility
// sub-score. Confidence is only directionally meaningful on the Real/Fake
// axis; Biased and Satire get fixed penalties, and any label outside the
// known taxonomy scores neutral.
func ModelScore(label domain.Label, confidence float64) float64 {
	switch label {
	case domain.LabelReal:
		return confidence
	case domain.LabelFake:
		return 1.0 - confidence
	case domain.LabelBiased:
		return biasedScore
	case domain.LabelSatire:
		return satireScore
	default:
		return neutralScore
	}
}

// FactCheckScore averages fact-check verdicts into a [0,1] sub-score. An
// empty batch is neutral. A single mock entry poisons the whole batch: the
// collaborator is known-unavailable, so no real evidence exists.
func FactCheckScore(results []domain.FactCheckResult) float64 {
	if len(results) == 0 {
		return neutralScore
	}

	for _, r := range results {
		if r.IsMock {
			return neutralScore
		}
	}

	var sum float64
	for _, r := range results {
		sum += verdictScore(r.Verdict)
	}
	return sum / float64(len(results))
}

// verdictScore maps a normalized verdict to its fixed credibility value.
func verdictScore(v domain.Verdict) float64 {
	switch v {
	case domain.VerdictTrue:
		return verdictTrueScore
	case domain.VerdictFalse:
		return verdictFalseScore
	case domain.VerdictMisleading:
		return misleadingScore
	case domain.VerdictUnproven:
		return unprovenScore
	default:
		return neutralScore
	}
}
