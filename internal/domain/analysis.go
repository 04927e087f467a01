package domain

import "time"

// ModelPrediction is a classifier's output for a single text.
type ModelPrediction struct {
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"` // 0.0-1.0
	TextLength int     `json:"text_length"`
	Truncated  bool    `json:"truncated"`
}

// ModelInfo describes the classifier variant behind a prediction.
type ModelInfo struct {
	Name      string `json:"name"`
	Mode      string `json:"mode"` // "remote", "heuristic"
	MaxLength int    `json:"max_length"`
}

// FactCheckResult is one fact-check verdict for a claim found in the text.
// IsMock marks a placeholder entry emitted when the fact-check collaborator
// is unavailable; it must not be confused with a real Unknown verdict, since
// downstream scoring neutralizes mock batches entirely.
type FactCheckResult struct {
	Claim      string  `json:"claim"`
	Verdict    Verdict `json:"verdict"`
	Rating     string  `json:"rating,omitempty"` // publisher's original textual rating
	Publisher  string  `json:"publisher"`
	URL        string  `json:"url"`
	ReviewDate string  `json:"review_date,omitempty"`
	IsMock     bool    `json:"is_mock,omitempty"`
}

// SentenceAnalysis is the per-sentence suspicion result.
// Position is the sentence's index in the filtered sequence of analyzed
// sentences, assigned before the suspicion sort and never recomputed.
type SentenceAnalysis struct {
	Sentence       string  `json:"sentence"`
	SuspicionScore float64 `json:"suspicion_score"` // 0.0-1.0
	Position       int     `json:"position"`
	Label          Label   `json:"label"`
}

// Weights holds the three fusion weights. They should sum to 1.0; the fusion
// engine does not enforce this at combine-time.
type Weights struct {
	ModelConfidence   float64 `json:"model_confidence"   yaml:"model_confidence"`
	FactCheckEvidence float64 `json:"fact_check_evidence" yaml:"fact_check_evidence"`
	SourceReputation  float64 `json:"source_reputation"  yaml:"source_reputation"`
}

// WeightUpdate is a partial weight change. Nil fields are left untouched.
type WeightUpdate struct {
	ModelConfidence   *float64 `json:"model_confidence"`
	FactCheckEvidence *float64 `json:"fact_check_evidence"`
	SourceReputation  *float64 `json:"source_reputation"`
}

// ScoreBreakdown holds the three weighted sub-scores scaled to 0-100.
type ScoreBreakdown struct {
	ModelScore     float64 `json:"model_score"`
	FactCheckScore float64 `json:"factcheck_score"`
	SourceScore    float64 `json:"source_score"`
}

// ScoreResult is the fusion engine's output for one document.
// SourceReputation is the raw [0,1] source sub-score, present only when a
// domain was supplied; it is the display value, distinct from the breakdown.
type ScoreResult struct {
	CredibilityScore float64        `json:"credibility_score"`
	Breakdown        ScoreBreakdown `json:"breakdown"`
	WeightsUsed      Weights        `json:"weights_used"`
	SourceReputation *float64       `json:"source_reputation,omitempty"`
}

// Explainability names the method behind an analysis and a human-readable
// summary of what it covered.
type Explainability struct {
	Method  string `json:"method"`
	Details string `json:"details"`
}

// Analysis is the complete result of analyzing one document.
type Analysis struct {
	Label             Label              `json:"label"`
	ModelConfidence   float64            `json:"model_confidence"`
	CredibilityScore  float64            `json:"credibility_score"`
	Source            string             `json:"source,omitempty"`
	SourceReputation  *float64           `json:"source_reputation,omitempty"`
	FactCheck         []FactCheckResult  `json:"fact_check"`
	Highlights        []SentenceAnalysis `json:"highlights"`
	Explainability    Explainability     `json:"explainability"`
	Breakdown         ScoreBreakdown     `json:"breakdown"`
	WeightsUsed       Weights            `json:"weights_used"`
	SentencesAnalyzed int                `json:"sentences_analyzed"`
	Truncated         bool               `json:"truncated"`
	ProcessingTimeMs  int64              `json:"processing_time_ms"`
	AnalyzedAt        time.Time          `json:"analyzed_at"`
}
