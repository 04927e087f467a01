package api

import (
	"github.com/jonesrussell/credibility/internal/domain"
)

// AnalyzeRequest is the body for POST /api/v1/analyze.
type AnalyzeRequest struct {
	Text string `json:"text" binding:"required,min=10,max=50000"`
}

// AnalyzeURLRequest is the body for POST /api/v1/analyze/url.
type AnalyzeURLRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// AnalysisResponse is the full analysis payload. Title is only present for
// URL analyses.
type AnalysisResponse struct {
	*domain.Analysis
	Title string `json:"title,omitempty"`
}

// UpdateWeightsRequest carries a partial weight update. Omitted fields keep
// their current value.
type UpdateWeightsRequest struct {
	ModelConfidence   *float64 `json:"model_confidence"`
	FactCheckEvidence *float64 `json:"fact_check_evidence"`
	SourceReputation  *float64 `json:"source_reputation"`
}

// toDomain converts the request into a domain weight update.
func (r UpdateWeightsRequest) toDomain() domain.WeightUpdate {
	return domain.WeightUpdate{
		ModelConfidence:   r.ModelConfidence,
		FactCheckEvidence: r.FactCheckEvidence,
		SourceReputation:  r.SourceReputation,
	}
}

// empty reports whether no field was provided.
func (r UpdateWeightsRequest) empty() bool {
	return r.ModelConfidence == nil && r.FactCheckEvidence == nil && r.SourceReputation == nil
}

// negative reports whether any provided weight is below zero.
func (r UpdateWeightsRequest) negative() bool {
	for _, p := range []*float64{r.ModelConfidence, r.FactCheckEvidence, r.SourceReputation} {
		if p != nil && *p < 0 {
			return true
		}
	}
	return false
}

// WeightsResponse is the body returned by PUT /api/v1/weights.
type WeightsResponse struct {
	Weights domain.Weights `json:"weights"`
}

// SourceResponse is the body for GET /api/v1/sources/:domain.
type SourceResponse struct {
	Domain     string  `json:"domain"`
	Reputation float64 `json:"reputation"`
	Known      bool    `json:"known"`
}

// errorResponse is the uniform error body.
type errorResponse struct {
	Error string `json:"error"`
}
