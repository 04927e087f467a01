package classifier

import (
	"context"
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/jonesrussell/credibility/internal/domain"
)

// Indicator phrase lists for the offline heuristic. Matching is
// case-insensitive; counts are of distinct phrases present, not occurrences.
var (
	fakeIndicators = []string{
		"miracle cure",
		"shocking truth",
		"they don't want you to know",
		"breaking:",
		"scientists hate him",
		"doctors shocked",
		"big pharma",
		"leaked documents",
		"government secret",
	}

	realIndicators = []string{
		"federal reserve",
		"announced today",
		"according to",
		"research shows",
		"study found",
		"data indicates",
		"officials said",
		"reported that",
	}
)

const (
	heuristicBaseConfidence = 0.6
	heuristicStepConfidence = 0.1
	heuristicMaxConfidence  = 0.9
)

// Heuristic is a deterministic offline classifier built on multi-pattern
// matching of indicator phrases. It covers environments with no inference
// sidecar and is the fixture classifier in tests.
type Heuristic struct {
	fake      *ahocorasick.Matcher
	real      *ahocorasick.Matcher
	maxLength int
}

// NewHeuristic builds the pattern matchers. maxLength <= 0 uses the default;
// it only feeds the Truncated flag, the matchers always see the full text.
func NewHeuristic(maxLength int) *Heuristic {
	if maxLength <= 0 {
		maxLength = defaultMaxLength
	}
	return &Heuristic{
		fake:      ahocorasick.NewStringMatcher(fakeIndicators),
		real:      ahocorasick.NewStringMatcher(realIndicators),
		maxLength: maxLength,
	}
}

// Predict scores text by indicator phrase counts. It never fails.
func (h *Heuristic) Predict(_ context.Context, text string) (domain.ModelPrediction, error) {
	lower := strings.ToLower(text)
	textLength := len([]rune(text))

	fakeHits := len(h.fake.Match([]byte(lower)))
	realHits := len(h.real.Match([]byte(lower)))

	pred := domain.ModelPrediction{
		TextLength: textLength,
		Truncated:  textLength > h.maxLength,
	}

	switch {
	case fakeHits > realHits:
		pred.Label = domain.LabelFake
		pred.Confidence = heuristicConfidence(fakeHits)
	case realHits > fakeHits:
		pred.Label = domain.LabelReal
		pred.Confidence = heuristicConfidence(realHits)
	default:
		pred.Label = domain.LabelUnknown
		pred.Confidence = 0.5
	}

	return pred, nil
}

// Info describes the heuristic model.
func (h *Heuristic) Info() domain.ModelInfo {
	return domain.ModelInfo{
		Name:      "indicator-phrases",
		Mode:      "heuristic",
		MaxLength: h.maxLength,
	}
}

func heuristicConfidence(hits int) float64 {
	c := heuristicBaseConfidence + float64(hits)*heuristicStepConfidence
	if c > heuristicMaxConfidence {
		return heuristicMaxConfidence
	}
	return c
}
