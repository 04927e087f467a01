// Package classifier provides the text classification strategies and the
// analysis orchestrator built on top of them.
package classifier

import (
	"context"

	"github.com/jonesrussell/credibility/internal/domain"
)

// Classifier produces a model prediction for a single text. Implementations
// fail closed: on inference failure Predict returns a neutral
// {Unknown, 0.0} prediction alongside the error, so callers can always feed
// the prediction into scoring while still observing the failure.
type Classifier interface {
	Predict(ctx context.Context, text string) (domain.ModelPrediction, error)
	Info() domain.ModelInfo
}

// failClosed is the neutral prediction returned when inference fails.
func failClosed(textLength int) domain.ModelPrediction {
	return domain.ModelPrediction{
		Label:      domain.LabelUnknown,
		Confidence: 0.0,
		TextLength: textLength,
		Truncated:  false,
	}
}
