package classifier

import (
	"context"

	"github.com/jonesrussell/credibility/internal/domain"
	"github.com/jonesrussell/credibility/internal/logger"
	"github.com/jonesrussell/credibility/internal/mlclient"
)

const defaultMaxLength = 512

// Remote classifies text through the ML inference sidecar. Text longer than
// maxLength runes is truncated before it is sent; the prediction records the
// original length and whether truncation happened.
type Remote struct {
	client    *mlclient.Client
	modelName string
	maxLength int
	logger    logger.Logger
}

// NewRemote creates a sidecar-backed classifier. maxLength <= 0 uses the
// default.
func NewRemote(client *mlclient.Client, modelName string, maxLength int, log logger.Logger) *Remote {
	if maxLength <= 0 {
		maxLength = defaultMaxLength
	}
	return &Remote{
		client:    client,
		modelName: modelName,
		maxLength: maxLength,
		logger:    log,
	}
}

// Predict classifies text via the sidecar, failing closed on any transport
// or decode error.
func (r *Remote) Predict(ctx context.Context, text string) (domain.ModelPrediction, error) {
	runes := []rune(text)
	textLength := len(runes)

	truncated := textLength > r.maxLength
	if truncated {
		text = string(runes[:r.maxLength])
	}

	resp, err := r.client.Predict(ctx, text)
	if err != nil {
		r.logger.Warn("Inference request failed, returning neutral prediction",
			logger.Int("text_length", textLength),
			logger.Error(err))
		return failClosed(textLength), err
	}

	return domain.ModelPrediction{
		Label:      domain.NormalizeLabel(resp.Label),
		Confidence: resp.Confidence,
		TextLength: textLength,
		Truncated:  truncated,
	}, nil
}

// Info describes the remote model.
func (r *Remote) Info() domain.ModelInfo {
	return domain.ModelInfo{
		Name:      r.modelName,
		Mode:      "remote",
		MaxLength: r.maxLength,
	}
}

// Health reports whether the sidecar is reachable and healthy.
func (r *Remote) Health(ctx context.Context) error {
	_, err := r.client.Health(ctx)
	return err
}
