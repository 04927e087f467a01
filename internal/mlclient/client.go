// Package mlclient is the HTTP client for the ML inference sidecar.
package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultTimeout = 5 * time.Second

// ErrUnavailable indicates the inference sidecar is unreachable.
var ErrUnavailable = errors.New("inference service unavailable")

// Client is an HTTP client for the inference sidecar.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// PredictRequest is the request body for POST /predict.
type PredictRequest struct {
	Text string `json:"text"`
}

// PredictResponse is the response body from /predict. Label is the raw
// model label, not yet mapped to the closed taxonomy.
type PredictResponse struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// healthResponse is the JSON shape returned by GET /health (model_version
// optional).
type healthResponse struct {
	ModelVersion string `json:"model_version"`
}

// NewClient creates a new inference client. timeout <= 0 uses the default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Predict sends text to the sidecar for classification.
func (c *Client) Predict(ctx context.Context, text string) (*PredictResponse, error) {
	body, err := json.Marshal(PredictRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference service returned %d", resp.StatusCode)
	}

	var result PredictResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&result); decodeErr != nil {
		return nil, fmt.Errorf("decode response: %w", decodeErr)
	}
	return &result, nil
}

// Health checks if the sidecar is healthy. Returns the model version the
// sidecar reports, when it reports one.
func (c *Client) Health(ctx context.Context) (modelVersion string, err error) {
	httpReq, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if reqErr != nil {
		return "", fmt.Errorf("create request: %w", reqErr)
	}

	resp, doErr := c.httpClient.Do(httpReq)
	if doErr != nil {
		return "", fmt.Errorf("%w: %w", ErrUnavailable, doErr)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unhealthy status: %d", resp.StatusCode)
	}

	var healthResp healthResponse
	if decodeErr := json.NewDecoder(resp.Body).Decode(&healthResp); decodeErr == nil {
		modelVersion = healthResp.ModelVersion
	}
	return modelVersion, nil
}
