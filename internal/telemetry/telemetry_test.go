package telemetry_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/jonesrussell/credibility/internal/telemetry"
)

// providerOnce ensures we only create one Provider per test run to avoid
// duplicate Prometheus metric registration errors from promauto's global registry
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

func TestNewProvider(t *testing.T) {
	provider := getTestProvider(t)
	if provider == nil {
		t.Fatal("expected non-nil provider")
	}
	if provider.Tracer == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics == nil {
		t.Error("expected non-nil metrics")
	}
}

func TestRecordAnalysis(t *testing.T) {
	provider := getTestProvider(t)

	// Should not panic
	provider.RecordAnalysis("text", 72.5, 6, 100*time.Millisecond)
	provider.RecordAnalysis("url", 18.0, 12, 250*time.Millisecond)
	provider.RecordAnalysisFailure("text")
	provider.RecordInferenceFailure()
}

func TestRecordFactCheck(t *testing.T) {
	provider := getTestProvider(t)

	// Should not panic
	provider.RecordFactCheck("ok")
	provider.RecordFactCheck("mock")
	provider.RecordFactCheck("error")
	provider.RecordFactCheckCacheHit()
	provider.RecordFetchFailure()
}

func TestStartSpan(t *testing.T) {
	provider := getTestProvider(t)

	ctx, span := provider.StartSpan(context.Background(), "test-span")
	if ctx == nil {
		t.Fatal("expected non-nil context")
	}
	span.End()
}

func TestHandlerServesMetrics(t *testing.T) {
	provider := getTestProvider(t)
	provider.RecordAnalysis("text", 50.0, 1, time.Millisecond)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody)
	provider.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("expected metrics output")
	}
}
