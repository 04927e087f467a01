package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/credibility/internal/classifier"
	"github.com/jonesrussell/credibility/internal/domain"
	"github.com/jonesrussell/credibility/internal/fetcher"
	"github.com/jonesrussell/credibility/internal/history"
	"github.com/jonesrussell/credibility/internal/logger"
	"github.com/jonesrussell/credibility/internal/scoring"
	"github.com/jonesrussell/credibility/internal/telemetry"
)

// Prometheus collectors register globally, so all tests share one provider.
var (
	telemetryOnce sync.Once
	testTelemetry *telemetry.Provider
)

func testProvider() *telemetry.Provider {
	telemetryOnce.Do(func() {
		testTelemetry = telemetry.NewProvider()
	})
	return testTelemetry
}

// mockFactCheck returns canned results and a static status.
type mockFactCheck struct {
	results []domain.FactCheckResult
}

func (m *mockFactCheck) Check(context.Context, string) []domain.FactCheckResult {
	return m.results
}

func (m *mockFactCheck) Status() map[string]any {
	return map[string]any{"enabled": false, "service": "Mock service"}
}

func newTestRouter(t *testing.T, reputations map[string]float64) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logger.NewNop()
	engine := scoring.NewEngine(scoring.DefaultWeights(), scoring.NewReputationTable(reputations), log)
	fc := &mockFactCheck{}
	analyzer := classifier.NewAnalyzer(classifier.NewHeuristic(0), fc, engine, testProvider(), log)

	repo, err := history.Open("sqlite3", filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open history: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })

	handler := NewHandler(
		analyzer,
		engine,
		fc,
		fetcher.New(fetcher.Config{}, log),
		repo,
		testProvider(),
		log,
		"test",
	)

	router := gin.New()
	SetupRoutes(router, handler, testProvider())
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAnalyze(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze", AnalyzeRequest{
		Text: "Shocking truth: a miracle cure they don't want you to know about. The committee published its findings yesterday.",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp AnalysisResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Label != domain.LabelFake {
		t.Errorf("label = %q, want Fake", resp.Label)
	}
	if resp.CredibilityScore <= 0 || resp.CredibilityScore >= 100 {
		t.Errorf("credibility = %v, want within (0, 100)", resp.CredibilityScore)
	}
	if resp.SentencesAnalyzed != 2 {
		t.Errorf("sentences analyzed = %d, want 2", resp.SentencesAnalyzed)
	}
	if resp.Title != "" {
		t.Errorf("title = %q, want empty for text input", resp.Title)
	}
}

func TestAnalyze_ShortTextRejected(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze", AnalyzeRequest{Text: "too short"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for short text", w.Code)
	}
}

func TestAnalyze_MissingBody(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for missing text", w.Code)
	}
}

func TestAnalyzeURL(t *testing.T) {
	article := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><article>
			<h1>Quarterly Report Shows Steady Growth</h1>
			<p>The company announced today that revenue grew for the third consecutive
			quarter, according to figures it released alongside the filing. Analysts
			said the trend matched their expectations for the sector.</p>
		</article></body></html>`))
	}))
	defer article.Close()

	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze/url", AnalyzeURLRequest{URL: article.URL})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp AnalysisResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Title != "Quarterly Report Shows Steady Growth" {
		t.Errorf("title = %q", resp.Title)
	}
	if resp.Source != "127.0.0.1" {
		t.Errorf("source = %q, want 127.0.0.1", resp.Source)
	}
	if resp.SourceReputation == nil {
		t.Error("source reputation missing for URL analysis")
	}
}

func TestAnalyzeURL_InvalidURL(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze/url", AnalyzeURLRequest{URL: "not-a-url"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for invalid URL", w.Code)
	}
}

func TestAnalyzeURL_Unreachable(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPost, "/api/v1/analyze/url", AnalyzeURLRequest{URL: "http://127.0.0.1:1/article"})
	if w.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502 for unreachable host", w.Code)
	}
}

func TestGetConfig(t *testing.T) {
	router := newTestRouter(t, map[string]float64{"example.com": 0.8})

	w := doJSON(t, router, http.MethodGet, "/api/v1/config", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp map[string]json.RawMessage
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	for _, key := range []string{"scoring", "model", "fact_check", "known_reputations"} {
		if _, ok := resp[key]; !ok {
			t.Errorf("config response missing %q", key)
		}
	}
}

func TestUpdateWeights(t *testing.T) {
	router := newTestRouter(t, nil)

	model := 2.0
	fact := 2.0
	w := doJSON(t, router, http.MethodPut, "/api/v1/weights", UpdateWeightsRequest{
		ModelConfidence:   &model,
		FactCheckEvidence: &fact,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp WeightsResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Weights.ModelConfidence != 0.5 || resp.Weights.FactCheckEvidence != 0.5 {
		t.Errorf("weights = %+v, want normalized 0.5/0.5", resp.Weights)
	}
	if resp.Weights.SourceReputation != 0.2 {
		t.Errorf("source weight = %v, want untouched 0.2", resp.Weights.SourceReputation)
	}
}

func TestUpdateWeights_EmptyRejected(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodPut, "/api/v1/weights", UpdateWeightsRequest{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for empty update", w.Code)
	}
}

func TestUpdateWeights_NegativeRejected(t *testing.T) {
	router := newTestRouter(t, nil)

	bad := -0.5
	w := doJSON(t, router, http.MethodPut, "/api/v1/weights", UpdateWeightsRequest{ModelConfidence: &bad})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for negative weight", w.Code)
	}
}

func TestGetSource(t *testing.T) {
	router := newTestRouter(t, map[string]float64{"reuters.com": 0.95})

	w := doJSON(t, router, http.MethodGet, "/api/v1/sources/www.Reuters.com", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp SourceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Known {
		t.Error("expected known domain")
	}
	if resp.Reputation != 0.95 {
		t.Errorf("reputation = %v, want 0.95", resp.Reputation)
	}
	if resp.Domain != "reuters.com" {
		t.Errorf("domain = %q, want normalized reuters.com", resp.Domain)
	}
}

func TestGetSource_Unknown(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodGet, "/api/v1/sources/nobody-heard-of.example", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp SourceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Known {
		t.Error("expected unknown domain")
	}
	if resp.Reputation != 0.5 {
		t.Errorf("reputation = %v, want neutral 0.5", resp.Reputation)
	}
}

func TestHistoryAndStats(t *testing.T) {
	router := newTestRouter(t, nil)

	// Two analyses populate the store through the handler path.
	for i := 0; i < 2; i++ {
		w := doJSON(t, router, http.MethodPost, "/api/v1/analyze", AnalyzeRequest{
			Text: "The committee published its findings yesterday after review.",
		})
		if w.Code != http.StatusOK {
			t.Fatalf("analyze status = %d", w.Code)
		}
	}

	w := doJSON(t, router, http.MethodGet, "/api/v1/history?limit=10", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("history status = %d", w.Code)
	}
	var listResp struct {
		Analyses []history.Record `json:"analyses"`
		Count    int              `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listResp); err != nil {
		t.Fatalf("decode history: %v", err)
	}
	if listResp.Count != 2 {
		t.Errorf("history count = %d, want 2", listResp.Count)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("stats status = %d", w.Code)
	}
	var stats history.Stats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalAnalyses != 2 {
		t.Errorf("total analyses = %d, want 2", stats.TotalAnalyses)
	}
}

func TestHealthAndReady(t *testing.T) {
	router := newTestRouter(t, nil)

	w := doJSON(t, router, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("health status = %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/ready", nil)
	if w.Code != http.StatusOK {
		t.Errorf("ready status = %d", w.Code)
	}
}
