// Package telemetry provides OpenTelemetry instrumentation for the
// credibility service. It exports Prometheus metrics and provides tracing
// capabilities.
package telemetry

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const serviceName = "credibility"

// Metrics holds all credibility Prometheus metrics
type Metrics struct {
	// Analysis metrics
	AnalysesTotal     *prometheus.CounterVec
	AnalysisDuration  *prometheus.HistogramVec
	CredibilityScores prometheus.Histogram
	SentencesAnalyzed prometheus.Histogram

	// Collaborator metrics
	InferenceFailures  prometheus.Counter
	FactCheckRequests  *prometheus.CounterVec
	FactCheckCacheHits prometheus.Counter
	FetchFailures      prometheus.Counter
}

// Provider wraps telemetry providers
type Provider struct {
	Tracer  trace.Tracer
	Metrics *Metrics
}

// NewProvider initializes telemetry with Prometheus metrics
func NewProvider() *Provider {
	return &Provider{
		Tracer:  otel.Tracer(serviceName),
		Metrics: initMetrics(),
	}
}

// Handler returns the Prometheus HTTP handler for /metrics endpoint
func (p *Provider) Handler() http.Handler {
	return promhttp.Handler()
}

func initMetrics() *Metrics {
	m := &Metrics{}
	initAnalysisMetrics(m)
	initCollaboratorMetrics(m)
	return m
}

func initAnalysisMetrics(m *Metrics) {
	m.AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credibility_analyses_total",
		Help: "Total analyses by input kind (text, url) and outcome",
	}, []string{"input", "outcome"})

	m.AnalysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "credibility_analysis_duration_seconds",
		Help:    "Time to analyze a single document",
		Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
	}, []string{"input"})

	m.CredibilityScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "credibility_score",
		Help:    "Distribution of computed credibility scores",
		Buckets: []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	m.SentencesAnalyzed = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "credibility_sentences_analyzed",
		Help:    "Number of sentences classified per document",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200},
	})
}

func initCollaboratorMetrics(m *Metrics) {
	m.InferenceFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credibility_inference_failures_total",
		Help: "Total classifier inference failures (fail-closed predictions)",
	})

	m.FactCheckRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "credibility_factcheck_requests_total",
		Help: "Total fact-check lookups by outcome (ok, error, mock)",
	}, []string{"outcome"})

	m.FactCheckCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credibility_factcheck_cache_hits_total",
		Help: "Fact-check lookups served from cache",
	})

	m.FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "credibility_fetch_failures_total",
		Help: "Total article fetch or extraction failures",
	})
}

// RecordAnalysis records metrics for a single completed analysis
func (p *Provider) RecordAnalysis(input string, score float64, sentences int, duration time.Duration) {
	p.Metrics.AnalysesTotal.WithLabelValues(input, "success").Inc()
	p.Metrics.AnalysisDuration.WithLabelValues(input).Observe(duration.Seconds())
	p.Metrics.CredibilityScores.Observe(score)
	p.Metrics.SentencesAnalyzed.Observe(float64(sentences))
}

// RecordAnalysisFailure records a failed analysis
func (p *Provider) RecordAnalysisFailure(input string) {
	p.Metrics.AnalysesTotal.WithLabelValues(input, "error").Inc()
}

// RecordInferenceFailure records a fail-closed classifier prediction
func (p *Provider) RecordInferenceFailure() {
	p.Metrics.InferenceFailures.Inc()
}

// RecordFactCheck records a fact-check lookup by outcome (ok, error, mock)
func (p *Provider) RecordFactCheck(outcome string) {
	p.Metrics.FactCheckRequests.WithLabelValues(outcome).Inc()
}

// RecordFactCheckCacheHit records a fact-check lookup served from cache
func (p *Provider) RecordFactCheckCacheHit() {
	p.Metrics.FactCheckCacheHits.Inc()
}

// RecordFetchFailure records a failed article fetch
func (p *Provider) RecordFetchFailure() {
	p.Metrics.FetchFailures.Inc()
}

// StartSpan starts a new trace span.
// The caller is responsible for ending the span with span.End().
//
//nolint:spancheck // Caller is responsible for ending the span
func (p *Provider) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := p.Tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	return ctx, span
}
