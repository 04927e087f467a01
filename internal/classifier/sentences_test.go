package classifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonesrussell/credibility/internal/domain"
	"github.com/jonesrussell/credibility/internal/logger"
)

// stubClassifier returns canned predictions keyed by substring, and fails
// for sentences containing failOn.
type stubClassifier struct {
	predictions map[string]domain.ModelPrediction
	failOn      string
}

func (s *stubClassifier) Predict(_ context.Context, text string) (domain.ModelPrediction, error) {
	if s.failOn != "" && strings.Contains(text, s.failOn) {
		return failClosed(len(text)), errors.New("inference failed")
	}
	for key, pred := range s.predictions {
		if strings.Contains(text, key) {
			return pred, nil
		}
	}
	return domain.ModelPrediction{Label: domain.LabelReal, Confidence: 0.8}, nil
}

func (s *stubClassifier) Info() domain.ModelInfo {
	return domain.ModelInfo{Name: "stub", Mode: "heuristic"}
}

func TestSentenceAnalyzer_RanksBySuspicion(t *testing.T) {
	clf := &stubClassifier{predictions: map[string]domain.ModelPrediction{
		"aliens":  {Label: domain.LabelFake, Confidence: 0.95},
		"economy": {Label: domain.LabelReal, Confidence: 0.9},
		"weather": {Label: domain.LabelReal, Confidence: 0.6},
	}}
	sa := NewSentenceAnalyzer(clf, logger.NewNop())

	text := "The economy grew last quarter. The weather stayed mild overall. Then aliens landed downtown."
	got := sa.Analyze(context.Background(), text)

	if len(got) != 3 {
		t.Fatalf("got %d sentences, want 3", len(got))
	}

	// aliens: suspicion 0.95; weather: 1-0.6=0.4; economy: 1-0.9=0.1
	if !strings.Contains(got[0].Sentence, "aliens") {
		t.Errorf("most suspicious = %q, want the aliens sentence", got[0].Sentence)
	}
	if got[0].SuspicionScore != 0.95 {
		t.Errorf("suspicion = %v, want 0.95", got[0].SuspicionScore)
	}
	if got[0].Position != 2 {
		t.Errorf("position = %d, want original index 2", got[0].Position)
	}
	if !strings.Contains(got[2].Sentence, "economy") {
		t.Errorf("least suspicious = %q, want the economy sentence", got[2].Sentence)
	}
}

func TestSentenceAnalyzer_SkipsShortSentences(t *testing.T) {
	sa := NewSentenceAnalyzer(&stubClassifier{}, logger.NewNop())

	text := "No. The committee published its findings yesterday. Ok! Reporters questioned the methodology at length."
	got := sa.Analyze(context.Background(), text)

	if len(got) != 2 {
		t.Fatalf("got %d sentences, want 2 (short ones skipped)", len(got))
	}
	for _, s := range got {
		if len(strings.TrimSpace(s.Sentence)) < minSentenceLength {
			t.Errorf("short sentence leaked through: %q", s.Sentence)
		}
	}
	// Positions index the filtered sequence, not the raw split.
	positions := map[int]bool{}
	for _, s := range got {
		positions[s.Position] = true
	}
	if !positions[0] || !positions[1] {
		t.Errorf("positions not contiguous from 0: %+v", got)
	}
}

func TestSentenceAnalyzer_DegradedEntryOnFailure(t *testing.T) {
	clf := &stubClassifier{
		predictions: map[string]domain.ModelPrediction{
			"economy": {Label: domain.LabelReal, Confidence: 0.9},
		},
		failOn: "broken",
	}
	sa := NewSentenceAnalyzer(clf, logger.NewNop())

	text := "The economy grew last quarter. This broken sentence cannot be classified."
	got := sa.Analyze(context.Background(), text)

	if len(got) != 2 {
		t.Fatalf("got %d sentences, want 2 (failure must not drop the sentence)", len(got))
	}

	var degraded *domain.SentenceAnalysis
	for i := range got {
		if strings.Contains(got[i].Sentence, "broken") {
			degraded = &got[i]
		}
	}
	if degraded == nil {
		t.Fatal("failed sentence missing from output")
	}
	if degraded.SuspicionScore != 0.5 {
		t.Errorf("degraded suspicion = %v, want 0.5", degraded.SuspicionScore)
	}
	if degraded.Label != domain.LabelUnknown {
		t.Errorf("degraded label = %q, want Unknown", degraded.Label)
	}
}

func TestSentenceAnalyzer_StableTieBreak(t *testing.T) {
	// Every sentence gets the same prediction, so suspicion ties across the
	// board and document order must be preserved.
	sa := NewSentenceAnalyzer(&stubClassifier{}, logger.NewNop())

	text := "First proper sentence here. Second proper sentence here. Third proper sentence here."
	got := sa.Analyze(context.Background(), text)

	if len(got) != 3 {
		t.Fatalf("got %d sentences, want 3", len(got))
	}
	for i, s := range got {
		if s.Position != i {
			t.Errorf("tie-broken order changed: index %d has position %d", i, s.Position)
		}
	}
}

func TestSentenceAnalyzer_EmptyText(t *testing.T) {
	sa := NewSentenceAnalyzer(&stubClassifier{}, logger.NewNop())
	if got := sa.Analyze(context.Background(), ""); len(got) != 0 {
		t.Errorf("got %d sentences for empty text, want 0", len(got))
	}
}

func TestSentenceAnalyzer_ShortOnlyTextYieldsEmptyList(t *testing.T) {
	sa := NewSentenceAnalyzer(&stubClassifier{}, logger.NewNop())

	got := sa.Analyze(context.Background(), "Hi. No. Ok.")
	if got == nil {
		t.Fatal("got nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("got %d sentences, want 0", len(got))
	}
}

func TestSentenceAnalyzer_LengthFloorCountsRunes(t *testing.T) {
	sa := NewSentenceAnalyzer(&stubClassifier{}, logger.NewNop())

	// Seven characters but 21 bytes; the floor counts characters.
	if got := sa.Analyze(context.Background(), "偽ニュース注意"); len(got) != 0 {
		t.Errorf("got %d sentences for 7-rune text, want 0", len(got))
	}
	if got := sa.Analyze(context.Background(), "気候変動に関する偽情報が拡散中"); len(got) != 1 {
		t.Errorf("got %d sentences for 15-rune text, want 1", len(got))
	}
}

func TestSuspicion(t *testing.T) {
	tests := []struct {
		label      domain.Label
		confidence float64
		want       float64
	}{
		{domain.LabelFake, 0.9, 0.9},
		{domain.LabelFake, 0.2, 0.2},
		{domain.LabelReal, 0.9, 1.0 - 0.9},
		{domain.LabelBiased, 0.7, 1.0 - 0.7},
		{domain.LabelUnknown, 0.5, 0.5},
	}
	for _, tt := range tests {
		pred := domain.ModelPrediction{Label: tt.label, Confidence: tt.confidence}
		if got := suspicion(pred); got != tt.want {
			t.Errorf("suspicion(%s, %v) = %v, want %v", tt.label, tt.confidence, got, tt.want)
		}
	}
}
