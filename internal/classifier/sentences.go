package classifier

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/jonesrussell/credibility/internal/domain"
	"github.com/jonesrussell/credibility/internal/logger"
	"github.com/jonesrussell/credibility/internal/sentence"
)

// minSentenceLength is the trimmed length in runes below which a sentence is
// skipped entirely. Skipped sentences do not appear in the output at all.
const minSentenceLength = 10

// SentenceAnalyzer ranks a document's sentences by how strongly each one
// reads as fake.
type SentenceAnalyzer struct {
	clf    Classifier
	logger logger.Logger
}

// NewSentenceAnalyzer creates a sentence ranker over the given classifier.
func NewSentenceAnalyzer(clf Classifier, log logger.Logger) *SentenceAnalyzer {
	return &SentenceAnalyzer{clf: clf, logger: log}
}

// Analyze classifies each sentence and returns them sorted by suspicion,
// highest first. Position is the sentence's index among the analyzed
// sentences, assigned before sorting; the sort is stable so ties keep
// document order. A classification failure on one sentence degrades that
// entry to a neutral 0.5/Unknown instead of failing the batch. The result is
// never nil; text with no qualifying sentences yields an empty slice.
func (a *SentenceAnalyzer) Analyze(ctx context.Context, text string) []domain.SentenceAnalysis {
	analyses := []domain.SentenceAnalysis{}

	for _, s := range sentence.Split(text) {
		if utf8.RuneCountInString(strings.TrimSpace(s)) < minSentenceLength {
			continue
		}

		position := len(analyses)
		pred, err := a.clf.Predict(ctx, s)
		if err != nil {
			a.logger.Warn("Sentence classification failed, emitting neutral entry",
				logger.Int("position", position),
				logger.Error(err))
			analyses = append(analyses, domain.SentenceAnalysis{
				Sentence:       s,
				SuspicionScore: 0.5,
				Position:       position,
				Label:          domain.LabelUnknown,
			})
			continue
		}

		analyses = append(analyses, domain.SentenceAnalysis{
			Sentence:       s,
			SuspicionScore: suspicion(pred),
			Position:       position,
			Label:          pred.Label,
		})
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].SuspicionScore > analyses[j].SuspicionScore
	})

	return analyses
}

// suspicion is how strongly a prediction reads as fake: the confidence for
// Fake, its complement for everything else.
func suspicion(pred domain.ModelPrediction) float64 {
	if pred.Label == domain.LabelFake {
		return pred.Confidence
	}
	return 1.0 - pred.Confidence
}
