// Package assessment turns one submission into an Assessment and records it.
package assessment

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/spacesedan/echomind/internal/entities"
	"github.com/spacesedan/echomind/internal/models"
	"github.com/spacesedan/echomind/internal/sentiment"
)

// Pipeline classifies a text sentence by sentence and as a whole, extracts
// entities and picks a response message. It has no side effects.
type Pipeline struct {
	classifier sentiment.Classifier
	extractor  entities.Extractor
	splitter   Splitter
	normalize  func(string) string
	now        func() time.Time

	mu  sync.Mutex
	rng *rand.Rand
}

func NewPipeline(classifier sentiment.Classifier, extractor entities.Extractor, splitter Splitter, rng *rand.Rand) *Pipeline {
	if extractor == nil {
		extractor = entities.Noop{}
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	}
	return &Pipeline{
		classifier: classifier,
		extractor:  extractor,
		splitter:   splitter,
		normalize:  sentiment.Normalize,
		now:        time.Now,
		rng:        rng,
	}
}

// Assess runs the full analysis of text. If no sentences are found the
// result is marked Empty with a NEUTRAL, zero-confidence aggregate.
func (p *Pipeline) Assess(ctx context.Context, text string) (models.Assessment, error) {
	start := time.Now()
	a := models.Assessment{
		Timestamp:  p.now(),
		SourceText: text,
		Sentences:  []models.SentenceResult{},
	}

	for _, sentence := range p.splitter.Split(text) {
		label, confidence, err := p.classifier.Classify(ctx, p.normalize(sentence))
		if err != nil {
			return models.Assessment{}, fmt.Errorf("classify sentence: %w", err)
		}
		a.Sentences = append(a.Sentences, models.SentenceResult{
			Sentence:   sentence,
			Label:      label,
			Confidence: confidence,
		})
	}

	var ok bool
	a.OverallLabel, a.OverallConfidence, ok = Aggregate(a.Sentences)
	a.Empty = !ok

	fullLabel, fullConfidence, err := p.classifier.Classify(ctx, p.normalize(text))
	if err != nil {
		return models.Assessment{}, fmt.Errorf("classify full text: %w", err)
	}
	a.FullLabel, a.FullConfidence = fullLabel, fullConfidence

	a.Entities, err = p.extractor.Extract(ctx, text)
	if err != nil {
		return models.Assessment{}, fmt.Errorf("extract entities: %w", err)
	}

	p.mu.Lock()
	a.Message = PickQuote(p.rng, a.FullLabel)
	p.mu.Unlock()

	slog.Info("[Pipeline] Assessment complete",
		slog.Int("sentences", len(a.Sentences)),
		slog.String("overall_label", string(a.OverallLabel)),
		slog.Float64("overall_confidence", a.OverallConfidence),
		slog.String("full_label", string(a.FullLabel)),
		slog.Int("entities", len(a.Entities)),
		slog.Duration("elapsed", time.Since(start)))
	return a, nil
}
