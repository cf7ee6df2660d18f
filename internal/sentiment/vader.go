package sentiment

import (
	"context"
	"math"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/spacesedan/echomind/internal/models"
)

const VADER_THRESHOLD = 0.20

// VaderClassifier is the lexicon fallback used when no transformer model is
// available. The compound score decides the label; its magnitude is reported
// as the confidence.
type VaderClassifier struct {
	analyzer *govader.SentimentIntensityAnalyzer
	maxRunes int
}

func NewVaderClassifier(maxRunes int) *VaderClassifier {
	return &VaderClassifier{
		analyzer: govader.NewSentimentIntensityAnalyzer(),
		maxRunes: maxRunes,
	}
}

func (v *VaderClassifier) Classify(_ context.Context, text string) (models.Label, float64, error) {
	if strings.TrimSpace(text) == "" {
		return models.LabelNeutral, 0, nil
	}

	score := v.analyzer.PolarityScores(Truncate(text, v.maxRunes)).Compound

	switch {
	case score >= VADER_THRESHOLD:
		return models.LabelPositive, math.Abs(score), nil
	case score <= -VADER_THRESHOLD:
		return models.LabelNegative, math.Abs(score), nil
	default:
		return models.LabelNeutral, 1 - math.Abs(score), nil
	}
}
