package sentiment

import (
	"context"

	"github.com/spacesedan/echomind/internal/models"
)

// Classifier scores text into one of the three sentiment classes. Confidence
// is the probability mass of the winning class, in [0,1]. Empty input yields
// NEUTRAL with zero confidence.
type Classifier interface {
	Classify(ctx context.Context, text string) (models.Label, float64, error)
}

// Truncate caps text at maxRunes runes, cutting on a rune boundary. A
// non-positive limit disables truncation.
func Truncate(text string, maxRunes int) string {
	if maxRunes <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= maxRunes {
		return text
	}
	return string(runes[:maxRunes])
}

// argmax picks the winning label from parallel label/score slices. Ties keep
// the earliest index.
func argmax(labels []models.Label, scores []float64) (models.Label, float64) {
	best := -1
	for i := range scores {
		if best == -1 || scores[i] > scores[best] {
			best = i
		}
	}
	if best == -1 {
		return models.LabelNeutral, 0
	}
	return labels[best], scores[best]
}
