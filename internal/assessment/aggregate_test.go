package assessment

import (
	"testing"

	"github.com/spacesedan/echomind/internal/models"
	"github.com/stretchr/testify/assert"
)

func results(pairs ...interface{}) []models.SentenceResult {
	var out []models.SentenceResult
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, models.SentenceResult{Label: pairs[i].(models.Label), Confidence: pairs[i+1].(float64)})
	}
	return out
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		name       string
		in         []models.SentenceResult
		label      models.Label
		confidence float64
	}{
		{"single", results(models.LabelNegative, 0.5), models.LabelNegative, 50},
		{"majority wins", results(models.LabelNeutral, 0.6, models.LabelNeutral, 0.8, models.LabelPositive, 0.99), models.LabelNeutral, 79.67},
		{"positive beats negative on tie", results(models.LabelPositive, 0.9, models.LabelNegative, 0.7), models.LabelPositive, 80},
		{"negative beats neutral on tie", results(models.LabelNeutral, 0.5, models.LabelNegative, 0.5), models.LabelNegative, 50},
		{"three way tie goes positive", results(models.LabelNeutral, 0.3, models.LabelNegative, 0.3, models.LabelPositive, 0.3), models.LabelPositive, 30},
		{"rounds mean", results(models.LabelPositive, 0.1, models.LabelPositive, 0.2, models.LabelPositive, 0.2), models.LabelPositive, 16.67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, confidence, ok := Aggregate(tt.in)
			assert.True(t, ok)
			assert.Equal(t, tt.label, label)
			assert.InDelta(t, tt.confidence, confidence, 1e-9)
		})
	}
}

func TestAggregate_Empty(t *testing.T) {
	label, confidence, ok := Aggregate(nil)
	assert.False(t, ok)
	assert.Equal(t, models.LabelNeutral, label)
	assert.Zero(t, confidence)
}
