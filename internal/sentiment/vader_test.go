package sentiment

import (
	"context"
	"testing"

	"github.com/spacesedan/echomind/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaderClassifier(t *testing.T) {
	c := NewVaderClassifier(0)
	ctx := context.Background()

	tests := []struct {
		text string
		want models.Label
	}{
		{"I love this!", models.LabelPositive},
		{"I hate waiting.", models.LabelNegative},
		{"The meeting is at noon.", models.LabelNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			label, confidence, err := c.Classify(ctx, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, label)
			assert.GreaterOrEqual(t, confidence, 0.0)
			assert.LessOrEqual(t, confidence, 1.0)
		})
	}
}

func TestVaderClassifier_Empty(t *testing.T) {
	label, confidence, err := NewVaderClassifier(0).Classify(context.Background(), "   ")
	require.NoError(t, err)
	assert.Equal(t, models.LabelNeutral, label)
	assert.Zero(t, confidence)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "héllo", Truncate("héllo wörld", 5))
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "unbounded", Truncate("unbounded", 0))
}

func TestArgmax_TieKeepsFirst(t *testing.T) {
	labels := []models.Label{models.LabelNegative, models.LabelNeutral, models.LabelPositive}
	label, score := argmax(labels, []float64{0.4, 0.4, 0.2})
	assert.Equal(t, models.LabelNegative, label)
	assert.Equal(t, 0.4, score)
}
