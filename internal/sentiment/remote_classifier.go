package sentiment

import (
	"context"
	"fmt"
	"strings"

	"github.com/spacesedan/echomind/internal/clients"
	"github.com/spacesedan/echomind/internal/models"
)

// RemoteClassifier delegates to a sentiment service reachable over HTTP
// (for example a Hugging Face Space serving the same checkpoint).
type RemoteClassifier struct {
	client   *clients.HuggingFaceClient
	endpoint string
	maxRunes int
}

func NewRemoteClassifier(client *clients.HuggingFaceClient, endpoint string, maxRunes int) *RemoteClassifier {
	return &RemoteClassifier{client: client, endpoint: endpoint, maxRunes: maxRunes}
}

func (r *RemoteClassifier) Classify(ctx context.Context, text string) (models.Label, float64, error) {
	if strings.TrimSpace(text) == "" {
		return models.LabelNeutral, 0, nil
	}

	var resp models.SentimentAnalysisResponse
	req := models.SentimentAnalysisRequest{Text: Truncate(text, r.maxRunes)}
	if err := r.client.PostJSON(ctx, r.endpoint, req, &resp); err != nil {
		return "", 0, fmt.Errorf("[RemoteClassifier] %w", err)
	}

	// Services that return the full distribution win over a bare label.
	if len(resp.Scores) > 0 {
		var labels []models.Label
		var scores []float64
		for _, s := range resp.Scores {
			label, err := models.ParseLabel(s.Label)
			if err != nil {
				return "", 0, fmt.Errorf("[RemoteClassifier] %w", err)
			}
			labels = append(labels, label)
			scores = append(scores, s.Score)
		}
		label, score := argmax(labels, scores)
		return label, score, nil
	}

	label, err := models.ParseLabel(resp.SentimentLabel)
	if err != nil {
		return "", 0, fmt.Errorf("[RemoteClassifier] %w", err)
	}
	if resp.Confidence < 0 || resp.Confidence > 1 {
		return "", 0, fmt.Errorf("[RemoteClassifier] confidence %v out of range", resp.Confidence)
	}
	return label, resp.Confidence, nil
}
