package entities

import (
	"context"
	"fmt"
	"strings"

	"github.com/spacesedan/echomind/internal/clients"
	"github.com/spacesedan/echomind/internal/models"
)

// RemoteExtractor calls an NER service (for example spaCy behind a small
// HTTP wrapper) that answers {"entities": [{"text": ..., "type": ...}]}.
type RemoteExtractor struct {
	client   *clients.HuggingFaceClient
	endpoint string
}

func NewRemoteExtractor(client *clients.HuggingFaceClient, endpoint string) *RemoteExtractor {
	return &RemoteExtractor{client: client, endpoint: endpoint}
}

func (r *RemoteExtractor) Extract(ctx context.Context, text string) ([]models.EntityMention, error) {
	mentions := []models.EntityMention{}
	if strings.TrimSpace(text) == "" {
		return mentions, nil
	}

	var resp models.EntityExtractionResponse
	if err := r.client.PostJSON(ctx, r.endpoint, models.EntityExtractionRequest{Text: text}, &resp); err != nil {
		return nil, fmt.Errorf("[RemoteExtractor] %w", err)
	}

	for _, e := range resp.Entities {
		if strings.TrimSpace(e.Text) == "" {
			continue
		}
		mentions = append(mentions, e)
	}
	return mentions, nil
}
