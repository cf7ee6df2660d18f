package entities

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"
	"github.com/spacesedan/echomind/internal/clients"
	"github.com/spacesedan/echomind/internal/models"
)

// HugotExtractor runs a token-classification NER checkpoint locally.
type HugotExtractor struct {
	pipeline *pipelines.TokenClassificationPipeline
	mu       sync.Mutex
}

func NewHugotExtractor(runtime *clients.HugotRuntime, modelName string) (*HugotExtractor, error) {
	modelPath, err := runtime.EnsureModel(modelName)
	if err != nil {
		return nil, err
	}

	config := hugot.TokenClassificationConfig{
		ModelPath: modelPath,
		Name:      "nerPipeline",
		Options: []hugot.TokenClassificationOption{
			pipelines.WithSimpleAggregation(),
			pipelines.WithIgnoreLabels([]string{"O"}),
		},
	}
	pipeline, err := hugot.NewPipeline(runtime.Session, config)
	if err != nil {
		return nil, fmt.Errorf("[HugotExtractor] failed to initialize pipeline: %w", err)
	}

	slog.Info("[HugotExtractor] Pipeline ready", slog.String("model", modelName))
	return &HugotExtractor{pipeline: pipeline}, nil
}

func (h *HugotExtractor) Extract(_ context.Context, text string) ([]models.EntityMention, error) {
	mentions := []models.EntityMention{}
	if strings.TrimSpace(text) == "" {
		return mentions, nil
	}

	h.mu.Lock()
	output, err := h.pipeline.RunPipeline([]string{text})
	h.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("[HugotExtractor] inference failed: %w", err)
	}
	if len(output.Entities) == 0 {
		return mentions, nil
	}

	for _, e := range output.Entities[0] {
		span := strings.TrimSpace(e.Word)
		if span == "" {
			continue
		}
		mentions = append(mentions, models.EntityMention{
			Text: span,
			Type: strings.TrimPrefix(strings.TrimPrefix(e.Entity, "B-"), "I-"),
		})
	}
	return mentions, nil
}
