package sentiment

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

// HugotClassifier runs a three-class transformer checkpoint (by default
// cardiffnlp/twitter-roberta-base-sentiment) locally through ONNX Runtime.
type HugotClassifier struct {
	pipeline *pipelines.TextClassificationPipeline
	maxRunes int
	mu       sync.Mutex
}

func NewHugotClassifier(runtime *clients.HugotRuntime, modelName string, maxRunes int) (*HugotClassifier, error) {
	modelPath, err := runtime.EnsureModel(modelName)
	if err != nil {
		return nil, err
	}

	config := hugot.TextClassificationConfig{
		ModelPath: modelPath,
		Name:      "sentimentPipeline",
		Options: []hugot.TextClassificationOption{
			pipelines.WithSoftmax(),
		},
	}
	pipeline, err := hugot.NewPipeline(runtime.Session, config)
	if err != nil {
		return nil, fmt.Errorf("[HugotClassifier] failed to initialize pipeline: %w", err)
	}

	slog.Info("[HugotClassifier] Pipeline ready", slog.String("model", modelName))
	return &HugotClassifier{pipeline: pipeline, maxRunes: maxRunes}, nil
}

func (h *HugotClassifier) Classify(_ context.Context, text string) (models.Label, float64, error) {
	if strings.TrimSpace(text) == "" {
		return models.LabelNeutral, 0, nil
	}

	h.mu.Lock()
	output, err := h.pipeline.RunPipeline([]string{Truncate(text, h.maxRunes)})
	h.mu.Unlock()
	if err != nil {
		return "", 0, fmt.Errorf("[HugotClassifier] inference failed: %w", err)
	}
	if len(output.ClassificationOutputs) == 0 {
		return "", 0, fmt.Errorf("[HugotClassifier] empty model output")
	}

	var labels []models.Label
	var scores []float64
	for _, out := range output.ClassificationOutputs[0] {
		label, err := models.ParseLabel(out.Label)
		if err != nil {
			slog.Warn("[HugotClassifier] Skipping unknown label", slog.String("label", out.Label))
			continue
		}
		labels = append(labels, label)
		scores = append(scores, float64(out.Score))
	}
	if len(labels) == 0 {
		return "", 0, fmt.Errorf("[HugotClassifier] model returned no known labels")
	}

	label, score := argmax(labels, scores)
	return label, score, nil
}
