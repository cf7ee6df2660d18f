package transcription

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"

	"github.com/spacesedan/echomind/internal/models"
)

// GoogleTranscriber uses synchronous Google Cloud Speech-to-Text recognition.
// Only WAV input is accepted; encoding and sample rate come from the header.
// Requires GOOGLE_APPLICATION_CREDENTIALS.
type GoogleTranscriber struct {
	client       *speech.Client
	languageCode string
}

func NewGoogleTranscriber(ctx context.Context, languageCode string) (*GoogleTranscriber, error) {
	c, err := speech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("[GoogleTranscriber] failed to create client: %w", err)
	}
	return &GoogleTranscriber{client: c, languageCode: languageCode}, nil
}

func (g *GoogleTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	if err := checkAudio(path); err != nil {
		return "", err
	}
	if strings.ToLower(filepath.Ext(path)) != ".wav" {
		return "", fmt.Errorf("google speech accepts .wav only: %w", models.ErrInput)
	}

	audio, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("[GoogleTranscriber] failed to read audio: %w", err)
	}

	resp, err := g.client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			LanguageCode:               g.languageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	})
	if err != nil {
		return "", fmt.Errorf("[GoogleTranscriber] %w", err)
	}

	slog.Info("[GoogleTranscriber] Transcription complete", slog.Int("results", len(resp.Results)))
	return joinResults(resp.Results), nil
}

func (g *GoogleTranscriber) Close() error {
	return g.client.Close()
}

func joinResults(results []*speechpb.SpeechRecognitionResult) string {
	parts := make([]string, 0, len(results))
	for _, r := range results {
		if len(r.Alternatives) == 0 {
			continue
		}
		if t := strings.TrimSpace(r.Alternatives[0].Transcript); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
