package transcription

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go"
)

// OpenAITranscriber sends audio to the OpenAI Whisper API.
type OpenAITranscriber struct {
	client *openai.Client
	model  openai.AudioModel
}

func NewOpenAITranscriber(client *openai.Client, model string) *OpenAITranscriber {
	m := openai.AudioModel(model)
	if m == "" {
		m = openai.AudioModelWhisper1
	}
	return &OpenAITranscriber{client: client, model: m}
}

func (o *OpenAITranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	if err := checkAudio(path); err != nil {
		return "", err
	}

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("[OpenAITranscriber] failed to open audio: %w", err)
	}
	defer f.Close()

	slog.Info("[OpenAITranscriber] Transcribing audio", slog.String("path", path))
	start := time.Now()

	transcription, err := o.client.Audio.Transcriptions.New(ctx, openai.AudioTranscriptionNewParams{
		File:  openai.F[io.Reader](f),
		Model: openai.F(o.model),
	})
	if err != nil {
		slog.Error("[OpenAITranscriber] Transcription failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("[OpenAITranscriber] %w", err)
	}

	slog.Info("[OpenAITranscriber] Transcription complete",
		slog.Duration("elapsed", time.Since(start)))
	return strings.TrimSpace(transcription.Text), nil
}
