package transcription

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spacesedan/echomind/internal/clients"
	"github.com/spacesedan/echomind/internal/models"
)

// WhisperHTTPTranscriber uploads audio to a self-hosted whisper service that
// answers POST <url>/transcribe with {"text": "..."}.
type WhisperHTTPTranscriber struct {
	client  *clients.HuggingFaceClient
	baseURL string
}

func NewWhisperHTTPTranscriber(client *clients.HuggingFaceClient, baseURL string) *WhisperHTTPTranscriber {
	return &WhisperHTTPTranscriber{client: client, baseURL: strings.TrimRight(baseURL, "/")}
}

func (w *WhisperHTTPTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	if err := checkAudio(path); err != nil {
		return "", err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return "", err
	}
	fd, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("[WhisperTranscriber] failed to open audio: %w", err)
	}
	defer fd.Close()

	if _, err = io.Copy(fw, fd); err != nil {
		return "", err
	}
	if err = mw.Close(); err != nil {
		return "", err
	}

	slog.Info("[WhisperTranscriber] Transcribing audio", slog.String("path", path))
	start := time.Now()

	var out models.TranscriptionResponse
	if err := w.client.PostMultipart(ctx, w.baseURL+"/transcribe", mw.FormDataContentType(), body.Bytes(), &out); err != nil {
		return "", fmt.Errorf("[WhisperTranscriber] %w", err)
	}

	slog.Info("[WhisperTranscriber] Transcription complete",
		slog.Duration("elapsed", time.Since(start)),
		slog.String("language", out.Language))
	return strings.TrimSpace(out.Text), nil
}
