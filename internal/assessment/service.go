package assessment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spacesedan/echomind/internal/models"
	"github.com/spacesedan/echomind/internal/transcription"
)

// LogStore persists assessments. Implementations are not required to be safe
// across processes; see store.CSVStore for the guarantees of the default one.
type LogStore interface {
	Append(ctx context.Context, entry models.LogEntry) error
	LoadAll(ctx context.Context) ([]models.LogEntry, error)
}

// Publisher mirrors logged entries to another system.
type Publisher interface {
	Publish(ctx context.Context, entry models.LogEntry) error
}

type Service struct {
	pipeline          *Pipeline
	transcriber       transcription.Transcriber
	store             LogStore
	publisher         Publisher
	transcribeTimeout time.Duration
}

type Option func(*Service)

func WithTranscriber(t transcription.Transcriber) Option {
	return func(s *Service) { s.transcriber = t }
}

func WithPublisher(p Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithTranscribeTimeout bounds each transcription; zero means no bound.
func WithTranscribeTimeout(d time.Duration) Option {
	return func(s *Service) { s.transcribeTimeout = d }
}

func NewService(pipeline *Pipeline, store LogStore, opts ...Option) *Service {
	s := &Service{pipeline: pipeline, store: store}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmitText assesses text and logs the result. Blank text fails with
// models.ErrInput before anything runs. A failed log write is returned
// together with the finished assessment.
func (s *Service) SubmitText(ctx context.Context, text string) (models.Assessment, error) {
	if strings.TrimSpace(text) == "" {
		return models.Assessment{}, fmt.Errorf("please enter some text: %w", models.ErrInput)
	}

	a, err := s.pipeline.Assess(ctx, text)
	if err != nil {
		return models.Assessment{}, err
	}

	if a.Empty {
		slog.Warn("[AssessmentService] No sentences found, skipping log")
		return a, nil
	}

	entry := a.LogEntry()
	if err := s.store.Append(ctx, entry); err != nil {
		slog.Error("[AssessmentService] Failed to log assessment", slog.String("error", err.Error()))
		return a, err
	}

	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, entry); err != nil {
			slog.Warn("[AssessmentService] Failed to mirror assessment",
				slog.String("error", err.Error()))
		}
	}
	return a, nil
}

// SubmitAudio transcribes the file at path and submits the transcript. A
// missing file fails with models.ErrNotFound and nothing is logged.
func (s *Service) SubmitAudio(ctx context.Context, path string) (models.Assessment, error) {
	if s.transcriber == nil {
		return models.Assessment{}, errors.New("audio transcription is not configured")
	}
	if !transcription.SupportedExtension(path) {
		return models.Assessment{}, fmt.Errorf("upload an .mp3 or .wav file: %w", models.ErrInput)
	}

	tctx := ctx
	if s.transcribeTimeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, s.transcribeTimeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.transcriber.Transcribe(tctx, path)
	if err != nil {
		return models.Assessment{}, fmt.Errorf("transcribe %s: %w", path, err)
	}
	slog.Info("[AssessmentService] Transcription complete",
		slog.Duration("elapsed", time.Since(start)),
		slog.Int("characters", len(text)))

	if strings.TrimSpace(text) == "" {
		return models.Assessment{}, fmt.Errorf("no speech detected in %s: %w", path, models.ErrInput)
	}
	return s.SubmitText(ctx, text)
}

// History returns every logged entry in insertion order. A log that cannot
// be parsed is reported and treated as an empty history.
func (s *Service) History(ctx context.Context) ([]models.LogEntry, error) {
	entries, err := s.store.LoadAll(ctx)
	if errors.Is(err, models.ErrPersistence) {
		slog.Error("[AssessmentService] Assessment log is unreadable, showing empty history",
			slog.String("error", err.Error()))
		return []models.LogEntry{}, nil
	}
	return entries, err
}
