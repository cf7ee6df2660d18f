package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/spacesedan/echomind/config"
	"github.com/spacesedan/echomind/internal/assessment"
	"github.com/spacesedan/echomind/internal/clients"
	"github.com/spacesedan/echomind/internal/clients/kafka_client"
	"github.com/spacesedan/echomind/internal/entities"
	"github.com/spacesedan/echomind/internal/monitoring"
	"github.com/spacesedan/echomind/internal/sentiment"
	"github.com/spacesedan/echomind/internal/store"
	"github.com/spacesedan/echomind/internal/transcription"
)

// app is everything a subcommand needs, built once from the environment.
type app struct {
	cfg      config.Config
	service  *assessment.Service
	backends []*monitoring.Backend
	closers  []func()
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func (a *app) onClose(fn func()) {
	a.closers = append(a.closers, fn)
}

// wireOptions lets a subcommand skip components it never uses.
type wireOptions struct {
	withTranscriber bool
}

func buildApp(ctx context.Context, cfg config.Config, o wireOptions) (_ *app, err error) {
	a := &app{cfg: cfg}
	defer func() {
		if err != nil {
			a.Close()
		}
	}()

	httpClient := clients.NewHuggingFaceClient(cfg.HTTP.RequestTimeout, cfg.HTTP.MaxAttempts)

	var runtime *clients.HugotRuntime
	hugotRuntime := func() (*clients.HugotRuntime, error) {
		if runtime != nil {
			return runtime, nil
		}
		r, err := clients.NewHugotRuntime(cfg.Hugot.ModelDir, cfg.Hugot.OnnxLibraryPath)
		if err != nil {
			return nil, err
		}
		runtime = r
		a.onClose(r.Destroy)
		return r, nil
	}

	classifier, err := buildClassifier(ctx, a, cfg, httpClient, hugotRuntime)
	if err != nil {
		return nil, err
	}

	extractor, err := buildExtractor(a, cfg, httpClient, hugotRuntime)
	if err != nil {
		return nil, err
	}

	splitter, err := assessment.NewPunktSplitter()
	if err != nil {
		return nil, fmt.Errorf("sentence splitter: %w", err)
	}

	logStore, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	pipeline := assessment.NewPipeline(classifier, extractor, splitter, nil)

	opts := []assessment.Option{assessment.WithTranscribeTimeout(cfg.Transcription.Timeout)}

	if o.withTranscriber {
		t, err := buildTranscriber(ctx, a, cfg, httpClient)
		if err != nil {
			return nil, err
		}
		opts = append(opts, assessment.WithTranscriber(t))
	}

	if kcfg := kafka_client.GetKafkaConfig(); kcfg.Enabled() {
		producer, err := kafka_client.NewProducer(kcfg)
		if err != nil {
			return nil, err
		}
		a.onClose(producer.Close)
		opts = append(opts, assessment.WithPublisher(producer))
	}

	a.service = assessment.NewService(pipeline, logStore, opts...)
	return a, nil
}

func buildClassifier(ctx context.Context, a *app, cfg config.Config, httpClient *clients.HuggingFaceClient,
	hugotRuntime func() (*clients.HugotRuntime, error)) (sentiment.Classifier, error) {

	var classifier sentiment.Classifier
	switch strings.ToLower(cfg.Classifier.Backend) {
	case "hugot":
		r, err := hugotRuntime()
		if err != nil {
			return nil, err
		}
		c, err := sentiment.NewHugotClassifier(r, cfg.Classifier.ModelName, cfg.Classifier.MaxInputRunes)
		if err != nil {
			return nil, err
		}
		classifier = c
	case "vader":
		classifier = sentiment.NewVaderClassifier(cfg.Classifier.MaxInputRunes)
	case "remote":
		if cfg.Classifier.RemoteURL == "" {
			return nil, errors.New("CLASSIFIER_URL is required for the remote classifier")
		}
		classifier = sentiment.NewRemoteClassifier(httpClient, cfg.Classifier.RemoteURL, cfg.Classifier.MaxInputRunes)
		a.watch("sentiment", httpClient, cfg.Classifier.RemoteURL)
	default:
		return nil, fmt.Errorf("unknown CLASSIFIER_BACKEND %q", cfg.Classifier.Backend)
	}

	if cfg.Valkey.Address == "" {
		return classifier, nil
	}
	vc, err := clients.NewValkeyClient(ctx, clients.ValkeyOptions{
		Address:  cfg.Valkey.Address,
		Password: cfg.Valkey.Password,
		TLS:      cfg.Valkey.TLS,
	})
	if err != nil {
		slog.Warn("[Main] Valkey unavailable, classifying without cache", slog.String("error", err.Error()))
		return classifier, nil
	}
	a.onClose(vc.Close)
	return sentiment.NewCachedClassifier(classifier, vc, cfg.Valkey.TTL), nil
}

func buildExtractor(a *app, cfg config.Config, httpClient *clients.HuggingFaceClient,
	hugotRuntime func() (*clients.HugotRuntime, error)) (entities.Extractor, error) {

	switch strings.ToLower(cfg.Entities.Backend) {
	case "hugot":
		r, err := hugotRuntime()
		if err != nil {
			return nil, err
		}
		return entities.NewHugotExtractor(r, cfg.Entities.ModelName)
	case "remote":
		if cfg.Entities.RemoteURL == "" {
			return nil, errors.New("ENTITIES_URL is required for the remote extractor")
		}
		a.watch("entities", httpClient, cfg.Entities.RemoteURL)
		return entities.NewRemoteExtractor(httpClient, cfg.Entities.RemoteURL), nil
	case "none", "":
		return entities.Noop{}, nil
	default:
		return nil, fmt.Errorf("unknown ENTITIES_BACKEND %q", cfg.Entities.Backend)
	}
}

func buildTranscriber(ctx context.Context, a *app, cfg config.Config,
	httpClient *clients.HuggingFaceClient) (transcription.Transcriber, error) {

	switch strings.ToLower(cfg.Transcription.Backend) {
	case "openai":
		client, err := clients.NewOpenAIClient(cfg.Transcription.OpenAIAPIKey, cfg.Transcription.Timeout)
		if err != nil {
			return nil, err
		}
		return transcription.NewOpenAITranscriber(client, cfg.Transcription.OpenAIModel), nil
	case "whisper":
		a.watch("whisper", httpClient, cfg.Transcription.WhisperURL)
		return transcription.NewWhisperHTTPTranscriber(newTranscriptionClient(cfg), cfg.Transcription.WhisperURL), nil
	case "google":
		g, err := transcription.NewGoogleTranscriber(ctx, cfg.Transcription.LanguageCode)
		if err != nil {
			return nil, err
		}
		a.onClose(func() {
			if err := g.Close(); err != nil {
				slog.Warn("[Main] Failed to close speech client", slog.String("error", err.Error()))
			}
		})
		return g, nil
	default:
		return nil, fmt.Errorf("unknown TRANSCRIPTION_BACKEND %q", cfg.Transcription.Backend)
	}
}

// newTranscriptionClient is bounded by TRANSCRIPTION_TIMEOUT rather than the
// shorter per-request timeout of the model clients.
func newTranscriptionClient(cfg config.Config) *clients.HuggingFaceClient {
	return clients.NewHuggingFaceClient(cfg.Transcription.Timeout, cfg.HTTP.MaxAttempts)
}

func buildStore(ctx context.Context, cfg config.Config) (assessment.LogStore, error) {
	switch strings.ToLower(cfg.Store.Backend) {
	case "csv":
		return store.NewCSVStore(cfg.Store.CSVPath), nil
	case "dynamodb":
		client, err := clients.NewDynamoDBClient(ctx, cfg.Store.AWSRegion, cfg.Store.AWSEndpoint)
		if err != nil {
			return nil, err
		}
		return store.NewDynamoStore(client, cfg.Store.DynamoTable), nil
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.Store.Backend)
	}
}

// watch registers a remote model server for /healthz. Probes go to
// <scheme>://<host>/health.
func (a *app) watch(name string, httpClient *clients.HuggingFaceClient, endpoint string) {
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		slog.Warn("[Main] Cannot monitor backend", slog.String("backend", name), slog.String("url", endpoint))
		return
	}
	health := u.Scheme + "://" + u.Host + "/health"
	a.backends = append(a.backends, monitoring.NewBackend(name, func(ctx context.Context) bool {
		return httpClient.HealthCheck(ctx, health)
	}))
}
