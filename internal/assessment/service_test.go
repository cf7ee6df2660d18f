package assessment

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/spacesedan/echomind/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	entries   []models.LogEntry
	appendErr error
	loadErr   error
}

func (m *memoryStore) Append(_ context.Context, entry models.LogEntry) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *memoryStore) LoadAll(context.Context) ([]models.LogEntry, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]models.LogEntry(nil), m.entries...), nil
}

type recordingPublisher struct {
	published []models.LogEntry
	err       error
}

func (r *recordingPublisher) Publish(_ context.Context, entry models.LogEntry) error {
	r.published = append(r.published, entry)
	return r.err
}

type fakeTranscriber struct {
	text     string
	err      error
	deadline bool
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, path string) (string, error) {
	_, f.deadline = ctx.Deadline()
	return f.text, f.err
}

func newTestService(t *testing.T, store *memoryStore, opts ...Option) (*Service, *fakeClassifier) {
	t.Helper()
	c := &fakeClassifier{table: map[string]scored{
		"I love this!":    {models.LabelPositive, 0.9},
		"I hate waiting.": {models.LabelNegative, 0.7},
	}}
	return NewService(newTestPipeline(t, c, fakeExtractor{}, fieldsSplitter{}), store, opts...), c
}

func TestService_SubmitText_LogsAssessment(t *testing.T) {
	store := &memoryStore{}
	pub := &recordingPublisher{}
	svc, _ := newTestService(t, store, WithPublisher(pub))

	a, err := svc.SubmitText(context.Background(), "I love this! | I hate waiting.")
	require.NoError(t, err)

	require.Len(t, store.entries, 1)
	entry := store.entries[0]
	assert.Equal(t, "I love this! | I hate waiting.", entry.Text)
	assert.Equal(t, models.LabelPositive, entry.SentimentLabel)
	assert.InDelta(t, 80.0, entry.SentimentScore, 1e-9)
	assert.Equal(t, a.LogEntry(), entry)
	assert.Equal(t, store.entries, pub.published)
}

func TestService_SubmitText_BlankInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		store := &memoryStore{}
		svc, c := newTestService(t, store)

		_, err := svc.SubmitText(context.Background(), input)

		assert.ErrorIs(t, err, models.ErrInput)
		assert.Empty(t, store.entries)
		assert.Empty(t, c.seen, "pipeline must not run")
	}
}

func TestService_SubmitText_EmptyAssessmentNotLogged(t *testing.T) {
	store := &memoryStore{}
	svc, _ := newTestService(t, store)

	a, err := svc.SubmitText(context.Background(), "| |")
	require.NoError(t, err)
	assert.True(t, a.Empty)
	assert.Empty(t, store.entries)
}

func TestService_SubmitText_StoreFailureSurfaces(t *testing.T) {
	store := &memoryStore{appendErr: fmt.Errorf("disk full: %w", models.ErrPersistence)}
	svc, _ := newTestService(t, store)

	a, err := svc.SubmitText(context.Background(), "I love this!")
	assert.ErrorIs(t, err, models.ErrPersistence)
	assert.Equal(t, models.LabelPositive, a.FullLabel)
}

func TestService_SubmitText_PublisherFailureIsNotFatal(t *testing.T) {
	store := &memoryStore{}
	svc, _ := newTestService(t, store, WithPublisher(&recordingPublisher{err: errors.New("broker down")}))

	_, err := svc.SubmitText(context.Background(), "I love this!")
	require.NoError(t, err)
	assert.Len(t, store.entries, 1)
}

func TestService_SubmitAudio(t *testing.T) {
	store := &memoryStore{}
	tr := &fakeTranscriber{text: "I hate waiting."}
	svc, _ := newTestService(t, store, WithTranscriber(tr), WithTranscribeTimeout(time.Minute))

	a, err := svc.SubmitAudio(context.Background(), "voice.wav")
	require.NoError(t, err)

	assert.True(t, tr.deadline)
	assert.Equal(t, "I hate waiting.", a.SourceText)
	assert.Equal(t, models.LabelNegative, a.FullLabel)
	require.Len(t, store.entries, 1)
	assert.Equal(t, "I hate waiting.", store.entries[0].Text)
}

func TestService_SubmitAudio_NotFound(t *testing.T) {
	store := &memoryStore{}
	missing := filepath.Join(t.TempDir(), "missing.mp3")
	tr := &fakeTranscriber{err: fmt.Errorf("audio file %s: %w", missing, models.ErrNotFound)}
	svc, c := newTestService(t, store, WithTranscriber(tr))

	_, err := svc.SubmitAudio(context.Background(), missing)

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Empty(t, store.entries)
	assert.Empty(t, c.seen)
}

func TestService_SubmitAudio_RejectsUnsupportedType(t *testing.T) {
	svc, _ := newTestService(t, &memoryStore{}, WithTranscriber(&fakeTranscriber{text: "hi"}))

	_, err := svc.SubmitAudio(context.Background(), "voice.m4a")
	assert.ErrorIs(t, err, models.ErrInput)
}

func TestService_SubmitAudio_SilentRecording(t *testing.T) {
	store := &memoryStore{}
	svc, _ := newTestService(t, store, WithTranscriber(&fakeTranscriber{text: "  "}))

	_, err := svc.SubmitAudio(context.Background(), "voice.mp3")
	assert.ErrorIs(t, err, models.ErrInput)
	assert.Empty(t, store.entries)
}

func TestService_SubmitAudio_NoTranscriber(t *testing.T) {
	svc, _ := newTestService(t, &memoryStore{})

	_, err := svc.SubmitAudio(context.Background(), "voice.mp3")
	assert.Error(t, err)
}

func TestService_History(t *testing.T) {
	store := &memoryStore{}
	svc, _ := newTestService(t, store)

	_, err := svc.SubmitText(context.Background(), "I love this!")
	require.NoError(t, err)
	_, err = svc.SubmitText(context.Background(), "I hate waiting.")
	require.NoError(t, err)

	history, err := svc.History(context.Background())
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "I love this!", history[0].Text)
	assert.Equal(t, "I hate waiting.", history[1].Text)
}

func TestService_HistoryTreatsCorruptLogAsEmpty(t *testing.T) {
	svc, _ := newTestService(t, &memoryStore{loadErr: fmt.Errorf("bad header: %w", models.ErrPersistence)})

	history, err := svc.History(context.Background())
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestService_HistoryPropagatesOtherErrors(t *testing.T) {
	svc, _ := newTestService(t, &memoryStore{loadErr: context.Canceled})

	_, err := svc.History(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
}
