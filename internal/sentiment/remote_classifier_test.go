package sentiment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spacesedan/echomind/internal/clients"
	"github.com/spacesedan/echomind/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSentimentServer(t *testing.T, handler func(req models.SentimentAnalysisRequest) (int, interface{})) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req models.SentimentAnalysisRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		status, body := handler(req)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRemoteClassifier_ScoresDistribution(t *testing.T) {
	srv := newSentimentServer(t, func(req models.SentimentAnalysisRequest) (int, interface{}) {
		assert.Equal(t, "I love this!", req.Text)
		return http.StatusOK, models.SentimentAnalysisResponse{
			Scores: []models.LabelScore{
				{Label: "LABEL_0", Score: 0.02},
				{Label: "LABEL_1", Score: 0.08},
				{Label: "LABEL_2", Score: 0.90},
			},
		}
	})

	c := NewRemoteClassifier(clients.NewHuggingFaceClient(time.Second, 1), srv.URL, 0)
	label, confidence, err := c.Classify(context.Background(), "I love this!")
	require.NoError(t, err)
	assert.Equal(t, models.LabelPositive, label)
	assert.InDelta(t, 0.90, confidence, 1e-9)
}

func TestRemoteClassifier_BareLabel(t *testing.T) {
	srv := newSentimentServer(t, func(models.SentimentAnalysisRequest) (int, interface{}) {
		return http.StatusOK, models.SentimentAnalysisResponse{SentimentLabel: "negative", Confidence: 0.7}
	})

	c := NewRemoteClassifier(clients.NewHuggingFaceClient(time.Second, 1), srv.URL, 0)
	label, confidence, err := c.Classify(context.Background(), "I hate waiting.")
	require.NoError(t, err)
	assert.Equal(t, models.LabelNegative, label)
	assert.Equal(t, 0.7, confidence)
}

func TestRemoteClassifier_TruncatesInput(t *testing.T) {
	srv := newSentimentServer(t, func(req models.SentimentAnalysisRequest) (int, interface{}) {
		assert.Equal(t, "abcde", req.Text)
		return http.StatusOK, models.SentimentAnalysisResponse{SentimentLabel: "NEUTRAL", Confidence: 0.5}
	})

	c := NewRemoteClassifier(clients.NewHuggingFaceClient(time.Second, 1), srv.URL, 5)
	_, _, err := c.Classify(context.Background(), "abcdefghij")
	require.NoError(t, err)
}

func TestRemoteClassifier_ServerError(t *testing.T) {
	srv := newSentimentServer(t, func(models.SentimentAnalysisRequest) (int, interface{}) {
		return http.StatusInternalServerError, map[string]string{"error": "boom"}
	})

	c := NewRemoteClassifier(clients.NewHuggingFaceClient(time.Second, 1), srv.URL, 0)
	_, _, err := c.Classify(context.Background(), "hello")
	assert.Error(t, err)
}

func TestRemoteClassifier_UnknownLabel(t *testing.T) {
	srv := newSentimentServer(t, func(models.SentimentAnalysisRequest) (int, interface{}) {
		return http.StatusOK, models.SentimentAnalysisResponse{SentimentLabel: "ecstatic", Confidence: 0.9}
	})

	c := NewRemoteClassifier(clients.NewHuggingFaceClient(time.Second, 1), srv.URL, 0)
	_, _, err := c.Classify(context.Background(), "hello")
	assert.Error(t, err)
}

func TestRemoteClassifier_EmptySkipsService(t *testing.T) {
	c := NewRemoteClassifier(clients.NewHuggingFaceClient(time.Second, 1), "http://127.0.0.1:0", 0)
	label, confidence, err := c.Classify(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, models.LabelNeutral, label)
	assert.Zero(t, confidence)
}
