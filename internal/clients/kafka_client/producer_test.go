package kafka_client

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/spacesedan/echomind/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	entry := models.LogEntry{
		Timestamp:      time.Date(2024, 5, 1, 9, 30, 15, 0, time.Local),
		Text:           "I love this, really",
		SentimentLabel: models.LabelPositive,
		SentimentScore: 91.25,
	}

	msg, err := buildMessage("assessment-logs", entry)
	require.NoError(t, err)

	assert.Equal(t, "assessment-logs", *msg.TopicPartition.Topic)
	assert.Equal(t, "2024-05-01 09:30:15", string(msg.Key))

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "2024-05-01 09:30:15", decoded["timestamp"])
	assert.Equal(t, "I love this, really", decoded["text"])
	assert.Equal(t, "POSITIVE", decoded["sentiment_label"])
	assert.Equal(t, 91.25, decoded["sentiment_score"])
}

func TestKafkaConfig_Enabled(t *testing.T) {
	assert.False(t, KafkaConfig{}.Enabled())
	assert.True(t, KafkaConfig{Broker: "localhost:29092"}.Enabled())
}
