package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/spacesedan/echomind/internal/models"
)

// Producer mirrors logged assessments onto a Kafka topic.
type Producer struct {
	producer *kafka.Producer
	topic    string
}

func NewProducer(cfg KafkaConfig) (*Producer, error) {
	slog.Info("[KafkaClient] Initializing Kafka Producer...",
		slog.String("broker", cfg.Broker),
		slog.String("topic", cfg.Topic))

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers":  cfg.Broker,
		"security.protocol":  "PLAINTEXT",
		"enable.idempotence": true,
		"acks":               "all",
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] Failed to create producer: %w", err)
	}

	slog.Info("[KafkaClient] Kafka Producer initialized successfully")
	return &Producer{producer: p, topic: cfg.Topic}, nil
}

// Publish sends one log entry and waits for its delivery report.
func (p *Producer) Publish(ctx context.Context, entry models.LogEntry) error {
	msg, err := buildMessage(p.topic, entry)
	if err != nil {
		return err
	}

	deliveries := make(chan kafka.Event, 1)
	for attempt := 0; attempt < MAX_RETRIES; attempt++ {
		err = p.producer.Produce(msg, deliveries)
		if err == nil {
			break
		}
		slog.Warn("[KafkaClient] Failed to produce message, retrying...",
			slog.Int("attempt", attempt+1),
			slog.String("error", err.Error()))
		time.Sleep(RETRY_DELAY)
	}
	if err != nil {
		return fmt.Errorf("[KafkaClient] failed to produce message: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case ev := <-deliveries:
		m, ok := ev.(*kafka.Message)
		if !ok {
			return fmt.Errorf("[KafkaClient] unexpected delivery event %v", ev)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("[KafkaClient] delivery failed: %w", m.TopicPartition.Error)
		}
	}

	slog.Info("[KafkaClient] Published assessment to Kafka",
		slog.String("topic", p.topic),
		slog.String("label", string(entry.SentimentLabel)))
	return nil
}

func (p *Producer) Close() {
	slog.Info("[KafkaClient] Shutting down Kafka producer...")
	if remaining := p.producer.Flush(FLUSH_TIMEOUT_MS); remaining > 0 {
		slog.Warn("[KafkaClient] Not all messages were delivered before shutdown",
			slog.Int("remaining", remaining))
	}
	p.producer.Close()
	slog.Info("[KafkaClient] Kafka producer shut down")
}

type assessmentMessage struct {
	Timestamp      string  `json:"timestamp"`
	Text           string  `json:"text"`
	SentimentLabel string  `json:"sentiment_label"`
	SentimentScore float64 `json:"sentiment_score"`
}

// buildMessage keys messages by timestamp so one partition keeps them in
// chronological order per second.
func buildMessage(topic string, entry models.LogEntry) (*kafka.Message, error) {
	ts := entry.Timestamp.Format(models.TimestampLayout)
	value, err := json.Marshal(assessmentMessage{
		Timestamp:      ts,
		Text:           entry.Text,
		SentimentLabel: string(entry.SentimentLabel),
		SentimentScore: entry.SentimentScore,
	})
	if err != nil {
		return nil, fmt.Errorf("[KafkaClient] failed to marshal entry: %w", err)
	}

	return &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(ts),
		Value:          value,
		Timestamp:      entry.Timestamp,
	}, nil
}
