package kafka_client

import "time"

const (
	KAFKA_TOPIC_ASSESSMENTS = "assessment-logs" // one message per logged assessment
)

const (
	MAX_RETRIES      = 3
	RETRY_DELAY      = 2 * time.Second
	FLUSH_TIMEOUT_MS = 5000
)
