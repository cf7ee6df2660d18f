package kafka_client

import "os"

// KafkaConfig enables the assessment mirror when Broker is set.
type KafkaConfig struct {
	Broker string
	Topic  string
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func GetKafkaConfig() KafkaConfig {
	return KafkaConfig{
		Broker: getEnv("KAFKA_BROKER", ""),
		Topic:  getEnv("KAFKA_ASSESSMENT_TOPIC", KAFKA_TOPIC_ASSESSMENTS),
	}
}

func (c KafkaConfig) Enabled() bool {
	return c.Broker != ""
}
