package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Env      string
	LogLevel string

	Classifier    ClassifierConfig
	Entities      EntitiesConfig
	Transcription TranscriptionConfig
	Hugot         HugotConfig
	Store         StoreConfig
	Valkey        ValkeyConfig
	HTTP          HTTPConfig
}

// ClassifierConfig selects the sentiment backend: hugot, vader or remote.
type ClassifierConfig struct {
	Backend       string
	ModelName     string
	RemoteURL     string
	MaxInputRunes int
}

// EntitiesConfig selects the entity backend: hugot, remote or none.
type EntitiesConfig struct {
	Backend   string
	ModelName string
	RemoteURL string
}

// TranscriptionConfig selects the speech-to-text backend: openai, whisper or google.
type TranscriptionConfig struct {
	Backend      string
	OpenAIAPIKey string
	OpenAIModel  string
	WhisperURL   string
	LanguageCode string
	Timeout      time.Duration
}

type HugotConfig struct {
	ModelDir        string
	OnnxLibraryPath string
}

// StoreConfig selects where assessments are logged: csv or dynamodb.
type StoreConfig struct {
	Backend     string
	CSVPath     string
	DynamoTable string
	AWSRegion   string
	AWSEndpoint string
}

// ValkeyConfig enables the classification cache when Address is set.
type ValkeyConfig struct {
	Address  string
	Password string
	TLS      bool
	TTL      time.Duration
}

type HTTPConfig struct {
	Address        string
	RequestTimeout time.Duration
	MaxAttempts    int
}

func Load() Config {
	return Config{
		Env:      getEnv("APP_ENV", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Classifier: ClassifierConfig{
			Backend:       getEnv("CLASSIFIER_BACKEND", "hugot"),
			ModelName:     getEnv("CLASSIFIER_MODEL", "cardiffnlp/twitter-roberta-base-sentiment"),
			RemoteURL:     getEnv("CLASSIFIER_URL", ""),
			MaxInputRunes: getEnvInt("CLASSIFIER_MAX_INPUT_RUNES", 2000),
		},
		Entities: EntitiesConfig{
			Backend:   getEnv("ENTITIES_BACKEND", "hugot"),
			ModelName: getEnv("ENTITIES_MODEL", "dslim/bert-base-NER"),
			RemoteURL: getEnv("ENTITIES_URL", ""),
		},
		Transcription: TranscriptionConfig{
			Backend:      getEnv("TRANSCRIPTION_BACKEND", "openai"),
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			OpenAIModel:  getEnv("OPENAI_TRANSCRIPTION_MODEL", "whisper-1"),
			WhisperURL:   getEnv("WHISPER_URL", "http://localhost:9000"),
			LanguageCode: getEnv("TRANSCRIPTION_LANGUAGE", "en-US"),
			Timeout:      getEnvDuration("TRANSCRIPTION_TIMEOUT", 5*time.Minute),
		},
		Hugot: HugotConfig{
			ModelDir:        getEnv("HUGOT_MODEL_DIR", "./models"),
			OnnxLibraryPath: getEnv("ONNXRUNTIME_LIB", ""),
		},
		Store: StoreConfig{
			Backend:     getEnv("STORE_BACKEND", "csv"),
			CSVPath:     getEnv("ASSESSMENT_LOG_PATH", "assessment_logs.csv"),
			DynamoTable: getEnv("DYNAMODB_TABLE", "AssessmentLogs"),
			AWSRegion:   getEnv("AWS_REGION", "us-west-2"),
			AWSEndpoint: getEnv("AWS_ENDPOINT", ""),
		},
		Valkey: ValkeyConfig{
			Address:  getEnv("VALKEY_INIT_ADDRESS", ""),
			Password: getEnv("VALKEY_PASSWORD", ""),
			TLS:      getEnvBool("VALKEY_TLS", false),
			TTL:      getEnvDuration("VALKEY_TTL", 24*time.Hour),
		},
		HTTP: HTTPConfig{
			Address:        getEnv("HTTP_ADDRESS", ":8080"),
			RequestTimeout: getEnvDuration("HTTP_REQUEST_TIMEOUT", 60*time.Second),
			MaxAttempts:    getEnvInt("HTTP_MAX_ATTEMPTS", 1),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v, err := time.ParseDuration(getEnv(key, "")); err == nil {
		return v
	}
	return defaultValue
}
