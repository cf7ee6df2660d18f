package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"APP_ENV", "CLASSIFIER_BACKEND", "ASSESSMENT_LOG_PATH",
		"TRANSCRIPTION_TIMEOUT", "HTTP_MAX_ATTEMPTS", "VALKEY_INIT_ADDRESS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "hugot", cfg.Classifier.Backend)
	assert.Equal(t, "assessment_logs.csv", cfg.Store.CSVPath)
	assert.Empty(t, cfg.Valkey.Address)
	assert.Equal(t, 5*time.Minute, cfg.Transcription.Timeout)
	assert.Equal(t, 1, cfg.HTTP.MaxAttempts)
	assert.Equal(t, 24*time.Hour, cfg.Valkey.TTL)
	assert.Equal(t, "cardiffnlp/twitter-roberta-base-sentiment", cfg.Classifier.ModelName)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("CLASSIFIER_BACKEND", "vader")
	t.Setenv("ASSESSMENT_LOG_PATH", "/tmp/logs.csv")
	t.Setenv("TRANSCRIPTION_TIMEOUT", "30s")
	t.Setenv("HTTP_MAX_ATTEMPTS", "3")
	t.Setenv("VALKEY_TLS", "true")

	cfg := Load()

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "vader", cfg.Classifier.Backend)
	assert.Equal(t, "/tmp/logs.csv", cfg.Store.CSVPath)
	assert.Equal(t, 30*time.Second, cfg.Transcription.Timeout)
	assert.Equal(t, 3, cfg.HTTP.MaxAttempts)
	assert.True(t, cfg.Valkey.TLS)
}

func TestLoad_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("HTTP_MAX_ATTEMPTS", "many")
	t.Setenv("TRANSCRIPTION_TIMEOUT", "soon")

	cfg := Load()

	assert.Equal(t, 1, cfg.HTTP.MaxAttempts)
	assert.Equal(t, 5*time.Minute, cfg.Transcription.Timeout)
}
