package sentiment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/spacesedan/echomind/internal/models"
)

const CACHE_KEY_PREFIX = "echomind:sentiment:"

// Cache is the subset of a key/value store the cached classifier needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetWithTTL(ctx context.Context, key, value string, ttl time.Duration) error
}

// CachedClassifier memoizes another classifier's results keyed by a hash of
// the text. Cache failures are logged and fall through to the wrapped model.
type CachedClassifier struct {
	next  Classifier
	cache Cache
	ttl   time.Duration
}

func NewCachedClassifier(next Classifier, cache Cache, ttl time.Duration) *CachedClassifier {
	return &CachedClassifier{next: next, cache: cache, ttl: ttl}
}

func (c *CachedClassifier) Classify(ctx context.Context, text string) (models.Label, float64, error) {
	key := cacheKey(text)

	raw, found, err := c.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("[CachedClassifier] Cache lookup failed", slog.String("error", err.Error()))
	}
	if found {
		if label, confidence, err := decodeCached(raw); err == nil {
			return label, confidence, nil
		}
		slog.Warn("[CachedClassifier] Ignoring malformed cache entry", slog.String("key", key))
	}

	label, confidence, err := c.next.Classify(ctx, text)
	if err != nil {
		return "", 0, err
	}

	if err := c.cache.SetWithTTL(ctx, key, encodeCached(label, confidence), c.ttl); err != nil {
		slog.Warn("[CachedClassifier] Cache store failed", slog.String("error", err.Error()))
	}
	return label, confidence, nil
}

func cacheKey(text string) string {
	sum := sha256.Sum256([]byte(text))
	return CACHE_KEY_PREFIX + hex.EncodeToString(sum[:])
}

func encodeCached(label models.Label, confidence float64) string {
	return string(label) + "|" + strconv.FormatFloat(confidence, 'g', -1, 64)
}

func decodeCached(raw string) (models.Label, float64, error) {
	labelPart, scorePart, ok := strings.Cut(raw, "|")
	if !ok {
		return "", 0, fmt.Errorf("malformed cache value %q", raw)
	}
	label, err := models.ParseLabel(labelPart)
	if err != nil {
		return "", 0, err
	}
	confidence, err := strconv.ParseFloat(scorePart, 64)
	if err != nil {
		return "", 0, err
	}
	return label, confidence, nil
}
