// Package entities finds named entities (people, places, organisations, ...)
// in submitted text.
package entities

import (
	"context"

	"github.com/spacesedan/echomind/internal/models"
)

// Extractor returns the entity mentions in text in order of appearance. It
// keeps no state between calls, so the same text always yields the same
// mentions.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]models.EntityMention, error)
}

// Noop is used when entity extraction is disabled.
type Noop struct{}

func (Noop) Extract(context.Context, string) ([]models.EntityMention, error) {
	return []models.EntityMention{}, nil
}
