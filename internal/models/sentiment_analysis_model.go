package models

import (
	"fmt"
	"strings"
	"time"
)

type Label string

const (
	LabelNegative Label = "NEGATIVE"
	LabelNeutral  Label = "NEUTRAL"
	LabelPositive Label = "POSITIVE"
)

// Labels is the tie-break order used when aggregating per-sentence labels:
// on equal counts the label that appears first here wins.
var Labels = []Label{LabelPositive, LabelNegative, LabelNeutral}

// ParseLabel accepts the canonical names in any case as well as the raw
// LABEL_<n> ids emitted by the cardiffnlp sentiment checkpoints.
func ParseLabel(raw string) (Label, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "NEGATIVE", "NEG", "LABEL_0":
		return LabelNegative, nil
	case "NEUTRAL", "NEU", "LABEL_1":
		return LabelNeutral, nil
	case "POSITIVE", "POS", "LABEL_2":
		return LabelPositive, nil
	default:
		return "", fmt.Errorf("unknown sentiment label %q", raw)
	}
}

func (l Label) Valid() bool {
	return l == LabelNegative || l == LabelNeutral || l == LabelPositive
}

// SentenceResult is the classification of one sentence. Confidence is in [0,1].
type SentenceResult struct {
	Sentence   string  `json:"sentence"`
	Label      Label   `json:"label"`
	Confidence float64 `json:"confidence"`
}

// Percent is the confidence as a two-decimal percentage.
func (r SentenceResult) Percent() float64 {
	return RoundTo(r.Confidence*100, 2)
}

// Assessment is one complete analysis of a single submission.
//   - OverallLabel / OverallConfidence come from the per-sentence pass and are
//     what gets logged; OverallConfidence is a percentage.
//   - FullLabel / FullConfidence come from classifying the whole text at once
//     and are what the user is shown; FullConfidence is in [0,1].
type Assessment struct {
	Timestamp         time.Time        `json:"timestamp"`
	SourceText        string           `json:"source_text"`
	Sentences         []SentenceResult `json:"sentences"`
	OverallLabel      Label            `json:"overall_label"`
	OverallConfidence float64          `json:"overall_confidence"`
	FullLabel         Label            `json:"full_label"`
	FullConfidence    float64          `json:"full_confidence"`
	Entities          []EntityMention  `json:"entities"`
	Message           string           `json:"message"`
	Empty             bool             `json:"empty"`
}

// Celebrate reports whether the headline sentiment is positive.
func (a Assessment) Celebrate() bool {
	return a.FullLabel == LabelPositive
}

// LogEntry projects the assessment onto its persisted row.
func (a Assessment) LogEntry() LogEntry {
	return LogEntry{
		Timestamp:      a.Timestamp.Truncate(time.Second),
		Text:           a.SourceText,
		SentimentLabel: a.OverallLabel,
		SentimentScore: a.OverallConfidence,
	}
}
