package models

import (
	"math"
	"time"
)

// TimestampLayout is the on-disk timestamp format of the assessment log.
const TimestampLayout = "2006-01-02 15:04:05"

// LogEntry is the persisted projection of an Assessment. SentimentScore is a
// two-decimal percentage in [0,100].
type LogEntry struct {
	Timestamp      time.Time `json:"timestamp" dynamodbav:"-"`
	Text           string    `json:"text" dynamodbav:"text"`
	SentimentLabel Label     `json:"sentiment_label" dynamodbav:"sentiment_label"`
	SentimentScore float64   `json:"sentiment_score" dynamodbav:"sentiment_score"`
}

func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
